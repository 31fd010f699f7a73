package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/vocly/internal/quiz"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

// Quiz directions.
const (
	// DirectionTerm shows the term and asks for the translation.
	DirectionTerm = "term"
	// DirectionTranslation shows the translation and asks for the term.
	DirectionTranslation = "translation"
)

var ErrUnknownDirection = errors.New("unknown quiz direction")

// VocabQuizCLI asks one item of a quiz run per Session call.
type VocabQuizCLI struct {
	*InteractiveQuizCLI
	service   *quiz.Service
	run       *quiz.Run
	direction string
	finished  bool
}

func NewVocabQuizCLI(
	service *quiz.Service,
	run *quiz.Run,
	direction string,
	stdin io.Reader,
	stdout io.Writer,
) (*VocabQuizCLI, error) {
	if direction != DirectionTerm && direction != DirectionTranslation {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, direction)
	}
	return &VocabQuizCLI{
		InteractiveQuizCLI: newInteractiveQuizCLI(stdin, stdout),
		service:            service,
		run:                run,
		direction:          direction,
	}, nil
}

// Score returns the score of the run so far.
func (c *VocabQuizCLI) Score() quiz.Score {
	return c.run.Score
}

func (c *VocabQuizCLI) sides(item vocab.Item) (prompt, answer string) {
	if c.direction == DirectionTranslation {
		return item.Translation, item.Term
	}
	return item.Term, item.Translation
}

func (c *VocabQuizCLI) Session(ctx context.Context) error {
	if c.run.Session.Len() == 0 {
		_, _ = fmt.Fprintln(c.stdoutWriter, "No items to practice in this category.")
		return errEnd
	}

	item, ok := c.run.Session.Next()
	if !ok {
		return c.finish()
	}

	prompt, answer := c.sides(item)
	w := c.stdoutWriter
	_, _ = fmt.Fprintf(w, "\n[%d/%d] ", c.run.Session.Position(), c.run.Session.Len())
	_, _ = c.italic.Fprintln(w, item.Category)
	_, _ = c.bold.Fprintln(w, prompt)
	_, _ = fmt.Fprint(w, "Press Enter to reveal the answer (q to quit)... ")

	input, err := c.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return c.finish()
		}
		return fmt.Errorf("error reading input: %w", err)
	}
	if isQuit(input) {
		return c.finish()
	}

	_, _ = c.bold.Fprintln(w, answer)
	if item.Example != "" {
		_, _ = c.italic.Fprintln(w, item.Example)
	}

	isCorrect, quit, err := c.askKnown()
	if err != nil {
		return err
	}
	if quit {
		return c.finish()
	}

	progress, err := c.service.RecordAnswer(ctx, item, isCorrect)
	if err != nil {
		return fmt.Errorf("service.RecordAnswer() > %w", err)
	}
	c.run.Score.Record(isCorrect)

	if isCorrect {
		_, _ = c.correct.Fprint(w, "Correct!")
	} else {
		_, _ = c.incorrect.Fprint(w, "Not yet.")
	}
	_, _ = fmt.Fprintf(w, " Level %d, next review %s. Score: %d/%d\n",
		progress.Level,
		statistics.DateKey(progress.NextReview, c.service.Location()),
		c.run.Score.Correct,
		c.run.Score.Total)
	return nil
}

// askKnown reads y/n until the answer is valid. quit is set for q or end of input.
func (c *VocabQuizCLI) askKnown() (isCorrect bool, quit bool, err error) {
	for {
		_, _ = fmt.Fprint(c.stdoutWriter, "Did you know it? [y/n/q]: ")
		input, err := c.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, true, nil
			}
			return false, false, fmt.Errorf("error reading input: %w", err)
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			return true, false, nil
		case "n", "no":
			return false, false, nil
		case "q", "quit":
			return false, true, nil
		}
		_, _ = fmt.Fprintln(c.stdoutWriter, "Please answer y, n or q.")
	}
}

func (c *VocabQuizCLI) finish() error {
	if !c.finished {
		c.finished = true
		c.printResult()
	}
	return errEnd
}

func (c *VocabQuizCLI) printResult() {
	w := c.stdoutWriter
	score := c.run.Score
	_, _ = fmt.Fprintln(w)
	_, _ = c.bold.Fprintln(w, "Quiz finished")
	_, _ = fmt.Fprintf(w, "Score: %d/%d (%d%%)\n", score.Correct, score.Total, score.Percent())

	streak := c.service.Streak()
	unit := "days"
	if streak == 1 {
		unit = "day"
	}
	_, _ = fmt.Fprintf(w, "Streak: %d %s\n", streak, unit)
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "q", "quit":
		return true
	}
	return false
}
