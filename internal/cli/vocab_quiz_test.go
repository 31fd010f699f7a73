package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/vocly/internal/learning"
	mock_learning "github.com/at-ishikawa/vocly/internal/mocks/learning"
	"github.com/at-ishikawa/vocly/internal/quiz"
	"github.com/at-ishikawa/vocly/internal/session"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

var (
	train = vocab.Item{Category: "Travel", Term: "train", Translation: "Zug", Example: "The train is late."}
	hello = vocab.Item{Category: "Basics", Term: "hello", Translation: "hallo"}
)

func newTestQuiz(t *testing.T, items []vocab.Item, setup func(repo *mock_learning.MockRepository), opts ...quiz.Option) (*quiz.Service, *quiz.Run) {
	t.Helper()
	color.NoColor = true

	ctrl := gomock.NewController(t)
	repo := mock_learning.NewMockRepository(ctrl)
	repo.EXPECT().FindItems(gomock.Any()).Return(items, nil)
	repo.EXPECT().FindProgress(gomock.Any()).Return(nil, nil)
	repo.EXPECT().FindDailyStats(gomock.Any()).Return(nil, nil)
	if setup != nil {
		setup(repo)
	}

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	opts = append([]quiz.Option{quiz.WithClock(func() time.Time { return now })}, opts...)
	service := quiz.NewService(repo, opts...)
	require.NoError(t, service.Load(context.Background()))

	return service, &quiz.Run{
		ID:       "run",
		Category: vocab.AllCategories,
		Session:  session.NewSession(items),
	}
}

func TestNewVocabQuizCLI(t *testing.T) {
	service, run := newTestQuiz(t, []vocab.Item{train}, nil)

	_, err := NewVocabQuizCLI(service, run, "sideways", strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownDirection)

	got, err := NewVocabQuizCLI(service, run, DirectionTerm, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, quiz.Score{}, got.Score())
}

func TestVocabQuizCLI_Session(t *testing.T) {
	tests := []struct {
		name        string
		direction   string
		input       string
		setup       func(repo *mock_learning.MockRepository)
		wantErr     error
		wantErrText string
		wantScore   quiz.Score
		wantOutput  []string
		notOutput   []string
	}{
		{
			name:      "known answer in term direction",
			direction: DirectionTerm,
			input:     "\ny\n",
			setup: func(repo *mock_learning.MockRepository) {
				repo.EXPECT().SaveAnswer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, answer learning.Answer) error {
						assert.Equal(t, train, answer.Item)
						assert.Equal(t, 1, answer.Progress.Level)
						return nil
					})
			},
			wantScore: quiz.Score{Correct: 1, Total: 1},
			wantOutput: []string{
				"[1/1] Travel",
				"train\nPress Enter",
				"Zug\nThe train is late.",
				"Correct! Level 1, next review 2025-03-02. Score: 1/1",
			},
		},
		{
			name:      "translation direction asks for the term",
			direction: DirectionTranslation,
			input:     "\nn\n",
			setup: func(repo *mock_learning.MockRepository) {
				repo.EXPECT().SaveAnswer(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantScore: quiz.Score{Correct: 0, Total: 1},
			wantOutput: []string{
				"Zug\nPress Enter",
				"train\nThe train is late.",
				"Not yet. Level 0, next review 2025-03-01. Score: 0/1",
			},
		},
		{
			name:      "invalid answer is asked again",
			direction: DirectionTerm,
			input:     "\nmaybe\nYES\n",
			setup: func(repo *mock_learning.MockRepository) {
				repo.EXPECT().SaveAnswer(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantScore:  quiz.Score{Correct: 1, Total: 1},
			wantOutput: []string{"Please answer y, n or q.", "Correct!"},
		},
		{
			name:       "quit before reveal",
			direction:  DirectionTerm,
			input:      "q\n",
			wantErr:    errEnd,
			wantOutput: []string{"Quiz finished", "Score: 0/0 (0%)", "Streak: 0 days"},
			notOutput:  []string{"Zug"},
		},
		{
			name:       "quit after reveal",
			direction:  DirectionTerm,
			input:      "\nq\n",
			wantErr:    errEnd,
			wantOutput: []string{"Zug", "Quiz finished"},
		},
		{
			name:       "end of input finishes the quiz",
			direction:  DirectionTerm,
			input:      "",
			wantErr:    errEnd,
			wantOutput: []string{"Quiz finished"},
		},
		{
			name:      "save failure",
			direction: DirectionTerm,
			input:     "\ny\n",
			setup: func(repo *mock_learning.MockRepository) {
				repo.EXPECT().SaveAnswer(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErrText: "service.RecordAnswer()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, run := newTestQuiz(t, []vocab.Item{train}, tt.setup)
			var stdout bytes.Buffer
			quizCLI, err := NewVocabQuizCLI(service, run, tt.direction, strings.NewReader(tt.input), &stdout)
			require.NoError(t, err)

			err = quizCLI.Session(context.Background())
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrText)
			default:
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantScore, quizCLI.Score())
			for _, want := range tt.wantOutput {
				assert.Contains(t, stdout.String(), want)
			}
			for _, notWant := range tt.notOutput {
				assert.NotContains(t, stdout.String(), notWant)
			}
		})
	}
}

func TestVocabQuizCLI_NextReviewInLearnerTimezone(t *testing.T) {
	// 16:00 UTC is already the next day in Tokyo.
	now := time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	service, run := newTestQuiz(t, []vocab.Item{train}, func(repo *mock_learning.MockRepository) {
		repo.EXPECT().SaveAnswer(gomock.Any(), gomock.Any()).Return(nil)
	}, quiz.WithClock(func() time.Time { return now }), quiz.WithLocation(tokyo))

	var stdout bytes.Buffer
	quizCLI, err := NewVocabQuizCLI(service, run, DirectionTerm, strings.NewReader("\ny\n"), &stdout)
	require.NoError(t, err)

	require.NoError(t, quizCLI.Session(context.Background()))
	assert.Contains(t, stdout.String(), "Correct! Level 1, next review 2025-03-03. Score: 1/1")
}

func TestVocabQuizCLI_EmptySession(t *testing.T) {
	service, _ := newTestQuiz(t, []vocab.Item{train}, nil)
	run := &quiz.Run{Session: session.NewSession([]vocab.Item{})}

	var stdout bytes.Buffer
	quizCLI, err := NewVocabQuizCLI(service, run, DirectionTerm, strings.NewReader(""), &stdout)
	require.NoError(t, err)

	assert.ErrorIs(t, quizCLI.Session(context.Background()), errEnd)
	assert.Contains(t, stdout.String(), "No items to practice in this category.")
}

func TestVocabQuizCLI_RunToCompletion(t *testing.T) {
	service, run := newTestQuiz(t, []vocab.Item{train, hello}, func(repo *mock_learning.MockRepository) {
		repo.EXPECT().SaveAnswer(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	})

	var stdout bytes.Buffer
	quizCLI, err := NewVocabQuizCLI(service, run, DirectionTerm, strings.NewReader("\ny\n\nn\n"), &stdout)
	require.NoError(t, err)

	require.NoError(t, quizCLI.Run(context.Background(), quizCLI))

	assert.Equal(t, quiz.Score{Correct: 1, Total: 2}, quizCLI.Score())
	output := stdout.String()
	assert.Contains(t, output, "[2/2] Basics")
	assert.Contains(t, output, "Score: 1/2 (50%)")
	assert.Contains(t, output, "Streak: 1 day\n")
	assert.Equal(t, 1, strings.Count(output, "Quiz finished"))
}
