package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/quiz"
	"github.com/at-ishikawa/vocly/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	var year, month int

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show streak, today's answers, monthly activity and mastery levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return errors.New("--month requires --year")
			}
			if month < 0 || month > 12 {
				return errors.New("--month must be between 1 and 12")
			}

			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repo, closeRepo, err := openRepository(ctx, cfg, cfg.Storage.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			service := quiz.NewService(repo, quiz.WithLocation(learnerLocation(cfg)))
			if err := service.Load(ctx); err != nil {
				return fmt.Errorf("service.Load() > %w", err)
			}

			printStatistics(cmd.OutOrStdout(), service.Streak(), service.Today(), service.Statistics(year, month))
			return nil
		},
	}

	command.Flags().IntVar(&year, "year", 0, "only count answers of this year")
	command.Flags().IntVar(&month, "month", 0, "only count answers of this month (requires --year)")
	return command
}

func printStatistics(w io.Writer, streak int, today statistics.DailyStat, result statistics.StatisticsResult) {
	aggregate := result.Aggregate
	_, _ = fmt.Fprintf(w, "Streak: %s\n", pluralize(streak, "day", "days"))
	_, _ = fmt.Fprintf(w, "Today: %d answered, %d correct\n", today.QuestionsAnswered, today.CorrectAnswers)
	_, _ = fmt.Fprintf(w, "Items: %d new, %d learning, %d mastered (%d seen, %d due)\n",
		aggregate.ItemsNew, aggregate.ItemsLearning, aggregate.ItemsMastered, aggregate.ItemsSeen, aggregate.ItemsDue)
	_, _ = fmt.Fprintf(w, "Answers: %d on %s, %.0f%% correct\n",
		aggregate.QuestionsAnswered, pluralize(aggregate.ActiveDays, "day", "days"), aggregate.Accuracy()*100)

	if len(result.Periods) > 0 {
		_, _ = fmt.Fprintln(w, "\nMonth     Answered  Correct  Accuracy  Days")
		for _, period := range result.Periods {
			_, _ = fmt.Fprintf(w, "%-9s %8d  %7d  %7.0f%%  %4d\n",
				period.Period, period.QuestionsAnswered, period.CorrectAnswers, period.Accuracy()*100, period.ActiveDays)
		}
	}

	_, _ = fmt.Fprintln(w, "\nLevel  Interval  Items")
	for level, count := range aggregate.LevelCounts {
		_, _ = fmt.Fprintf(w, "%5d  %8s  %5d\n", level, pluralize(mastery.IntervalDays(level), "day", "days"), count)
	}
}
