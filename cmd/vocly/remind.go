package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/bootstrap"
	"github.com/at-ishikawa/vocly/internal/reminder"
)

func newRemindCommand() *cobra.Command {
	var now bool

	command := &cobra.Command{
		Use:   "remind",
		Short: "Print a daily reminder of due items until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			checker := reminder.NewChecker(cfg.Learner.ID, repo,
				reminder.NewConsoleNotifier(cmd.OutOrStdout()),
				reminder.WithLocation(learnerLocation(cfg)),
				reminder.WithLogger(slog.Default()))
			if now {
				result, sent, err := checker.Check(ctx)
				if err != nil {
					return err
				}
				if !sent {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: nothing to review\n", result.Date, result.Learner)
				}
				return nil
			}

			app := bootstrap.New(slog.Default())
			return app.Run(ctx, func(ctx context.Context) error {
				scheduler, err := reminder.NewScheduler(ctx, checker, cfg.Reminder.At)
				if err != nil {
					return err
				}
				app.AddShutdownHook(scheduler.Stop)
				scheduler.Start()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Next reminder at %s\n", scheduler.NextRun().Format("2006-01-02 15:04 MST"))

				<-ctx.Done()
				return nil
			})
		},
	}

	command.Flags().BoolVar(&now, "now", false, "check once immediately and exit")
	return command
}
