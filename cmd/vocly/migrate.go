package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/config"
	"github.com/at-ishikawa/vocly/internal/database"
	"github.com/at-ishikawa/vocly/internal/datasync"
)

func newMigrateCommand() *cobra.Command {
	var dryRun bool
	from := newBackendFlag(config.StorageYAML)
	to := newBackendFlag(config.StorageDatabase)

	command := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the learner's items, progress and statistics between storage backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from.String() == to.String() {
				return errors.New("--from and --to must be different backends")
			}
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			src, closeSrc, err := openRepository(ctx, cfg, from.String())
			if err != nil {
				return fmt.Errorf("open %s: %w", from, err)
			}
			defer func() { _ = closeSrc() }()
			dst, closeDst, err := openRepository(ctx, cfg, to.String())
			if err != nil {
				return fmt.Errorf("open %s: %w", to, err)
			}
			defer func() { _ = closeDst() }()

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Migrating learner %s from %s to %s\n", cfg.Learner.ID, from, to)
			result, err := datasync.NewSyncer(w).Sync(ctx, src, dst, datasync.Options{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			_, _ = fmt.Fprintln(w, "\nMigration Summary:")
			if dryRun {
				_, _ = fmt.Fprintln(w, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(w, "  Items:       %d\n", result.Items)
			_, _ = fmt.Fprintf(w, "  Progress:    %d (%d without item)\n", result.Progress, result.Orphans)
			_, _ = fmt.Fprintf(w, "  Daily stats: %d\n", result.DailyStats)
			return nil
		},
	}

	command.Flags().Var(from, "from", "backend to read from: yaml or database")
	command.Flags().Var(to, "to", "backend to replace: yaml or database")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the destination")
	return command
}

func newDBCommand() *cobra.Command {
	dbCommand := &cobra.Command{
		Use:   "db",
		Short: "Database commands",
	}
	dbCommand.AddCommand(newDBMigrateCommand())
	return dbCommand
}

func newDBMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDatabase(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			results, err := database.Migrate(ctx, db)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}

			w := cmd.OutOrStdout()
			if len(results) == 0 {
				_, _ = fmt.Fprintln(w, "Schema is up to date")
				return nil
			}
			for _, result := range results {
				_, _ = fmt.Fprintf(w, "Applied %05d %s (%s)\n", result.Version, result.Source, result.Duration)
			}
			return nil
		},
	}
}
