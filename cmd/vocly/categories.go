package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/learning"
	"github.com/at-ishikawa/vocly/internal/quiz"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the vocabulary catalog with their item counts",
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

			service := quiz.NewService(repo, quiz.WithLocation(learnerLocation(cfg)))
			if err := service.Load(ctx); err != nil {
				return fmt.Errorf("service.Load() > %w", err)
			}

			items := service.Items()
			counts := vocab.CountByCategory(items)
			w := cmd.OutOrStdout()
			if service.UsesDefaultItems() {
				_, _ = fmt.Fprintln(w, "No vocabulary imported yet, showing the built-in list.")
			}
			for _, category := range vocab.Categories(items) {
				count := counts[category]
				if category == vocab.AllCategories {
					count = len(items)
				}
				_, _ = fmt.Fprintf(w, "%-20s %s\n", category, pluralize(count, "item", "items"))
			}
			return nil
		},
	}
}

func newLearnersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "learners",
		Short: "List the learners stored in the YAML directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			learners, err := learning.ListLearners(cfg.Storage.YAMLDirectory)
			if err != nil {
				return fmt.Errorf("learning.ListLearners() > %w", err)
			}
			w := cmd.OutOrStdout()
			for _, learner := range learners {
				marker := " "
				if learner == cfg.Learner.ID {
					marker = "*"
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", marker, learner)
			}
			return nil
		},
	}
}
