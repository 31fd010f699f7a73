package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/cli"
	"github.com/at-ishikawa/vocly/internal/quiz"
	"github.com/at-ishikawa/vocly/internal/session"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

func newQuizCommand() *cobra.Command {
	var category string
	direction := newDirectionFlag()
	strategy := newStrategyFlag()

	command := &cobra.Command{
		Use:   "quiz",
		Short: "Practice vocabulary, favoring items with a low mastery level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("category") {
				category = cfg.Quiz.Category
			}
			if !cmd.Flags().Changed("direction") {
				if err := direction.Set(cfg.Quiz.Direction); err != nil {
					return fmt.Errorf("quiz.direction %w", err)
				}
			}
			if !cmd.Flags().Changed("strategy") {
				if err := strategy.Set(cfg.Quiz.Strategy); err != nil {
					return fmt.Errorf("quiz.strategy %w", err)
				}
			}

			sessionStrategy, err := session.StrategyByName(strategy.String())
			if err != nil {
				return err
			}

			repo, closeRepo, err := openRepository(ctx, cfg, cfg.Storage.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			service := quiz.NewService(repo,
				quiz.WithLocation(learnerLocation(cfg)),
				quiz.WithLogger(slog.Default()))
			if err := service.Load(ctx); err != nil {
				return fmt.Errorf("service.Load() > %w", err)
			}

			categories := vocab.Categories(service.Items())
			if !slices.Contains(categories, category) {
				return fmt.Errorf("unknown category %q (available: %v)", category, categories)
			}

			w := cmd.OutOrStdout()
			if service.UsesDefaultItems() {
				_, _ = fmt.Fprintln(w, "No vocabulary imported yet, practicing the built-in list. Run `vocly import` to add yours.")
			}

			seed := uint64(time.Now().UnixNano())
			rng := rand.New(rand.NewPCG(seed, seed>>32))
			run := service.StartRun(category, session.NewBuilder(sessionStrategy), rng)

			quizCLI, err := cli.NewVocabQuizCLI(service, run, direction.String(), cmd.InOrStdin(), w)
			if err != nil {
				return err
			}
			return quizCLI.Run(ctx, quizCLI)
		},
	}

	command.Flags().StringVar(&category, "category", vocab.AllCategories, "category to practice")
	command.Flags().Var(direction, "direction", "term shows the term, translation shows the translation")
	command.Flags().Var(strategy, "strategy", "duplicate repeats weak items, weighted asks every item once")
	return command
}
