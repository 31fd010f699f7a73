package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/vocab"
)

func newImportCommand() *cobra.Command {
	var url string
	var timeout time.Duration

	command := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the vocabulary catalog with a JSON, YAML, CSV or XLSX file",
		Long: "Replace the vocabulary catalog of the learner with the entries of a file or URL.\n" +
			"All progress and daily statistics of the learner are discarded, including those of items that stay in the catalog.\n" +
			"Entries repeating an earlier term and translation pair are skipped.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (url == "") {
				return errors.New("either a file or --url is required")
			}
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var items []vocab.Item
			source := url
			if url != "" {
				items, err = vocab.NewFetcher(timeout).Fetch(ctx, url)
			} else {
				source = args[0]
				items, err = vocab.ReadFile(source)
			}
			if err != nil {
				return fmt.Errorf("read vocabulary: %w", err)
			}

			valid, skipped, err := vocab.Prepare(items)
			if err != nil {
				return fmt.Errorf("import %s: %w", source, err)
			}

			repo, closeRepo, err := openRepository(ctx, cfg, cfg.Storage.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			if err := repo.ReplaceItems(ctx, valid); err != nil {
				return fmt.Errorf("repo.ReplaceItems() > %w", err)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Imported %s from %s", pluralize(len(valid), "item", "items"), source)
			if skipped > 0 {
				_, _ = fmt.Fprintf(w, " (%d skipped)", skipped)
			}
			_, _ = fmt.Fprintln(w)
			return nil
		},
	}

	command.Flags().StringVar(&url, "url", "", "download a JSON vocabulary list instead of reading a file")
	command.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "timeout of the download")
	return command
}
