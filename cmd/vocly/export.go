package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocly/internal/pdf"
	"github.com/at-ishikawa/vocly/internal/report"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

func newExportCommand() *cobra.Command {
	var outputDirectory string
	format := newFormatFlag()

	command := &cobra.Command{
		Use:   "export",
		Short: "Export progress as JSON, or as a markdown or PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outputDirectory == "" {
				outputDirectory = cfg.Outputs.ReportDirectory
			}

			repo, closeRepo, err := openRepository(ctx, cfg, cfg.Storage.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			snapshot, err := repo.FindSnapshot(ctx)
			if err != nil {
				return fmt.Errorf("repo.FindSnapshot() > %w", err)
			}
			if len(snapshot.Items) == 0 {
				snapshot.Items = vocab.DefaultItems()
			}

			if err := os.MkdirAll(outputDirectory, 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", outputDirectory, err)
			}

			now := time.Now()
			path := filepath.Join(outputDirectory, report.FileName(format.String(), now))
			var content bytes.Buffer
			switch format.String() {
			case report.FormatJSON:
				if err := report.ExportJSON(&content, snapshot, now); err != nil {
					return err
				}
			case report.FormatMarkdown, report.FormatPDF:
				progressReport := report.BuildProgressReport(cfg.Learner.ID, snapshot, now, learnerLocation(cfg))
				if err := report.WriteMarkdown(&content, cfg.Templates.ReportTemplate, progressReport, slog.Default()); err != nil {
					return err
				}
			}

			if format.String() == report.FormatPDF {
				if err := pdf.Render(content.Bytes(), path); err != nil {
					return fmt.Errorf("pdf.Render(%s) > %w", path, err)
				}
			} else if err := os.WriteFile(path, content.Bytes(), 0644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			return nil
		},
	}

	command.Flags().Var(format, "format", "json, markdown or pdf")
	command.Flags().StringVar(&outputDirectory, "output", "", "output directory (default outputs.report_directory)")
	return command
}
