// Package report exports a learner's progress as JSON, markdown or PDF.
package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/at-ishikawa/vocly/internal/assets"
	"github.com/at-ishikawa/vocly/internal/learning"
	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// ProgressExport is the JSON document written by ExportJSON.
type ProgressExport struct {
	VocabProgress map[string]mastery.Progress     `json:"vocabProgress"`
	DailyStats    map[string]statistics.DailyStat `json:"dailyStats"`
	ExportDate    string                          `json:"exportDate"`
}

// FileName returns the file name of an export created at now, e.g. vocly-progress-2025-03-01.json.
func FileName(format string, now time.Time) string {
	date := now.UTC().Format(statistics.DateLayout)
	switch format {
	case FormatMarkdown:
		return "vocly-progress-" + date + ".md"
	case FormatPDF:
		return "vocly-progress-" + date + ".pdf"
	default:
		return "vocly-progress-" + date + ".json"
	}
}

// ExportJSON writes progress keyed by "<term>-<translation>" and stats keyed by date.
func ExportJSON(w io.Writer, snapshot learning.Snapshot, now time.Time) error {
	export := ProgressExport{
		VocabProgress: make(map[string]mastery.Progress, len(snapshot.Progress)),
		DailyStats:    make(map[string]statistics.DailyStat, len(snapshot.DailyStats)),
		ExportDate:    now.UTC().Format(time.RFC3339),
	}
	for key, progress := range snapshot.Progress {
		export.VocabProgress[key.String()] = progress
	}
	for date, stat := range snapshot.DailyStats {
		export.DailyStats[date] = stat
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("json.NewEncoder().Encode() > %w", err)
	}
	return nil
}

// BuildProgressReport summarizes snapshot for the markdown report.
func BuildProgressReport(learner string, snapshot learning.Snapshot, now time.Time, loc *time.Location) assets.ProgressReport {
	result := statistics.CalculateStatistics(snapshot.Progress, snapshot.DailyStats, 0, 0, now)
	today := statistics.DateKey(now, loc)

	report := assets.ProgressReport{
		Learner:     learner,
		GeneratedAt: today,
		Streak:      statistics.StreakFromStats(snapshot.DailyStats, now, loc),
		Today:       assets.ReportDay{Date: today},
		Totals: assets.ReportTotals{
			Items:             len(snapshot.Items),
			ItemsSeen:         result.Aggregate.ItemsSeen,
			ItemsDue:          result.Aggregate.ItemsDue,
			ItemsNew:          statistics.CountNew(snapshot.Items, snapshot.Progress),
			ItemsLearning:     result.Aggregate.ItemsLearning,
			ItemsMastered:     result.Aggregate.ItemsMastered,
			QuestionsAnswered: result.Aggregate.QuestionsAnswered,
			CorrectAnswers:    result.Aggregate.CorrectAnswers,
			ActiveDays:        result.Aggregate.ActiveDays,
		},
	}
	if stat, ok := snapshot.DailyStats[today]; ok {
		report.Today.QuestionsAnswered = stat.QuestionsAnswered
		report.Today.CorrectAnswers = stat.CorrectAnswers
	}

	for level, count := range result.Aggregate.LevelCounts {
		report.Levels = append(report.Levels, assets.ReportLevel{
			Level:        level,
			IntervalDays: mastery.IntervalDays(level),
			Count:        count,
		})
	}

	for _, period := range result.Periods {
		report.Periods = append(report.Periods, assets.ReportPeriod{
			Period:            period.Period,
			QuestionsAnswered: period.QuestionsAnswered,
			CorrectAnswers:    period.CorrectAnswers,
			ActiveDays:        period.ActiveDays,
		})
	}

	categories := map[string]*assets.ReportCategory{}
	for _, name := range vocab.Categories(snapshot.Items)[1:] {
		category := &assets.ReportCategory{Name: name}
		categories[name] = category
		report.Categories = append(report.Categories, *category)
	}
	for _, item := range snapshot.Items {
		category := categories[item.Category]
		category.Items++
		progress, ok := snapshot.Progress[item.Key()]
		if !ok {
			continue
		}
		category.Seen++
		if progress.IsMastered() {
			category.Mastered++
		}
		if progress.IsDue(now) {
			report.DueItems = append(report.DueItems, assets.ReportItem{
				Category:    item.Category,
				Term:        item.Term,
				Translation: item.Translation,
				Level:       progress.Level,
				NextReview:  statistics.DateKey(progress.NextReview, loc),
			})
		}
	}
	for i := range report.Categories {
		report.Categories[i] = *categories[report.Categories[i].Name]
	}

	slices.SortStableFunc(report.DueItems, func(a, b assets.ReportItem) int {
		return cmp.Or(cmp.Compare(a.NextReview, b.NextReview), cmp.Compare(a.Level, b.Level))
	})
	return report
}

// WriteMarkdown renders report with the template at templatePath or the embedded one.
func WriteMarkdown(w io.Writer, templatePath string, report assets.ProgressReport, logger *slog.Logger) error {
	if err := assets.WriteProgressReport(w, templatePath, report, logger); err != nil {
		return fmt.Errorf("assets.WriteProgressReport() > %w", err)
	}
	return nil
}
