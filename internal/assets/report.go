package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
)

const progressReportTemplateName = "progress-report.md.go.tmpl"

//go:embed templates/progress-report.md.go.tmpl
var fallbackProgressReportTemplate string

// ProgressReport is the data passed to the progress report template
type ProgressReport struct {
	Learner     string
	GeneratedAt string
	Streak      int
	Today       ReportDay
	Totals      ReportTotals
	Levels      []ReportLevel
	Categories  []ReportCategory
	Periods     []ReportPeriod
	DueItems    []ReportItem
}

type ReportDay struct {
	Date              string
	QuestionsAnswered int
	CorrectAnswers    int
}

type ReportTotals struct {
	Items             int
	ItemsSeen         int
	ItemsDue          int
	ItemsNew          int
	ItemsLearning     int
	ItemsMastered     int
	QuestionsAnswered int
	CorrectAnswers    int
	ActiveDays        int
}

// ReportLevel is one row of the mastery level distribution
type ReportLevel struct {
	Level        int
	IntervalDays int
	Count        int
}

type ReportCategory struct {
	Name     string
	Items    int
	Seen     int
	Mastered int
}

// ReportPeriod summarizes one month
type ReportPeriod struct {
	Period            string
	QuestionsAnswered int
	CorrectAnswers    int
	ActiveDays        int
}

type ReportItem struct {
	Category    string
	Term        string
	Translation string
	Level       int
	NextReview  string
}

// WriteProgressReport renders data with the template at templatePath,
// or with the embedded template when templatePath is empty or unusable.
func WriteProgressReport(output io.Writer, templatePath string, data ProgressReport, logger *slog.Logger) error {
	tmpl, err := parseTemplateWithFallback(templatePath, progressReportTemplateName, fallbackProgressReportTemplate, logger)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
