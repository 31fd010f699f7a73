package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() ProgressReport {
	return ProgressReport{
		Learner:     "anna",
		GeneratedAt: "2025-03-01",
		Streak:      1,
		Today:       ReportDay{Date: "2025-03-01", QuestionsAnswered: 4, CorrectAnswers: 3},
		Totals: ReportTotals{
			Items:             3,
			ItemsSeen:         2,
			ItemsDue:          1,
			ItemsNew:          1,
			ItemsMastered:     1,
			QuestionsAnswered: 10,
			CorrectAnswers:    7,
			ActiveDays:        2,
		},
		Levels: []ReportLevel{
			{Level: 0, IntervalDays: 0, Count: 1},
			{Level: 5, IntervalDays: 30, Count: 1},
		},
		Categories: []ReportCategory{
			{Name: "Travel", Items: 2, Seen: 2, Mastered: 1},
		},
		Periods: []ReportPeriod{
			{Period: "2025-03", QuestionsAnswered: 10, CorrectAnswers: 7, ActiveDays: 2},
		},
		DueItems: []ReportItem{
			{Category: "Travel", Term: "train", Translation: "Zug", Level: 0, NextReview: "2025-03-01"},
		},
	}
}

func TestWriteProgressReport(t *testing.T) {
	tests := []struct {
		name         string
		templatePath func(t *testing.T) string
		data         ProgressReport
		wantContains []string
		wantExact    string
	}{
		{
			name: "uses filesystem template when available",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `Custom: {{ .Learner }} {{ .Streak }} {{ percent .Totals.CorrectAnswers .Totals.QuestionsAnswered }}%`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			},
			data:      testReport(),
			wantExact: "Custom: anna 1 70%",
		},
		{
			name: "uses embedded template without a path",
			templatePath: func(t *testing.T) string {
				return ""
			},
			data: testReport(),
			wantContains: []string{
				"# Vocabulary progress of anna",
				"- Current streak: 1 day\n",
				"- Today: 4 answered, 3 correct",
				"- Items: 3 (1 new, 0 learning, 1 mastered, 1 due)",
				"- Answers: 10 on 2 days, 70% correct",
				"|---|---|---|\n| 0 | 0 days | 1 |\n| 5 | 30 days | 1 |",
				"| Travel | 2 | 2 | 1 |",
				"| 2025-03 | 10 | 7 | 70% | 2 |",
				"- **train**: Zug (Travel, level 0, due 2025-03-01)",
			},
		},
		{
			name: "uses embedded template when file doesn't exist",
			templatePath: func(t *testing.T) string {
				return "/non/existent/invalid.md.go.tmpl"
			},
			data:         ProgressReport{Learner: "ben", Streak: 3},
			wantContains: []string{"# Vocabulary progress of ben", "- Current streak: 3 days"},
		},
		{
			name: "uses embedded template when filesystem template is invalid",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "invalid.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`Bad: {{ .Unclosed`), 0644))
				return templatePath
			},
			data:         ProgressReport{Learner: "ben"},
			wantContains: []string{"# Vocabulary progress of ben"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			err := WriteProgressReport(&output, tt.templatePath(t), tt.data, nil)
			require.NoError(t, err)

			if tt.wantExact != "" {
				assert.Equal(t, tt.wantExact, output.String())
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, output.String(), want)
			}
		})
	}
}

func TestWriteProgressReport_EmptySectionsAreOmitted(t *testing.T) {
	var output bytes.Buffer
	require.NoError(t, WriteProgressReport(&output, "", ProgressReport{Learner: "anna"}, nil))

	assert.NotContains(t, output.String(), "## Categories")
	assert.NotContains(t, output.String(), "## Monthly activity")
	assert.NotContains(t, output.String(), "## Due for review")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, percent(1, 0))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 100, percent(4, 4))
}
