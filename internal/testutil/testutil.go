// Package testutil provides shared test helpers for creating config files and learner fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/vocly/internal/learning"
	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

// TestLearner is the learner id written by SetupTestConfig.
const TestLearner = "anna"

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"learners", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`learner:
  id: %s
  timezone: UTC
storage:
  backend: yaml
  yaml_directory: %s
database:
  driver: sqlite3
  path: %s
outputs:
  report_directory: %s
`,
		TestLearner,
		filepath.Join(tmpDir, "learners"),
		filepath.Join(tmpDir, "vocly.db"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithDatabase creates a config file that stores learners in the sqlite database.
func SetupTestConfigWithDatabase(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = []byte(strings.Replace(string(content), "backend: yaml", "backend: database", 1))
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// LearnerOption configures optional fields when creating a learner fixture.
type LearnerOption func(*learnerConfig)

type learnerConfig struct {
	level      int
	reviewedAt time.Time
}

// WithLevel sets the mastery level of every fixture item.
func WithLevel(level int) LearnerOption {
	return func(cfg *learnerConfig) {
		cfg.level = level
	}
}

// WithReviewedAt sets when the fixture items were last reviewed.
func WithReviewedAt(reviewedAt time.Time) LearnerOption {
	return func(cfg *learnerConfig) {
		cfg.reviewedAt = reviewedAt
	}
}

// FixtureItems is the catalog written by CreateLearner.
func FixtureItems() []vocab.Item {
	return []vocab.Item{
		{Category: "Travel", Term: "train", Translation: "Zug", Example: "The train is late."},
		{Category: "Travel", Term: "plane", Translation: "Flugzeug"},
		{Category: "Basics", Term: "hello", Translation: "hallo"},
	}
}

// CreateLearner writes a YAML learner file with FixtureItems, progress for the
// first item and one day of statistics. By default the progress is at level 0
// and was reviewed now, so the item is due. Use the options to override.
func CreateLearner(t *testing.T, directory, learnerID string, opts ...LearnerOption) *learning.YAMLRepository {
	t.Helper()

	cfg := learnerConfig{reviewedAt: time.Now()}
	for _, opt := range opts {
		opt(&cfg)
	}

	repo, err := learning.NewYAMLRepository(directory, learnerID)
	require.NoError(t, err)

	items := FixtureItems()
	level := mastery.ClampLevel(cfg.level)
	date := statistics.DateKey(cfg.reviewedAt, time.UTC)
	require.NoError(t, repo.Restore(context.Background(), learning.Snapshot{
		Items: items,
		Progress: map[vocab.Key]mastery.Progress{
			items[0].Key(): {
				Level:          level,
				CorrectCount:   level,
				IncorrectCount: 1,
				LastReviewed:   cfg.reviewedAt.UTC(),
				NextReview:     cfg.reviewedAt.UTC().AddDate(0, 0, mastery.IntervalDays(level)),
			},
		},
		DailyStats: map[string]statistics.DailyStat{
			date: {Date: date, QuestionsAnswered: 2, CorrectAnswers: 1},
		},
	}))
	return repo
}
