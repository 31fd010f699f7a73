// Package quiz records answers against a learner's progress and builds quiz sessions.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/vocly/internal/learning"
	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/session"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the timezone that decides which calendar day an answer belongs to.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service holds a snapshot of one learner's data and keeps it in sync with the repository.
type Service struct {
	repo     learning.Repository
	now      func() time.Time
	location *time.Location
	logger   *slog.Logger

	mu           sync.Mutex
	items        []vocab.Item
	defaultItems bool
	progress     map[vocab.Key]mastery.Progress
	dailyStats   map[string]statistics.DailyStat
}

func NewService(repo learning.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		now:        time.Now,
		location:   time.UTC,
		logger:     slog.Default(),
		progress:   map[vocab.Key]mastery.Progress{},
		dailyStats: map[string]statistics.DailyStat{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the snapshot with the repository contents.
// A learner without any items gets vocab.DefaultItems.
func (s *Service) Load(ctx context.Context) error {
	items, err := s.repo.FindItems(ctx)
	if err != nil {
		return fmt.Errorf("repo.FindItems() > %w", err)
	}
	progress, err := s.repo.FindProgress(ctx)
	if err != nil {
		return fmt.Errorf("repo.FindProgress() > %w", err)
	}
	dailyStats, err := s.repo.FindDailyStats(ctx)
	if err != nil {
		return fmt.Errorf("repo.FindDailyStats() > %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.defaultItems = len(items) == 0
	if s.defaultItems {
		items = vocab.DefaultItems()
	}
	if progress == nil {
		progress = map[vocab.Key]mastery.Progress{}
	}
	if dailyStats == nil {
		dailyStats = map[string]statistics.DailyStat{}
	}
	s.items = items
	s.progress = progress
	s.dailyStats = dailyStats

	s.logger.Debug("loaded learner data",
		slog.Int("items", len(items)),
		slog.Bool("default_items", s.defaultItems),
		slog.Int("progress", len(progress)),
		slog.Int("daily_stats", len(dailyStats)))
	return nil
}

// RecordAnswer advances the progress of item and today's statistics, persists both,
// and only then updates the snapshot. Calls are serialized.
func (s *Service) RecordAnswer(ctx context.Context, item vocab.Item, isCorrect bool) (mastery.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := item.Key()

	var existing *mastery.Progress
	if record, ok := s.progress[key]; ok {
		existing = &record
	}
	progress := mastery.Advance(existing, isCorrect, now)

	date := statistics.DateKey(now, s.location)
	var existingStat *statistics.DailyStat
	if stat, ok := s.dailyStats[date]; ok {
		existingStat = &stat
	}
	stat := statistics.RecordAnswer(existingStat, date, isCorrect)

	if err := s.repo.SaveAnswer(ctx, learning.Answer{
		Item:     item,
		Progress: progress,
		Stat:     stat,
	}); err != nil {
		return mastery.Progress{}, fmt.Errorf("repo.SaveAnswer(%s) > %w", key, err)
	}

	s.progress[key] = progress
	s.dailyStats[date] = stat

	s.logger.Debug("recorded answer",
		slog.String("item", key.String()),
		slog.Bool("correct", isCorrect),
		slog.Int("level", progress.Level),
		slog.Time("next_review", progress.NextReview))
	return progress, nil
}

// BuildSession builds a session over the current snapshot.
func (s *Service) BuildSession(category string, builder session.Builder, rng session.RandomSource) *session.Session {
	s.mu.Lock()
	items := builder.Build(s.items, s.progress, category, rng)
	s.mu.Unlock()

	return session.NewSession(items)
}

// Run is one pass through a session.
type Run struct {
	ID       string
	Category string
	Session  *session.Session
	Score    Score
}

func (s *Service) StartRun(category string, builder session.Builder, rng session.RandomSource) *Run {
	run := &Run{
		ID:       uuid.NewString(),
		Category: category,
		Session:  s.BuildSession(category, builder, rng),
	}
	s.logger.Info("quiz run started",
		slog.String("run_id", run.ID),
		slog.String("category", category),
		slog.Int("questions", run.Session.Len()))
	return run
}

// Streak returns the number of consecutive active days ending today.
func (s *Service) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statistics.StreakFromStats(s.dailyStats, s.now(), s.location)
}

// Today returns today's statistics, zero valued before the first answer.
func (s *Service) Today() statistics.DailyStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := statistics.DateKey(s.now(), s.location)
	if stat, ok := s.dailyStats[date]; ok {
		return stat
	}
	return statistics.DailyStat{Date: date}
}

func (s *Service) Items() []vocab.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]vocab.Item{}, s.items...)
}

// UsesDefaultItems reports whether the learner has not imported a catalog yet.
func (s *Service) UsesDefaultItems() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultItems
}

func (s *Service) Progress() map[vocab.Key]mastery.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.progress)
}

func (s *Service) DailyStats() map[string]statistics.DailyStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.dailyStats)
}

// Statistics summarizes the snapshot; zero year or month means no filter.
func (s *Service) Statistics(year, month int) statistics.StatisticsResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := statistics.CalculateStatistics(s.progress, s.dailyStats, year, month, s.now())
	result.Aggregate.ItemsNew = statistics.CountNew(s.items, s.progress)
	return result
}

// Location returns the time zone that dates are reported in.
func (s *Service) Location() *time.Location {
	return s.location
}

// Score counts the answers of one run.
type Score struct {
	Correct int
	Total   int
}

func (s *Score) Record(isCorrect bool) {
	s.Total++
	if isCorrect {
		s.Correct++
	}
}

// Percent returns the rounded share of correct answers, 0 without answers.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) * 100 / float64(s.Total)))
}
