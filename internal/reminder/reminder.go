// Package reminder notifies a learner once a day about items due for review.
package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/vocly/internal/learning"
	"github.com/at-ishikawa/vocly/internal/statistics"
)

//go:generate mockgen -source=reminder.go -destination=../mocks/reminder/mock_notifier.go -package=mock_reminder Notifier

// Reminder is the state of one learner on the day it is sent.
type Reminder struct {
	Learner string
	Date    string
	// Due is the number of practiced items whose next review has come.
	Due int
	// New is the number of items never answered.
	New    int
	Total  int
	Streak int
}

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

// SnapshotFinder is the part of learning.Repository a Checker needs.
type SnapshotFinder interface {
	FindSnapshot(ctx context.Context) (learning.Snapshot, error)
}

// Checker counts due items and notifies when there is something to review.
type Checker struct {
	learner  string
	repo     SnapshotFinder
	notifier Notifier
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

type CheckerOption func(*Checker)

// WithLocation sets the timezone that decides the learner's calendar day.
func WithLocation(loc *time.Location) CheckerOption {
	return func(c *Checker) {
		if loc != nil {
			c.location = loc
		}
	}
}

func WithClock(now func() time.Time) CheckerOption {
	return func(c *Checker) {
		c.now = now
	}
}

func WithLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewChecker(learner string, repo SnapshotFinder, notifier Notifier, opts ...CheckerOption) *Checker {
	c := &Checker{
		learner:  learner,
		repo:     repo,
		notifier: notifier,
		location: time.UTC,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check reads the learner's snapshot and sends a reminder unless nothing is due or new.
// sent reports whether the notifier was called.
func (c *Checker) Check(ctx context.Context) (reminder Reminder, sent bool, err error) {
	snapshot, err := c.repo.FindSnapshot(ctx)
	if err != nil {
		return Reminder{}, false, fmt.Errorf("repo.FindSnapshot() > %w", err)
	}

	now := c.now()
	reminder = Reminder{
		Learner: c.learner,
		Date:    statistics.DateKey(now, c.location),
		Total:   len(snapshot.Items),
		Streak:  statistics.StreakFromStats(snapshot.DailyStats, now, c.location),
	}
	for _, item := range snapshot.Items {
		progress, ok := snapshot.Progress[item.Key()]
		if !ok {
			reminder.New++
			continue
		}
		if progress.IsDue(now) {
			reminder.Due++
		}
	}

	if reminder.Due == 0 && reminder.New == 0 {
		c.logger.Debug("nothing to review", slog.String("learner", c.learner))
		return reminder, false, nil
	}
	if err := c.notifier.Notify(ctx, reminder); err != nil {
		return reminder, false, fmt.Errorf("notifier.Notify() > %w", err)
	}
	c.logger.Info("reminder sent",
		slog.String("learner", c.learner),
		slog.Int("due", reminder.Due),
		slog.Int("new", reminder.New))
	return reminder, true, nil
}

// ConsoleNotifier prints reminders to a terminal.
type ConsoleNotifier struct {
	writer io.Writer
	bold   *color.Color
	due    *color.Color
}

func NewConsoleNotifier(writer io.Writer) *ConsoleNotifier {
	if writer == nil {
		writer = os.Stdout
	}
	return &ConsoleNotifier{
		writer: writer,
		bold:   color.New(color.Bold),
		due:    color.New(color.FgYellow, color.Bold),
	}
}

func (n *ConsoleNotifier) Notify(_ context.Context, reminder Reminder) error {
	if _, err := n.bold.Fprintf(n.writer, "[%s] %s: ", reminder.Date, reminder.Learner); err != nil {
		return fmt.Errorf("write reminder: %w", err)
	}
	if _, err := n.due.Fprintf(n.writer, "%d due", reminder.Due); err != nil {
		return fmt.Errorf("write reminder: %w", err)
	}
	unit := "days"
	if reminder.Streak == 1 {
		unit = "day"
	}
	if _, err := fmt.Fprintf(n.writer, ", %d new of %d items. Current streak: %d %s.\n",
		reminder.New, reminder.Total, reminder.Streak, unit); err != nil {
		return fmt.Errorf("write reminder: %w", err)
	}
	return nil
}
