// Package learning stores a learner's catalog, progress and daily statistics.
package learning

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/vocly/internal/database"
	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning Repository

// Repository is the learner-scoped store used by the quiz.
type Repository interface {
	FindItems(ctx context.Context) ([]vocab.Item, error)
	// ReplaceItems replaces the catalog and deletes the learner's progress and daily stats.
	ReplaceItems(ctx context.Context, items []vocab.Item) error
	FindProgress(ctx context.Context) (map[vocab.Key]mastery.Progress, error)
	FindDailyStats(ctx context.Context) (map[string]statistics.DailyStat, error)
	// SaveAnswer stores the progress record and the daily stat of one answer atomically.
	SaveAnswer(ctx context.Context, answer Answer) error
	FindSnapshot(ctx context.Context) (Snapshot, error)
	// Restore replaces everything stored for the learner with snapshot.
	Restore(ctx context.Context, snapshot Snapshot) error
}

const insertBatchSize = 100

// DBRepository implements Repository on MySQL, SQLite or PostgreSQL.
type DBRepository struct {
	db        *sqlx.DB
	learnerID string
	builder   sq.StatementBuilderType
}

// NewDBRepository creates a DBRepository scoped to learnerID.
func NewDBRepository(db *sqlx.DB, learnerID string) *DBRepository {
	return &DBRepository{
		db:        db,
		learnerID: learnerID,
		builder:   database.StatementBuilder(db.DriverName()),
	}
}

// FindItems returns the catalog in import order.
func (r *DBRepository) FindItems(ctx context.Context) ([]vocab.Item, error) {
	query, args, err := r.builder.
		Select("category", "term", "translation", "example").
		From("vocab_items").
		Where(sq.Eq{"learner_id": r.learnerID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	items := []vocab.Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("load vocab items: %w", err)
	}
	return items, nil
}

func (r *DBRepository) findProgressRows(ctx context.Context) ([]progressRow, error) {
	query, args, err := r.builder.
		Select("term", "translation", "category", "level", "correct_count", "incorrect_count", "last_reviewed", "next_review").
		From("vocab_progress").
		Where(sq.Eq{"learner_id": r.learnerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build progress query: %w", err)
	}

	var rows []progressRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load vocab progress: %w", err)
	}
	return rows, nil
}

// FindProgress returns the progress records keyed by item.
func (r *DBRepository) FindProgress(ctx context.Context) (map[vocab.Key]mastery.Progress, error) {
	rows, err := r.findProgressRows(ctx)
	if err != nil {
		return nil, err
	}

	progress := make(map[vocab.Key]mastery.Progress, len(rows))
	for _, row := range rows {
		progress[row.key()] = row.Progress
	}
	return progress, nil
}

// FindDailyStats returns the daily statistics keyed by date.
func (r *DBRepository) FindDailyStats(ctx context.Context) (map[string]statistics.DailyStat, error) {
	query, args, err := r.builder.
		Select("date", "questions_answered", "correct_answers").
		From("learning_stats").
		Where(sq.Eq{"learner_id": r.learnerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	var rows []statistics.DailyStat
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load learning stats: %w", err)
	}

	stats := make(map[string]statistics.DailyStat, len(rows))
	for _, row := range rows {
		stats[row.Date] = row
	}
	return stats, nil
}

// FindSnapshot returns everything stored for the learner.
func (r *DBRepository) FindSnapshot(ctx context.Context) (Snapshot, error) {
	items, err := r.FindItems(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	rows, err := r.findProgressRows(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	stats, err := r.FindDailyStats(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Items:      items,
		Progress:   make(map[vocab.Key]mastery.Progress, len(rows)),
		Categories: make(map[vocab.Key]string, len(rows)),
		DailyStats: stats,
	}
	for _, row := range rows {
		snapshot.Progress[row.key()] = row.Progress
		snapshot.Categories[row.key()] = row.Category
	}
	return snapshot, nil
}

// ReplaceItems replaces the catalog and resets the learner's progress and statistics.
func (r *DBRepository) ReplaceItems(ctx context.Context, items []vocab.Item) error {
	return r.Restore(ctx, Snapshot{Items: items})
}

// Restore replaces the learner's items, progress and statistics in one transaction.
func (r *DBRepository) Restore(ctx context.Context, snapshot Snapshot) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, table := range []string{"vocab_items", "vocab_progress", "learning_stats"} {
			if err := r.exec(ctx, tx, r.builder.Delete(table).Where(sq.Eq{"learner_id": r.learnerID})); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}

		for start := 0; start < len(snapshot.Items); start += insertBatchSize {
			end := min(start+insertBatchSize, len(snapshot.Items))
			insert := r.builder.Insert("vocab_items").
				Columns("learner_id", "category", "term", "translation", "example", "position")
			for i, item := range snapshot.Items[start:end] {
				insert = insert.Values(r.learnerID, item.Category, item.Term, item.Translation, item.Example, start+i)
			}
			if err := r.exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert vocab items: %w", err)
			}
		}

		for _, batch := range batches(sortedKeys(snapshot.Progress), insertBatchSize) {
			insert := r.builder.Insert("vocab_progress").
				Columns("learner_id", "term", "translation", "category", "level", "correct_count", "incorrect_count", "last_reviewed", "next_review")
			for _, key := range batch {
				p := snapshot.Progress[key]
				insert = insert.Values(r.learnerID, key.Term, key.Translation, snapshot.CategoryOf(key),
					p.Level, p.CorrectCount, p.IncorrectCount, p.LastReviewed.UTC(), p.NextReview.UTC())
			}
			if err := r.exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert vocab progress: %w", err)
			}
		}

		for _, batch := range batches(sortedDates(snapshot.DailyStats), insertBatchSize) {
			insert := r.builder.Insert("learning_stats").
				Columns("learner_id", "date", "questions_answered", "correct_answers")
			for _, date := range batch {
				stat := snapshot.DailyStats[date]
				insert = insert.Values(r.learnerID, date, stat.QuestionsAnswered, stat.CorrectAnswers)
			}
			if err := r.exec(ctx, tx, insert); err != nil {
				return fmt.Errorf("insert learning stats: %w", err)
			}
		}
		return nil
	})
}

// SaveAnswer upserts the progress record and the daily stat of one answer in one transaction.
func (r *DBRepository) SaveAnswer(ctx context.Context, answer Answer) error {
	key := answer.Item.Key()
	category := answer.Item.Category
	if category == "" {
		category = vocab.DefaultCategory
	}
	p := answer.Progress

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		progressKey := sq.And{
			sq.Eq{"learner_id": r.learnerID},
			sq.Eq{"term": key.Term},
			sq.Eq{"translation": key.Translation},
		}
		exists, err := r.exists(ctx, tx, "vocab_progress", progressKey)
		if err != nil {
			return fmt.Errorf("find vocab progress: %w", err)
		}
		var progress sq.Sqlizer
		if exists {
			progress = r.builder.Update("vocab_progress").
				Set("category", category).
				Set("level", p.Level).
				Set("correct_count", p.CorrectCount).
				Set("incorrect_count", p.IncorrectCount).
				Set("last_reviewed", p.LastReviewed.UTC()).
				Set("next_review", p.NextReview.UTC()).
				Where(progressKey)
		} else {
			progress = r.builder.Insert("vocab_progress").
				Columns("learner_id", "term", "translation", "category", "level", "correct_count", "incorrect_count", "last_reviewed", "next_review").
				Values(r.learnerID, key.Term, key.Translation, category, p.Level, p.CorrectCount, p.IncorrectCount, p.LastReviewed.UTC(), p.NextReview.UTC())
		}
		if err := r.exec(ctx, tx, progress); err != nil {
			return fmt.Errorf("save vocab progress: %w", err)
		}

		statKey := sq.And{
			sq.Eq{"learner_id": r.learnerID},
			sq.Eq{"date": answer.Stat.Date},
		}
		exists, err = r.exists(ctx, tx, "learning_stats", statKey)
		if err != nil {
			return fmt.Errorf("find learning stats: %w", err)
		}
		var stat sq.Sqlizer
		if exists {
			stat = r.builder.Update("learning_stats").
				Set("questions_answered", answer.Stat.QuestionsAnswered).
				Set("correct_answers", answer.Stat.CorrectAnswers).
				Where(statKey)
		} else {
			stat = r.builder.Insert("learning_stats").
				Columns("learner_id", "date", "questions_answered", "correct_answers").
				Values(r.learnerID, answer.Stat.Date, answer.Stat.QuestionsAnswered, answer.Stat.CorrectAnswers)
		}
		if err := r.exec(ctx, tx, stat); err != nil {
			return fmt.Errorf("save learning stats: %w", err)
		}
		return nil
	})
}

func (r *DBRepository) exists(ctx context.Context, tx *sqlx.Tx, table string, where sq.Sqlizer) (bool, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}
	var count int
	if err := tx.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DBRepository) exec(ctx context.Context, tx *sqlx.Tx, statement sq.Sqlizer) error {
	query, args, err := statement.ToSql()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func batches[T any](values []T, size int) [][]T {
	var result [][]T
	for start := 0; start < len(values); start += size {
		result = append(result, values[start:min(start+size, len(values))])
	}
	return result
}
