package learning

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

var ErrInvalidLearnerID = errors.New("invalid learner id")

var (
	_ Repository = (*YAMLRepository)(nil)
	_ Repository = (*DBRepository)(nil)
)

type learnerFile struct {
	Items      []vocab.Item           `yaml:"items"`
	Progress   []progressRow          `yaml:"progress"`
	DailyStats []statistics.DailyStat `yaml:"daily_stats"`
}

// YAMLRepository implements Repository on one YAML document per learner.
type YAMLRepository struct {
	mu   sync.Mutex
	path string
}

// NewYAMLRepository creates a YAMLRepository storing learnerID in directory/<learnerID>.yml.
func NewYAMLRepository(directory, learnerID string) (*YAMLRepository, error) {
	if learnerID == "" || learnerID == "." || learnerID == ".." || strings.ContainsAny(learnerID, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLearnerID, learnerID)
	}
	return &YAMLRepository{
		path: filepath.Join(directory, learnerID+yamlExtension),
	}, nil
}

// Path returns the file backing the repository.
func (r *YAMLRepository) Path() string {
	return r.path
}

func (r *YAMLRepository) load() (learnerFile, error) {
	file, err := readYamlFile[learnerFile](r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return learnerFile{}, nil
	}
	if err != nil {
		return learnerFile{}, fmt.Errorf("readYamlFile(%s) > %w", r.path, err)
	}
	return file, nil
}

func (r *YAMLRepository) save(file learnerFile) error {
	if err := writeYamlFile(r.path, file); err != nil {
		return fmt.Errorf("writeYamlFile(%s) > %w", r.path, err)
	}
	return nil
}

func (r *YAMLRepository) FindItems(ctx context.Context) ([]vocab.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return nil, err
	}
	return append([]vocab.Item{}, file.Items...), nil
}

func (r *YAMLRepository) FindProgress(ctx context.Context) (map[vocab.Key]mastery.Progress, error) {
	snapshot, err := r.FindSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Progress, nil
}

func (r *YAMLRepository) FindDailyStats(ctx context.Context) (map[string]statistics.DailyStat, error) {
	snapshot, err := r.FindSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.DailyStats, nil
}

func (r *YAMLRepository) FindSnapshot(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Items:      append([]vocab.Item{}, file.Items...),
		Progress:   make(map[vocab.Key]mastery.Progress, len(file.Progress)),
		Categories: make(map[vocab.Key]string, len(file.Progress)),
		DailyStats: make(map[string]statistics.DailyStat, len(file.DailyStats)),
	}
	for _, row := range file.Progress {
		snapshot.Progress[row.key()] = row.Progress
		snapshot.Categories[row.key()] = row.Category
	}
	for _, stat := range file.DailyStats {
		snapshot.DailyStats[stat.Date] = stat
	}
	return snapshot, nil
}

func (r *YAMLRepository) ReplaceItems(ctx context.Context, items []vocab.Item) error {
	return r.Restore(ctx, Snapshot{Items: items})
}

func (r *YAMLRepository) Restore(ctx context.Context, snapshot Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file := learnerFile{
		Items: append([]vocab.Item{}, snapshot.Items...),
	}
	for _, key := range sortedKeys(snapshot.Progress) {
		file.Progress = append(file.Progress, progressRow{
			Term:        key.Term,
			Translation: key.Translation,
			Category:    snapshot.CategoryOf(key),
			Progress:    snapshot.Progress[key],
		})
	}
	for _, date := range sortedDates(snapshot.DailyStats) {
		stat := snapshot.DailyStats[date]
		stat.Date = date
		file.DailyStats = append(file.DailyStats, stat)
	}
	return r.save(file)
}

func (r *YAMLRepository) SaveAnswer(ctx context.Context, answer Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.load()
	if err != nil {
		return err
	}

	key := answer.Item.Key()
	category := answer.Item.Category
	if category == "" {
		category = vocab.DefaultCategory
	}
	row := progressRow{
		Term:        key.Term,
		Translation: key.Translation,
		Category:    category,
		Progress:    answer.Progress,
	}
	if i := slices.IndexFunc(file.Progress, func(p progressRow) bool { return p.key() == key }); i >= 0 {
		file.Progress[i] = row
	} else {
		file.Progress = append(file.Progress, row)
	}

	if i := slices.IndexFunc(file.DailyStats, func(s statistics.DailyStat) bool { return s.Date == answer.Stat.Date }); i >= 0 {
		file.DailyStats[i] = answer.Stat
	} else {
		file.DailyStats = append(file.DailyStats, answer.Stat)
	}

	return r.save(file)
}
