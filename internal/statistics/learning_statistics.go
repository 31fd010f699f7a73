package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

// LearningStatistics holds statistics for a time period
type LearningStatistics struct {
	Period            string // "2025-01"
	QuestionsAnswered int
	CorrectAnswers    int
	ActiveDays        int
}

// Accuracy returns the share of correct answers in the period.
func (s LearningStatistics) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}

// AggregateStatistics holds totals across all matching periods and the
// current state of the learner's items.
type AggregateStatistics struct {
	QuestionsAnswered int
	CorrectAnswers    int
	ActiveDays        int

	ItemsSeen     int
	ItemsDue      int
	ItemsLearning int
	ItemsMastered int
	// ItemsNew counts catalog items without a progress record. It is left to
	// callers that know the catalog, see CountNew.
	ItemsNew int
	// LevelCounts[level] is the number of items at that level.
	LevelCounts [mastery.MaxLevel + 1]int
}

// Accuracy returns the share of correct answers across all periods.
func (s AggregateStatistics) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}

// StatisticsResult holds both per-period and aggregate statistics
type StatisticsResult struct {
	Periods   []LearningStatistics
	Aggregate AggregateStatistics
}

// CalculateStatistics calculates monthly statistics from daily stats and the
// level distribution from progress.
// It accepts optional year and month filters (0 means no filter) that apply to
// the daily stats only. Days with an unparsable date are skipped.
func CalculateStatistics(
	progress map[vocab.Key]mastery.Progress,
	stats map[string]DailyStat,
	year, month int,
	now time.Time,
) StatisticsResult {
	periods := make(map[string]*LearningStatistics)
	var aggregate AggregateStatistics

	for key, stat := range stats {
		date := stat.Date
		if date == "" {
			date = key
		}
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			continue
		}
		if !matchesFilter(day.Year(), int(day.Month()), year, month) {
			continue
		}

		period := fmt.Sprintf("%d-%02d", day.Year(), int(day.Month()))
		data, ok := periods[period]
		if !ok {
			data = &LearningStatistics{Period: period}
			periods[period] = data
		}
		data.QuestionsAnswered += stat.QuestionsAnswered
		data.CorrectAnswers += stat.CorrectAnswers
		if stat.QuestionsAnswered > 0 {
			data.ActiveDays++
		}

		aggregate.QuestionsAnswered += stat.QuestionsAnswered
		aggregate.CorrectAnswers += stat.CorrectAnswers
		if stat.QuestionsAnswered > 0 {
			aggregate.ActiveDays++
		}
	}

	for _, p := range progress {
		aggregate.ItemsSeen++
		aggregate.LevelCounts[mastery.ClampLevel(p.Level)]++
		if p.IsDue(now) {
			aggregate.ItemsDue++
		}
		if p.IsLearning() {
			aggregate.ItemsLearning++
		}
		if p.IsMastered() {
			aggregate.ItemsMastered++
		}
	}

	return StatisticsResult{
		Periods:   sortPeriods(periods),
		Aggregate: aggregate,
	}
}

// CountNew returns how many distinct items have no progress record.
func CountNew(items []vocab.Item, progress map[vocab.Key]mastery.Progress) int {
	counted := make(map[vocab.Key]struct{}, len(items))
	for _, item := range items {
		key := item.Key()
		if _, ok := progress[key]; ok {
			continue
		}
		counted[key] = struct{}{}
	}
	return len(counted)
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}

func sortPeriods(data map[string]*LearningStatistics) []LearningStatistics {
	periods := make([]LearningStatistics, 0, len(data))
	for _, p := range data {
		periods = append(periods, *p)
	}

	// Sort by period descending (newest first)
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return periods
}
