package mastery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)

func TestAdvance_Levels(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		existing := &Progress{Level: level, CorrectCount: 1}

		correct := Advance(existing, true, now)
		assert.Equal(t, min(level+1, MaxLevel), correct.Level, "correct answer at level %d", level)

		wrong := Advance(existing, false, now)
		assert.Equal(t, max(level-1, MinLevel), wrong.Level, "wrong answer at level %d", level)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		existing  *Progress
		isCorrect bool
		expected  Progress
	}{
		{
			name:      "first correct answer",
			isCorrect: true,
			expected: Progress{
				Level:        1,
				CorrectCount: 1,
				LastReviewed: now,
				NextReview:   now.AddDate(0, 0, 1),
			},
		},
		{
			name:      "first wrong answer",
			isCorrect: false,
			expected: Progress{
				Level:          0,
				IncorrectCount: 1,
				LastReviewed:   now,
				NextReview:     now,
			},
		},
		{
			name:      "wrong answer at level 1 regresses to the first-wrong state",
			existing:  &Progress{Level: 1, CorrectCount: 1},
			isCorrect: false,
			expected: Progress{
				Level:          0,
				CorrectCount:   1,
				IncorrectCount: 1,
				LastReviewed:   now,
				NextReview:     now,
			},
		},
		{
			name:      "level saturates at 5",
			existing:  &Progress{Level: 5, CorrectCount: 9, IncorrectCount: 2},
			isCorrect: true,
			expected: Progress{
				Level:          5,
				CorrectCount:   10,
				IncorrectCount: 2,
				LastReviewed:   now,
				NextReview:     now.AddDate(0, 0, 30),
			},
		},
		{
			name:      "out of range level is clamped before advancing",
			existing:  &Progress{Level: 42, CorrectCount: 3},
			isCorrect: false,
			expected: Progress{
				Level:          4,
				CorrectCount:   3,
				IncorrectCount: 1,
				LastReviewed:   now,
				NextReview:     now.AddDate(0, 0, 14),
			},
		},
		{
			name:      "negative level is clamped before advancing",
			existing:  &Progress{Level: -3, IncorrectCount: 1},
			isCorrect: true,
			expected: Progress{
				Level:          1,
				CorrectCount:   1,
				IncorrectCount: 1,
				LastReviewed:   now,
				NextReview:     now.AddDate(0, 0, 1),
			},
		},
		{
			name:      "negative counters are reset to zero",
			existing:  &Progress{Level: 2, CorrectCount: -4, IncorrectCount: -1},
			isCorrect: true,
			expected: Progress{
				Level:        3,
				CorrectCount: 1,
				LastReviewed: now,
				NextReview:   now.AddDate(0, 0, 7),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.existing, tt.isCorrect, now)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAdvance_FromUnseenItem(t *testing.T) {
	first := Advance(nil, true, now)
	assert.Equal(t, 1, first.Level)
	assert.Equal(t, now.AddDate(0, 0, 1), first.NextReview)

	second := Advance(&first, true, now.AddDate(0, 0, 1))
	assert.Equal(t, 2, second.Level)
	assert.Equal(t, now.AddDate(0, 0, 4), second.NextReview)
	assert.Equal(t, 2, second.CorrectCount)
}

func TestAdvance_DoesNotModifyExisting(t *testing.T) {
	existing := &Progress{Level: 2, CorrectCount: 2, LastReviewed: now.AddDate(0, 0, -3)}
	before := *existing

	_ = Advance(existing, true, now)
	assert.Equal(t, before, *existing)
}

func TestAdvance_IntervalMatchesLevel(t *testing.T) {
	expectedDays := map[int]int{0: 0, 1: 1, 2: 3, 3: 7, 4: 14, 5: 30}

	for level := MinLevel; level <= MaxLevel; level++ {
		// A correct answer from level-1 lands exactly on level.
		existing := &Progress{Level: level - 1, CorrectCount: 1}
		if level == MinLevel {
			existing = &Progress{Level: 1, CorrectCount: 1}
		}
		got := Advance(existing, level != MinLevel, now)

		assert.Equal(t, level, got.Level)
		assert.Equal(t, time.Duration(expectedDays[level])*24*time.Hour, got.NextReview.Sub(got.LastReviewed))
	}
}

func TestAdvance_CountersSumToAnswers(t *testing.T) {
	answers := []bool{true, false, true, true, false, false, false, true, true, true, true, true}

	var p *Progress
	prevCorrect, prevIncorrect := 0, 0
	for i, isCorrect := range answers {
		next := Advance(p, isCorrect, now.AddDate(0, 0, i))
		assert.GreaterOrEqual(t, next.CorrectCount, prevCorrect)
		assert.GreaterOrEqual(t, next.IncorrectCount, prevIncorrect)
		assert.Equal(t, i+1, next.Total())
		assert.GreaterOrEqual(t, next.Level, MinLevel)
		assert.LessOrEqual(t, next.Level, MaxLevel)

		prevCorrect, prevIncorrect = next.CorrectCount, next.IncorrectCount
		p = &next
	}
	assert.Equal(t, 5, p.Level)
}

func TestClampLevel(t *testing.T) {
	tests := []struct {
		level    int
		expected int
	}{
		{level: -1, expected: 0},
		{level: 0, expected: 0},
		{level: 3, expected: 3},
		{level: 5, expected: 5},
		{level: 6, expected: 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClampLevel(tt.level))
	}
}

func TestIntervalDays(t *testing.T) {
	assert.Len(t, Intervals, 6)
	assert.Equal(t, 0, IntervalDays(-2))
	assert.Equal(t, 7, IntervalDays(3))
	assert.Equal(t, 30, IntervalDays(99))
}

func TestProgress_IsDue(t *testing.T) {
	tests := []struct {
		name       string
		nextReview time.Time
		expected   bool
	}{
		{name: "in the past", nextReview: now.Add(-time.Minute), expected: true},
		{name: "exactly now", nextReview: now, expected: true},
		{name: "in the future", nextReview: now.Add(time.Minute), expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Progress{NextReview: tt.nextReview}.IsDue(now))
		})
	}
}

func TestProgress_Accuracy(t *testing.T) {
	assert.Equal(t, 0.0, Progress{}.Accuracy())
	assert.Equal(t, 0.75, Progress{CorrectCount: 3, IncorrectCount: 1}.Accuracy())
}

func TestProgress_Stage(t *testing.T) {
	tests := []struct {
		level    int
		mastered bool
		learning bool
	}{
		{level: 0},
		{level: 1, learning: true},
		{level: 3, learning: true},
		{level: 4, mastered: true},
		{level: 5, mastered: true},
		{level: 9, mastered: true},
		{level: -2},
	}
	for _, tt := range tests {
		p := Progress{Level: tt.level}
		assert.Equal(t, tt.mastered, p.IsMastered(), "mastered at level %d", tt.level)
		assert.Equal(t, tt.learning, p.IsLearning(), "learning at level %d", tt.level)
	}
}
