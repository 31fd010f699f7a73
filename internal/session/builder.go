// Package session builds the ordered sequence of items for one quiz run.
package session

import (
	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

// UnseenWeight is the weight of an item without a progress record.
const UnseenWeight = 3

// RandomSource is the randomness a Strategy draws from.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	// IntN returns a number in [0, n).
	IntN(n int) int
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// Weight returns how strongly an item is favored in a session.
// Lower mastery means a higher weight, from 1 at MaxLevel to 6 at MinLevel.
func Weight(p *mastery.Progress) int {
	if p == nil {
		return UnseenWeight
	}
	return mastery.MaxLevel + 1 - mastery.ClampLevel(p.Level)
}

// Builder builds session orders with a Strategy.
type Builder struct {
	strategy Strategy
}

// NewBuilder creates a Builder. A nil strategy falls back to DuplicateStrategy.
func NewBuilder(strategy Strategy) Builder {
	if strategy == nil {
		strategy = DuplicateStrategy{}
	}
	return Builder{strategy: strategy}
}

// Build filters items by category and orders them by the strategy,
// favoring items with a low level in progress.
// An empty filtered set yields an empty session.
func (b Builder) Build(
	items []vocab.Item,
	progress map[vocab.Key]mastery.Progress,
	category string,
	rng RandomSource,
) []vocab.Item {
	filtered := vocab.FilterByCategory(items, category)
	if len(filtered) == 0 {
		return []vocab.Item{}
	}

	weights := make([]int, len(filtered))
	for i, item := range filtered {
		var p *mastery.Progress
		if record, ok := progress[item.Key()]; ok {
			p = &record
		}
		weights[i] = Weight(p)
	}

	strategy := b.strategy
	if strategy == nil {
		strategy = DuplicateStrategy{}
	}
	return strategy.Order(filtered, weights, rng)
}

// Shuffle permutes s in place with the Fisher-Yates algorithm.
func Shuffle[T any](s []T, rng RandomSource) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
