package session

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/at-ishikawa/vocly/internal/vocab"
)

// Strategy names accepted by StrategyByName.
const (
	StrategyDuplicate = "duplicate"
	StrategyWeighted  = "weighted"
)

// ErrUnknownStrategy is returned by StrategyByName for an unknown name.
var ErrUnknownStrategy = errors.New("unknown session strategy")

// Strategy turns weighted items into a session order.
// weights[i] is the weight of items[i] and is at least 1.
type Strategy interface {
	Order(items []vocab.Item, weights []int, rng RandomSource) []vocab.Item
}

// StrategyByName returns the strategy registered under name.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", StrategyDuplicate:
		return DuplicateStrategy{}, nil
	case StrategyWeighted:
		return WeightedStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %q (valid values are %q or %q)", ErrUnknownStrategy, name, StrategyDuplicate, StrategyWeighted)
}

// DuplicateStrategy repeats every item weight times and shuffles the result.
// The session length is the sum of the weights, and an item may appear next
// to itself.
type DuplicateStrategy struct{}

func (DuplicateStrategy) Order(items []vocab.Item, weights []int, rng RandomSource) []vocab.Item {
	total := 0
	for _, w := range weights {
		total += w
	}

	ordered := make([]vocab.Item, 0, total)
	for i, item := range items {
		for range weights[i] {
			ordered = append(ordered, item)
		}
	}
	Shuffle(ordered, rng)
	return ordered
}

// WeightedStrategy draws every item once, without replacement, with
// probability proportional to its weight (Efraimidis-Spirakis). Items with a
// higher weight tend to come first.
type WeightedStrategy struct{}

func (WeightedStrategy) Order(items []vocab.Item, weights []int, rng RandomSource) []vocab.Item {
	type keyed struct {
		item vocab.Item
		key  float64
	}

	drawn := make([]keyed, len(items))
	for i, item := range items {
		w := float64(max(weights[i], 1))
		drawn[i] = keyed{item: item, key: math.Pow(rng.Float64(), 1/w)}
	}
	sort.SliceStable(drawn, func(i, j int) bool {
		return drawn[i].key > drawn[j].key
	})

	ordered := make([]vocab.Item, len(drawn))
	for i, d := range drawn {
		ordered[i] = d.item
	}
	return ordered
}
