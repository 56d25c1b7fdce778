// Package fuzzy implements weighted approximate string matching over flat
// in-memory collections.
//
// Matching is bitap-based (Wu–Manber): a match score is the fraction of
// edit operations used relative to the pattern length, so 0 is a perfect
// match and scores sort ascending. Per-field weights bias the combined
// item score toward the fields that matter.
package fuzzy

import (
	"math"
	"sort"
	"strings"
)

// Tuning defaults. Threshold 0.3 balances typo tolerance against
// precision and is relied on by recommendation ranking downstream;
// changing it changes ranking behavior across the engine.
const (
	DefaultThreshold      = 0.3
	DefaultMinMatchLength = 2
)

// epsilon replaces a perfect per-field score of 0 when combining weighted
// fields, so a perfect hit on a heavy field still outranks everything
// without collapsing the product to exactly zero.
const epsilon = 2.220446049250313e-16

// Key describes one searchable field of T.
type Key[T any] struct {
	Name   string
	Weight float64
	Value  func(T) string
}

// Match is one ranked hit.
type Match[T any] struct {
	Item  T
	Score float64
}

// Index is a searchable view over a fixed snapshot of items. Rebuild it
// when the underlying collection changes; it holds no other state.
type Index[T any] struct {
	items       []T
	keys        []Key[T]
	totalWeight float64
	threshold   float64
	minLength   int
}

// Option adjusts index tuning.
type Option[T any] func(*Index[T])

// WithThreshold overrides the match threshold: the fraction of allowed
// edit distance relative to pattern length. Higher rejects more loosely
// matching candidates.
func WithThreshold[T any](t float64) Option[T] {
	return func(ix *Index[T]) { ix.threshold = t }
}

// NewIndex builds a searchable index over items with the given weighted
// keys.
func NewIndex[T any](items []T, keys []Key[T], opts ...Option[T]) *Index[T] {
	ix := &Index[T]{
		items:     items,
		keys:      keys,
		threshold: DefaultThreshold,
		minLength: DefaultMinMatchLength,
	}
	for _, k := range keys {
		ix.totalWeight += k.Weight
	}
	for _, o := range opts {
		o(ix)
	}
	return ix
}

// Search returns all items matching query on at least one key, sorted
// ascending by score (best first). Ties preserve item insertion order.
// Queries shorter than the minimum match length return nil.
func (ix *Index[T]) Search(query string) []Match[T] {
	pattern := strings.ToLower(strings.TrimSpace(query))
	if len(pattern) < ix.minLength {
		return nil
	}

	var matches []Match[T]
	for _, item := range ix.items {
		if m, ok := ix.scoreItem(item, pattern); ok {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	return matches
}

// scoreItem combines per-key scores into one item score: the product of
// each matched key's score raised to its normalized weight. Unmatched
// keys contribute nothing; an item with no matching key is excluded.
func (ix *Index[T]) scoreItem(item T, pattern string) (Match[T], bool) {
	score := 1.0
	matched := false

	for _, key := range ix.keys {
		text := strings.ToLower(key.Value(item))
		keyScore, ok := matchText(pattern, text, ix.threshold)
		if !ok {
			continue
		}
		matched = true

		base := keyScore
		if base == 0 {
			base = epsilon
		}
		score *= math.Pow(base, key.Weight/ix.totalWeight)
	}

	if !matched {
		return Match[T]{}, false
	}
	return Match[T]{Item: item, Score: clamp01(score)}, true
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
