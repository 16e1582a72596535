// Package stats computes the aggregates shown on the dashboards.
package stats

import (
	"fmt"
	"math"
)

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// Filter returns the items satisfying pred in a new slice. It never returns nil.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Percent returns part/total*100 rounded to the nearest integer, halves away
// from zero. ok is false when total is zero.
func Percent(part, total int) (int, bool) {
	if total == 0 {
		return 0, false
	}
	return int(math.Round(float64(part) / float64(total) * 100)), true
}

// PercentPtr is Percent with "no data" encoded as nil, for JSON responses.
func PercentPtr(part, total int) *int {
	p, ok := Percent(part, total)
	if !ok {
		return nil
	}
	return &p
}

// Ratio formats part and total as "part/total".
func Ratio(part, total int) string {
	return fmt.Sprintf("%d/%d", part, total)
}

// Mean returns the average of values. ok is false for an empty slice.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
