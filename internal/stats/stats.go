// Package stats summarizes evaluated fields: how much of the sampled
// region stayed bounded, how quickly the rest escaped, and how escape
// counts distribute across the budget.
package stats

import "github.com/san-kum/fractal/internal/field"

// BoundedFraction is the share of cells that never diverged. Over a
// region enclosing the whole set it estimates the set's area relative
// to the sampled rectangle.
func BoundedFraction(f *field.Field, budget int) float64 {
	bounded := 0
	for _, count := range f.Counts {
		if count >= budget {
			bounded++
		}
	}
	return float64(bounded) / float64(len(f.Counts))
}

// MeanEscape averages the escape count over diverged cells only.
// It returns 0 when every cell stayed bounded.
func MeanEscape(f *field.Field, budget int) float64 {
	sum, diverged := 0, 0
	for _, count := range f.Counts {
		if count < budget {
			sum += count
			diverged++
		}
	}
	if diverged == 0 {
		return 0
	}
	return float64(sum) / float64(diverged)
}

// Histogram buckets escape counts of diverged cells into bins spanning
// [0, budget). Interior cells are excluded so deep zooms don't drown
// the distribution in sentinel values.
func Histogram(f *field.Field, budget, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	hist := make([]float64, bins)
	for _, count := range f.Counts {
		if count >= budget {
			continue
		}
		idx := count * bins / budget
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx]++
	}
	return hist
}

// Summary bundles the field statistics saved alongside a run.
func Summary(f *field.Field, budget int) map[string]float64 {
	return map[string]float64{
		"bounded_fraction": BoundedFraction(f, budget),
		"mean_escape":      MeanEscape(f, budget),
	}
}
