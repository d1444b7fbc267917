package greenops

import (
	"math"
	"sort"
)

// Nearest returns up to n comparisons closest to target, nearest first.
// Comparisons at equal distance keep their input order. Only comparisons of
// the given kind are considered unless kind is empty. n <= 0 returns all
// candidates.
func Nearest(comparisons []Comparison, target float64, kind string, n int) []Comparison {
	candidates := make([]Comparison, 0, len(comparisons))
	for _, c := range comparisons {
		if kind == "" || c.Kind == kind {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].Value-target) < math.Abs(candidates[j].Value-target)
	})

	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// Ratio returns value / reference, or 0 when reference is zero.
// It is used for "N times the population of Norway" style statements.
func Ratio(value, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return value / reference
}
