package match

import "github.com/poiesic/bidmatch/core"

// ClampThreshold clamps a threshold into [0,1]. Thresholds are user
// configuration; out-of-range values are a caller contract violation that
// degrades to the nearest bound rather than failing.
func ClampThreshold(threshold float64) float64 {
	if threshold < 0 {
		return 0
	}
	if threshold > 1 {
		return 1
	}
	return threshold
}

// FilterByScore retains only results scoring at or above the threshold,
// preserving the descending order of the input. Filtering is idempotent:
// re-filtering an already-filtered set at the same threshold returns an
// equal set.
func FilterByScore(results []core.MatchResult, threshold float64) []core.MatchResult {
	threshold = ClampThreshold(threshold)

	filtered := make([]core.MatchResult, 0, len(results))
	for _, result := range results {
		if result.Score >= threshold {
			filtered = append(filtered, result)
		}
	}
	return filtered
}
