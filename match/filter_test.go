package match

import (
	"testing"

	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultsWithScores(scores ...float64) []core.MatchResult {
	results := make([]core.MatchResult, len(scores))
	for i, score := range scores {
		results[i] = core.MatchResult{
			Tender: core.TenderRecord{ID: string(rune('a' + i))},
			Score:  score,
		}
	}
	return results
}

func TestFilterByScore_ThresholdBoundary(t *testing.T) {
	results := resultsWithScores(0.8, 0.3, 0.3)

	atBoundary := FilterByScore(results, 0.3)
	require.Len(t, atBoundary, 3)
	assert.Equal(t, "a", atBoundary[0].Tender.ID)
	assert.Equal(t, "b", atBoundary[1].Tender.ID)
	assert.Equal(t, "c", atBoundary[2].Tender.ID)

	aboveBoundary := FilterByScore(results, 0.31)
	require.Len(t, aboveBoundary, 1)
	assert.Equal(t, "a", aboveBoundary[0].Tender.ID)
}

func TestFilterByScore_Idempotent(t *testing.T) {
	results := resultsWithScores(0.9, 0.5, 0.2, 0.0)

	once := FilterByScore(results, 0.4)
	twice := FilterByScore(once, 0.4)

	assert.Equal(t, once, twice)
}

func TestFilterByScore_ZeroThresholdKeepsAll(t *testing.T) {
	results := resultsWithScores(0.9, 0.0)

	kept := FilterByScore(results, 0)
	assert.Len(t, kept, 2)
}

func TestFilterByScore_ClampsThreshold(t *testing.T) {
	results := resultsWithScores(0.9, 0.5)

	assert.Len(t, FilterByScore(results, -3), 2)
	assert.Empty(t, FilterByScore(results, 1.5))

	// A perfect score survives a clamped over-range threshold.
	perfect := resultsWithScores(1.0)
	assert.Len(t, FilterByScore(perfect, 7), 1)
}

func TestClampThreshold(t *testing.T) {
	assert.Equal(t, 0.0, ClampThreshold(-0.1))
	assert.Equal(t, 1.0, ClampThreshold(1.1))
	assert.Equal(t, 0.35, ClampThreshold(0.35))
}

func TestFilterByScore_EndToEnd(t *testing.T) {
	tenders := []core.TenderRecord{
		{ID: "it", Title: "Supply of IT Equipment", Description: "computers and printers"},
		{ID: "iot", Title: "Smart City IoT Infrastructure", Description: "sensors analytics traffic"},
	}
	matcher, err := NewMatcher(vectorize.Fit([]string{tenders[0].Text(), tenders[1].Text()}))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("computers printers equipment supply", tenders)
	filtered := FilterByScore(results, 0.3)

	require.NotEmpty(t, filtered)
	assert.Equal(t, "it", filtered[0].Tender.ID)
	for _, result := range filtered {
		assert.GreaterOrEqual(t, result.Score, 0.3)
	}
}
