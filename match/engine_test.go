package match

import (
	"log/slog"
	"testing"

	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/vectorize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitOver(tenders []core.TenderRecord) *vectorize.Model {
	docs := make([]string, len(tenders))
	for i := range tenders {
		docs[i] = tenders[i].Text()
	}
	return vectorize.Fit(docs)
}

func TestNewMatcher(t *testing.T) {
	model := vectorize.Fit([]string{"computers and printers"})

	t.Run("valid configuration", func(t *testing.T) {
		matcher, err := NewMatcher(model)
		require.NoError(t, err)
		defer matcher.Close()
		assert.NotNil(t, matcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		matcher, err := NewMatcher(model, WithLogger(slog.Default()))
		require.NoError(t, err)
		defer matcher.Close()
		assert.NotNil(t, matcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		matcher, err := NewMatcher(model, WithLogger(nil))
		require.NoError(t, err)
		defer matcher.Close()
		assert.NotNil(t, matcher)
	})

	t.Run("with pool size", func(t *testing.T) {
		matcher, err := NewMatcher(model, WithPoolSize(4))
		require.NoError(t, err)
		defer matcher.Close()
		assert.NotNil(t, matcher)
	})

	t.Run("pool size below one is raised to one", func(t *testing.T) {
		matcher, err := NewMatcher(model, WithPoolSize(-3))
		require.NoError(t, err)
		defer matcher.Close()
		assert.NotNil(t, matcher)
	})

	t.Run("nil model", func(t *testing.T) {
		_, err := NewMatcher(nil)
		assert.Equal(t, ErrModelRequired, err)
	})
}

func TestMatch_ExactOverlap(t *testing.T) {
	tenders := []core.TenderRecord{
		{
			ID:          "CPPP-2025-001",
			Title:       "IT Equipment Supply",
			Description: "computers and printers",
		},
	}
	matcher, err := NewMatcher(fitOver(tenders))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("IT Equipment Supply computers and printers", tenders)

	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "CPPP-2025-001", results[0].Tender.ID)
}

func TestMatch_DisjointVocabulary(t *testing.T) {
	tenders := []core.TenderRecord{
		{ID: "GEM-2025-B-002", Title: "IoT sensors traffic management"},
	}
	matcher, err := NewMatcher(fitOver(tenders))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("organic farming irrigation subsidy", tenders)

	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
}

func TestMatch_ScoresBounded(t *testing.T) {
	tenders := []core.TenderRecord{
		{ID: "a", Title: "Supply of IT Equipment", Description: "computers printers networking"},
		{ID: "b", Title: "Data Center Maintenance", Description: "servers storage network infrastructure"},
		{ID: "c", Title: "Cloud Migration Services", Description: "legacy applications cloud security"},
	}
	matcher, err := NewMatcher(fitOver(tenders))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("network infrastructure and cloud security services", tenders)

	require.Len(t, results, 3)
	for _, result := range results {
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 1.0)
	}
	// Descending order.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestMatch_StableTieOrder(t *testing.T) {
	// Two identical tenders must tie exactly and keep their store order.
	tenders := []core.TenderRecord{
		{ID: "zebra", Title: "road construction"},
		{ID: "apple", Title: "road construction"},
		{ID: "mango", Title: "bridge painting"},
	}
	matcher, err := NewMatcher(fitOver(tenders))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("road construction", tenders)

	require.Len(t, results, 3)
	assert.Equal(t, "zebra", results[0].Tender.ID)
	assert.Equal(t, "apple", results[1].Tender.ID)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "mango", results[2].Tender.ID)
}

func TestMatch_EmptyStore(t *testing.T) {
	matcher, err := NewMatcher(vectorize.Fit(nil))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("anything", nil)
	assert.Empty(t, results)
}

func TestMatch_EmptyProfile(t *testing.T) {
	tenders := []core.TenderRecord{
		{ID: "a", Title: "Supply of IT Equipment"},
	}
	matcher, err := NewMatcher(fitOver(tenders))
	require.NoError(t, err)
	defer matcher.Close()

	results := matcher.Match("", tenders)

	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
	assert.Empty(t, FilterByScore(results, 0.05))
}

func TestMatch_StaleModelDegradesSilently(t *testing.T) {
	// Model trained on one corpus, scored against another: scores degrade
	// but stay well-typed and bounded.
	model := vectorize.Fit([]string{"IoT sensors traffic management"})
	matcher, err := NewMatcher(model)
	require.NoError(t, err)
	defer matcher.Close()

	tenders := []core.TenderRecord{
		{ID: "a", Title: "traffic management consultancy"},
		{ID: "b", Title: "organic farming subsidy"},
	}
	results := matcher.Match("traffic management", tenders)

	require.Len(t, results, 2)
	assert.Greater(t, results[0].Score, 0.0)
	assert.LessOrEqual(t, results[0].Score, 1.0)
	assert.Equal(t, "a", results[0].Tender.ID)
	assert.Zero(t, results[1].Score)
}
