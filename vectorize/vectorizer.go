package vectorize

import (
	"math"
	"sort"
)

// DefaultMaxFeatures is the vocabulary size cap. Terms beyond the cap are
// dropped, lowest corpus frequency first.
const DefaultMaxFeatures = 5000

// Model is a trained weighted-term vocabulary. It is immutable after Fit;
// retraining produces a new Model rather than mutating an existing one, so a
// Model may be shared across concurrent matching requests.
//
// A Model is only meaningful relative to the corpus snapshot it was trained
// on. Generation records that snapshot's store generation; projecting text
// from a different corpus still works (the dimensionality is fixed) but the
// scores degrade semantically rather than erroring.
type Model struct {
	Terms      []string  // vocabulary, sorted ascending
	IDF        []float64 // learned weight per term, parallel to Terms
	DocCount   int       // number of documents the model was trained on
	Generation uint64    // store generation of the training snapshot

	index map[string]int // term -> coordinate, rebuilt from Terms
}

// FitOption configures training.
type FitOption func(*fitOptions)

type fitOptions struct {
	maxFeatures int
}

// WithMaxFeatures overrides the vocabulary size cap.
// Values below 1 fall back to DefaultMaxFeatures.
func WithMaxFeatures(n int) FitOption {
	return func(o *fitOptions) {
		if n >= 1 {
			o.maxFeatures = n
		}
	}
}

// Fit trains a vocabulary model over the corpus. Each document is the
// combined title and description of one tender; order matters only for
// reproducibility, not for the learned weights.
//
// Term selection keeps the maxFeatures most frequent terms across the corpus
// (ties broken alphabetically), mirroring the usual max_features behavior of
// TF-IDF vectorizers. Weights use the smoothed inverse document frequency
//
//	idf = ln((1 + N) / (1 + df)) + 1
//
// so that a term present in every document still carries a small positive
// weight and a single-document corpus does not degenerate to the zero vector.
//
// An empty corpus yields a model with an empty vocabulary; every later
// projection is then all-zero and all similarity scores are 0.
func Fit(docs []string, opts ...FitOption) *Model {
	options := fitOptions{maxFeatures: DefaultMaxFeatures}
	for _, opt := range opts {
		opt(&options)
	}

	termCounts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		terms := analyze(doc)
		seen := make(map[string]bool, len(terms))
		for _, term := range terms {
			termCounts[term]++
			if !seen[term] {
				docFreq[term]++
				seen[term] = true
			}
		}
	}

	// Cap the vocabulary: most frequent first, ties alphabetical. Sorting
	// is what keeps training deterministic for identical corpora.
	selected := make([]string, 0, len(termCounts))
	for term := range termCounts {
		selected = append(selected, term)
	}
	sort.Slice(selected, func(i, j int) bool {
		ci, cj := termCounts[selected[i]], termCounts[selected[j]]
		if ci != cj {
			return ci > cj
		}
		return selected[i] < selected[j]
	})
	if len(selected) > options.maxFeatures {
		selected = selected[:options.maxFeatures]
	}
	sort.Strings(selected)

	model := &Model{
		Terms:    selected,
		IDF:      make([]float64, len(selected)),
		DocCount: len(docs),
	}
	n := float64(len(docs))
	for i, term := range selected {
		model.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	model.buildIndex()
	return model
}

// SetGeneration returns a copy of the model tagged with the given store
// generation. The model itself stays immutable.
func (m *Model) SetGeneration(gen uint64) *Model {
	tagged := *m
	tagged.Generation = gen
	return &tagged
}

// Dim returns the vector space dimensionality (= vocabulary size).
func (m *Model) Dim() int {
	return len(m.Terms)
}

// Transform projects text into the model's vector space. Each coordinate is
// the term's frequency in the text multiplied by its learned weight; the
// whole vector is L2-normalized. Out-of-vocabulary terms contribute nothing.
// Text with no in-vocabulary terms projects to the all-zero vector.
func (m *Model) Transform(text string) []float64 {
	vec := make([]float64, len(m.Terms))
	if len(m.Terms) == 0 {
		return vec
	}

	counts := make(map[int]int)
	for _, term := range analyze(text) {
		if i, ok := m.index[term]; ok {
			counts[i]++
		}
	}

	var sumSquares float64
	for i, count := range counts {
		w := float64(count) * m.IDF[i]
		vec[i] = w
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return vec
	}
	norm := math.Sqrt(sumSquares)
	for i := range counts {
		vec[i] /= norm
	}
	return vec
}

// TransformAll projects a batch of texts, one vector per input, preserving
// order. This is the on-demand vector index over the tender corpus: cheap to
// recompute per matching request, never persisted.
func (m *Model) TransformAll(texts []string) [][]float64 {
	vecs := make([][]float64, len(texts))
	for i, text := range texts {
		vecs[i] = m.Transform(text)
	}
	return vecs
}

func (m *Model) buildIndex() {
	m.index = make(map[string]int, len(m.Terms))
	for i, term := range m.Terms {
		m.index[term] = i
	}
}
