package match

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/vectorize"
)

// Matcher ranks tenders by similarity to a company profile. A Matcher is
// bound to one model snapshot; retraining produces a new model and callers
// swap in a new Matcher rather than mutating this one, so concurrent matching
// requests can share a Matcher safely.
type Matcher struct {
	model  *vectorize.Model
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithPoolSize sets the worker pool size used to project the tender corpus.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			size = 1
		}
		if m.pool != nil {
			m.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a matcher bound to the given model snapshot.
func NewMatcher(model *vectorize.Model, opts ...Option) (*Matcher, error) {
	if model == nil {
		return nil, ErrModelRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &Matcher{
		model:  model,
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return m, nil
}

// Close releases the worker pool.
func (m *Matcher) Close() {
	m.pool.Release()
}

// Match scores every tender against the profile text and returns the full
// result set ordered by descending score. Tenders with equal scores keep
// their relative store order. Scores are cosine similarities in [0,1]; a
// profile or tender with no in-vocabulary terms scores 0 against everything.
//
// Match never fails for well-formed input: an empty profile, an empty tender
// set, or a model trained on a different corpus all produce a valid (if
// degraded) result set rather than an error.
func (m *Matcher) Match(profileText string, tenders []core.TenderRecord) []core.MatchResult {
	m.logger.Debug("matching profile against tenders",
		"profileLength", len(profileText),
		"tenderCount", len(tenders),
		"vocabularySize", m.model.Dim(),
	)

	profileVec := m.model.Transform(profileText)

	scores := make([]float64, len(tenders))
	var wg sync.WaitGroup
	for i := range tenders {
		i := i
		wg.Add(1)
		err := m.pool.Submit(func() {
			defer wg.Done()
			tenderVec := m.model.Transform(tenders[i].Text())
			scores[i] = cosine(profileVec, tenderVec)
		})
		if err != nil {
			// Pool rejected the task (released or overloaded); project inline.
			tenderVec := m.model.Transform(tenders[i].Text())
			scores[i] = cosine(profileVec, tenderVec)
			wg.Done()
		}
	}
	wg.Wait()

	results := make([]core.MatchResult, len(tenders))
	for i, tender := range tenders {
		results[i] = core.MatchResult{Tender: tender, Score: scores[i]}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// cosine computes the cosine similarity of two L2-normalized vectors. Since
// both inputs are already unit length (or all-zero), this is a plain dot
// product; a zero vector on either side yields 0 without any division.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	// Guard against floating-point drift above 1.
	if dot > 1 {
		return 1
	}
	if dot < 0 {
		return 0
	}
	return dot
}
