// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bidmatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/poiesic/bidmatch/acquire"
	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/ingestion"
	"github.com/poiesic/bidmatch/match"
	"github.com/poiesic/bidmatch/storage"
	"github.com/poiesic/bidmatch/storage/badger"
	"github.com/poiesic/bidmatch/vectorize"
)

// Tracker is the top-level entry point. It owns the tender store, the
// refresh pipeline and the trained vocabulary model, and keeps the
// model consistent with the stored snapshot.
type Tracker struct {
	backend    *badger.Backend
	tenderRepo storage.TenderRepository
	modelStore storage.ModelStore
	pipeline   *ingestion.Pipeline
	logger     *slog.Logger

	maxFeatures int

	// mu serializes model training and matcher replacement.
	mu      sync.Mutex
	model   *vectorize.Model
	matcher *match.Matcher
}

// TrackerOption configures a Tracker.
type TrackerOption func(*trackerOptions)

type trackerOptions struct {
	inMemory    bool
	sources     []acquire.Source
	maxFeatures int
	logger      *slog.Logger
}

// WithInMemory runs the tracker without persistence. Intended for
// tests and ephemeral runs.
func WithInMemory() TrackerOption {
	return func(o *trackerOptions) {
		o.inMemory = true
	}
}

// WithSources replaces the default CPPP and GeM portal sources.
func WithSources(sources ...acquire.Source) TrackerOption {
	return func(o *trackerOptions) {
		o.sources = sources
	}
}

// WithMaxFeatures caps the trained vocabulary size.
// Default is vectorize.DefaultMaxFeatures.
func WithMaxFeatures(n int) TrackerOption {
	return func(o *trackerOptions) {
		if n > 0 {
			o.maxFeatures = n
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) TrackerOption {
	return func(o *trackerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewTracker opens the tender store at filePath and wires the refresh
// pipeline over the configured sources.
func NewTracker(filePath string, opts ...TrackerOption) (*Tracker, error) {
	options := &trackerOptions{
		maxFeatures: vectorize.DefaultMaxFeatures,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if len(options.sources) == 0 {
		cppp, err := acquire.NewCPPPSource(acquire.WithSourceLogger(options.logger))
		if err != nil {
			return nil, err
		}
		gem, err := acquire.NewGeMSource(acquire.WithSourceLogger(options.logger))
		if err != nil {
			return nil, err
		}
		options.sources = []acquire.Source{cppp, gem}
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	tenderRepo, err := badger.NewTenderRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	modelStore, err := badger.NewModelStore(backend)
	if err != nil {
		tenderRepo.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := ingestion.NewPipeline(tenderRepo, options.sources,
		ingestion.WithLogger(options.logger))
	if err != nil {
		modelStore.Close()
		tenderRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Tracker{
		backend:     backend,
		tenderRepo:  tenderRepo,
		modelStore:  modelStore,
		pipeline:    pipeline,
		logger:      options.logger,
		maxFeatures: options.maxFeatures,
	}, nil
}

// Refresh fetches all sources and replaces the stored tender
// snapshot. The vocabulary model is invalidated by the snapshot swap
// and retrained lazily on the next Match or Model call.
func (t *Tracker) Refresh(ctx context.Context) (int, error) {
	count, err := t.pipeline.Refresh(ctx)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	t.dropMatcherLocked()
	t.mu.Unlock()

	return count, nil
}

// Tenders returns the stored snapshot in ingest order.
func (t *Tracker) Tenders(ctx context.Context) ([]core.TenderRecord, error) {
	return t.tenderRepo.ListTenders(ctx)
}

// Model returns the vocabulary model for the current snapshot,
// training and persisting it when absent or stale.
func (t *Tracker) Model(ctx context.Context) (*vectorize.Model, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	model, err := t.modelLocked(ctx)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Match scores the stored tenders against a company profile and
// returns results at or above the threshold, best first. Ties keep
// store order.
func (t *Tracker) Match(ctx context.Context, profileText string, threshold float64) ([]core.MatchResult, error) {
	tenders, err := t.tenderRepo.ListTenders(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.modelLocked(ctx); err != nil {
		return nil, err
	}

	results := t.matcher.Match(profileText, tenders)
	return match.FilterByScore(results, match.ClampThreshold(threshold)), nil
}

// modelLocked returns the cached model, reloading or retraining it
// when it does not match the store generation. Caller holds t.mu.
func (t *Tracker) modelLocked(ctx context.Context) (*vectorize.Model, error) {
	generation, err := t.tenderRepo.Generation(ctx)
	if err != nil {
		return nil, err
	}

	if t.model != nil && t.model.Generation == generation {
		return t.model, nil
	}

	model, err := t.loadModel(ctx, generation)
	if err != nil {
		return nil, err
	}
	if model == nil {
		model, err = t.trainModel(ctx, generation)
		if err != nil {
			return nil, err
		}
	}

	matcher, err := match.NewMatcher(model, match.WithLogger(t.logger))
	if err != nil {
		return nil, err
	}

	t.dropMatcherLocked()
	t.model = model
	t.matcher = matcher
	return model, nil
}

// loadModel returns the persisted model when it matches the store
// generation, nil when absent or stale.
func (t *Tracker) loadModel(ctx context.Context, generation uint64) (*vectorize.Model, error) {
	blob, err := t.modelStore.LoadModel(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	model, err := vectorize.UnmarshalModel(blob)
	if err != nil {
		t.logger.Warn("discarding unreadable persisted model", "err", err)
		return nil, nil
	}
	if model.Generation != generation {
		t.logger.Info("persisted model is stale, retraining",
			"model_generation", model.Generation, "store_generation", generation)
		return nil, nil
	}
	return model, nil
}

func (t *Tracker) trainModel(ctx context.Context, generation uint64) (*vectorize.Model, error) {
	tenders, err := t.tenderRepo.ListTenders(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]string, len(tenders))
	for i, tender := range tenders {
		docs[i] = tender.Text()
	}

	model := vectorize.Fit(docs, vectorize.WithMaxFeatures(t.maxFeatures)).
		SetGeneration(generation)

	if err := t.modelStore.SaveModel(ctx, vectorize.MarshalModel(model)); err != nil {
		return nil, err
	}

	t.logger.Info("trained vocabulary model",
		"documents", model.DocCount, "terms", model.Dim(), "generation", generation)
	return model, nil
}

func (t *Tracker) dropMatcherLocked() {
	if t.matcher != nil {
		t.matcher.Close()
	}
	t.matcher = nil
	t.model = nil
}

// Close releases the pipeline, matcher and storage.
func (t *Tracker) Close() error {
	t.pipeline.Release()

	t.mu.Lock()
	t.dropMatcherLocked()
	t.mu.Unlock()

	if err := t.modelStore.Close(); err != nil {
		t.logger.Error("error closing model store", "err", err)
		return err
	}
	if err := t.tenderRepo.Close(); err != nil {
		t.logger.Error("error closing tender repository", "err", err)
		return err
	}
	if err := t.backend.Close(); err != nil {
		t.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
