package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/bidmatch/acquire"
	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/storage"
)

// Pipeline orchestrates fetching tender listings from portal sources
// and replacing the stored snapshot.
type Pipeline struct {
	tenderRepository storage.TenderRepository
	sources          []acquire.Source
	fetchPool        *ants.Pool
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent fetches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.fetchPool != nil {
			p.fetchPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.fetchPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a refresh pipeline over the given sources.
func NewPipeline(tenderRepository storage.TenderRepository, sources []acquire.Source, opts ...Option) (*Pipeline, error) {
	if tenderRepository == nil {
		return nil, ErrTenderRepositoryRequired
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		tenderRepository: tenderRepository,
		sources:          sources,
		fetchPool:        pool,
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Refresh fetches every source, normalizes the results and replaces
// the stored tender snapshot. It returns the number of records stored.
//
// Source failures are logged and tolerated. Refresh fails only when
// every source fails, or when the snapshot write fails. Records are
// stored in source declaration order, with records from earlier
// sources first.
func (p *Pipeline) Refresh(ctx context.Context) (int, error) {
	fetched := make([][]core.TenderRecord, len(p.sources))
	fetchErrs := make([]error, len(p.sources))

	var wg sync.WaitGroup
	for i, source := range p.sources {
		wg.Add(1)
		i, source := i, source
		task := func() {
			defer wg.Done()
			records, err := source.Fetch(ctx)
			if err != nil {
				fetchErrs[i] = err
				return
			}
			fetched[i] = records
		}
		if err := p.fetchPool.Submit(task); err != nil {
			// Pool unavailable, fetch inline.
			task()
		}
	}
	wg.Wait()

	failures := 0
	for i, err := range fetchErrs {
		if err != nil {
			failures++
			p.logger.Warn("source fetch failed", "source", p.sources[i].Name(), "err", err)
		}
	}
	if failures == len(p.sources) {
		return 0, ErrAllSourcesFailed
	}

	records := p.normalize(fetched)

	if err := p.tenderRepository.ReplaceAll(ctx, records); err != nil {
		return 0, err
	}

	p.logger.Info("tender snapshot refreshed",
		"tenders", len(records),
		"sources", len(p.sources),
		"failed_sources", failures)
	return len(records), nil
}

// normalize flattens fetched listings into a single deduplicated slice
// in source order. Invalid records are dropped with a warning; when
// two sources report the same tender ID the first occurrence wins.
func (p *Pipeline) normalize(fetched [][]core.TenderRecord) []core.TenderRecord {
	var records []core.TenderRecord
	seen := make(map[string]struct{})

	for i, batch := range fetched {
		for _, record := range batch {
			core.NormalizeTenderRecord(&record)
			if err := core.ValidateTenderRecord(&record); err != nil {
				p.logger.Warn("dropping invalid tender record",
					"source", p.sources[i].Name(), "id", record.ID, "err", err)
				continue
			}
			if _, dup := seen[record.ID]; dup {
				p.logger.Warn("dropping duplicate tender record",
					"source", p.sources[i].Name(), "id", record.ID)
				continue
			}
			seen[record.ID] = struct{}{}
			records = append(records, record)
		}
	}

	return records
}

// Release releases the fetch worker pool. The pipeline should not be
// used after calling Release.
func (p *Pipeline) Release() {
	if p.fetchPool != nil {
		p.fetchPool.Release()
	}
}
