package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/bidmatch/acquire"
	"github.com/poiesic/bidmatch/core"
	badgerstore "github.com/poiesic/bidmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct {
	name string
}

func (s *failingSource) Name() string { return s.name }

func (s *failingSource) Fetch(_ context.Context) ([]core.TenderRecord, error) {
	return nil, errors.New("portal unreachable")
}

func newTestPipeline(t *testing.T, sources ...acquire.Source) (*Pipeline, *badgerstore.Backend) {
	t.Helper()
	tenderRepo, modelStore, backend, err := badgerstore.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() {
		modelStore.Close()
		tenderRepo.Close()
		backend.Close()
	})

	pipeline, err := NewPipeline(tenderRepo, sources)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)
	return pipeline, backend
}

func TestNewPipeline_Validation(t *testing.T) {
	source := acquire.NewStaticSource("fixture", nil)

	_, err := NewPipeline(nil, []acquire.Source{source})
	assert.ErrorIs(t, err, ErrTenderRepositoryRequired)

	tenderRepo, _, backend, err := badgerstore.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewPipeline(tenderRepo, nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestRefresh_StoresInSourceOrder(t *testing.T) {
	first := acquire.NewStaticSource("first", []core.TenderRecord{
		{ID: "a-1", Title: "network upgrade", Source: core.SourceCPPP},
		{ID: "a-2", Title: "server procurement", Source: core.SourceCPPP},
	})
	second := acquire.NewStaticSource("second", []core.TenderRecord{
		{ID: "b-1", Title: "road works", Source: core.SourceGeM},
	})

	pipeline, _ := newTestPipeline(t, first, second)

	count, err := pipeline.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	stored, err := pipeline.tenderRepository.ListTenders(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "a-1", stored[0].ID)
	assert.Equal(t, "a-2", stored[1].ID)
	assert.Equal(t, "b-1", stored[2].ID)
}

func TestRefresh_NormalizesRecords(t *testing.T) {
	source := acquire.NewStaticSource("fixture", []core.TenderRecord{
		{Title: "  Flood Control Works  ", Organization: "Water Board", Source: core.SourceCPPP},
	})

	pipeline, _ := newTestPipeline(t, source)

	_, err := pipeline.Refresh(context.Background())
	require.NoError(t, err)

	stored, err := pipeline.tenderRepository.ListTenders(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Flood Control Works", stored[0].Title)
	assert.NotEmpty(t, stored[0].ID, "ID synthesized from content")
	assert.Equal(t, core.DeadlineUnknown, stored[0].Deadline)
	assert.False(t, stored[0].FetchedAt.IsZero())
}

func TestRefresh_DropsDuplicatesAcrossSources(t *testing.T) {
	first := acquire.NewStaticSource("first", []core.TenderRecord{
		{ID: "shared", Title: "original listing", Source: core.SourceCPPP},
	})
	second := acquire.NewStaticSource("second", []core.TenderRecord{
		{ID: "shared", Title: "relisted elsewhere", Source: core.SourceGeM},
	})

	pipeline, _ := newTestPipeline(t, first, second)

	count, err := pipeline.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := pipeline.tenderRepository.ListTenders(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "original listing", stored[0].Title)
}

func TestRefresh_ToleratesPartialFailure(t *testing.T) {
	healthy := acquire.NewStaticSource("healthy", []core.TenderRecord{
		{ID: "ok-1", Title: "bridge inspection", Source: core.SourceCPPP},
	})

	pipeline, _ := newTestPipeline(t, &failingSource{name: "down"}, healthy)

	count, err := pipeline.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRefresh_AllSourcesFailed(t *testing.T) {
	pipeline, _ := newTestPipeline(t, &failingSource{name: "one"}, &failingSource{name: "two"})

	_, err := pipeline.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrAllSourcesFailed)

	// A failed refresh must not touch the stored snapshot.
	gen, err := pipeline.tenderRepository.Generation(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, gen)
}

func TestRefresh_EmptySourcesReplaceSnapshot(t *testing.T) {
	empty := acquire.NewStaticSource("empty", nil)
	pipeline, _ := newTestPipeline(t, empty)

	count, err := pipeline.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	gen, err := pipeline.tenderRepository.Generation(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)
}
