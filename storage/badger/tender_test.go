package badger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []core.TenderRecord {
	return []core.TenderRecord{
		{
			ID:           "CPPP-2025-001",
			Title:        "Supply of IT Equipment for Government Offices",
			Organization: "Ministry of Electronics and IT",
			Deadline:     "2025-05-15",
			EMDAmount:    "₹150,000",
			Description:  "Supply and installation of computers, printers and networking equipment",
			Source:       core.SourceCPPP,
		},
		{
			ID:           "GEM-2025-B-001",
			Title:        "Annual Maintenance Contract for Data Center",
			Organization: "National Informatics Centre",
			Deadline:     "2025-05-10",
			EMDAmount:    "₹300,000",
			Description:  "Comprehensive maintenance of servers, storage and network infrastructure",
			Source:       core.SourceGeM,
		},
		{
			ID:           "GEM-2025-B-002",
			Title:        "Smart City IoT Infrastructure Development",
			Organization: "Smart Cities Mission",
			Deadline:     "2025-05-25",
			EMDAmount:    "₹500,000",
			Description:  "Development of IoT sensors and analytics platform for traffic management",
			Source:       core.SourceGeM,
		},
	}
}

func TestReplaceAll_AndList(t *testing.T) {
	tenderRepo, modelStore, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer func() {
		modelStore.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	records := testRecords()
	require.NoError(t, tenderRepo.ReplaceAll(ctx, records))

	listed, err := tenderRepo.ListTenders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, len(records))
	for i := range records {
		assert.Equal(t, records[i].ID, listed[i].ID, "ingest order must be preserved")
		assert.Equal(t, records[i].Title, listed[i].Title)
	}

	count, err := tenderRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(records), count)
}

func TestReplaceAll_ReplacesPreviousSnapshot(t *testing.T) {
	tenderRepo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, tenderRepo.ReplaceAll(ctx, testRecords()))
	require.NoError(t, tenderRepo.ReplaceAll(ctx, testRecords()[:1]))

	listed, err := tenderRepo.ListTenders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "CPPP-2025-001", listed[0].ID)

	// Records from the old snapshot are gone entirely.
	_, err = tenderRepo.GetTender(ctx, "GEM-2025-B-001")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestReplaceAll_DropsDuplicateIDs(t *testing.T) {
	tenderRepo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	records := []core.TenderRecord{
		{ID: "dup", Title: "first occurrence"},
		{ID: "dup", Title: "second occurrence"},
		{ID: "other", Title: "unrelated"},
	}
	require.NoError(t, tenderRepo.ReplaceAll(ctx, records))

	listed, err := tenderRepo.ListTenders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first occurrence", listed[0].Title)
}

func TestReplaceAll_BumpsGeneration(t *testing.T) {
	tenderRepo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	gen, err := tenderRepo.Generation(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, gen)

	require.NoError(t, tenderRepo.ReplaceAll(ctx, testRecords()))
	gen, err = tenderRepo.Generation(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)

	require.NoError(t, tenderRepo.ReplaceAll(ctx, nil))
	gen, err = tenderRepo.Generation(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, gen)
}

func TestReplaceAll_InvalidatesModel(t *testing.T) {
	tenderRepo, modelStore, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, modelStore.SaveModel(ctx, []byte("opaque model blob")))

	require.NoError(t, tenderRepo.ReplaceAll(ctx, testRecords()))

	_, err = modelStore.LoadModel(ctx)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestGetTender(t *testing.T) {
	tenderRepo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, tenderRepo.ReplaceAll(ctx, testRecords()))

	t.Run("existing tender", func(t *testing.T) {
		record, err := tenderRepo.GetTender(ctx, "GEM-2025-B-001")
		require.NoError(t, err)
		assert.Equal(t, "Annual Maintenance Contract for Data Center", record.Title)
		assert.Equal(t, core.SourceGeM, record.Source)
	})

	t.Run("missing tender", func(t *testing.T) {
		_, err := tenderRepo.GetTender(ctx, "no-such-id")
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})
}

func TestListTenders_EmptyStore(t *testing.T) {
	tenderRepo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	listed, err := tenderRepo.ListTenders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestReplaceAll_LargerSnapshot(t *testing.T) {
	tenderRepo, _, backend, err := NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	records := make([]core.TenderRecord, 250)
	for i := range records {
		records[i] = core.TenderRecord{
			ID:    fmt.Sprintf("T-%04d", i),
			Title: fmt.Sprintf("tender number %d", i),
		}
	}
	require.NoError(t, tenderRepo.ReplaceAll(ctx, records))

	listed, err := tenderRepo.ListTenders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 250)
	for i := range listed {
		assert.Equal(t, records[i].ID, listed[i].ID)
	}
}
