package storage

import (
	"context"

	"github.com/poiesic/bidmatch/core"
)

// TenderRepository provides operations for managing the tender store
// snapshot. Implementations must be thread-safe.
type TenderRepository interface {
	// ReplaceAll atomically replaces the entire tender snapshot with the
	// given records, preserving their order. Records with a duplicate ID
	// are dropped (first occurrence wins). Bumps the store generation and
	// invalidates any cached vocabulary model.
	ReplaceAll(ctx context.Context, records []core.TenderRecord) error

	// GetTender retrieves a single tender by ID.
	// Returns ErrNotFound if the tender doesn't exist.
	GetTender(ctx context.Context, id string) (*core.TenderRecord, error)

	// ListTenders returns the full snapshot in ingest order.
	// An empty store yields an empty slice, not an error.
	ListTenders(ctx context.Context) ([]core.TenderRecord, error)

	// Count returns the number of tenders in the snapshot.
	Count(ctx context.Context) (int, error)

	// Generation returns the store generation, bumped by every ReplaceAll.
	// A fresh store has generation 0.
	Generation(ctx context.Context) (uint64, error)

	// Close releases resources held by the repository.
	Close() error
}

// ModelStore persists the trained vocabulary model as an opaque binary blob.
// The store never inspects the blob beyond moving its bytes.
type ModelStore interface {
	// LoadModel returns the persisted model blob.
	// Returns ErrNotFound when no model is stored or it was invalidated;
	// the caller is expected to retrain and SaveModel.
	LoadModel(ctx context.Context) ([]byte, error)

	// SaveModel persists a model blob, replacing any previous one.
	SaveModel(ctx context.Context, blob []byte) error

	// Invalidate removes the persisted model. Idempotent.
	Invalidate(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
