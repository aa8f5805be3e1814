package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/bidmatch/storage"
)

// ModelStore implements storage.ModelStore for BadgerDB. The model blob is
// opaque at this layer; only the vectorize package knows its layout.
type ModelStore struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ModelStore = (*ModelStore)(nil)

// NewModelStore creates a new ModelStore.
func NewModelStore(backend *Backend) (*ModelStore, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &ModelStore{
		backend: backend,
		logger:  slog.Default(),
	}, nil
}

// Close implements storage.ModelStore. The underlying backend is shared and
// closed separately.
func (s *ModelStore) Close() error {
	return nil
}

// LoadModel returns the persisted model blob, or storage.ErrNotFound when
// absent or invalidated.
func (s *ModelStore) LoadModel(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(modelKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// SaveModel persists a model blob, replacing any previous one.
func (s *ModelStore) SaveModel(ctx context.Context, blob []byte) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(modelKey), blob); err != nil {
			return err
		}
		s.logger.Debug("vocabulary model persisted", "bytes", len(blob))
		return tx.Commit()
	}, true)
}

// Invalidate removes the persisted model. Idempotent: invalidating an
// absent model is not an error.
func (s *ModelStore) Invalidate(ctx context.Context) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete([]byte(modelKey)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
