package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/bidmatch/core"
	"github.com/poiesic/bidmatch/storage"
)

// TenderRepository implements storage.TenderRepository for BadgerDB.
type TenderRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.TenderRepository = (*TenderRepository)(nil)

// NewTenderRepository creates a new TenderRepository.
func NewTenderRepository(backend *Backend) (*TenderRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &TenderRepository{
		backend: backend,
		logger:  slog.Default(),
	}, nil
}

// Close implements storage.TenderRepository. The underlying backend is
// shared and closed separately.
func (r *TenderRepository) Close() error {
	return nil
}

// ReplaceAll atomically replaces the tender snapshot. The previous snapshot
// (including any persisted vocabulary model, which is only valid relative to
// it) is removed in the same transaction, and the store generation is bumped
// so callers can detect that retraining is due.
func (r *TenderRepository) ReplaceAll(ctx context.Context, records []core.TenderRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteByPrefix(tx, tenderPositionPrefix+":"); err != nil {
			return err
		}
		if err := deleteByPrefix(tx, tenderIDPrefix+":"); err != nil {
			return err
		}

		var position uint64
		seen := make(map[string]bool, len(records))
		for _, record := range records {
			if seen[record.ID] {
				r.logger.Warn("dropping tender with duplicate id", "id", record.ID, "source", record.Source.String())
				continue
			}
			seen[record.ID] = true

			if err := tx.Set(makeTenderPositionKey(position), storage.MarshalTenderRecord(&record)); err != nil {
				return err
			}
			if err := tx.Set(makeTenderIDKey(record.ID), encodePosition(position)); err != nil {
				return err
			}
			position++
		}

		generation, err := readGeneration(tx)
		if err != nil {
			return err
		}
		generation++
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, generation)
		if err := tx.Set([]byte(generationKey), buf); err != nil {
			return err
		}

		// The model was trained on the snapshot we just replaced.
		if err := tx.Delete([]byte(modelKey)); err != nil {
			return err
		}

		r.logger.Info("tender snapshot replaced",
			"tenders", position,
			"dropped", len(records)-int(position),
			"generation", generation,
		)
		return tx.Commit()
	}, true)
}

// GetTender retrieves a single tender by its portal identifier.
func (r *TenderRepository) GetTender(ctx context.Context, id string) (*core.TenderRecord, error) {
	var record *core.TenderRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTenderIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		var position uint64
		if err := item.Value(func(val []byte) error {
			var verr error
			position, verr = decodePosition(val)
			return verr
		}); err != nil {
			return err
		}

		item, err = tx.Get(makeTenderPositionKey(position))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = storage.UnmarshalTenderRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListTenders returns the full snapshot in ingest order.
func (r *TenderRepository) ListTenders(ctx context.Context) ([]core.TenderRecord, error) {
	records := []core.TenderRecord{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tenderPositionPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalTenderRecord(val)
				if err != nil {
					return err
				}
				records = append(records, *record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of tenders in the snapshot.
func (r *TenderRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tenderPositionPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Generation returns the store generation, bumped by every ReplaceAll.
func (r *TenderRepository) Generation(ctx context.Context) (uint64, error) {
	var generation uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		generation, err = readGeneration(tx)
		return err
	}, false)
	if err != nil {
		return 0, err
	}
	return generation, nil
}

// readGeneration reads the generation counter inside a transaction.
// A store that was never replaced has generation 0.
func readGeneration(tx *badger.Txn) (uint64, error) {
	item, err := tx.Get([]byte(generationKey))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, err
	}
	var generation uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return storage.ErrSerializationFailed
		}
		generation = binary.BigEndian.Uint64(val)
		return nil
	})
	return generation, err
}

// deleteByPrefix removes every key under the given prefix within tx.
func deleteByPrefix(tx *badger.Txn, prefix string) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	keys := [][]byte{}
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
