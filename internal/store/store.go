// Package store is the single in-memory authority for catalog data. It keeps
// users, anime and sessions in a Badger instance opened without a backing
// directory, so all state is process-local and lost on restart.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Key layout. Record keys embed zero-padded integer IDs so that prefix
// iteration yields records in creation order.
const (
	animePrefix          = "anime:"
	userPrefix           = "user:"
	sessionPrefix        = "session:"
	userByUsernamePrefix = "idx:users:username:"

	animeSeqKey = "seq:anime"
	userSeqKey  = "seq:user"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store backed by an in-memory Badger instance.
func New(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	if logger != nil {
		logger.Info("in-memory database opened")
	}

	return store, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database")
	}
	return s.db.Close()
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// nextID increments and returns the sequence counter stored under seqKey.
// Must be called inside a write transaction so the increment is atomic with
// the record insert. IDs start at 1 and are never reused after deletion.
func nextID(txn *badger.Txn, seqKey string) (int64, error) {
	var current int64

	item, err := txn.Get([]byte(seqKey))
	switch {
	case err == nil:
		err = item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt sequence value for %s", seqKey)
			}
			current = int64(binary.BigEndian.Uint64(val))
			return nil
		})
		if err != nil {
			return 0, err
		}
	case errors.Is(err, badger.ErrKeyNotFound):
		current = 0
	default:
		return 0, fmt.Errorf("read sequence %s: %w", seqKey, err)
	}

	next := current + 1

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(next))
	if err := txn.Set([]byte(seqKey), buf); err != nil {
		return 0, fmt.Errorf("write sequence %s: %w", seqKey, err)
	}

	return next, nil
}

// animeKey builds the record key for an anime ID. Zero padding keeps
// lexicographic key order equal to numeric ID order.
func animeKey(id int64) []byte {
	return fmt.Appendf(nil, "%s%012d", animePrefix, id)
}

// userKey builds the record key for a user ID.
func userKey(id int64) []byte {
	return fmt.Appendf(nil, "%s%012d", userPrefix, id)
}
