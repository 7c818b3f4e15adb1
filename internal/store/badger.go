// internal/store/badger.go
//
// Badger-backed implementation of the session Store interface. Sessions are
// serialized as JSON snapshots, so state survives process restarts. Badger's
// own logging is disabled; the server logs at the handler layer.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/numgrid/sudoku/internal/game"
)

// sessionPrefix namespaces session records inside the key space, leaving
// room for other record kinds later.
const sessionPrefix = "session/"

// BadgerStore is a durable Store backed by an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at path.
// The caller owns the store and must Close it.
func NewBadgerStore(path string) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", path, err)
	}
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerInMemory opens a Badger database that lives entirely in memory.
// Used by tests; data is gone once the store closes.
func NewBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close releases the underlying database. The store is unusable afterwards.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}

// Save writes the session's snapshot under its ID.
func (b *BadgerStore) Save(ctx context.Context, s *game.Session) error {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(s.ID), data)
	})
}

// Get loads and rebuilds the session stored under id.
func (b *BadgerStore) Get(ctx context.Context, id string) (*game.Session, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return game.Restore(snap), nil
}

// Delete removes the session record. Absent keys are ignored.
func (b *BadgerStore) Delete(ctx context.Context, id string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	})
}
