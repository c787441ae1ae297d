// ABOUTME: Badger-backed BlobStore for an embedded, local-only database.
// ABOUTME: Same engine Charm KV uses, without the cloud sync layer.
package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// BadgerStore stores blobs in a Badger database directory.
type BadgerStore struct {
	db *badger.DB
}

var _ BlobStore = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database in dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the blob stored under key.
func (b *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, translateBadgerErr(key, err)
	}
	return value, nil
}

// Set stores value under key.
func (b *BadgerStore) Set(key string, value []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (b *BadgerStore) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close flushes and closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

// translateBadgerErr maps Badger's missing-key error onto ErrNotFound.
func translateBadgerErr(key string, err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("get %s: %w", key, err)
}
