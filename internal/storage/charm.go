// ABOUTME: Charm KV BlobStore with automatic cloud sync.
// ABOUTME: Data is E2E encrypted with the user's Charm SSH key.
package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

const (
	// CharmDBName is the Charm KV database holding habit data.
	CharmDBName = "habits"
	// DefaultCharmHost is the Charm server used when none is configured.
	DefaultCharmHost = "charm.2389.dev"
)

var errReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// CharmStore stores blobs in Charm KV and syncs after each write.
type CharmStore struct {
	kv *kv.KV
	mu sync.RWMutex
}

var _ BlobStore = (*CharmStore)(nil)

// OpenCharm opens the Charm KV database and pulls remote state.
// An empty host selects DefaultCharmHost.
func OpenCharm(host string) (*CharmStore, error) {
	if host == "" {
		host = DefaultCharmHost
	}
	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(CharmDBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	// Pull remote data on startup (skip in read-only mode)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return &CharmStore{kv: db}, nil
}

// Get returns the blob stored under key.
func (c *CharmStore) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, err := c.kv.Get([]byte(key))
	if err != nil {
		return nil, translateBadgerErr(key, err)
	}
	return value, nil
}

// Set stores value under key, then syncs.
func (c *CharmStore) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return errReadOnly
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncAfterWrite()
	return nil
}

// Delete removes key, then syncs.
func (c *CharmStore) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return errReadOnly
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	c.syncAfterWrite()
	return nil
}

// Close closes the KV database connection.
func (c *CharmStore) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if another process holds the database lock.
func (c *CharmStore) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *CharmStore) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// ID returns the Charm user ID for the current account.
func (c *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

func (c *CharmStore) syncAfterWrite() {
	if !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}
