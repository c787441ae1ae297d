// ABOUTME: Habits configuration management with backend selection.
// ABOUTME: Handles the config file, env overrides, and the blob store factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/habits/internal/storage"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// BackendEnv overrides the configured backend when set.
const BackendEnv = "HABITS_BACKEND"

// Config stores habits tool configuration.
type Config struct {
	// Backend selects the blob store: "sqlite" (default), "badger", "charm", or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local backends.
	// SQLite puts habits.db here; Badger uses a badger/ subdirectory.
	// Supports ~ expansion. Defaults to ~/.local/share/habits.
	DataDir string `json:"data_dir,omitempty"`

	// CharmHost is the Charm server for the charm backend.
	CharmHost string `json:"charm_host,omitempty"`

	// Debug enables debug logging to stderr.
	Debug bool `json:"debug,omitempty"`
}

// GetBackend returns the effective backend: HABITS_BACKEND, then the
// config file, then "sqlite".
func (c *Config) GetBackend() string {
	if env := strings.TrimSpace(os.Getenv(BackendEnv)); env != "" {
		return strings.ToLower(env)
	}
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// LogDir is where the rotating log file lives.
func (c *Config) LogDir() string {
	return filepath.Join(c.GetDataDir(), "logs")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenBlobStore opens the configured backend.
func (c *Config) OpenBlobStore() (storage.BlobStore, error) {
	dataDir := c.GetDataDir()

	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.OpenSQLite(filepath.Join(dataDir, "habits.db"))
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case BackendCharm:
		return storage.OpenCharm(c.CharmHost)
	case BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "habits", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
