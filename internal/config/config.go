// Package config loads and persists user settings from config.json.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"glocate/internal/debug"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Lookup  LookupConfig  `json:"lookup"`
	Rebuild RebuildConfig `json:"rebuild"`
	Results ResultsConfig `json:"results"`
	History HistoryConfig `json:"history"`
}

// LookupConfig holds settings for the external lookup tool
type LookupConfig struct {
	Command        string `json:"command"`        // lookup binary, normally "plocate"
	SystemDatabase string `json:"systemDatabase"` // always searched
	MediaDatabase  string `json:"mediaDatabase"`  // searched when present on disk
	TimeoutSeconds int    `json:"timeoutSeconds"` // lookup deadline, 0 uses the default
}

// RebuildConfig holds settings for index rebuilds
type RebuildConfig struct {
	Command   string   `json:"command"`   // index builder, normally "updatedb"
	Helper    string   `json:"helper"`    // privilege helper, normally "pkexec"
	Exclude   []string `json:"exclude"`   // pruned from the system scan
	MediaScan []string `json:"mediaScan"` // roots scanned into the media database
}

// ResultsConfig holds result display settings
type ResultsConfig struct {
	SortColumn    string `json:"sortColumn"` // "name" | "path"
	SortAscending bool   `json:"sortAscending"`
}

// HistoryConfig holds query history settings
type HistoryConfig struct {
	Enabled    bool `json:"enabled"`
	MaxEntries int  `json:"maxEntries"`
}

// Timeout returns the configured lookup deadline as a duration.
func (c LookupConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Databases returns the database paths to search, probing the media
// database on disk so an unplugged drive's stale index is not searched.
func (c LookupConfig) Databases() []string {
	dbs := []string{c.SystemDatabase}
	if c.MediaDatabase != "" {
		if _, err := os.Stat(c.MediaDatabase); err == nil {
			dbs = append(dbs, c.MediaDatabase)
		}
	}
	return dbs
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error
}

// NewManager creates a manager backed by the default config path.
func NewManager() *Manager {
	return &Manager{config: DefaultConfig(), path: ConfigPath()}
}

// NewManagerAt creates a manager backed by an explicit file path.
func NewManagerAt(path string) *Manager {
	return &Manager{config: DefaultConfig(), path: path}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Lookup: LookupConfig{
			Command:        "plocate",
			SystemDatabase: "/var/lib/plocate/plocate.db",
			MediaDatabase:  "/var/lib/plocate/media.db",
			TimeoutSeconds: 120,
		},
		Rebuild: RebuildConfig{
			Command:   "updatedb",
			Helper:    "pkexec",
			MediaScan: []string{"/run/media"},
		},
		Results: ResultsConfig{
			SortColumn:    "name",
			SortAscending: true,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 200,
		},
	}
}

// ConfigPath returns the config file path: ~/.config/glocate/config.json
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "glocate", "config.json")
}

// Load reads the configuration from the config file.
// If the file doesn't exist, creates it with defaults.
// If parsing fails, stores the error and returns defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		debug.Log(debug.APP, "creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Keep the error for display, run on defaults.
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}

	debug.Log(debug.APP, "config loaded from %s", m.path)
	m.config = &cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetSort updates the result sort preference
func (m *Manager) SetSort(column string, ascending bool) {
	m.mu.Lock()
	m.config.Results.SortColumn = column
	m.config.Results.SortAscending = ascending
	m.mu.Unlock()
	m.Save()
}

// SetHistoryEnabled toggles query history recording
func (m *Manager) SetHistoryEnabled(enabled bool) {
	m.mu.Lock()
	m.config.History.Enabled = enabled
	m.mu.Unlock()
	m.Save()
}
