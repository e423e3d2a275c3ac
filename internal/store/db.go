// Package store persists query history and settings in a local sqlite
// database, serviced by a single worker goroutine.
package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"glocate/internal/debug"
)

type EventType int

const (
	FetchHistory EventType = iota
	RecordQuery
	ClearHistory
	FetchSettings
	SaveSetting
)

type Request struct {
	Op    EventType
	Query string
	Limit int
	Key   string
	Value string
}

type Response struct {
	Op       EventType
	History  []string          // Most recent first
	Settings map[string]string // Key-value settings
	Err      error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
	maxEntries   int
}

// NewDB creates an unopened store. maxEntries caps the history table;
// zero or negative means unlimited.
func NewDB(maxEntries int) *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
		maxEntries:   maxEntries,
	}
}

// DefaultPath returns the store location: ~/.local/share/glocate/store.db
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "glocate", "store.db")
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return err
	}

	historyQuery := `
	CREATE TABLE IF NOT EXISTS search_history (
		query TEXT PRIMARY KEY,
		submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(historyQuery); err != nil {
		return err
	}

	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		return err
	}

	d.conn = db
	return nil
}

func (d *DB) Start() {
	for req := range d.RequestChan {
		debug.Log(debug.STORE, "request op=%d query=%q key=%q", req.Op, req.Query, req.Key)
		switch req.Op {
		case FetchHistory:
			d.handleFetchHistory(req.Limit)
		case RecordQuery:
			d.handleRecord(req.Query)
		case ClearHistory:
			d.handleClear()
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		}
	}
}

func (d *DB) handleFetchHistory(limit int) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.conn.Query(
		"SELECT query FROM search_history ORDER BY submitted_at DESC LIMIT ?", limit)
	if err != nil {
		d.ResponseChan <- Response{Op: FetchHistory, Err: err}
		return
	}
	defer rows.Close()

	var history []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err == nil {
			history = append(history, q)
		}
	}

	d.ResponseChan <- Response{Op: FetchHistory, History: history}
}

func (d *DB) handleRecord(query string) {
	// Queries shorter than two characters are noise from incremental typing.
	if len(query) < 2 {
		return
	}
	// Re-submitting a known query bumps it to the top.
	_, err := d.conn.Exec(
		"INSERT INTO search_history (query) VALUES (?) ON CONFLICT(query) DO UPDATE SET submitted_at = CURRENT_TIMESTAMP",
		query)
	if err != nil {
		log.Printf("Store Error: %v", err)
		return
	}
	if d.maxEntries > 0 {
		_, err = d.conn.Exec(`
		DELETE FROM search_history WHERE query NOT IN (
			SELECT query FROM search_history ORDER BY submitted_at DESC LIMIT ?
		)`, d.maxEntries)
		if err != nil {
			log.Printf("Store Error trimming history: %v", err)
		}
	}
}

func (d *DB) handleClear() {
	if _, err := d.conn.Exec("DELETE FROM search_history"); err != nil {
		log.Printf("Store Error: %v", err)
	}
	d.handleFetchHistory(0)
}

func (d *DB) handleFetchSettings() {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		d.ResponseChan <- Response{Op: FetchSettings, Err: err}
		return
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}

	d.ResponseChan <- Response{Op: FetchSettings, Settings: settings}
}

func (d *DB) handleSaveSetting(key, value string) {
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		log.Printf("Store Error saving setting: %v", err)
	}
	d.handleFetchSettings()
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
