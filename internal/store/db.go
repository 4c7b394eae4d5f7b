// Package store provides the SQLite-backed key/value storage that holds each
// collection as a single JSON blob.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Storage keys, one per collection.
const (
	KeyCashflow  = "finance_cashflow_v2"
	KeySavings   = "finance_savings_v2"
	KeyTargets   = "finance_targets_v2"
	KeyGoal      = "finance_goal_v1"
	KeyPortfolio = "finance_portfolio_v1"
	KeyTasks     = "reminders_tasks_v1"
)

// AllKeys lists every collection key in display order.
var AllKeys = []string{KeyCashflow, KeySavings, KeyTargets, KeyGoal, KeyPortfolio, KeyTasks}

// DB is the persisted key/value store.
type DB struct {
	db *sql.DB
}

// Open opens or creates the store database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the store database.
func (s *DB) Close() error {
	return s.db.Close()
}

// Get returns the raw blob stored under key. ok is false if the key is absent.
func (s *DB) Get(key string) (value []byte, ok bool, err error) {
	var v string
	err = s.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

// Put overwrites the blob stored under key. Concurrent writers are not
// detected: the last write wins.
func (s *DB) Put(key string, value []byte) error {
	_, err := s.db.Exec(`INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now())
	return err
}

// PutIfAbsent stores value under key only if nothing is stored there yet, and
// returns whatever blob is stored afterwards.
func (s *DB) PutIfAbsent(key string, value []byte) ([]byte, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO NOTHING`, key, string(value), now())
	if err != nil {
		return nil, err
	}

	var stored string
	if err := tx.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&stored); err != nil {
		return nil, err
	}
	return []byte(stored), tx.Commit()
}

// Delete removes the blob stored under key. The next load re-seeds it.
func (s *DB) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM collections WHERE key = ?", key)
	return err
}

// KeyInfo describes one stored key.
type KeyInfo struct {
	Key       string
	SizeBytes int
	UpdatedAt time.Time
}

// Keys returns every stored key, sorted by name.
func (s *DB) Keys() ([]KeyInfo, error) {
	rows, err := s.db.Query("SELECT key, length(value), updated_at FROM collections ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []KeyInfo
	for rows.Next() {
		var ki KeyInfo
		var updated string
		if err := rows.Scan(&ki.Key, &ki.SizeBytes, &updated); err != nil {
			return nil, err
		}
		ki.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		keys = append(keys, ki)
	}
	return keys, rows.Err()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
