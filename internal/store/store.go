// Package store implements the durable local store for the Linkdeck
// client: the session token, the last-known user snapshot, and cached
// query results for offline reads. Backed by SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "linkdeck.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    token TEXT NOT NULL,
    user_json TEXT NOT NULL,
    saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
    key TEXT PRIMARY KEY,
    value_json TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);
`

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Store provides access to the local database. The zero value is not
// usable; call New, then Open with a data directory.
type Store struct {
	mu   sync.RWMutex
	open bool
	db   *sql.DB
}

// New creates a Store. The store is not open; call Open to initialize.
func New() *Store {
	return &Store{}
}

// Open creates the data directory if needed, opens the database and
// applies the schema. Returns ErrAlreadyOpen if called while open.
func (s *Store) Open(dataDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrAlreadyOpen
	}

	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	s.open = true
	return nil
}

// Close releases the database. Idempotent: closing a closed store succeeds.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveSession persists the access token and user snapshot, replacing any
// previous session. The store is single-writer: only the session guard
// calls this.
func (s *Store) SaveSession(token string, user types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrStoreClosed
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO session (id, token, user_json, saved_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token,
		     user_json = excluded.user_json, saved_at = excluded.saved_at`,
		token, string(userJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// LoadSession returns the persisted token and user snapshot. ok is false
// when no session is stored.
func (s *Store) LoadSession() (token string, user types.User, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return "", types.User{}, false, ErrStoreClosed
	}

	var userJSON string
	row := s.db.QueryRow(`SELECT token, user_json FROM session WHERE id = 1`)
	if err := row.Scan(&token, &userJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", types.User{}, false, nil
		}
		return "", types.User{}, false, err
	}
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return "", types.User{}, false, fmt.Errorf("unmarshal user: %w", err)
	}
	return token, user, true, nil
}

// ClearSession removes the persisted session and all cached snapshots.
// Called on logout. Idempotent.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrStoreClosed
	}
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM snapshots`)
	return err
}

// SaveSnapshot persists a query result under its cache key, replacing any
// previous snapshot for the same key.
func (s *Store) SaveSnapshot(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrStoreClosed
	}

	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, value_json, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json,
		     fetched_at = excluded.fetched_at`,
		key, string(valueJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// LoadSnapshot reads the snapshot for key into dest. ok is false when no
// snapshot exists for the key.
func (s *Store) LoadSnapshot(key string, dest any) (fetchedAt time.Time, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return time.Time{}, false, ErrStoreClosed
	}

	var valueJSON, fetched string
	row := s.db.QueryRow(`SELECT value_json, fetched_at FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&valueJSON, &fetched); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	if err := json.Unmarshal([]byte(valueJSON), dest); err != nil {
		return time.Time{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	fetchedAt, err = time.Parse(time.RFC3339Nano, fetched)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse fetched_at: %w", err)
	}
	return fetchedAt, true, nil
}
