package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// IdentityStore persists the anonymous session identifier across runs so a
// later bootstrap reattaches instead of reallocating. It holds exactly one
// row; discarding it is the only way a client ever changes identity.
type IdentityStore struct {
	db *sql.DB
}

func NewIdentityStore(dataDir string) (*IdentityStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "identity.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &IdentityStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *IdentityStore) Close() error {
	return s.db.Close()
}

func (s *IdentityStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS identity (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		session_id TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored identifier, or "" when none has been saved yet.
func (s *IdentityStore) Load() (string, time.Time, error) {
	var sessionID string
	var createdAt time.Time
	err := s.db.QueryRow("SELECT session_id, created_at FROM identity WHERE id = 1").
		Scan(&sessionID, &createdAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("load identity: %w", err)
	}
	return sessionID, createdAt, nil
}

// Save upserts the single identity row.
func (s *IdentityStore) Save(sessionID string, createdAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO identity (id, session_id, created_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET session_id = excluded.session_id, created_at = excluded.created_at`,
		sessionID, createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

// Discard drops the stored identifier. The next bootstrap allocates fresh.
func (s *IdentityStore) Discard() error {
	if _, err := s.db.Exec("DELETE FROM identity WHERE id = 1"); err != nil {
		return fmt.Errorf("discard identity: %w", err)
	}
	return nil
}
