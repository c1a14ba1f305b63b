// Package transcript records interactive conversation history in
// SQLite so REPL sessions can be listed and replayed later.
package transcript

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver for database/sql
)

// Turn is one recorded exchange line: who said it and what was said.
type Turn struct {
	ID        string
	SessionID string
	Role      string // "user" or "bot"
	Text      string
	CreatedAt time.Time
}

// Session summarizes one recorded conversation.
type Session struct {
	ID        string
	StartedAt time.Time
	Turns     int
}

// Store is a SQLite-backed transcript store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the transcript database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one turn to a session's transcript, creating the
// session row on first use.
func (s *Store) Record(sessionID, role, text string) error {
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		sessionID, now,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO turns (id, session_id, role, text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, role, text, now,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}

	return tx.Commit()
}

// Sessions lists recorded sessions, most recent first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.started_at, COUNT(t.id)
		FROM sessions s
		LEFT JOIN turns t ON t.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &sess.Turns); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Turns returns a session's transcript in chronological order.
func (s *Store) Turns(sessionID string) ([]Turn, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, role, text, created_at
		 FROM turns WHERE session_id = ? ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var out []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Role, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
