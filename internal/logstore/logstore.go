// Package logstore persists the dictation history in SQLite.
package logstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"voxkey/internal/domain"
)

// Store is an append-only SQLite transcription log.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the log database. Use ":memory:" for an
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("logstore: open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("logstore: initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		edited_text TEXT,
		duration_seconds REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_created_at ON transcriptions(created_at);
	CREATE INDEX IF NOT EXISTS idx_kind ON transcriptions(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one finished session.
func (s *Store) Append(ctx context.Context, entry domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var edited sql.NullString
	if entry.HasEdited {
		edited = sql.NullString{String: entry.EditedText, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transcriptions (created_at, session_id, kind, raw_text, edited_text, duration_seconds) VALUES (?, ?, ?, ?, ?, ?)",
		createdAt.Unix(), entry.SessionID, string(entry.Kind), entry.RawText, edited, entry.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("logstore: insert entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT created_at, session_id, kind, raw_text, edited_text, duration_seconds FROM transcriptions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("logstore: query entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		var createdAt int64
		var kind string
		var edited sql.NullString
		if err := rows.Scan(&createdAt, &e.SessionID, &kind, &e.RawText, &edited, &e.DurationSeconds); err != nil {
			return nil, fmt.Errorf("logstore: scan entry: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		e.Kind = domain.LogKind(kind)
		e.EditedText = edited.String
		e.HasEdited = edited.Valid
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats aggregates lifetime usage counters. Word counts are taken from
// the edited text when present, otherwise from the raw transcript.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transcriptions WHERE kind = ?", string(domain.LogKindInsertion),
	).Scan(&stats.TotalTranscriptions)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("logstore: count transcriptions: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transcriptions WHERE kind = ?", string(domain.LogKindCommand),
	).Scan(&stats.TotalCommands)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("logstore: count commands: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT raw_text, edited_text FROM transcriptions WHERE kind = ?", string(domain.LogKindInsertion),
	)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("logstore: query texts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		var edited sql.NullString
		if err := rows.Scan(&raw, &edited); err != nil {
			return domain.Stats{}, fmt.Errorf("logstore: scan text: %w", err)
		}
		text := raw
		if edited.Valid {
			text = edited.String
		}
		stats.TotalWords += int64(len(strings.Fields(text)))
	}
	return stats, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
