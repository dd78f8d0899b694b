package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Muskan2320/Realtime-AI-backend/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection avoids lock
	// errors when concurrent sessions write events at the same time.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME,
			duration_seconds INTEGER,
			summary TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			event_type TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f','now')),
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession inserts a new session record.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.Session) error {
	var userID sql.NullString
	if session.UserID != "" {
		userID = sql.NullString{String: session.UserID, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, start_time) VALUES (?, ?, ?)`,
		session.SessionID, userID, session.StartTime.UTC())
	return err
}

// GetSession retrieves a session by ID. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	var userID, summary sql.NullString
	var endTime sql.NullTime
	var duration sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, user_id, start_time, end_time, duration_seconds, summary FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&session.SessionID, &userID, &session.StartTime, &endTime, &duration, &summary)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		session.UserID = userID.String
	}
	if endTime.Valid {
		session.EndTime = &endTime.Time
	}
	if duration.Valid {
		session.DurationSeconds = &duration.Int64
	}
	if summary.Valid {
		session.Summary = &summary.String
	}
	return &session, nil
}

// FinalizeSession records end time, duration and summary for a session.
// Returns ErrSessionNotFound if the session record does not exist.
func (s *SQLiteStore) FinalizeSession(ctx context.Context, sessionID, summary string) error {
	var startTime time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT start_time FROM sessions WHERE session_id = ?`,
		sessionID).Scan(&startTime)
	if err == sql.ErrNoRows {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read session start time: %w", err)
	}

	endTime := time.Now().UTC()
	duration := int64(endTime.Sub(startTime).Seconds())
	if duration < 0 {
		// Clock skew; a negative duration is never recorded.
		duration = 0
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE sessions SET end_time = ?, duration_seconds = ?, summary = ? WHERE session_id = ?`,
		endTime, duration, summary, sessionID)
	if err != nil {
		return fmt.Errorf("failed to finalize session: %w", err)
	}
	return nil
}

// AppendEvent inserts a new event row. The created_at column is assigned by
// storage, not by the caller.
func (s *SQLiteStore) AppendEvent(ctx context.Context, event *domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event_id, session_id, role, content, event_type) VALUES (?, ?, ?, ?, ?)`,
		event.EventID, event.SessionID, event.Role, event.Content, event.Type)
	return err
}

// ListEvents retrieves all events for a session in chronological order.
func (s *SQLiteStore) ListEvents(ctx context.Context, sessionID string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, session_id, role, content, event_type, created_at FROM events
		 WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		if err := rows.Scan(&ev.EventID, &ev.SessionID, &ev.Role, &ev.Content, &ev.Type, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// ListTranscript retrieves the (role, content) projection of a session's
// events in chronological order. Used for post-session summarization.
func (s *SQLiteStore) ListTranscript(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM events WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TranscriptEntry
	for rows.Next() {
		var e domain.TranscriptEntry
		if err := rows.Scan(&e.Role, &e.Content); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
