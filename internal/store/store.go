// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"errors"

	"github.com/Muskan2320/Realtime-AI-backend/internal/domain"
)

// ErrSessionNotFound is returned when an operation references a session
// record that does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for data persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	// FinalizeSession writes end time, duration and summary in a single
	// update. Duration is computed from the stored start time, clamped to
	// zero. Not idempotent: callers must guarantee at-most-once invocation.
	FinalizeSession(ctx context.Context, sessionID, summary string) error

	// Event operations. Events are append-only; created_at is assigned by
	// storage and is the chronological ordering key on read-back.
	AppendEvent(ctx context.Context, event *domain.Event) error
	ListEvents(ctx context.Context, sessionID string) ([]domain.Event, error)
	ListTranscript(ctx context.Context, sessionID string) ([]domain.TranscriptEntry, error)

	// Lifecycle
	Close() error
}
