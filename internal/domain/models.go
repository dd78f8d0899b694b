// Package domain defines the core domain models for the relay.
package domain

import "time"

// Role identifies who produced an event.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// EventType represents the kind of a logged event.
type EventType string

const (
	// EventTypeUserMessage is one complete inbound user turn.
	EventTypeUserMessage EventType = "user_message"
	// EventTypeAIChunk is a single streamed fragment of an assistant reply.
	EventTypeAIChunk EventType = "ai_chunk"
	// EventTypeAIFinal is the full accumulated assistant reply for a turn.
	EventTypeAIFinal EventType = "ai_final"
)

// Session represents one WebSocket conversation session.
// EndTime, DurationSeconds and Summary are set exactly once, at finalization,
// and are nil until then.
type Session struct {
	SessionID       string     `json:"session_id"`
	UserID          string     `json:"user_id,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
}

// Event is one append-only entry in a session's conversation log.
// CreatedAt is assigned by storage and is the chronological ordering key.
type Event struct {
	EventID   string    `json:"event_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Type      EventType `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

// TranscriptEntry is the projection of an event used to rebuild a
// conversation transcript for summarization.
type TranscriptEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
