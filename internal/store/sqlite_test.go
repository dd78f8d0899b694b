package store

import (
	"context"
	"testing"
	"time"

	"github.com/Muskan2320/Realtime-AI-backend/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{
		SessionID: "s1",
		UserID:    "u1",
		StartTime: time.Now().UTC(),
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil || got.UserID != "u1" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.EndTime != nil || got.DurationSeconds != nil || got.Summary != nil {
		t.Fatalf("session finalized before FinalizeSession: %+v", got)
	}

	if err := store.FinalizeSession(ctx, "s1", "talked about the weather"); err != nil {
		t.Fatalf("FinalizeSession failed: %v", err)
	}

	got, err = store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.EndTime == nil || got.DurationSeconds == nil || got.Summary == nil {
		t.Fatalf("session not finalized: %+v", got)
	}
	if *got.DurationSeconds < 0 {
		t.Fatalf("negative duration: %d", *got.DurationSeconds)
	}
	if *got.Summary != "talked about the weather" {
		t.Fatalf("unexpected summary: %q", *got.Summary)
	}
}

func TestFinalizeSessionClampsNegativeDuration(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Start time in the future simulates clock skew.
	session := &domain.Session{
		SessionID: "s1",
		StartTime: time.Now().UTC().Add(time.Hour),
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.FinalizeSession(ctx, "s1", "skewed"); err != nil {
		t.Fatalf("FinalizeSession failed: %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if *got.DurationSeconds != 0 {
		t.Fatalf("expected duration clamped to 0, got %d", *got.DurationSeconds)
	}
}

func TestFinalizeSessionMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.FinalizeSession(context.Background(), "missing", "summary")
	if err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetSessionMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetSession(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}
}

func TestAppendAndListEvents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{SessionID: "s1", StartTime: time.Now().UTC()}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	events := []*domain.Event{
		{EventID: "e1", SessionID: "s1", Role: domain.RoleUser, Content: "hello", Type: domain.EventTypeUserMessage},
		{EventID: "e2", SessionID: "s1", Role: domain.RoleAssistant, Content: "Hi", Type: domain.EventTypeAIChunk},
		{EventID: "e3", SessionID: "s1", Role: domain.RoleAssistant, Content: " there", Type: domain.EventTypeAIChunk},
		{EventID: "e4", SessionID: "s1", Role: domain.RoleAssistant, Content: "Hi there", Type: domain.EventTypeAIFinal},
	}
	for _, ev := range events {
		if err := store.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent %s failed: %v", ev.EventID, err)
		}
	}

	got, err := store.ListEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i, ev := range got {
		if ev.EventID != events[i].EventID {
			t.Fatalf("event %d out of order: got %s, want %s", i, ev.EventID, events[i].EventID)
		}
		if i > 0 && ev.CreatedAt.Before(got[i-1].CreatedAt) {
			t.Fatalf("created_at not non-decreasing at index %d", i)
		}
	}

	transcript, err := store.ListTranscript(ctx, "s1")
	if err != nil {
		t.Fatalf("ListTranscript failed: %v", err)
	}
	if len(transcript) != len(events) {
		t.Fatalf("expected %d entries, got %d", len(events), len(transcript))
	}
	if transcript[0].Role != domain.RoleUser || transcript[0].Content != "hello" {
		t.Fatalf("unexpected first entry: %+v", transcript[0])
	}
}

func TestListEventsEmptySession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{SessionID: "s1", StartTime: time.Now().UTC()}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := store.ListEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}

	transcript, err := store.ListTranscript(ctx, "s1")
	if err != nil {
		t.Fatalf("ListTranscript failed: %v", err)
	}
	if len(transcript) != 0 {
		t.Fatalf("expected empty transcript, got %d entries", len(transcript))
	}
}

func TestAppendEventRequiresSession(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendEvent(context.Background(), &domain.Event{
		EventID:   "e1",
		SessionID: "missing",
		Role:      domain.RoleUser,
		Content:   "hello",
		Type:      domain.EventTypeUserMessage,
	})
	if err == nil {
		t.Fatal("expected foreign key violation, got nil")
	}
}
