package summary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muskan2320/Realtime-AI-backend/internal/domain"
	"github.com/Muskan2320/Realtime-AI-backend/internal/llm"
	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
	"github.com/Muskan2320/Realtime-AI-backend/internal/testutil"
)

type scriptedGenerator struct {
	fragments []string
	err       error

	mu      sync.Mutex
	prompts []string
}

func (g *scriptedGenerator) Stream(ctx context.Context, prompt string, fn llm.FragmentFunc) error {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	for _, f := range g.fragments {
		if f == "" {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return g.err
}

func seedSession(t *testing.T, st store.Store, sessionID string, events ...*domain.Event) {
	t.Helper()
	ctx := context.Background()
	err := st.CreateSession(ctx, &domain.Session{SessionID: sessionID, StartTime: time.Now().UTC()})
	require.NoError(t, err)
	for _, ev := range events {
		require.NoError(t, st.AppendEvent(ctx, ev))
	}
}

func TestSummarizerWritesSummary(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	seedSession(t, st, "s1",
		&domain.Event{EventID: "e1", SessionID: "s1", Role: domain.RoleUser, Content: "what is Go?", Type: domain.EventTypeUserMessage},
		&domain.Event{EventID: "e2", SessionID: "s1", Role: domain.RoleAssistant, Content: "Go is", Type: domain.EventTypeAIChunk},
		&domain.Event{EventID: "e3", SessionID: "s1", Role: domain.RoleAssistant, Content: " a language", Type: domain.EventTypeAIChunk},
		&domain.Event{EventID: "e4", SessionID: "s1", Role: domain.RoleAssistant, Content: "Go is a language", Type: domain.EventTypeAIFinal},
	)

	gen := &scriptedGenerator{fragments: []string{"User asked about Go;", " assistant explained."}}
	s := New(st, gen)
	require.NoError(t, s.Run(context.Background(), "s1"))

	rec, err := st.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, rec.Summary)
	assert.Equal(t, "User asked about Go; assistant explained.", *rec.Summary)
	require.NotNil(t, rec.EndTime)
	require.NotNil(t, rec.DurationSeconds)
	assert.GreaterOrEqual(t, *rec.DurationSeconds, int64(0))

	// The transcript renders every event, chunks included, one role-tagged
	// line per event in chronological order.
	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "USER: what is Go?\n")
	assert.Contains(t, prompt, "ASSISTANT: Go is\n")
	assert.Contains(t, prompt, "ASSISTANT:  a language\n")
	assert.Contains(t, prompt, "ASSISTANT: Go is a language\n")
	assert.Less(t,
		strings.Index(prompt, "USER: what is Go?"),
		strings.Index(prompt, "ASSISTANT: Go is a language"))
	assert.Contains(t, prompt, "summarizing a conversation session")
}

func TestSummarizerEmptySession(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	seedSession(t, st, "s1")

	gen := &scriptedGenerator{fragments: []string{"should not be called"}}
	s := New(st, gen)
	require.NoError(t, s.Run(context.Background(), "s1"))

	rec, err := st.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, rec.Summary)
	assert.Equal(t, NoConversationSummary, *rec.Summary)
	require.NotNil(t, rec.DurationSeconds)
	assert.GreaterOrEqual(t, *rec.DurationSeconds, int64(0))

	// The generator is never consulted for an empty session.
	assert.Empty(t, gen.prompts)
}

func TestSummarizerKeepsPartialSummaryOnFailure(t *testing.T) {
	st := testutil.NewSQLiteStore(t)
	seedSession(t, st, "s1",
		&domain.Event{EventID: "e1", SessionID: "s1", Role: domain.RoleUser, Content: "hi", Type: domain.EventTypeUserMessage},
	)

	gen := &scriptedGenerator{fragments: []string{"Partial "}, err: errors.New("backend down")}
	s := New(st, gen)
	require.NoError(t, s.Run(context.Background(), "s1"))

	rec, err := st.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, rec.Summary)
	assert.Equal(t, "Partial", *rec.Summary)
	assert.NotNil(t, rec.EndTime)
}

func TestSummarizerMissingSession(t *testing.T) {
	st := testutil.NewSQLiteStore(t)

	gen := &scriptedGenerator{}
	s := New(st, gen)
	err := s.Run(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
