// Package relay implements the per-session lifecycle and streaming relay
// core: it owns one session from connection accept to termination, fans
// generated fragments to the client and the event log, and schedules
// post-session summarization exactly once.
package relay

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Muskan2320/Realtime-AI-backend/internal/domain"
	"github.com/Muskan2320/Realtime-AI-backend/internal/llm"
	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
)

// Transport is the bidirectional text-message connection a session runs on.
// ReadText blocks until the next inbound message. Both methods return an
// error once the connection has closed or failed; disconnect is the expected
// terminal signal, not an exceptional failure.
type Transport interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// ScheduleFunc hands a terminated session's identifier to the background
// summarization machinery. It must not block.
type ScheduleFunc func(sessionID string)

// Session owns one connection's lifecycle. It is created per accepted
// connection with a freshly minted identifier; identifiers are never
// client-supplied.
type Session struct {
	ID     string
	UserID string

	transport Transport
	store     store.Store
	gen       llm.Generator
	schedule  ScheduleFunc

	writer    *eventWriter
	closeOnce sync.Once
}

// NewSession mints a new session around an accepted transport connection.
func NewSession(transport Transport, st store.Store, gen llm.Generator, schedule ScheduleFunc) *Session {
	return &Session{
		ID:        uuid.New().String(),
		transport: transport,
		store:     st,
		gen:       gen,
		schedule:  schedule,
	}
}

// Run drives the session from Connecting to Terminated. It returns when the
// transport disconnects, or with an error when the session record cannot be
// created, in which case the session never becomes active: nothing is logged
// and no summarization is scheduled.
func (s *Session) Run(ctx context.Context) error {
	if err := s.store.CreateSession(ctx, &domain.Session{
		SessionID: s.ID,
		UserID:    s.UserID,
		StartTime: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to create session record: %w", err)
	}

	s.writer = newEventWriter(s.store)
	defer s.terminate()

	if err := s.transport.WriteText("Connected to session " + s.ID); err != nil {
		return nil
	}

	for {
		message, err := s.transport.ReadText()
		if err != nil {
			return nil
		}

		s.writer.Enqueue(s.ID, domain.RoleUser, message, domain.EventTypeUserMessage)

		if err := s.streamTurn(ctx, message); err != nil {
			return nil
		}
	}
}

// streamTurn relays one generated reply. Each fragment is delivered outbound
// first, in generation order, then queued for logging; log writes never
// delay delivery. A non-nil return means the transport failed and the
// session must close; generation failures truncate the turn and return nil.
func (s *Session) streamTurn(ctx context.Context, prompt string) error {
	var full strings.Builder
	var transportErr error

	err := s.gen.Stream(ctx, prompt, func(fragment string) error {
		if werr := s.transport.WriteText(fragment); werr != nil {
			transportErr = werr
			return werr
		}
		s.writer.Enqueue(s.ID, domain.RoleAssistant, fragment, domain.EventTypeAIChunk)
		full.WriteString(fragment)
		return nil
	})

	if transportErr != nil {
		// Fragments produced after the transport died are discarded, not
		// logged, and no final event is written for the turn.
		return transportErr
	}
	if err != nil {
		// The client sees an abruptly ended fragment stream for this turn;
		// the session stays up and returns to waiting for input.
		log.Printf("generation failed for session %s: %v", s.ID, err)
		return nil
	}

	s.writer.Enqueue(s.ID, domain.RoleAssistant, full.String(), domain.EventTypeAIFinal)
	return nil
}

// terminate moves the session to Terminated: the event queue is closed and
// summarization is scheduled exactly once, no matter how many disconnect
// signals race in. Queued log writes drain before the summarizer reads the
// log; the caller is not held up waiting for either.
func (s *Session) terminate() {
	s.closeOnce.Do(func() {
		s.writer.Close()
		drained := s.writer.Done()
		sessionID := s.ID
		schedule := s.schedule
		go func() {
			<-drained
			schedule(sessionID)
		}()
	})
}
