package relay

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Muskan2320/Realtime-AI-backend/internal/domain"
	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
)

const (
	// eventQueueSize bounds the number of log writes waiting behind a slow
	// store before new ones are dropped.
	eventQueueSize = 256

	eventWriteTimeout = 5 * time.Second
)

// eventWriter persists a session's events off the relay's hot path. Writes
// queue on a buffered channel and are committed by a single goroutine in
// enqueue order, so a slow or failed write never delays fragment delivery.
type eventWriter struct {
	store store.Store
	queue chan *domain.Event
	done  chan struct{}
}

func newEventWriter(st store.Store) *eventWriter {
	w := &eventWriter{
		store: st,
		queue: make(chan *domain.Event, eventQueueSize),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *eventWriter) run() {
	defer close(w.done)
	for ev := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), eventWriteTimeout)
		if err := w.store.AppendEvent(ctx, ev); err != nil {
			// Non-fatal to the relay, but a data-loss risk worth surfacing.
			log.Printf("failed to log %s event for session %s: %v", ev.Type, ev.SessionID, err)
		}
		cancel()
	}
}

// Enqueue queues one event for persistence. When the queue is full the event
// is dropped and the loss reported; the live relay is never blocked.
func (w *eventWriter) Enqueue(sessionID string, role domain.Role, content string, kind domain.EventType) {
	ev := &domain.Event{
		EventID:   uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Type:      kind,
	}
	select {
	case w.queue <- ev:
	default:
		log.Printf("event queue full for session %s, dropping %s event", sessionID, kind)
	}
}

// Close stops the writer. Queued events still drain; Done is closed once the
// last queued write has been committed.
func (w *eventWriter) Close() {
	close(w.queue)
}

// Done reports when all queued writes have landed.
func (w *eventWriter) Done() <-chan struct{} {
	return w.done
}
