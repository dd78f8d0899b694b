// Package summary implements post-session conversation summarization.
package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Muskan2320/Realtime-AI-backend/internal/llm"
	"github.com/Muskan2320/Realtime-AI-backend/internal/store"
)

// NoConversationSummary is the summary recorded for sessions that exchanged
// no messages. A defined terminal case, not an error.
const NoConversationSummary = "No conversation data."

const promptTemplate = `You are an AI assistant summarizing a conversation session.

Provide a concise, high-level summary (3-4 sentences max)
focusing on:
- main topics discussed
- user intent
- outcomes or conclusions

Conversation:
%s`

// Summarizer rebuilds a session transcript from the event log, drives it
// through the generation client and writes the result back to the session
// record.
type Summarizer struct {
	store store.Store
	gen   llm.Generator
}

// New creates a Summarizer.
func New(st store.Store, gen llm.Generator) *Summarizer {
	return &Summarizer{store: st, gen: gen}
}

// Run summarizes one terminated session and finalizes its record. It is
// scheduled exactly once per session, after the session's relay has stopped.
func (s *Summarizer) Run(ctx context.Context, sessionID string) error {
	entries, err := s.store.ListTranscript(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch events for session %s: %w", sessionID, err)
	}

	if len(entries) == 0 {
		if err := s.store.FinalizeSession(ctx, sessionID, NoConversationSummary); err != nil {
			return fmt.Errorf("failed to finalize empty session %s: %w", sessionID, err)
		}
		return nil
	}

	var conversation strings.Builder
	for _, entry := range entries {
		conversation.WriteString(strings.ToUpper(string(entry.Role)))
		conversation.WriteString(": ")
		conversation.WriteString(entry.Content)
		conversation.WriteByte('\n')
	}

	prompt := fmt.Sprintf(promptTemplate, conversation.String())

	var summaryText strings.Builder
	if err := s.gen.Stream(ctx, prompt, func(fragment string) error {
		summaryText.WriteString(fragment)
		return nil
	}); err != nil {
		// Best effort: keep whatever was generated before the failure. A
		// truncated summary is recorded over no summary at all.
		log.Printf("summary generation for session %s ended early: %v", sessionID, err)
	}

	if err := s.store.FinalizeSession(ctx, sessionID, strings.TrimSpace(summaryText.String())); err != nil {
		return fmt.Errorf("failed to finalize session %s: %w", sessionID, err)
	}
	return nil
}
