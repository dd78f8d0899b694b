// Package llm provides an abstraction for streaming text-generation clients.
package llm

import "context"

// FragmentFunc is called for each text fragment of a streamed generation, in
// backend order. Returning an error aborts the stream; the error is returned
// to the caller of Stream unchanged.
type FragmentFunc func(fragment string) error

// Generator defines the interface for text-generation backends.
type Generator interface {
	// Stream sends one prompt and delivers the reply incrementally through
	// fn. Empty fragments from the backend are filtered out and never reach
	// fn. The stream is single pass. A backend error is returned after any
	// fragments already delivered; callers must treat the stream as having
	// ended abnormally, not as complete.
	Stream(ctx context.Context, prompt string, fn FragmentFunc) error
}

// Ensure implementations satisfy the interface.
var (
	_ Generator = (*OpenAIClient)(nil)
	_ Generator = (*MockClient)(nil)
)
