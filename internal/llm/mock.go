package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient is a mock implementation of Generator for local development and
// testing.
type MockClient struct{}

// NewMockClient creates a new mock generation client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Stream delivers a canned reply in small chunks.
func (m *MockClient) Stream(ctx context.Context, prompt string, fn FragmentFunc) error {
	response := m.generateMockResponse(prompt)

	for _, chunk := range splitIntoChunks(response, 10) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if chunk == "" {
			continue
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}

	return nil
}

// generateMockResponse generates a mock reply based on the prompt.
func (m *MockClient) generateMockResponse(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "[MOCK] This is a mock response from the generation client."
	}
	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(prompt, 100))
}

// splitIntoChunks splits a string into chunks of approximately the given size.
func splitIntoChunks(s string, chunkSize int) []string {
	if len(s) == 0 {
		return nil
	}

	var chunks []string
	for i := 0; i < len(s); i += chunkSize {
		end := i + chunkSize
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[i:end])
	}
	return chunks
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
