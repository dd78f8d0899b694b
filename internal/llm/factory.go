package llm

import (
	"log"
	"os"
)

const (
	// EnvRelayMode is the environment variable name for mode selection.
	EnvRelayMode = "CHATRELAY_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewGenerator creates a generation client based on the CHATRELAY_MODE
// environment variable. If CHATRELAY_MODE=MOCK, returns a MockClient;
// otherwise returns an OpenAI-backed client.
func NewGenerator(baseURL, apiKey, model string) Generator {
	if os.Getenv(EnvRelayMode) == ModeMock {
		log.Println("CHATRELAY_MODE=MOCK detected, using mock generation client")
		return NewMockClient()
	}

	return NewOpenAIClient(baseURL, apiKey, model)
}
