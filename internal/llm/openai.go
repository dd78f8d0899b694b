package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAIClient streams chat completions from an OpenAI-compatible backend.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a new streaming generation client.
func NewOpenAIClient(baseURL, apiKey, model string) *OpenAIClient {
	var opts []openaiopt.RequestOption
	if apiKey != "" {
		opts = append(opts, openaiopt.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, openaiopt.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Stream sends the prompt as a single user message and delivers reply
// fragments through fn as the backend yields them.
func (c *OpenAIClient) Stream(ctx context.Context, prompt string, fn FragmentFunc) error {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		// Empty deltas carry no information; never surface them.
		fragment := chunk.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}
		if err := fn(fragment); err != nil {
			return err
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("chat completion stream: %w", err)
	}
	return nil
}
