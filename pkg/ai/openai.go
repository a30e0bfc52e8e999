package ai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/meeting-notes-team/meeting-notes/pkg/config"
)

// CompletionClient wraps the OpenAI-compatible chat completion API used for
// notes generation.
type CompletionClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewCompletionClient creates a completion client using values from the
// provided config. Pass a nil config to fall back to environment variables.
func NewCompletionClient(cfg *config.AIConfig) *CompletionClient {
	var apiKey, baseURL, model string
	if cfg != nil {
		apiKey = cfg.APIKey
		baseURL = cfg.BaseURL
		model = cfg.Model
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if baseURL == "" {
		baseURL = os.Getenv("OPENAI_API_URL")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	return &CompletionClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: 0.3,
		maxTokens:   4096,
	}
}

// GenerateNotes sends the transcript to the model and returns the raw
// markdown completion.
func (c *CompletionClient) GenerateNotes(ctx context.Context, transcript string, participants []string) (string, error) {
	if transcript == "" {
		return "", fmt.Errorf("transcript text is empty")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildNotesPrompt(transcript, participants)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from completion API")
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name, recorded on generated notes.
func (c *CompletionClient) Model() string {
	return c.model
}
