package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"comanda/internal/config"
	"comanda/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider implements Provider on the OpenAI chat API.
type OpenAIProvider struct {
	client      *openai.LLM
	model       string
	temperature float64
}

// NewOpenAI creates the production completion provider. A missing
// OPENAI_API_KEY is a configuration error surfaced here, at startup, rather
// than swallowed in the dialogue path.
func NewOpenAI(cfg config.Config) (*OpenAIProvider, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	client, err := openai.New(
		openai.WithToken(key),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIProvider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Complete sends the system prompt plus the recent turns and returns the
// assistant text verbatim.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt string, turns []models.ConversationTurn) (string, error) {
	messages := make([]llms.MessageContent, 0, len(turns)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	for _, t := range turns {
		msgType := llms.ChatMessageTypeHuman
		if t.Role == models.RoleAssistant {
			msgType = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(msgType, t.Content))
	}

	response, err := p.client.GenerateContent(ctx, messages,
		llms.WithModel(p.model),
		llms.WithTemperature(p.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from completion provider")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
