package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"oscesim/app/config"
	"oscesim/app/util/apperr"

	"github.com/sashabaranov/go-openai"
)

const maxGenerateDuration = 30 * time.Second

// Message is a single prior turn supplied as conversation history.
type Message struct {
	Role    string
	Content string
}

// Request describes one completion call. System carries the instruction
// context, History the prior turns (may be empty), User the new input
// (may be empty for instruction-only calls such as greetings).
type Request struct {
	System      string
	History     []Message
	User        string
	Temperature float32
	MaxTokens   int
}

// Generator is the narrow capability the core depends on. Tests substitute
// a deterministic implementation.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(cfg config.ModelConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxGenerateDuration,
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, msg := range req.History {
		role := msg.Role
		if role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	if req.User != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.User,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, maxGenerateDuration)
	defer cancel()

	aiResponse, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", apperr.ErrUpstreamFailure, err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("%w: no chat completion found", apperr.ErrUpstreamFailure)
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
