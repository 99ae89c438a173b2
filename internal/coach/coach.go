// Package coach talks to a hosted chat-completion model on behalf of the
// user, prefixing every conversation with a persona prompt and a summary of
// the user's current data.
package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/terraincognita07/gymbro/internal/models"
)

const (
	DefaultModel        = openai.GPT4oMini
	maxResponseTokens   = 500
	responseTemperature = 0.7
	maxSnapshotCheckIns = 5
)

const (
	NotConfiguredReply = "OpenAI API key not configured. Add OPENAI_API_KEY to your .env file."
	EmptyReply         = "No response generated."
	FailureReply       = "Sorry, I encountered an error. Please try again."
)

var (
	ErrEmptyConversation = errors.New("messages are required")
	ErrInvalidMessage    = errors.New("messages must have role user or assistant and non-empty content")
)

// ChatCompleter is the part of the go-openai client the coach uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Coach struct {
	client ChatCompleter
	model  string
	logger *slog.Logger
}

// New builds a coach from configuration. Without an API key the coach stays
// unconfigured and answers every message with NotConfiguredReply.
func New(config Config, logger *slog.Logger) *Coach {
	var client ChatCompleter
	if apiKey := strings.TrimSpace(config.APIKey); apiKey != "" {
		clientConfig := openai.DefaultConfig(apiKey)
		if baseURL := strings.TrimSpace(config.BaseURL); baseURL != "" {
			clientConfig.BaseURL = strings.TrimRight(baseURL, "/")
		}
		client = openai.NewClientWithConfig(clientConfig)
	}
	return NewWithClient(client, config.Model, logger)
}

func NewWithClient(client ChatCompleter, model string, logger *slog.Logger) *Coach {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coach{client: client, model: model, logger: logger}
}

func (coach *Coach) Configured() bool {
	return coach.client != nil
}

func (coach *Coach) Model() string {
	return coach.model
}

// Send returns the assistant's reply to the conversation.
func (coach *Coach) Send(ctx context.Context, history []models.ChatMessage, snapshot Snapshot) (string, error) {
	if err := ValidateHistory(history); err != nil {
		return "", err
	}
	if !coach.Configured() {
		return NotConfiguredReply, nil
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: BuildSystemPrompt(snapshot),
	})
	for _, message := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: message.Role, Content: message.Content})
	}

	response, err := coach.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       coach.model,
		Messages:    messages,
		MaxTokens:   maxResponseTokens,
		Temperature: responseTemperature,
	})
	if err != nil {
		coach.logger.Error("chat completion failed", slog.String("model", coach.model), slog.String("error", err.Error()))
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return EmptyReply, nil
	}
	return response.Choices[0].Message.Content, nil
}

func ValidateHistory(history []models.ChatMessage) error {
	if len(history) == 0 {
		return ErrEmptyConversation
	}
	for _, message := range history {
		if message.Role != models.ChatRoleUser && message.Role != models.ChatRoleAssistant {
			return ErrInvalidMessage
		}
		if strings.TrimSpace(message.Content) == "" {
			return ErrInvalidMessage
		}
	}
	return nil
}
