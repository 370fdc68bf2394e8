// Package completion wraps the chat completion backend. The assistant is
// served by any OpenAI-compatible API; the default configuration points
// the SDK at Groq's gateway.
package completion

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

// Role tags a chat message with its author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation history. Order is
// chronological and significant.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Usage carries the backend's token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Reply is the backend's answer to one completion request.
type Reply struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Backend produces one completion for an ordered message sequence. The
// orchestrator depends on this interface so tests can inject fakes.
type Backend interface {
	Complete(ctx context.Context, messages []Message) (*Reply, error)
}

// DefaultGroqBaseURL routes the OpenAI SDK to Groq's compatible API.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is used when no model is configured.
const DefaultModel = "llama-3.3-70b-versatile"

// Request shape shared by every turn, mirroring the assistant's original
// sampling configuration.
const (
	temperature = 0.7
	maxTokens   = 2048
	topP        = 1.0
)

// fallbackReply is returned when the backend produces no choices.
const fallbackReply = "I apologize, but I could not generate a response."

// Client calls an OpenAI-compatible chat completion API.
type Client struct {
	api   openai.Client
	model string
	log   zerolog.Logger
}

var _ Backend = (*Client)(nil)

// NewClient builds a completion client. Empty baseURL and model select
// the Groq defaults.
func NewClient(apiKey, baseURL, model string, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing completion API key")
	}
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	api := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &Client{
		api:   api,
		model: model,
		log:   log.With().Str("component", "completion").Str("model", model).Logger(),
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the message sequence to the backend and returns the
// first choice.
func (c *Client) Complete(ctx context.Context, messages []Message) (*Reply, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages for completion")
	}

	params := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    toChatMessages(messages),
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
		TopP:        openai.Float(topP),
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	content := fallbackReply
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		content = resp.Choices[0].Message.Content
	}

	c.log.Debug().
		Int("messages", len(messages)).
		Int64("total_tokens", resp.Usage.TotalTokens).
		Msg("Completion received")

	return &Reply{
		Content: content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func toChatMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
