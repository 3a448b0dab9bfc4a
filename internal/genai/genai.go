// Package genai generates free-text replies for AI-kind conversation states
// using the OpenAI API.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// systemPrompt frames every generation. Replies must stay short and in the
// same casual Indonesian register as the static conversation tree.
const systemPrompt = "Kamu adalah asisten customer service untuk produk kesehatan " +
	"(SilverStream, Stimel-02, AkuSehat). Jawab singkat, ramah dan santai dalam " +
	"bahasa Indonesia. Kalau tidak yakin, arahkan user untuk ketik *menu*."

// chatService is the minimal chat-completion surface, satisfied by the real
// OpenAI service and by mocks in tests.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey string
	Model  string
}

// Option defines a configuration option for the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// Client wraps the OpenAI chat-completion service.
type Client struct {
	chat  chatService
	model openai.ChatModel
}

// NewClient creates a GenAI client, falling back to the OPENAI_API_KEY
// environment variable when no key option is given.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	model := openai.ChatModelGPT4oMini
	if cfg.Model != "" {
		model = openai.ChatModel(cfg.Model)
	}

	cli := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{chat: &cli.Chat.Completions, model: model}, nil
}

// GenerateReply produces a reply for the user's input given the state's
// prompt context. Callers fall back to canned text on any error.
func (c *Client) GenerateReply(ctx context.Context, input, promptContext string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	if promptContext != "" {
		messages = append(messages, openai.SystemMessage("Konteks:\n"+promptContext))
	}
	messages = append(messages, openai.UserMessage(input))

	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("empty reply returned")
	}
	slog.Debug("GenAI reply generated", "input_length", len(input), "reply_length", len(reply))
	return reply, nil
}
