package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// mockChatService returns a canned completion or error.
type mockChatService struct {
	resp       *openai.ChatCompletion
	err        error
	lastParams openai.ChatCompletionNewParams
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.lastParams = params
	return m.resp, m.err
}

func completionWith(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient(); err == nil {
		t.Error("expected error without API key")
	}
}

func TestNewClientUsesEnvKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	client, err := NewClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.model != openai.ChatModelGPT4oMini {
		t.Errorf("expected default model, got %s", client.model)
	}
}

func TestNewClientModelOverride(t *testing.T) {
	client, err := NewClient(WithAPIKey("sk-test"), WithModel("gpt-4o"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(client.model) != "gpt-4o" {
		t.Errorf("expected model override, got %s", client.model)
	}
}

func TestGenerateReply(t *testing.T) {
	mock := &mockChatService{resp: completionWith("  Halo! Ada yang bisa dibantu?  ")}
	client := &Client{chat: mock, model: openai.ChatModelGPT4oMini}

	reply, err := client.GenerateReply(context.Background(), "apa itu silverstream?", "produk kesehatan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Halo! Ada yang bisa dibantu?" {
		t.Errorf("expected trimmed reply, got %q", reply)
	}

	if len(mock.lastParams.Messages) != 3 {
		t.Fatalf("expected system + context + user messages, got %d", len(mock.lastParams.Messages))
	}
}

func TestGenerateReplyWithoutContext(t *testing.T) {
	mock := &mockChatService{resp: completionWith("ok")}
	client := &Client{chat: mock, model: openai.ChatModelGPT4oMini}

	if _, err := client.GenerateReply(context.Background(), "halo", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.lastParams.Messages) != 2 {
		t.Errorf("expected system + user messages, got %d", len(mock.lastParams.Messages))
	}
}

func TestGenerateReplyErrors(t *testing.T) {
	tests := []struct {
		name string
		mock *mockChatService
		want string
	}{
		{"api error", &mockChatService{err: errors.New("rate limited")}, "chat completion failed"},
		{"no choices", &mockChatService{resp: &openai.ChatCompletion{}}, "no choices"},
		{"empty reply", &mockChatService{resp: completionWith("   ")}, "empty reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{chat: tt.mock, model: openai.ChatModelGPT4oMini}
			_, err := client.GenerateReply(context.Background(), "halo", "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
