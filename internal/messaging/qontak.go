package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/egxadev/wa-webhook/internal/models"
)

// Qontak Open API defaults.
const (
	DefaultQontakBaseURL = "https://service-chat.qontak.com/api/open/v1"
	// DefaultHTTPTimeout bounds every outbound API call.
	DefaultHTTPTimeout = 15 * time.Second

	textEndpoint        = "/messages/whatsapp/bot"
	interactiveEndpoint = "/messages/whatsapp/interactive_message/bot"
)

// QontakOpts holds configuration options for the Qontak service.
type QontakOpts struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// QontakOption defines a configuration option for the Qontak service.
type QontakOption func(*QontakOpts)

// WithQontakBaseURL overrides the API base URL (used in tests).
func WithQontakBaseURL(url string) QontakOption {
	return func(o *QontakOpts) { o.BaseURL = url }
}

// WithQontakHTTPClient overrides the HTTP client.
func WithQontakHTTPClient(client *http.Client) QontakOption {
	return func(o *QontakOpts) { o.Client = client }
}

// QontakService sends messages through the Qontak Open API. Text messages
// and interactive messages go to separate endpoints.
type QontakService struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewQontakService creates a Qontak-backed messaging service.
func NewQontakService(token string, opts ...QontakOption) (*QontakService, error) {
	cfg := QontakOpts{Token: token}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("qontak bearer token must be provided")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultQontakBaseURL
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &QontakService{baseURL: cfg.BaseURL, token: cfg.Token, client: cfg.Client}, nil
}

// qontakTextPayload is the wire format for plain text messages.
type qontakTextPayload struct {
	RoomID string `json:"room_id"`
	Type   string `json:"type"`
	Text   string `json:"text"`
}

// qontakInteractivePayload is the wire format for button and list messages.
type qontakInteractivePayload struct {
	RoomID      string            `json:"room_id"`
	Type        string            `json:"type"`
	Interactive qontakInteractive `json:"interactive"`
}

type qontakInteractive struct {
	Body    string            `json:"body"`
	Buttons []models.Button   `json:"buttons,omitempty"`
	Lists   *models.ListBlock `json:"lists,omitempty"`
}

// SendMessage translates the message to the Qontak wire format and posts it.
func (s *QontakService) SendMessage(ctx context.Context, roomID string, msg models.Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("refusing to send invalid message to %s: %w", roomID, err)
	}

	var endpoint string
	var payload any
	switch msg.Type {
	case models.MessageTypeText:
		endpoint = textEndpoint
		payload = qontakTextPayload{RoomID: roomID, Type: "text", Text: msg.Text}
	case models.MessageTypeButton:
		endpoint = interactiveEndpoint
		payload = qontakInteractivePayload{
			RoomID: roomID,
			Type:   "interactive",
			Interactive: qontakInteractive{
				Body:    msg.Interactive.Body,
				Buttons: msg.Interactive.Buttons,
			},
		}
	case models.MessageTypeList:
		endpoint = interactiveEndpoint
		payload = qontakInteractivePayload{
			RoomID: roomID,
			Type:   "interactive",
			Interactive: qontakInteractive{
				Body:  msg.Interactive.Body,
				Lists: msg.Interactive.Lists,
			},
		}
	default:
		return fmt.Errorf("unsupported message type %q", msg.Type)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("QontakService SendMessage request failed", "error", err, "roomID", roomID)
		return fmt.Errorf("failed to send message to room %s: %w", roomID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Error("QontakService SendMessage rejected", "status", resp.StatusCode, "roomID", roomID, "body", string(respBody))
		return fmt.Errorf("qontak API returned status %d for room %s", resp.StatusCode, roomID)
	}

	slog.Debug("QontakService message sent", "roomID", roomID, "type", msg.Type)
	return nil
}

// Stop is a no-op; the HTTP client holds no long-lived resources.
func (s *QontakService) Stop() error {
	return nil
}
