package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/egxadev/wa-webhook/internal/models"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioOpts holds configuration options for the Twilio backend.
type TwilioOpts struct {
	AccountSID string
	AuthToken  string
	FromWhats  string // sender in "whatsapp:+1234567890" format
}

// TwilioOption defines a configuration option for the Twilio backend.
type TwilioOption func(*TwilioOpts)

// WithTwilioAccountSID sets the Twilio account SID.
func WithTwilioAccountSID(sid string) TwilioOption {
	return func(o *TwilioOpts) { o.AccountSID = sid }
}

// WithTwilioAuthToken sets the Twilio auth token.
func WithTwilioAuthToken(token string) TwilioOption {
	return func(o *TwilioOpts) { o.AuthToken = token }
}

// WithTwilioFrom sets the WhatsApp sender number.
func WithTwilioFrom(from string) TwilioOption {
	return func(o *TwilioOpts) { o.FromWhats = from }
}

// TwilioService sends messages through the Twilio WhatsApp API. The API only
// carries plain text, so interactive payloads are flattened.
type TwilioService struct {
	client    *twilio.RestClient
	fromWhats string
}

// NewTwilioService creates a Twilio-backed messaging service, falling back
// to the TWILIO_* environment variables for unset options.
func NewTwilioService(opts ...TwilioOption) (*TwilioService, error) {
	var cfg TwilioOpts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.AccountSID == "" {
		cfg.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	}
	if cfg.FromWhats == "" {
		cfg.FromWhats = os.Getenv("TWILIO_FROM_NUMBER")
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("account SID and auth token must be provided")
	}
	if cfg.FromWhats == "" {
		return nil, fmt.Errorf("from number must be provided")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioService{client: client, fromWhats: cfg.FromWhats}, nil
}

// SendMessage flattens the message to text and sends it via Twilio.
func (s *TwilioService) SendMessage(ctx context.Context, roomID string, msg models.Message) error {
	body := FlattenToText(msg)
	if body == "" {
		return fmt.Errorf("message flattened to empty body for room %s", roomID)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + roomID)
	params.SetFrom(s.fromWhats)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		slog.Error("TwilioService SendMessage failed", "error", err, "roomID", roomID)
		return fmt.Errorf("failed to send message to %s: %w", roomID, err)
	}

	slog.Debug("TwilioService message sent", "roomID", roomID, "type", msg.Type)
	return nil
}

// Stop is a no-op; the Twilio REST client holds no long-lived resources.
func (s *TwilioService) Stop() error {
	return nil
}
