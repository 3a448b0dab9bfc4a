package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/egxadev/wa-webhook/internal/models"
	"github.com/egxadev/wa-webhook/internal/whatsapp"
)

// WhatsAppService sends messages over a direct WhatsApp connection. Like
// Twilio, the connection only carries plain text here, so interactive
// payloads are flattened.
type WhatsAppService struct {
	sender whatsapp.Sender
}

// NewWhatsAppService wraps a WhatsApp sender as a messaging service.
func NewWhatsAppService(sender whatsapp.Sender) *WhatsAppService {
	return &WhatsAppService{sender: sender}
}

// SendMessage flattens the message to text and sends it.
func (s *WhatsAppService) SendMessage(ctx context.Context, roomID string, msg models.Message) error {
	body := FlattenToText(msg)
	if body == "" {
		return fmt.Errorf("message flattened to empty body for room %s", roomID)
	}
	if err := s.sender.SendMessage(ctx, roomID, body); err != nil {
		return fmt.Errorf("failed to send message to %s: %w", roomID, err)
	}
	slog.Debug("WhatsAppService message sent", "roomID", roomID, "type", msg.Type)
	return nil
}

// Stop disconnects the underlying client when it supports it.
func (s *WhatsAppService) Stop() error {
	if c, ok := s.sender.(*whatsapp.Client); ok {
		c.Disconnect()
	}
	return nil
}
