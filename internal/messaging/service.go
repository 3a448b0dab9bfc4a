// Package messaging delivers outbound messages to the user's WhatsApp
// conversation through one of several interchangeable backends.
//
// The Qontak backend speaks the platform's native interactive message API;
// the Twilio and direct WhatsApp backends only carry plain text, so
// interactive payloads are flattened to numbered text for them.
package messaging

import (
	"context"
	"fmt"
	"strings"

	"github.com/egxadev/wa-webhook/internal/models"
)

// Service sends resolved outbound messages to a conversation.
type Service interface {
	SendMessage(ctx context.Context, roomID string, msg models.Message) error
	Stop() error
}

// FlattenToText renders an interactive message as plain text with numbered
// options. Selection still works because the resolver partial-matches option
// titles typed back by the user.
func FlattenToText(msg models.Message) string {
	switch msg.Type {
	case models.MessageTypeText:
		return msg.Text
	case models.MessageTypeButton:
		if msg.Interactive == nil {
			return ""
		}
		var b strings.Builder
		b.WriteString(msg.Interactive.Body)
		for i, btn := range msg.Interactive.Buttons {
			b.WriteString(fmt.Sprintf("\n%d. %s", i+1, btn.Title))
		}
		return b.String()
	case models.MessageTypeList:
		if msg.Interactive == nil || msg.Interactive.Lists == nil {
			return ""
		}
		var b strings.Builder
		b.WriteString(msg.Interactive.Body)
		n := 0
		for _, section := range msg.Interactive.Lists.Sections {
			if section.Title != "" {
				b.WriteString("\n\n*" + section.Title + "*")
			}
			for _, row := range section.Rows {
				n++
				b.WriteString(fmt.Sprintf("\n%d. %s", n, row.Title))
			}
		}
		return b.String()
	default:
		return ""
	}
}

// MockService records sent messages for tests.
type MockService struct {
	Sent    []MockSent
	SendErr error
	Stopped bool
}

// MockSent is one recorded SendMessage call.
type MockSent struct {
	RoomID  string
	Message models.Message
}

// NewMockService creates an empty mock service.
func NewMockService() *MockService {
	return &MockService{}
}

// SendMessage records the message and returns the configured error.
func (m *MockService) SendMessage(ctx context.Context, roomID string, msg models.Message) error {
	m.Sent = append(m.Sent, MockSent{RoomID: roomID, Message: msg})
	return m.SendErr
}

// Stop marks the service stopped.
func (m *MockService) Stop() error {
	m.Stopped = true
	return nil
}
