package messaging

import (
	"context"
	"strings"
	"testing"

	"github.com/egxadev/wa-webhook/internal/models"
	"github.com/egxadev/wa-webhook/internal/whatsapp"
)

func TestWhatsAppServiceFlattensInteractive(t *testing.T) {
	mock := whatsapp.NewMockClient()
	svc := NewWhatsAppService(mock)

	msg := models.NewButtonMessage("Pilih:", []models.Button{
		{ID: "a", Title: "Opsi A"},
		{ID: "b", Title: "Opsi B"},
	})
	if err := svc.SendMessage(context.Background(), "628123456789", msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Sent) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(mock.Sent))
	}
	sent := mock.Sent[0]
	if sent.To != "628123456789" {
		t.Errorf("unexpected recipient %q", sent.To)
	}
	if !strings.Contains(sent.Body, "1. Opsi A") || !strings.Contains(sent.Body, "2. Opsi B") {
		t.Errorf("expected numbered options in %q", sent.Body)
	}
}

func TestWhatsAppServiceRejectsEmptyBody(t *testing.T) {
	mock := whatsapp.NewMockClient()
	svc := NewWhatsAppService(mock)

	if err := svc.SendMessage(context.Background(), "628123456789", models.Message{Type: "video"}); err == nil {
		t.Error("expected error for message with no text rendering")
	}
	if len(mock.Sent) != 0 {
		t.Error("nothing should be sent")
	}
}
