package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTextMessage(t *testing.T) {
	msg := NewTextMessage("hello")
	if err := msg.Validate(); err != nil {
		t.Errorf("expected valid text message, got %v", err)
	}

	empty := NewTextMessage("")
	if err := empty.Validate(); !errors.Is(err, ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

func TestValidateButtonMessage(t *testing.T) {
	buttons := []Button{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	msg := NewButtonMessage("pick one", buttons)
	if err := msg.Validate(); err != nil {
		t.Errorf("expected valid button message, got %v", err)
	}

	none := NewButtonMessage("pick one", nil)
	if err := none.Validate(); !errors.Is(err, ErrNoButtons) {
		t.Errorf("expected ErrNoButtons, got %v", err)
	}

	many := NewButtonMessage("pick one", []Button{
		{ID: "1", Title: "1"}, {ID: "2", Title: "2"}, {ID: "3", Title: "3"}, {ID: "4", Title: "4"},
	})
	if err := many.Validate(); !errors.Is(err, ErrTooManyButtons) {
		t.Errorf("expected ErrTooManyButtons, got %v", err)
	}

	untitled := NewButtonMessage("pick one", []Button{{ID: "a"}})
	if err := untitled.Validate(); !errors.Is(err, ErrEmptyButtonTitle) {
		t.Errorf("expected ErrEmptyButtonTitle, got %v", err)
	}
}

func TestValidateListMessage(t *testing.T) {
	sections := []ListSection{{Title: "Opsi", Rows: []ListRow{{ID: "a", Title: "A"}}}}
	msg := NewListMessage("pick", "Lihat", sections)
	if err := msg.Validate(); err != nil {
		t.Errorf("expected valid list message, got %v", err)
	}

	var rows []ListRow
	for i := 0; i < MaxListRowCount+1; i++ {
		rows = append(rows, ListRow{ID: "x", Title: "X"})
	}
	many := NewListMessage("pick", "Lihat", []ListSection{{Rows: rows}})
	if err := many.Validate(); !errors.Is(err, ErrTooManyListRows) {
		t.Errorf("expected ErrTooManyListRows, got %v", err)
	}

	long := NewListMessage("pick", "Lihat", []ListSection{
		{Rows: []ListRow{{ID: "a", Title: strings.Repeat("x", MaxRowTitleLength+1)}}},
	})
	if err := long.Validate(); !errors.Is(err, ErrRowTitleTooLong) {
		t.Errorf("expected ErrRowTitleTooLong, got %v", err)
	}

	noSections := NewListMessage("pick", "Lihat", nil)
	if err := noSections.Validate(); !errors.Is(err, ErrNoListSections) {
		t.Errorf("expected ErrNoListSections, got %v", err)
	}
}

func TestValidateUnknownType(t *testing.T) {
	msg := Message{Type: "video"}
	if err := msg.Validate(); !errors.Is(err, ErrUnknownMessageType) {
		t.Errorf("expected ErrUnknownMessageType, got %v", err)
	}
}

func TestTruncateTitle(t *testing.T) {
	short := "Apa manfaat utama?"
	if got := TruncateTitle(short); got != short {
		t.Errorf("short title should pass through, got %q", got)
	}

	long := strings.Repeat("panjang ", 10)
	got := TruncateTitle(long)
	if runes := []rune(got); len(runes) != MaxRowTitleLength {
		t.Errorf("expected truncated title of %d runes, got %d", MaxRowTitleLength, len(runes))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}

	// Multi-byte runes must not be split.
	unicodeTitle := strings.Repeat("ä", MaxRowTitleLength+5)
	got = TruncateTitle(unicodeTitle)
	if runes := []rune(got); len(runes) != MaxRowTitleLength {
		t.Errorf("expected %d runes for unicode title, got %d", MaxRowTitleLength, len(runes))
	}
}

func TestIsCustomerMessage(t *testing.T) {
	payload := WebhookPayload{
		DataEvent:       DataEventCustomerMessage,
		WebhookEvent:    WebhookEventMessageInteraction,
		ParticipantType: ParticipantTypeCustomer,
		RoomID:          "room-1",
		Text:            "halo",
	}
	if !payload.IsCustomerMessage() {
		t.Error("expected genuine customer message to match")
	}

	agent := payload
	agent.ParticipantType = "agent"
	if agent.IsCustomerMessage() {
		t.Error("agent message must not match")
	}

	status := payload
	status.DataEvent = "message_status"
	if status.IsCustomerMessage() {
		t.Error("status event must not match")
	}
}

func TestAPIResponseBuilders(t *testing.T) {
	ok := Success(map[string]int{"n": 1})
	if ok.Status != string(APIStatusOK) || ok.Result == nil {
		t.Errorf("unexpected success response: %+v", ok)
	}

	withMsg := SuccessWithMessage("done", nil)
	if withMsg.Message != "done" {
		t.Errorf("unexpected message: %q", withMsg.Message)
	}

	fail := Error("boom")
	if fail.Status != string(APIStatusError) || fail.Message != "boom" {
		t.Errorf("unexpected error response: %+v", fail)
	}
}
