// Package models defines the core data structures for wa-webhook.
//
// It includes the outbound message variants, the inbound webhook payload,
// and shared API response types used across modules.
package models

import (
	"errors"
	"time"
)

// MessageType defines the renderable kind of an outbound message.
type MessageType string

const (
	// MessageTypeText is a plain text message.
	MessageTypeText MessageType = "text"
	// MessageTypeButton is an interactive message with reply buttons.
	MessageTypeButton MessageType = "button"
	// MessageTypeList is an interactive message with a row list.
	MessageTypeList MessageType = "list"
)

// Limits imposed by the WhatsApp interactive message API.
const (
	// MaxButtonCount is the maximum number of reply buttons per message.
	MaxButtonCount = 3
	// MaxListRowCount is the maximum total number of rows across all sections.
	MaxListRowCount = 10
	// MaxRowTitleLength is the maximum display length of a list row title.
	MaxRowTitleLength = 24
)

// Error variables for message validation.
var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrEmptyBody          = errors.New("message body cannot be empty")
	ErrNoButtons          = errors.New("button message requires at least one button")
	ErrTooManyButtons     = errors.New("button message exceeds maximum button count")
	ErrEmptyButtonTitle   = errors.New("button title cannot be empty")
	ErrNoListSections     = errors.New("list message requires at least one section")
	ErrTooManyListRows    = errors.New("list message exceeds maximum total row count")
	ErrRowTitleTooLong    = errors.New("list row title exceeds maximum length")
)

// Button is a selectable reply button.
type Button struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListRow is a single selectable row within a list section.
type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListSection groups list rows under an optional section title.
type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

// ListBlock holds the list button label and its sections.
type ListBlock struct {
	Button   string        `json:"button"`
	Sections []ListSection `json:"sections"`
}

// Interactive holds the payload shared by button and list messages.
type Interactive struct {
	Body    string     `json:"body"`
	Buttons []Button   `json:"buttons,omitempty"`
	Lists   *ListBlock `json:"lists,omitempty"`
}

// Message is the tagged outbound message variant. Exactly one of Text or
// Interactive is populated depending on Type.
type Message struct {
	Type        MessageType  `json:"type"`
	Text        string       `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

// NewTextMessage builds a plain text message.
func NewTextMessage(text string) Message {
	return Message{Type: MessageTypeText, Text: text}
}

// NewButtonMessage builds an interactive button message.
func NewButtonMessage(body string, buttons []Button) Message {
	return Message{
		Type:        MessageTypeButton,
		Interactive: &Interactive{Body: body, Buttons: buttons},
	}
}

// NewListMessage builds an interactive list message.
func NewListMessage(body, buttonLabel string, sections []ListSection) Message {
	return Message{
		Type: MessageTypeList,
		Interactive: &Interactive{
			Body:  body,
			Lists: &ListBlock{Button: buttonLabel, Sections: sections},
		},
	}
}

// Validate checks the message against the platform limits for its type.
func (m *Message) Validate() error {
	switch m.Type {
	case MessageTypeText:
		if m.Text == "" {
			return ErrEmptyBody
		}
		return nil
	case MessageTypeButton:
		return m.validateButton()
	case MessageTypeList:
		return m.validateList()
	default:
		return ErrUnknownMessageType
	}
}

func (m *Message) validateButton() error {
	if m.Interactive == nil || m.Interactive.Body == "" {
		return ErrEmptyBody
	}
	if len(m.Interactive.Buttons) == 0 {
		return ErrNoButtons
	}
	if len(m.Interactive.Buttons) > MaxButtonCount {
		return ErrTooManyButtons
	}
	for _, b := range m.Interactive.Buttons {
		if b.Title == "" {
			return ErrEmptyButtonTitle
		}
	}
	return nil
}

func (m *Message) validateList() error {
	if m.Interactive == nil || m.Interactive.Body == "" {
		return ErrEmptyBody
	}
	if m.Interactive.Lists == nil || len(m.Interactive.Lists.Sections) == 0 {
		return ErrNoListSections
	}
	total := 0
	for _, section := range m.Interactive.Lists.Sections {
		total += len(section.Rows)
		for _, row := range section.Rows {
			if len([]rune(row.Title)) > MaxRowTitleLength {
				return ErrRowTitleTooLong
			}
		}
	}
	if total > MaxListRowCount {
		return ErrTooManyListRows
	}
	return nil
}

// TruncateTitle shortens s to the platform row-title limit, rune-aware.
func TruncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxRowTitleLength {
		return s
	}
	return string(runes[:MaxRowTitleLength-1]) + "…"
}

// Sentinel values identifying a genuine inbound customer message.
const (
	DataEventCustomerMessage       = "receive_message_from_customer"
	WebhookEventMessageInteraction = "message_interaction"
	ParticipantTypeCustomer        = "customer"
)

// WebhookPayload is the inbound webhook body delivered by the messaging
// platform. Only a subset of the fields is relevant to the bot.
type WebhookPayload struct {
	DataEvent       string `json:"data_event"`
	WebhookEvent    string `json:"webhook_event"`
	ParticipantType string `json:"participant_type"`
	RoomID          string `json:"room_id"`
	Text            string `json:"text,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
}

// IsCustomerMessage reports whether the payload is a genuine customer
// message that should be processed. Anything else is acknowledged and
// ignored.
func (p *WebhookPayload) IsCustomerMessage() bool {
	return p.DataEvent == DataEventCustomerMessage &&
		p.WebhookEvent == WebhookEventMessageInteraction &&
		p.ParticipantType == ParticipantTypeCustomer
}

// PurchaseInquiry is a completed purchase-inquiry form submission.
type PurchaseInquiry struct {
	RoomID    string    `json:"room_id"`
	BuyerType string    `json:"buyer_type"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	City      string    `json:"city"`
	Purpose   string    `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse is the standard JSON envelope returned by the HTTP layer.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
