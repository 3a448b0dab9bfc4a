// Package whatsapp wraps the whatsmeow client for direct WhatsApp delivery.
//
// The bot only sends through this client; inbound traffic arrives via the
// platform webhook, so no event handlers are registered.
package whatsapp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/egxadev/wa-webhook/internal/store"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"
)

const (
	// DefaultSQLitePath is the default whatsmeow session database location.
	DefaultSQLitePath = "/var/lib/wa-webhook/whatsmeow.db"
	// JIDSuffix is the WhatsApp JID suffix for regular users.
	JIDSuffix = "s.whatsapp.net"
)

// Sender sends plain text WhatsApp messages.
type Sender interface {
	SendMessage(ctx context.Context, to string, body string) error
}

// Opts holds configuration options for the WhatsApp client.
type Opts struct {
	DBDSN       string // whatsmeow session database connection string
	QRPath      string // path to write the login QR code
	NumericCode bool   // print the numeric login code instead of a QR code
}

// Option defines a configuration option for the WhatsApp client.
type Option func(*Opts)

// WithDBDSN sets the whatsmeow session database connection string.
func WithDBDSN(dsn string) Option {
	return func(o *Opts) { o.DBDSN = dsn }
}

// WithQRCodeOutput writes the login QR code to the given path instead of stdout.
func WithQRCodeOutput(path string) Option {
	return func(o *Opts) { o.QRPath = path }
}

// WithNumericCode prints the numeric login code instead of rendering a QR code.
func WithNumericCode() Option {
	return func(o *Opts) { o.NumericCode = true }
}

// Client wraps the whatsmeow client for send-only use.
type Client struct {
	waClient *whatsmeow.Client
}

// NewClient creates and connects a WhatsApp client, running the QR login
// flow when no stored session exists.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	dbDSN := cfg.DBDSN
	if dbDSN == "" {
		dbDSN = DefaultSQLitePath
		slog.Debug("WhatsApp NewClient using default SQLite session path", "path", dbDSN)
	}

	dbDriver := "sqlite3"
	if store.DetectDSNType(dbDSN) == store.DSNTypePostgres {
		dbDriver = "postgres"
	} else if !strings.Contains(dbDSN, "foreign_keys") {
		slog.Warn("WhatsApp session database has no foreign_keys flag; whatsmeow recommends '?_foreign_keys=on'",
			"dsn_example", "file:"+dbDSN+"?_foreign_keys=on")
	}

	ctx := context.Background()
	container, err := sqlstore.New(ctx, dbDriver, dbDSN, waLog.Stdout("Database", "INFO", true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize WhatsApp session store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device from WhatsApp session store: %w", err)
	}

	waClient := whatsmeow.NewClient(deviceStore, waLog.Stdout("Client", "INFO", true))

	if waClient.Store.ID == nil {
		slog.Info("WhatsApp login required, starting QR code flow")
		qrChan, _ := waClient.GetQRChannel(context.Background())
		if err := waClient.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect to WhatsApp during login: %w", err)
		}
		writer := io.Writer(os.Stdout)
		if cfg.QRPath != "" {
			f, ferr := os.Create(cfg.QRPath)
			if ferr != nil {
				return nil, fmt.Errorf("failed to create QR file: %w", ferr)
			}
			defer f.Close()
			writer = f
		}
		for evt := range qrChan {
			if evt.Event == "code" {
				if cfg.NumericCode {
					fmt.Fprintln(writer, evt.Code)
				} else {
					qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, writer)
				}
			} else {
				slog.Debug("WhatsApp login event", "event", evt.Event)
			}
		}
	} else {
		if err := waClient.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect to WhatsApp server: %w", err)
		}
	}

	slog.Info("WhatsApp client connected")
	return &Client{waClient: waClient}, nil
}

// SendMessage sends a plain text message to the given phone number.
func (c *Client) SendMessage(ctx context.Context, to string, body string) error {
	if c.waClient == nil {
		return fmt.Errorf("whatsapp client not initialized")
	}
	if to == "" {
		return fmt.Errorf("recipient cannot be empty")
	}
	if body == "" {
		return fmt.Errorf("message body cannot be empty")
	}

	jid := types.NewJID(to, JIDSuffix)
	msg := &waE2E.Message{Conversation: &body}
	if _, err := c.waClient.SendMessage(ctx, jid, msg); err != nil {
		slog.Error("WhatsApp SendMessage failed", "error", err, "to", to)
		return fmt.Errorf("failed to send message to %s: %w", to, err)
	}

	slog.Debug("WhatsApp message sent", "to", to)
	return nil
}

// Disconnect closes the connection to the WhatsApp servers.
func (c *Client) Disconnect() {
	if c.waClient != nil {
		c.waClient.Disconnect()
	}
}

// MockClient implements Sender without a real WhatsApp connection.
type MockClient struct {
	Sent []MockSent
}

// MockSent records one SendMessage call.
type MockSent struct {
	To   string
	Body string
}

// NewMockClient creates an empty mock sender.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// SendMessage records the message and succeeds.
func (m *MockClient) SendMessage(ctx context.Context, to string, body string) error {
	m.Sent = append(m.Sent, MockSent{To: to, Body: body})
	return nil
}
