// Package store provides persistence for completed purchase inquiries.
//
// Completed form submissions are sales leads; they outlive the conversation
// and are written to an in-memory, SQLite or PostgreSQL backend.
package store

import (
	"strings"
	"sync"

	"github.com/egxadev/wa-webhook/internal/models"
)

// DSN type identifiers returned by DetectDSNType.
const (
	DSNTypePostgres = "postgres"
	DSNTypeSQLite   = "sqlite3"
)

// DetectDSNType classifies a connection string as PostgreSQL or SQLite.
// Anything that is not an obvious Postgres URL or key-value DSN is treated
// as a SQLite file path.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DSNTypePostgres
	}
	if strings.Contains(dsn, "host=") || strings.Contains(dsn, "dbname=") {
		return DSNTypePostgres
	}
	return DSNTypeSQLite
}

// Store persists purchase inquiries.
type Store interface {
	SaveInquiry(inquiry models.PurchaseInquiry) error
	ListInquiries() ([]models.PurchaseInquiry, error)
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option defines a configuration option for store backends.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// InMemoryStore keeps inquiries in process memory. Used when no DSN is
// configured and in tests.
type InMemoryStore struct {
	mu        sync.Mutex
	inquiries []models.PurchaseInquiry
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveInquiry appends the inquiry.
func (s *InMemoryStore) SaveInquiry(inquiry models.PurchaseInquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inquiries = append(s.inquiries, inquiry)
	return nil
}

// ListInquiries returns a copy of all stored inquiries.
func (s *InMemoryStore) ListInquiries() ([]models.PurchaseInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PurchaseInquiry, len(s.inquiries))
	copy(out, s.inquiries)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
