package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/egxadev/wa-webhook/internal/models"
	_ "github.com/lib/pq"
)

// Connection pool configuration.
const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists inquiries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL with the DSN and applies migrations.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open Postgres connection: %w", err)
	}
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Postgres database: %w", err)
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("PostgresStore connected")
	return &PostgresStore{db: db}, nil
}

// SaveInquiry inserts a completed purchase inquiry.
func (s *PostgresStore) SaveInquiry(inquiry models.PurchaseInquiry) error {
	_, err := s.db.Exec(
		`INSERT INTO purchase_inquiries (room_id, buyer_type, name, age, gender, city, purpose, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inquiry.RoomID, inquiry.BuyerType, inquiry.Name, inquiry.Age,
		inquiry.Gender, inquiry.City, inquiry.Purpose, inquiry.CreatedAt,
	)
	if err != nil {
		slog.Error("PostgresStore SaveInquiry failed", "error", err, "roomID", inquiry.RoomID)
		return fmt.Errorf("failed to insert inquiry for %s: %w", inquiry.RoomID, err)
	}
	slog.Debug("PostgresStore SaveInquiry succeeded", "roomID", inquiry.RoomID, "purpose", inquiry.Purpose)
	return nil
}

// ListInquiries returns all stored inquiries, oldest first.
func (s *PostgresStore) ListInquiries() ([]models.PurchaseInquiry, error) {
	rows, err := s.db.Query(
		`SELECT room_id, buyer_type, name, age, gender, city, purpose, created_at
		 FROM purchase_inquiries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []models.PurchaseInquiry
	for rows.Next() {
		var q models.PurchaseInquiry
		if err := rows.Scan(&q.RoomID, &q.BuyerType, &q.Name, &q.Age, &q.Gender, &q.City, &q.Purpose, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry row: %w", err)
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inquiry rows: %w", err)
	}
	return inquiries, nil
}

// Close closes the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
