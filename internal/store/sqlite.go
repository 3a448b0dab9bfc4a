package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/egxadev/wa-webhook/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the permissions for created database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists inquiries in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite database at the DSN
// path and applies migrations.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN not set")
	}

	// The DSN may carry sqlite URI options; the directory comes from the
	// bare file path.
	filePath := strings.TrimPrefix(cfg.DSN, "file:")
	if i := strings.IndexByte(filePath, '?'); i >= 0 {
		filePath = filePath[:i]
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("SQLiteStore opened", "path", filePath)
	return &SQLiteStore{db: db}, nil
}

// SaveInquiry inserts a completed purchase inquiry.
func (s *SQLiteStore) SaveInquiry(inquiry models.PurchaseInquiry) error {
	_, err := s.db.Exec(
		`INSERT INTO purchase_inquiries (room_id, buyer_type, name, age, gender, city, purpose, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inquiry.RoomID, inquiry.BuyerType, inquiry.Name, inquiry.Age,
		inquiry.Gender, inquiry.City, inquiry.Purpose, inquiry.CreatedAt,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveInquiry failed", "error", err, "roomID", inquiry.RoomID)
		return fmt.Errorf("failed to insert inquiry for %s: %w", inquiry.RoomID, err)
	}
	slog.Debug("SQLiteStore SaveInquiry succeeded", "roomID", inquiry.RoomID, "purpose", inquiry.Purpose)
	return nil
}

// ListInquiries returns all stored inquiries, oldest first.
func (s *SQLiteStore) ListInquiries() ([]models.PurchaseInquiry, error) {
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
