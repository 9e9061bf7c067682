// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/bithub/internal/catalog"
	"github.com/mmynk/bithub/internal/models"
	"github.com/mmynk/bithub/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: each write transaction runs alone.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBit persists a new bit along with any initial ratings.
func (s *SQLiteStore) CreateBit(ctx context.Context, bit *models.Bit) error {
	if bit.ID == "" {
		bit.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bit.CreatedAt == 0 {
		bit.CreatedAt = now
	}
	bit.UpdatedAt = now
	if bit.Ratings == nil {
		bit.Ratings = map[string]int{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bits (id, name, description, author, author_id, rating, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bit.ID, bit.Name, bit.Description, bit.Author, bit.AuthorID, bit.Rating, bit.CreatedAt, bit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bit: %w", err)
	}

	if err := insertRatings(ctx, tx, bit.ID, bit.Ratings); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetBit retrieves a bit by ID, including its ratings.
func (s *SQLiteStore) GetBit(ctx context.Context, bitID string) (*models.Bit, error) {
	return getBit(ctx, s.db, bitID)
}

func getBit(ctx context.Context, q querier, bitID string) (*models.Bit, error) {
	bit := &models.Bit{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, description, author, author_id, rating, created_at, updated_at
		 FROM bits WHERE id = ?`,
		bitID,
	).Scan(&bit.ID, &bit.Name, &bit.Description, &bit.Author, &bit.AuthorID, &bit.Rating, &bit.CreatedAt, &bit.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bit %s: %w", bitID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bit: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		"SELECT rater_id, score FROM bit_ratings WHERE bit_id = ?",
		bitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings: %w", err)
	}
	defer rows.Close()

	bit.Ratings = map[string]int{}
	for rows.Next() {
		var rater string
		var score int
		if err := rows.Scan(&rater, &score); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		bit.Ratings[rater] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return bit, nil
}

// ListBits returns all bits with their ratings, oldest first.
func (s *SQLiteStore) ListBits(ctx context.Context) ([]models.Bit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, author, author_id, rating, created_at, updated_at
		 FROM bits ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bits: %w", err)
	}
	defer rows.Close()

	var bits []models.Bit
	index := make(map[string]int)
	for rows.Next() {
		var bit models.Bit
		if err := rows.Scan(&bit.ID, &bit.Name, &bit.Description, &bit.Author, &bit.AuthorID, &bit.Rating, &bit.CreatedAt, &bit.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bit: %w", err)
		}
		bit.Ratings = map[string]int{}
		index[bit.ID] = len(bits)
		bits = append(bits, bit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bits: %w", err)
	}
	rows.Close()

	ratingRows, err := s.db.QueryContext(ctx, "SELECT bit_id, rater_id, score FROM bit_ratings")
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer ratingRows.Close()

	for ratingRows.Next() {
		var bitID, rater string
		var score int
		if err := ratingRows.Scan(&bitID, &rater, &score); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		if i, ok := index[bitID]; ok {
			bits[i].Ratings[rater] = score
		}
	}
	if err := ratingRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return bits, nil
}

// RateBit records raterID's score and recomputes the stored mean in one
// transaction. Only the rater's own row is written, so concurrent raters of
// the same bit never overwrite each other. It returns the bit as committed.
func (s *SQLiteStore) RateBit(ctx context.Context, bitID, raterID string, score int) (*models.Bit, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bit_ratings (bit_id, rater_id, score) VALUES (?, ?, ?)
		 ON CONFLICT (bit_id, rater_id) DO UPDATE SET score = excluded.score`,
		bitID, raterID, score,
	)
	if err != nil {
		if _, getErr := getBit(ctx, tx, bitID); errors.Is(getErr, storage.ErrNotFound) {
			return nil, getErr
		}
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	// Re-read inside the transaction so the mean covers every rater's row.
	bit, err := getBit(ctx, tx, bitID)
	if err != nil {
		return nil, err
	}
	update := catalog.ApplyRating(*bit, raterID, score)

	bit.UpdatedAt = time.Now().Unix()
	if _, err := tx.ExecContext(ctx,
		"UPDATE bits SET rating = ?, updated_at = ? WHERE id = ?",
		update.Rating, bit.UpdatedAt, bitID,
	); err != nil {
		return nil, fmt.Errorf("failed to update bit rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	bit.Ratings = update.Ratings
	bit.Rating = update.Rating
	return bit, nil
}

// UpdateBitOwner replaces the bit's author fields.
func (s *SQLiteStore) UpdateBitOwner(ctx context.Context, bitID, author, authorID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bits SET author = ?, author_id = ?, updated_at = ? WHERE id = ?",
		author, authorID, time.Now().Unix(), bitID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bit owner: %w", err)
	}
	return requireRow(res, bitID)
}

func insertRatings(ctx context.Context, tx *sql.Tx, bitID string, ratings map[string]int) error {
	for rater, score := range ratings {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO bit_ratings (bit_id, rater_id, score) VALUES (?, ?, ?)",
			bitID, rater, score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rating: %w", err)
		}
	}
	return nil
}

func requireRow(res sql.Result, bitID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bit %s: %w", bitID, storage.ErrNotFound)
	}
	return nil
}
