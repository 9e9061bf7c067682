// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/bithub/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for bit and user storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateBit persists a new bit.
	// The bit.ID and timestamps will be populated by the store.
	CreateBit(ctx context.Context, bit *models.Bit) error

	// GetBit retrieves a bit, including its ratings, by ID.
	// Returns an error wrapping ErrNotFound if the bit does not exist.
	GetBit(ctx context.Context, bitID string) (*models.Bit, error)

	// ListBits returns every bit in creation order.
	ListBits(ctx context.Context) ([]models.Bit, error)

	// RateBit sets raterID's score on a bit and recomputes its stored mean
	// atomically, returning the updated bit. Other raters' scores are kept.
	// Returns an error wrapping ErrNotFound if the bit does not exist.
	RateBit(ctx context.Context, bitID, raterID string, score int) (*models.Bit, error)

	// UpdateBitOwner replaces a bit's author text and author ID.
	UpdateBitOwner(ctx context.Context, bitID, author, authorID string) error

	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns nil, nil if not found.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns nil, nil if not found.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns every user in creation order.
	ListUsers(ctx context.Context) ([]models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
