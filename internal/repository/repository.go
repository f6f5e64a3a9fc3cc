// Package repository contains the data access layer. BaseRepository
// implements the CRUD operations once for any bun model; entity
// repositories bind it to a concrete type.
package repository

import (
	"context"
	"errors"

	"userapi/internal/database"
)

// ErrInvalidPage is returned by GetMany for a negative offset or limit.
var ErrInvalidPage = errors.New("offset and limit must be non-negative")

// Repository defines data access for one entity type. Lookups that find
// nothing return a nil entity and a nil error.
type Repository[T any] interface {
	// Create persists entity, commits, and refreshes it with storage-assigned fields.
	Create(ctx context.Context, s *database.Session, entity *T) (*T, error)

	// GetByID returns the entity with the given id, or nil when absent.
	GetByID(ctx context.Context, s *database.Session, id int64) (*T, error)

	// GetMany returns up to limit entities ordered by id, skipping offset.
	GetMany(ctx context.Context, s *database.Session, offset, limit int) ([]T, error)

	// DeleteByID removes the entity and returns it, or returns nil when absent.
	DeleteByID(ctx context.Context, s *database.Session, id int64) (*T, error)

	// Count returns the number of stored entities.
	Count(ctx context.Context, s *database.Session) (int, error)
}
