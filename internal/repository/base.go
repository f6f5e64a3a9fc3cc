package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"userapi/internal/database"
)

// BaseRepository implements Repository for a bun model T mapped to a single
// table with an integer primary key column named id.
type BaseRepository[T any] struct{}

// NewBaseRepository returns a stateless repository for T.
func NewBaseRepository[T any]() *BaseRepository[T] {
	return &BaseRepository[T]{}
}

// Create inserts entity in its own transaction and reloads it.
func (r *BaseRepository[T]) Create(ctx context.Context, s *database.Session, entity *T) (*T, error) {
	err := s.Transact(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(entity).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Reload so defaults assigned by the database are visible to the caller.
	if err := s.DB().NewSelect().Model(entity).WherePK().Scan(ctx); err != nil {
		return nil, err
	}
	return entity, nil
}

// GetByID returns the entity with the given id, or nil when absent.
func (r *BaseRepository[T]) GetByID(ctx context.Context, s *database.Session, id int64) (*T, error) {
	var entity T
	err := s.DB().NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetMany returns up to limit entities ordered by id ascending, skipping offset.
func (r *BaseRepository[T]) GetMany(ctx context.Context, s *database.Session, offset, limit int) ([]T, error) {
	if offset < 0 || limit < 0 {
		return nil, ErrInvalidPage
	}

	entities := make([]T, 0)
	// bun treats a zero limit as "no limit".
	if limit == 0 {
		return entities, nil
	}

	err := s.DB().NewSelect().
		Model(&entities).
		OrderExpr("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// DeleteByID loads and removes the entity in one transaction. It returns nil
// when no row has the given id.
func (r *BaseRepository[T]) DeleteByID(ctx context.Context, s *database.Session, id int64) (*T, error) {
	var deleted *T
	err := s.Transact(ctx, func(ctx context.Context, tx bun.Tx) error {
		var entity T
		if err := tx.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		if _, err := tx.NewDelete().Model(&entity).WherePK().Exec(ctx); err != nil {
			return err
		}
		deleted = &entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Count returns the number of rows in the table.
func (r *BaseRepository[T]) Count(ctx context.Context, s *database.Session) (int, error) {
	return s.DB().NewSelect().Model((*T)(nil)).Count(ctx)
}
