// Package crud provides the generic repository shared by every entity.
//
// Absence is reported as a nil result, never as an error. Storage errors are
// returned wrapped with the operation name and are never retried.
//
// # Usage
//
//	repo := crud.NewRepository[entities.Category](db)
//	category, err := repo.FindBySlug(ctx, "graduate-studies")
//	if category == nil { ... }
package crud

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"
)

// Page is one page of a paginated list.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Repository implements find/create/update/delete/list for one entity type
// over a *gorm.DB.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository creates a new repository for T.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB returns the underlying connection bound to ctx, for entity specific
// queries built on top of the generic ones.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// FindByID retrieves a row by primary key. Returns nil when it does not exist.
func (r *Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	return &entity, nil
}

// FindBySlug retrieves a row by its unique slug. Returns nil when it does not exist.
func (r *Repository[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	return r.FindOne(ctx, NewQuery().Eq("slug", slug))
}

// FindOne retrieves the first row matching q.
func (r *Repository[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	var entity T
	err := q.apply(r.db.WithContext(ctx)).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one: %w", err)
	}
	return &entity, nil
}

// List returns every row matching q. An empty query returns all rows.
func (r *Repository[T]) List(ctx context.Context, q Query) ([]T, error) {
	var entities []T
	if err := q.apply(r.db.WithContext(ctx)).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return entities, nil
}

// Count returns the number of rows matching the filters of q. Ordering and
// paging are ignored.
func (r *Repository[T]) Count(ctx context.Context, q Query) (int64, error) {
	var count int64
	if err := q.where(r.db.WithContext(ctx).Model(new(T))).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return count, nil
}

// Paginate returns one page of rows matching q together with the total count.
func (r *Repository[T]) Paginate(ctx context.Context, q Query, page, limit int) (*Page[T], error) {
	page, limit = Paginate(page, limit)

	total, err := r.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	items, err := r.List(ctx, q.Page(page, limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Create inserts entity and fills in its generated id and timestamps.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// Update writes only the given columns of row id and returns the row as
// stored afterwards. Returns nil when the row does not exist.
func (r *Repository[T]) Update(ctx context.Context, id uint, columns map[string]any) (*T, error) {
	if len(columns) > 0 {
		result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, fmt.Errorf("update: %w", result.Error)
		}
	}
	return r.FindByID(ctx, id)
}

// Delete physically removes row id. Returns whether a row was removed.
func (r *Repository[T]) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, fmt.Errorf("delete: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
