// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.FindByUsernameOrEmail(ctx, "admin")
package users

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	*crud.Repository[entities.User]
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: crud.NewRepository[entities.User](db)}
}

// FindByUsernameOrEmail retrieves a user whose username or email equals login.
func (r *Repository) FindByUsernameOrEmail(ctx context.Context, login string) (*entities.User, error) {
	var users []entities.User
	err := r.DB(ctx).
		Where("username = ? OR email = ?", login, login).
		Limit(1).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// ExistsByUsernameOrEmail reports whether username or email is already taken.
func (r *Repository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&entities.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check existing user: %w", err)
	}
	return count > 0, nil
}

// ListUsers returns every user ordered by id.
func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	return r.List(ctx, crud.NewQuery().OrderBy("id", false))
}

// CountUsers returns the number of users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	return r.Count(ctx, crud.NewQuery())
}

// RecordFailedLogin increments the failed login counter in place and sets
// locked_until once the stored counter reaches maxAttempts. Concurrent
// failures each count. Returns the updated user, or nil when it is gone.
func (r *Repository) RecordFailedLogin(ctx context.Context, id uint, maxAttempts int, lockedUntil time.Time) (*entities.User, error) {
	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entities.User{}).
			Where("id = ?", id).
			UpdateColumn("failed_login_count", gorm.Expr("failed_login_count + ?", 1)).Error
		if err != nil {
			return err
		}
		return tx.Model(&entities.User{}).
			Where("id = ? AND failed_login_count >= ?", id, maxAttempts).
			UpdateColumn("locked_until", lockedUntil).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record failed login: %w", err)
	}
	return r.FindByID(ctx, id)
}
