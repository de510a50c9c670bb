package cms

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

type MenuRepository struct {
	*crud.Repository[entities.Menu]
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{Repository: crud.NewRepository[entities.Menu](db)}
}

// FindWithItems retrieves a menu by slug with its items in display order.
func (r *MenuRepository) FindWithItems(ctx context.Context, slug string) (*entities.Menu, error) {
	var menu entities.Menu
	err := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("slug = ?", slug).
		Take(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu with items: %w", err)
	}
	return &menu, nil
}

type MenuItemRepository struct {
	*crud.Repository[entities.MenuItem]
}

func NewMenuItemRepository(db *gorm.DB) *MenuItemRepository {
	return &MenuItemRepository{Repository: crud.NewRepository[entities.MenuItem](db)}
}

// ListByMenu returns the items of a menu in display order.
func (r *MenuItemRepository) ListByMenu(ctx context.Context, menuID uint) ([]entities.MenuItem, error) {
	return r.List(ctx, crud.NewQuery().
		Eq("menu_id", menuID).
		OrderBy("sort_order", false).
		OrderBy("id", false))
}
