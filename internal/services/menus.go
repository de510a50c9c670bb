package services

import (
	"context"
	"fmt"

	"github.com/fullsco/portal/internal/database/cms"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/slug"
)

type MenuItemService = CRUD[entities.MenuItem, *entities.MenuItemPatch]

// MenuService manages menus and the items attached to them.
type MenuService struct {
	*CRUD[entities.Menu, *entities.MenuPatch]
	Items *MenuItemService

	menus *cms.MenuRepository
	items *cms.MenuItemRepository
}

func NewMenuService(menus *cms.MenuRepository, items *cms.MenuItemRepository, recorder Recorder) *MenuService {
	return &MenuService{
		CRUD:  NewCRUD[entities.Menu, *entities.MenuPatch](menus, "menu", WithSlug(slug.Latin), WithRecorder(recorder)),
		Items: NewCRUD[entities.MenuItem, *entities.MenuItemPatch](items, "menu item", WithRecorder(recorder)),
		menus: menus,
		items: items,
	}
}

// GetWithItems returns a menu by slug with its items in display order.
func (s *MenuService) GetWithItems(ctx context.Context, slug string) (*entities.Menu, error) {
	menu, err := s.menus.FindWithItems(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	if menu == nil {
		return nil, NotFound(s.Entity())
	}
	return menu, nil
}

// ListItems returns the items of menu menuID.
func (s *MenuService) ListItems(ctx context.Context, menuID uint) ([]entities.MenuItem, error) {
	if _, err := s.Get(ctx, menuID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	if items == nil {
		items = []entities.MenuItem{}
	}
	return items, nil
}

// AddItem attaches item to menu menuID. A parent item must belong to the same menu.
func (s *MenuService) AddItem(ctx context.Context, menuID uint, item *entities.MenuItem) (*entities.MenuItem, error) {
	if _, err := s.Get(ctx, menuID); err != nil {
		return nil, err
	}
	if item.ParentID != nil {
		parent, err := s.Items.Get(ctx, *item.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.MenuID != menuID {
			return nil, NotFound(s.Items.Entity())
		}
	}
	item.MenuID = menuID
	if item.Type == "" {
		item.Type = entities.MenuItemCustom
	}
	return s.Items.Create(ctx, item)
}
