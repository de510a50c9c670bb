// Package cms provides database operations for the scholarship portal content:
// scholarships, taxonomy (categories, countries, levels), posts, menus, media
// records, SEO metadata and the site settings row.
//
// # Usage
//
//	repo := cms.NewScholarshipRepository(db)
//	page, err := repo.Search(ctx, cms.ScholarshipFilter{Search: "DAAD"}, 1, 10)
package cms

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

// NewCategoryRepository creates a repository for categories.
func NewCategoryRepository(db *gorm.DB) *crud.Repository[entities.Category] {
	return crud.NewRepository[entities.Category](db)
}

func NewCountryRepository(db *gorm.DB) *crud.Repository[entities.Country] {
	return crud.NewRepository[entities.Country](db)
}

func NewLevelRepository(db *gorm.DB) *crud.Repository[entities.Level] {
	return crud.NewRepository[entities.Level](db)
}

func NewMediaRepository(db *gorm.DB) *crud.Repository[entities.Media] {
	return crud.NewRepository[entities.Media](db)
}

// ScholarshipFilter holds the optional list filters of the scholarships
// endpoint. Nil fields impose no constraint.
type ScholarshipFilter struct {
	CategoryID *uint
	CountryID  *uint
	LevelID    *uint
	Featured   *bool
	Active     *bool
	Search     string
}

// Query translates the filter into a crud.Query, newest first.
func (f ScholarshipFilter) Query() crud.Query {
	q := crud.NewQuery()
	if f.CategoryID != nil {
		q = q.Eq("category_id", *f.CategoryID)
	}
	if f.CountryID != nil {
		q = q.Eq("country_id", *f.CountryID)
	}
	if f.LevelID != nil {
		q = q.Eq("level_id", *f.LevelID)
	}
	if f.Featured != nil {
		q = q.Eq("is_featured", *f.Featured)
	}
	if f.Active != nil {
		q = q.Eq("is_active", *f.Active)
	}
	return q.Search(f.Search, "title", "description", "university").
		OrderBy("created_at", true).
		OrderBy("id", true)
}

// ScholarshipRepository adds filtered search and view counting to the
// generic repository.
type ScholarshipRepository struct {
	*crud.Repository[entities.Scholarship]
}

func NewScholarshipRepository(db *gorm.DB) *ScholarshipRepository {
	return &ScholarshipRepository{Repository: crud.NewRepository[entities.Scholarship](db)}
}

// Search returns one page of scholarships matching the filter.
func (r *ScholarshipRepository) Search(ctx context.Context, filter ScholarshipFilter, page, limit int) (*crud.Page[entities.Scholarship], error) {
	return r.Paginate(ctx, filter.Query(), page, limit)
}

// IncrementViews bumps the view counter without touching updated_at.
func (r *ScholarshipRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.DB(ctx).Model(&entities.Scholarship{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

type PostRepository struct {
	*crud.Repository[entities.Post]
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{Repository: crud.NewRepository[entities.Post](db)}
}

// ListByStatus returns one page of posts, newest first. An empty status
// returns posts of every status.
func (r *PostRepository) ListByStatus(ctx context.Context, status entities.PostStatus, page, limit int) (*crud.Page[entities.Post], error) {
	q := crud.NewQuery()
	if status != "" {
		q = q.Eq("status", status)
	}
	return r.Paginate(ctx, q.OrderBy("created_at", true).OrderBy("id", true), page, limit)
}

func (r *PostRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.DB(ctx).Model(&entities.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

type SeoSettingRepository struct {
	*crud.Repository[entities.SeoSetting]
}

func NewSeoSettingRepository(db *gorm.DB) *SeoSettingRepository {
	return &SeoSettingRepository{Repository: crud.NewRepository[entities.SeoSetting](db)}
}

// FindByPagePath retrieves the SEO metadata of a page, or nil when none is stored.
func (r *SeoSettingRepository) FindByPagePath(ctx context.Context, path string) (*entities.SeoSetting, error) {
	return r.FindOne(ctx, crud.NewQuery().Eq("page_path", path))
}
