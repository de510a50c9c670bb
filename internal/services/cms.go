package services

import (
	"context"
	"fmt"

	"github.com/fullsco/portal/internal/database/cms"
	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/slug"
)

type (
	CategoryService = CRUD[entities.Category, *entities.CategoryPatch]
	CountryService  = CRUD[entities.Country, *entities.CountryPatch]
	LevelService    = CRUD[entities.Level, *entities.LevelPatch]
	MediaService    = CRUD[entities.Media, *entities.MediaPatch]
)

func NewCategoryService(store Store[entities.Category], recorder Recorder) *CategoryService {
	return NewCRUD[entities.Category, *entities.CategoryPatch](store, "category", WithSlug(slug.Latin), WithRecorder(recorder))
}

func NewCountryService(store Store[entities.Country], recorder Recorder) *CountryService {
	return NewCRUD[entities.Country, *entities.CountryPatch](store, "country", WithSlug(slug.Latin), WithRecorder(recorder))
}

func NewLevelService(store Store[entities.Level], recorder Recorder) *LevelService {
	return NewCRUD[entities.Level, *entities.LevelPatch](store, "level", WithSlug(slug.Latin), WithRecorder(recorder))
}

func NewMediaService(store Store[entities.Media], recorder Recorder) *MediaService {
	return NewCRUD[entities.Media, *entities.MediaPatch](store, "media", WithRecorder(recorder))
}

// ScholarshipService derives Arabic-aware slugs and adds filtered search.
type ScholarshipService struct {
	*CRUD[entities.Scholarship, *entities.ScholarshipPatch]
	repo *cms.ScholarshipRepository
}

func NewScholarshipService(repo *cms.ScholarshipRepository, recorder Recorder) *ScholarshipService {
	return &ScholarshipService{
		CRUD: NewCRUD[entities.Scholarship, *entities.ScholarshipPatch](repo, "scholarship", WithSlug(slug.Arabic), WithRecorder(recorder)),
		repo: repo,
	}
}

// Search returns one page of scholarships matching filter.
func (s *ScholarshipService) Search(ctx context.Context, filter cms.ScholarshipFilter, page, limit int) (*crud.Page[entities.Scholarship], error) {
	result, err := s.repo.Search(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("search scholarships: %w", err)
	}
	return result, nil
}

// View returns a scholarship by slug and counts the view.
func (s *ScholarshipService) View(ctx context.Context, slug string) (*entities.Scholarship, error) {
	scholarship, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, scholarship.ID); err != nil {
		return nil, err
	}
	scholarship.Views++
	return scholarship, nil
}

// PostService derives Arabic-aware slugs and lists posts by status.
type PostService struct {
	*CRUD[entities.Post, *entities.PostPatch]
	repo *cms.PostRepository
}

func NewPostService(repo *cms.PostRepository, recorder Recorder) *PostService {
	return &PostService{
		CRUD: NewCRUD[entities.Post, *entities.PostPatch](repo, "post", WithSlug(slug.Arabic), WithRecorder(recorder)),
		repo: repo,
	}
}

func (s *PostService) ListByStatus(ctx context.Context, status entities.PostStatus, page, limit int) (*crud.Page[entities.Post], error) {
	result, err := s.repo.ListByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return result, nil
}

func (s *PostService) View(ctx context.Context, slug string) (*entities.Post, error) {
	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
		return nil, err
	}
	post.Views++
	return post, nil
}

// SeoSettingService manages per-page SEO metadata.
type SeoSettingService struct {
	*CRUD[entities.SeoSetting, *entities.SeoSettingPatch]
	repo *cms.SeoSettingRepository
}

func NewSeoSettingService(repo *cms.SeoSettingRepository, recorder Recorder) *SeoSettingService {
	return &SeoSettingService{
		CRUD: NewCRUD[entities.SeoSetting, *entities.SeoSettingPatch](repo, "seo setting", WithRecorder(recorder)),
		repo: repo,
	}
}

func (s *SeoSettingService) GetByPagePath(ctx context.Context, path string) (*entities.SeoSetting, error) {
	setting, err := s.repo.FindByPagePath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("get seo setting by path: %w", err)
	}
	if setting == nil {
		return nil, NotFound(s.Entity())
	}
	return setting, nil
}
