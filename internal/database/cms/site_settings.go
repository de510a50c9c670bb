package cms

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/entities"
)

// SiteSettingsRepository reads and writes the single site settings row.
type SiteSettingsRepository struct {
	db *gorm.DB
}

func NewSiteSettingsRepository(db *gorm.DB) *SiteSettingsRepository {
	return &SiteSettingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults when missing.
func (r *SiteSettingsRepository) Get(ctx context.Context) (*entities.SiteSettings, error) {
	settings := entities.DefaultSiteSettings()
	err := r.db.WithContext(ctx).
		Where("id = ?", entities.SiteSettingsID).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return &settings, nil
}

// Update writes the given columns and returns the stored row.
func (r *SiteSettingsRepository) Update(ctx context.Context, columns map[string]any) (*entities.SiteSettings, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}
	if len(columns) > 0 {
		err := r.db.WithContext(ctx).
			Model(&entities.SiteSettings{}).
			Where("id = ?", entities.SiteSettingsID).
			Updates(columns).Error
		if err != nil {
			return nil, fmt.Errorf("update site settings: %w", err)
		}
	}
	return r.Get(ctx)
}
