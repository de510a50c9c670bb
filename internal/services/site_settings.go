package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fullsco/portal/internal/database/cms"
	"github.com/fullsco/portal/internal/entities"
)

// SiteSettingsService reads and updates the site settings row. Boolean
// fields arrive already typed; string forms are decoded at the HTTP edge
// with NormalizeBool.
type SiteSettingsService struct {
	repo     *cms.SiteSettingsRepository
	recorder Recorder
}

func NewSiteSettingsService(repo *cms.SiteSettingsRepository, recorder Recorder) *SiteSettingsService {
	return &SiteSettingsService{repo: repo, recorder: recorder}
}

func (s *SiteSettingsService) Get(ctx context.Context) (*entities.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return settings, nil
}

func (s *SiteSettingsService) Update(ctx context.Context, patch *entities.SiteSettingsPatch) (*entities.SiteSettings, error) {
	columns := patch.Columns()
	settings, err := s.repo.Update(ctx, columns)
	if err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}

	if s.recorder != nil && len(columns) > 0 {
		names := make([]string, 0, len(columns))
		for name := range columns {
			names = append(names, name)
		}
		sort.Strings(names)
		s.recorder.LogSettings(ctx, "site_settings_update", "Updated "+strings.Join(names, ", "))
	}
	return settings, nil
}

// NormalizeBool interprets the string forms of a boolean sent by HTML forms
// and loosely typed clients. ok is false when s is not a recognized literal.
func NormalizeBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on":
		return true, true
	case "false", "0", "off", "":
		return false, true
	}
	return false, false
}
