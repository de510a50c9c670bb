package entities

import "time"

// SiteSettingsID is the primary key of the single site settings row.
const SiteSettingsID uint = 1

type SiteSettings struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	SiteName                 string    `gorm:"size:255" json:"siteName"`
	SiteTagline              string    `gorm:"size:255" json:"siteTagline"`
	SiteDescription          string    `gorm:"type:text" json:"siteDescription"`
	LogoURL                  string    `gorm:"size:500" json:"logoUrl"`
	FaviconURL               string    `gorm:"size:500" json:"faviconUrl"`
	Email                    string    `gorm:"size:255" json:"email"`
	Phone                    string    `gorm:"size:50" json:"phone"`
	Address                  string    `gorm:"size:500" json:"address"`
	FacebookURL              string    `gorm:"size:500" json:"facebookUrl"`
	TwitterURL               string    `gorm:"size:500" json:"twitterUrl"`
	InstagramURL             string    `gorm:"size:500" json:"instagramUrl"`
	YoutubeURL               string    `gorm:"size:500" json:"youtubeUrl"`
	LinkedinURL              string    `gorm:"size:500" json:"linkedinUrl"`
	PrimaryColor             string    `gorm:"size:20" json:"primaryColor"`
	FooterText               string    `gorm:"type:text" json:"footerText"`
	EnableDarkMode           bool      `gorm:"default:false" json:"enableDarkMode"`
	RTLDirection             bool      `gorm:"column:rtl_direction" json:"rtlDirection"`
	DefaultLanguage          string    `gorm:"size:10;default:ar" json:"defaultLanguage"`
	EnableNewsletter         bool      `gorm:"default:false" json:"enableNewsletter"`
	EnableHeroSection        bool      `json:"enableHeroSection"`
	EnableScholarshipSearch  bool      `json:"enableScholarshipSearch"`
	ShowFeaturedScholarships bool      `json:"showFeaturedScholarships"`
	MaintenanceMode          bool      `gorm:"default:false" json:"maintenanceMode"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// DefaultSiteSettings is the row seeded on first start.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:                       SiteSettingsID,
		SiteName:                 "FULLSCO",
		SiteTagline:              "منح دراسية ممولة بالكامل",
		DefaultLanguage:          "ar",
		PrimaryColor:             "#0f766e",
		RTLDirection:             true,
		EnableHeroSection:        true,
		EnableScholarshipSearch:  true,
		ShowFeaturedScholarships: true,
	}
}

type SiteSettingsPatch struct {
	SiteName                 *string
	SiteTagline              *string
	SiteDescription          *string
	LogoURL                  *string
	FaviconURL               *string
	Email                    *string
	Phone                    *string
	Address                  *string
	FacebookURL              *string
	TwitterURL               *string
	InstagramURL             *string
	YoutubeURL               *string
	LinkedinURL              *string
	PrimaryColor             *string
	FooterText               *string
	EnableDarkMode           *bool
	RTLDirection             *bool
	DefaultLanguage          *string
	EnableNewsletter         *bool
	EnableHeroSection        *bool
	EnableScholarshipSearch  *bool
	ShowFeaturedScholarships *bool
	MaintenanceMode          *bool
}

func (p *SiteSettingsPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "site_name", p.SiteName)
	setIf(cols, "site_tagline", p.SiteTagline)
	setIf(cols, "site_description", p.SiteDescription)
	setIf(cols, "logo_url", p.LogoURL)
	setIf(cols, "favicon_url", p.FaviconURL)
	setIf(cols, "email", p.Email)
	setIf(cols, "phone", p.Phone)
	setIf(cols, "address", p.Address)
	setIf(cols, "facebook_url", p.FacebookURL)
	setIf(cols, "twitter_url", p.TwitterURL)
	setIf(cols, "instagram_url", p.InstagramURL)
	setIf(cols, "youtube_url", p.YoutubeURL)
	setIf(cols, "linkedin_url", p.LinkedinURL)
	setIf(cols, "primary_color", p.PrimaryColor)
	setIf(cols, "footer_text", p.FooterText)
	setIf(cols, "enable_dark_mode", p.EnableDarkMode)
	setIf(cols, "rtl_direction", p.RTLDirection)
	setIf(cols, "default_language", p.DefaultLanguage)
	setIf(cols, "enable_newsletter", p.EnableNewsletter)
	setIf(cols, "enable_hero_section", p.EnableHeroSection)
	setIf(cols, "enable_scholarship_search", p.EnableScholarshipSearch)
	setIf(cols, "show_featured_scholarships", p.ShowFeaturedScholarships)
	setIf(cols, "maintenance_mode", p.MaintenanceMode)
	return cols
}
