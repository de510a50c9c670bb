package http

import (
	"time"

	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/request"
)

// Request schemas of the CMS entities. Create schemas carry the required
// fields; update schemas are all optional and map onto the entity patch.

type categoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"omitempty,max=255,slug"`
	Description string `json:"description"`
}

func (r *categoryRequest) entity() *entities.Category {
	return &entities.Category{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

type categoryPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug" binding:"omitempty,max=255,slug"`
	Description *string `json:"description"`
}

func (r *categoryPatchRequest) patch() *entities.CategoryPatch {
	return &entities.CategoryPatch{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

type countryRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Slug    string `json:"slug" binding:"omitempty,max=255,slug"`
	Code    string `json:"code" binding:"omitempty,min=2,max=3,alpha"`
	FlagURL string `json:"flagUrl" binding:"omitempty,max=500"`
}

func (r *countryRequest) entity() *entities.Country {
	return &entities.Country{Name: r.Name, Slug: r.Slug, Code: r.Code, FlagURL: r.FlagURL}
}

type countryPatchRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Slug    *string `json:"slug" binding:"omitempty,max=255,slug"`
	Code    *string `json:"code" binding:"omitempty,min=2,max=3,alpha"`
	FlagURL *string `json:"flagUrl" binding:"omitempty,max=500"`
}

func (r *countryPatchRequest) patch() *entities.CountryPatch {
	return &entities.CountryPatch{Name: r.Name, Slug: r.Slug, Code: r.Code, FlagURL: r.FlagURL}
}

type levelRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"omitempty,max=255,slug"`
	Description string `json:"description"`
}

func (r *levelRequest) entity() *entities.Level {
	return &entities.Level{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

type levelPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug" binding:"omitempty,max=255,slug"`
	Description *string `json:"description"`
}

func (r *levelPatchRequest) patch() *entities.LevelPatch {
	return &entities.LevelPatch{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

type scholarshipRequest struct {
	Title           string     `json:"title" binding:"required,max=500"`
	Slug            string     `json:"slug" binding:"omitempty,max=500,slug"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	University      string     `json:"university" binding:"max=255"`
	Department      string     `json:"department" binding:"max=255"`
	Amount          string     `json:"amount" binding:"max=100"`
	Currency        string     `json:"currency" binding:"max=10"`
	Deadline        *time.Time `json:"deadline"`
	CountryID       *uint      `json:"countryId"`
	LevelID         *uint      `json:"levelId"`
	CategoryID      *uint      `json:"categoryId"`
	Requirements    string     `json:"requirements"`
	ApplicationLink string     `json:"applicationLink" binding:"omitempty,url,max=500"`
	Website         string     `json:"website" binding:"omitempty,url,max=500"`
	ImageURL        string     `json:"imageUrl" binding:"max=500"`
	IsFeatured      bool       `json:"isFeatured"`
	IsFullyFunded   bool       `json:"isFullyFunded"`
	IsActive        *bool      `json:"isActive"`
}

func (r *scholarshipRequest) entity() *entities.Scholarship {
	s := &entities.Scholarship{
		Title:           r.Title,
		Slug:            r.Slug,
		Description:     r.Description,
		Content:         r.Content,
		University:      r.University,
		Department:      r.Department,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Deadline:        r.Deadline,
		CountryID:       r.CountryID,
		LevelID:         r.LevelID,
		CategoryID:      r.CategoryID,
		Requirements:    r.Requirements,
		ApplicationLink: r.ApplicationLink,
		Website:         r.Website,
		ImageURL:        r.ImageURL,
		IsFeatured:      r.IsFeatured,
		IsFullyFunded:   r.IsFullyFunded,
		IsActive:        true,
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

type scholarshipPatchRequest struct {
	Title           *string                      `json:"title" binding:"omitempty,min=1,max=500"`
	Slug            *string                      `json:"slug" binding:"omitempty,max=500,slug"`
	Description     *string                      `json:"description"`
	Content         *string                      `json:"content"`
	University      *string                      `json:"university" binding:"omitempty,max=255"`
	Department      *string                      `json:"department" binding:"omitempty,max=255"`
	Amount          *string                      `json:"amount" binding:"omitempty,max=100"`
	Currency        *string                      `json:"currency" binding:"omitempty,max=10"`
	Deadline        entities.Nullable[time.Time] `json:"deadline"`
	CountryID       entities.Nullable[uint]      `json:"countryId"`
	LevelID         entities.Nullable[uint]      `json:"levelId"`
	CategoryID      entities.Nullable[uint]      `json:"categoryId"`
	Requirements    *string                      `json:"requirements"`
	ApplicationLink *string                      `json:"applicationLink" binding:"omitempty,url,max=500"`
	Website         *string                      `json:"website" binding:"omitempty,url,max=500"`
	ImageURL        *string                      `json:"imageUrl" binding:"omitempty,max=500"`
	IsFeatured      *bool                        `json:"isFeatured"`
	IsFullyFunded   *bool                        `json:"isFullyFunded"`
	IsActive        *bool                        `json:"isActive"`
}

func (r *scholarshipPatchRequest) patch() *entities.ScholarshipPatch {
	return &entities.ScholarshipPatch{
		Title:           r.Title,
		Slug:            r.Slug,
		Description:     r.Description,
		Content:         r.Content,
		University:      r.University,
		Department:      r.Department,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Deadline:        r.Deadline,
		CountryID:       r.CountryID,
		LevelID:         r.LevelID,
		CategoryID:      r.CategoryID,
		Requirements:    r.Requirements,
		ApplicationLink: r.ApplicationLink,
		Website:         r.Website,
		ImageURL:        r.ImageURL,
		IsFeatured:      r.IsFeatured,
		IsFullyFunded:   r.IsFullyFunded,
		IsActive:        r.IsActive,
	}
}

type postRequest struct {
	Title      string              `json:"title" binding:"required,max=500"`
	Slug       string              `json:"slug" binding:"omitempty,max=500,slug"`
	Excerpt    string              `json:"excerpt"`
	Content    string              `json:"content"`
	ImageURL   string              `json:"imageUrl" binding:"max=500"`
	AuthorID   *uint               `json:"authorId"`
	Status     entities.PostStatus `json:"status" binding:"omitempty,oneof=draft published"`
	IsFeatured bool                `json:"isFeatured"`
}

func (r *postRequest) entity() *entities.Post {
	status := r.Status
	if status == "" {
		status = entities.PostStatusDraft
	}
	return &entities.Post{
		Title:      r.Title,
		Slug:       r.Slug,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		ImageURL:   r.ImageURL,
		AuthorID:   r.AuthorID,
		Status:     status,
		IsFeatured: r.IsFeatured,
	}
}

type postPatchRequest struct {
	Title      *string                 `json:"title" binding:"omitempty,min=1,max=500"`
	Slug       *string                 `json:"slug" binding:"omitempty,max=500,slug"`
	Excerpt    *string                 `json:"excerpt"`
	Content    *string                 `json:"content"`
	ImageURL   *string                 `json:"imageUrl" binding:"omitempty,max=500"`
	AuthorID   entities.Nullable[uint] `json:"authorId"`
	Status     *entities.PostStatus    `json:"status" binding:"omitempty,oneof=draft published"`
	IsFeatured *bool                   `json:"isFeatured"`
}

func (r *postPatchRequest) patch() *entities.PostPatch {
	return &entities.PostPatch{
		Title:      r.Title,
		Slug:       r.Slug,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		ImageURL:   r.ImageURL,
		AuthorID:   r.AuthorID,
		Status:     r.Status,
		IsFeatured: r.IsFeatured,
	}
}

type menuRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"omitempty,max=255,slug"`
	Location    string `json:"location" binding:"omitempty,oneof=header footer sidebar"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

func (r *menuRequest) entity() *entities.Menu {
	m := &entities.Menu{
		Name:        r.Name,
		Slug:        r.Slug,
		Location:    r.Location,
		Description: r.Description,
		IsActive:    true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

type menuPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Slug        *string `json:"slug" binding:"omitempty,max=255,slug"`
	Location    *string `json:"location" binding:"omitempty,oneof=header footer sidebar"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (r *menuPatchRequest) patch() *entities.MenuPatch {
	return &entities.MenuPatch{
		Name:        r.Name,
		Slug:        r.Slug,
		Location:    r.Location,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

type menuItemRequest struct {
	ParentID     *uint                 `json:"parentId"`
	Title        string                `json:"title" binding:"required,max=255"`
	Type         entities.MenuItemType `json:"type" binding:"omitempty,oneof=custom page category scholarship post"`
	URL          string                `json:"url" binding:"max=500"`
	TargetID     *uint                 `json:"targetId"`
	Order        int                   `json:"order"`
	OpenInNewTab bool                  `json:"openInNewTab"`
}

func (r *menuItemRequest) entity() *entities.MenuItem {
	return &entities.MenuItem{
		ParentID:     r.ParentID,
		Title:        r.Title,
		Type:         r.Type,
		URL:          r.URL,
		TargetID:     r.TargetID,
		Order:        r.Order,
		OpenInNewTab: r.OpenInNewTab,
	}
}

type menuItemPatchRequest struct {
	ParentID     entities.Nullable[uint] `json:"parentId"`
	Title        *string                 `json:"title" binding:"omitempty,min=1,max=255"`
	Type         *entities.MenuItemType  `json:"type" binding:"omitempty,oneof=custom page category scholarship post"`
	URL          *string                 `json:"url" binding:"omitempty,max=500"`
	TargetID     entities.Nullable[uint] `json:"targetId"`
	Order        *int                    `json:"order"`
	OpenInNewTab *bool                   `json:"openInNewTab"`
}

func (r *menuItemPatchRequest) patch() *entities.MenuItemPatch {
	return &entities.MenuItemPatch{
		ParentID:     r.ParentID,
		Title:        r.Title,
		Type:         r.Type,
		URL:          r.URL,
		TargetID:     r.TargetID,
		Order:        r.Order,
		OpenInNewTab: r.OpenInNewTab,
	}
}

type mediaRequest struct {
	Filename         string `json:"filename" binding:"omitempty,max=255"`
	OriginalFilename string `json:"originalFilename" binding:"max=255"`
	URL              string `json:"url" binding:"required,max=500"`
	MimeType         string `json:"mimeType" binding:"max=100"`
	Size             int64  `json:"size" binding:"gte=0"`
	Width            *int   `json:"width" binding:"omitempty,gte=0"`
	Height           *int   `json:"height" binding:"omitempty,gte=0"`
	Alt              string `json:"alt" binding:"max=255"`
	Title            string `json:"title" binding:"max=255"`
}

func (r *mediaRequest) entity() *entities.Media {
	return &entities.Media{
		Filename:         r.Filename,
		OriginalFilename: r.OriginalFilename,
		URL:              r.URL,
		MimeType:         r.MimeType,
		Size:             r.Size,
		Width:            r.Width,
		Height:           r.Height,
		Alt:              r.Alt,
		Title:            r.Title,
	}
}

type mediaPatchRequest struct {
	Alt   *string `json:"alt" binding:"omitempty,max=255"`
	Title *string `json:"title" binding:"omitempty,max=255"`
	URL   *string `json:"url" binding:"omitempty,min=1,max=500"`
}

func (r *mediaPatchRequest) patch() *entities.MediaPatch {
	return &entities.MediaPatch{Alt: r.Alt, Title: r.Title, URL: r.URL}
}

type seoSettingRequest struct {
	PagePath        string `json:"pagePath" binding:"required,startswith=/,max=255"`
	MetaTitle       string `json:"metaTitle" binding:"max=255"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	OgImage         string `json:"ogImage" binding:"max=500"`
	CanonicalURL    string `json:"canonicalUrl" binding:"omitempty,url,max=500"`
	NoIndex         bool   `json:"noIndex"`
	NoFollow        bool   `json:"noFollow"`
}

func (r *seoSettingRequest) entity() *entities.SeoSetting {
	return &entities.SeoSetting{
		PagePath:        r.PagePath,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        r.Keywords,
		OgImage:         r.OgImage,
		CanonicalURL:    r.CanonicalURL,
		NoIndex:         r.NoIndex,
		NoFollow:        r.NoFollow,
	}
}

type seoSettingPatchRequest struct {
	PagePath        *string `json:"pagePath" binding:"omitempty,startswith=/,max=255"`
	MetaTitle       *string `json:"metaTitle" binding:"omitempty,max=255"`
	MetaDescription *string `json:"metaDescription"`
	Keywords        *string `json:"keywords"`
	OgImage         *string `json:"ogImage" binding:"omitempty,max=500"`
	CanonicalURL    *string `json:"canonicalUrl" binding:"omitempty,url,max=500"`
	NoIndex         *bool   `json:"noIndex"`
	NoFollow        *bool   `json:"noFollow"`
}

func (r *seoSettingPatchRequest) patch() *entities.SeoSettingPatch {
	return &entities.SeoSettingPatch{
		PagePath:        r.PagePath,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        r.Keywords,
		OgImage:         r.OgImage,
		CanonicalURL:    r.CanonicalURL,
		NoIndex:         r.NoIndex,
		NoFollow:        r.NoFollow,
	}
}

// siteSettingsRequest is decoded from JSON or a form post. Booleans accept
// "true"/"false" strings.
type siteSettingsRequest struct {
	SiteName                 *string           `json:"siteName" binding:"omitempty,min=1,max=255"`
	SiteTagline              *string           `json:"siteTagline" binding:"omitempty,max=255"`
	SiteDescription          *string           `json:"siteDescription"`
	LogoURL                  *string           `json:"logoUrl" binding:"omitempty,max=500"`
	FaviconURL               *string           `json:"faviconUrl" binding:"omitempty,max=500"`
	Email                    *string           `json:"email" binding:"omitempty,email,max=255"`
	Phone                    *string           `json:"phone" binding:"omitempty,max=50"`
	Address                  *string           `json:"address" binding:"omitempty,max=500"`
	FacebookURL              *string           `json:"facebookUrl" binding:"omitempty,max=500"`
	TwitterURL               *string           `json:"twitterUrl" binding:"omitempty,max=500"`
	InstagramURL             *string           `json:"instagramUrl" binding:"omitempty,max=500"`
	YoutubeURL               *string           `json:"youtubeUrl" binding:"omitempty,max=500"`
	LinkedinURL              *string           `json:"linkedinUrl" binding:"omitempty,max=500"`
	PrimaryColor             *string           `json:"primaryColor" binding:"omitempty,hexcolor"`
	FooterText               *string           `json:"footerText"`
	EnableDarkMode           *request.FlexBool `json:"enableDarkMode"`
	RTLDirection             *request.FlexBool `json:"rtlDirection"`
	DefaultLanguage          *string           `json:"defaultLanguage" binding:"omitempty,oneof=ar en"`
	EnableNewsletter         *request.FlexBool `json:"enableNewsletter"`
	EnableHeroSection        *request.FlexBool `json:"enableHeroSection"`
	EnableScholarshipSearch  *request.FlexBool `json:"enableScholarshipSearch"`
	ShowFeaturedScholarships *request.FlexBool `json:"showFeaturedScholarships"`
	MaintenanceMode          *request.FlexBool `json:"maintenanceMode"`
}

func (r *siteSettingsRequest) patch() *entities.SiteSettingsPatch {
	return &entities.SiteSettingsPatch{
		SiteName:                 r.SiteName,
		SiteTagline:              r.SiteTagline,
		SiteDescription:          r.SiteDescription,
		LogoURL:                  r.LogoURL,
		FaviconURL:               r.FaviconURL,
		Email:                    r.Email,
		Phone:                    r.Phone,
		Address:                  r.Address,
		FacebookURL:              r.FacebookURL,
		TwitterURL:               r.TwitterURL,
		InstagramURL:             r.InstagramURL,
		YoutubeURL:               r.YoutubeURL,
		LinkedinURL:              r.LinkedinURL,
		PrimaryColor:             r.PrimaryColor,
		FooterText:               r.FooterText,
		EnableDarkMode:           r.EnableDarkMode.Ptr(),
		RTLDirection:             r.RTLDirection.Ptr(),
		DefaultLanguage:          r.DefaultLanguage,
		EnableNewsletter:         r.EnableNewsletter.Ptr(),
		EnableHeroSection:        r.EnableHeroSection.Ptr(),
		EnableScholarshipSearch:  r.EnableScholarshipSearch.Ptr(),
		ShowFeaturedScholarships: r.ShowFeaturedScholarships.Ptr(),
		MaintenanceMode:          r.MaintenanceMode.Ptr(),
	}
}
