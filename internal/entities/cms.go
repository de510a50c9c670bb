package entities

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) SlugSource() string { return c.Name }
func (c *Category) GetSlug() string    { return c.Slug }
func (c *Category) SetSlug(s string)   { c.Slug = s }

type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

func (p *CategoryPatch) SlugSource() *string { return p.Name }
func (p *CategoryPatch) GetSlug() *string    { return p.Slug }
func (p *CategoryPatch) SetSlug(s string)    { p.Slug = &s }

func (p *CategoryPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "name", p.Name)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "description", p.Description)
	return cols
}

type Country struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Code      string    `gorm:"size:3" json:"code"` // ISO 3166-1 alpha-2/alpha-3
	FlagURL   string    `gorm:"size:500" json:"flagUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Country) SlugSource() string { return c.Name }
func (c *Country) GetSlug() string    { return c.Slug }
func (c *Country) SetSlug(s string)   { c.Slug = s }

type CountryPatch struct {
	Name    *string
	Slug    *string
	Code    *string
	FlagURL *string
}

func (p *CountryPatch) SlugSource() *string { return p.Name }
func (p *CountryPatch) GetSlug() *string    { return p.Slug }
func (p *CountryPatch) SetSlug(s string)    { p.Slug = &s }

func (p *CountryPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "name", p.Name)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "code", p.Code)
	setIf(cols, "flag_url", p.FlagURL)
	return cols
}

// Level is an academic level (bachelor, master, PhD...).
type Level struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (l *Level) SlugSource() string { return l.Name }
func (l *Level) GetSlug() string    { return l.Slug }
func (l *Level) SetSlug(s string)   { l.Slug = s }

type LevelPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

func (p *LevelPatch) SlugSource() *string { return p.Name }
func (p *LevelPatch) GetSlug() *string    { return p.Slug }
func (p *LevelPatch) SetSlug(s string)    { p.Slug = &s }

func (p *LevelPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "name", p.Name)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "description", p.Description)
	return cols
}

type Scholarship struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:500;not null" json:"title"`
	Slug            string     `gorm:"uniqueIndex;size:500;not null" json:"slug"`
	Description     string     `gorm:"type:text" json:"description"`
	Content         string     `gorm:"type:text" json:"content"`
	University      string     `gorm:"size:255" json:"university"`
	Department      string     `gorm:"size:255" json:"department"`
	Amount          string     `gorm:"size:100" json:"amount"`
	Currency        string     `gorm:"size:10" json:"currency"`
	Deadline        *time.Time `json:"deadline"`
	CountryID       *uint      `gorm:"index" json:"countryId"`
	LevelID         *uint      `gorm:"index" json:"levelId"`
	CategoryID      *uint      `gorm:"index" json:"categoryId"`
	Requirements    string     `gorm:"type:text" json:"requirements"`
	ApplicationLink string     `gorm:"size:500" json:"applicationLink"`
	Website         string     `gorm:"size:500" json:"website"`
	ImageURL        string     `gorm:"size:500" json:"imageUrl"`
	IsFeatured      bool       `gorm:"default:false;index" json:"isFeatured"`
	IsFullyFunded   bool       `gorm:"default:false" json:"isFullyFunded"`
	IsActive        bool       `gorm:"index" json:"isActive"`
	Views           int        `gorm:"default:0" json:"views"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (s *Scholarship) SlugSource() string { return s.Title }
func (s *Scholarship) GetSlug() string    { return s.Slug }
func (s *Scholarship) SetSlug(v string)   { s.Slug = v }

type ScholarshipPatch struct {
	Title           *string
	Slug            *string
	Description     *string
	Content         *string
	University      *string
	Department      *string
	Amount          *string
	Currency        *string
	Deadline        Nullable[time.Time]
	CountryID       Nullable[uint]
	LevelID         Nullable[uint]
	CategoryID      Nullable[uint]
	Requirements    *string
	ApplicationLink *string
	Website         *string
	ImageURL        *string
	IsFeatured      *bool
	IsFullyFunded   *bool
	IsActive        *bool
}

func (p *ScholarshipPatch) SlugSource() *string { return p.Title }
func (p *ScholarshipPatch) GetSlug() *string    { return p.Slug }
func (p *ScholarshipPatch) SetSlug(s string)    { p.Slug = &s }

func (p *ScholarshipPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "title", p.Title)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "description", p.Description)
	setIf(cols, "content", p.Content)
	setIf(cols, "university", p.University)
	setIf(cols, "department", p.Department)
	setIf(cols, "amount", p.Amount)
	setIf(cols, "currency", p.Currency)
	setNullable(cols, "deadline", p.Deadline)
	setNullable(cols, "country_id", p.CountryID)
	setNullable(cols, "level_id", p.LevelID)
	setNullable(cols, "category_id", p.CategoryID)
	setIf(cols, "requirements", p.Requirements)
	setIf(cols, "application_link", p.ApplicationLink)
	setIf(cols, "website", p.Website)
	setIf(cols, "image_url", p.ImageURL)
	setIf(cols, "is_featured", p.IsFeatured)
	setIf(cols, "is_fully_funded", p.IsFullyFunded)
	setIf(cols, "is_active", p.IsActive)
	return cols
}

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type Post struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"size:500;not null" json:"title"`
	Slug       string     `gorm:"uniqueIndex;size:500;not null" json:"slug"`
	Excerpt    string     `gorm:"type:text" json:"excerpt"`
	Content    string     `gorm:"type:text" json:"content"`
	ImageURL   string     `gorm:"size:500" json:"imageUrl"`
	AuthorID   *uint      `gorm:"index" json:"authorId"`
	Status     PostStatus `gorm:"size:20;default:draft;index" json:"status"`
	IsFeatured bool       `gorm:"default:false" json:"isFeatured"`
	Views      int        `gorm:"default:0" json:"views"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (p *Post) SlugSource() string { return p.Title }
func (p *Post) GetSlug() string    { return p.Slug }
func (p *Post) SetSlug(s string)   { p.Slug = s }

type PostPatch struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Content    *string
	ImageURL   *string
	AuthorID   Nullable[uint]
	Status     *PostStatus
	IsFeatured *bool
}

func (p *PostPatch) SlugSource() *string { return p.Title }
func (p *PostPatch) GetSlug() *string    { return p.Slug }
func (p *PostPatch) SetSlug(s string)    { p.Slug = &s }

func (p *PostPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "title", p.Title)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "excerpt", p.Excerpt)
	setIf(cols, "content", p.Content)
	setIf(cols, "image_url", p.ImageURL)
	setNullable(cols, "author_id", p.AuthorID)
	setIf(cols, "status", p.Status)
	setIf(cols, "is_featured", p.IsFeatured)
	return cols
}

type Menu struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Slug        string     `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Location    string     `gorm:"size:50;index" json:"location"` // header, footer, sidebar
	Description string     `gorm:"type:text" json:"description"`
	IsActive    bool       `json:"isActive"`
	Items       []MenuItem `gorm:"foreignKey:MenuID" json:"items,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (m *Menu) SlugSource() string { return m.Name }
func (m *Menu) GetSlug() string    { return m.Slug }
func (m *Menu) SetSlug(s string)   { m.Slug = s }

type MenuPatch struct {
	Name        *string
	Slug        *string
	Location    *string
	Description *string
	IsActive    *bool
}

func (p *MenuPatch) SlugSource() *string { return p.Name }
func (p *MenuPatch) GetSlug() *string    { return p.Slug }
func (p *MenuPatch) SetSlug(s string)    { p.Slug = &s }

func (p *MenuPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "name", p.Name)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "location", p.Location)
	setIf(cols, "description", p.Description)
	setIf(cols, "is_active", p.IsActive)
	return cols
}

type MenuItemType string

const (
	MenuItemCustom      MenuItemType = "custom"
	MenuItemPage        MenuItemType = "page"
	MenuItemCategory    MenuItemType = "category"
	MenuItemScholarship MenuItemType = "scholarship"
	MenuItemPost        MenuItemType = "post"
)

type MenuItem struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	MenuID       uint         `gorm:"index;not null" json:"menuId"`
	ParentID     *uint        `gorm:"index" json:"parentId"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Type         MenuItemType `gorm:"size:20;default:custom" json:"type"`
	URL          string       `gorm:"size:500" json:"url"`
	TargetID     *uint        `json:"targetId"` // id of the linked category/scholarship/post
	Order        int          `gorm:"column:sort_order;default:0" json:"order"`
	OpenInNewTab bool         `gorm:"default:false" json:"openInNewTab"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type MenuItemPatch struct {
	ParentID     Nullable[uint]
	Title        *string
	Type         *MenuItemType
	URL          *string
	TargetID     Nullable[uint]
	Order        *int
	OpenInNewTab *bool
}

func (p *MenuItemPatch) Columns() Columns {
	cols := Columns{}
	setNullable(cols, "parent_id", p.ParentID)
	setIf(cols, "title", p.Title)
	setIf(cols, "type", p.Type)
	setIf(cols, "url", p.URL)
	setNullable(cols, "target_id", p.TargetID)
	setIf(cols, "sort_order", p.Order)
	setIf(cols, "open_in_new_tab", p.OpenInNewTab)
	return cols
}

// Media is the metadata record of an uploaded file. Storing the bytes is
// handled outside this service.
type Media struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Filename         string    `gorm:"uniqueIndex;size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255" json:"originalFilename"`
	URL              string    `gorm:"size:500;not null" json:"url"`
	MimeType         string    `gorm:"size:100" json:"mimeType"`
	Size             int64     `json:"size"`
	Width            *int      `json:"width"`
	Height           *int      `json:"height"`
	Alt              string    `gorm:"size:255" json:"alt"`
	Title            string    `gorm:"size:255" json:"title"`
	UploadedBy       *uint     `gorm:"index" json:"uploadedBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type MediaPatch struct {
	Alt   *string
	Title *string
	URL   *string
}

func (p *MediaPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "alt", p.Alt)
	setIf(cols, "title", p.Title)
	setIf(cols, "url", p.URL)
	return cols
}

type SeoSetting struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PagePath        string    `gorm:"uniqueIndex;size:255;not null" json:"pagePath"`
	MetaTitle       string    `gorm:"size:255" json:"metaTitle"`
	MetaDescription string    `gorm:"type:text" json:"metaDescription"`
	Keywords        string    `gorm:"type:text" json:"keywords"`
	OgImage         string    `gorm:"size:500" json:"ogImage"`
	CanonicalURL    string    `gorm:"size:500" json:"canonicalUrl"`
	NoIndex         bool      `gorm:"default:false" json:"noIndex"`
	NoFollow        bool      `gorm:"default:false" json:"noFollow"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type SeoSettingPatch struct {
	PagePath        *string
	MetaTitle       *string
	MetaDescription *string
	Keywords        *string
	OgImage         *string
	CanonicalURL    *string
	NoIndex         *bool
	NoFollow        *bool
}

func (p *SeoSettingPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "page_path", p.PagePath)
	setIf(cols, "meta_title", p.MetaTitle)
	setIf(cols, "meta_description", p.MetaDescription)
	setIf(cols, "keywords", p.Keywords)
	setIf(cols, "og_image", p.OgImage)
	setIf(cols, "canonical_url", p.CanonicalURL)
	setIf(cols, "no_index", p.NoIndex)
	setIf(cols, "no_follow", p.NoFollow)
	return cols
}
