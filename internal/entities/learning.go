package entities

import "time"

type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

type Course struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Slug         string      `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description  string      `gorm:"type:text" json:"description"`
	Price        float64     `gorm:"default:0" json:"price"`
	ThumbnailURL string      `gorm:"size:500" json:"thumbnailUrl"`
	InstructorID *uint       `gorm:"index" json:"instructorId"`
	CategoryID   *uint       `gorm:"index" json:"categoryId"`
	Level        CourseLevel `gorm:"size:20;default:beginner" json:"level"`
	IsPublished  bool        `gorm:"default:false;index" json:"isPublished"`
	Sections     []Section   `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (c *Course) SlugSource() string { return c.Title }
func (c *Course) GetSlug() string    { return c.Slug }
func (c *Course) SetSlug(s string)   { c.Slug = s }

type CoursePatch struct {
	Title        *string
	Slug         *string
	Description  *string
	Price        *float64
	ThumbnailURL *string
	InstructorID Nullable[uint]
	CategoryID   Nullable[uint]
	Level        *CourseLevel
	IsPublished  *bool
}

func (p *CoursePatch) SlugSource() *string { return p.Title }
func (p *CoursePatch) GetSlug() *string    { return p.Slug }
func (p *CoursePatch) SetSlug(s string)    { p.Slug = &s }

func (p *CoursePatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "title", p.Title)
	setIf(cols, "slug", p.Slug)
	setIf(cols, "description", p.Description)
	setIf(cols, "price", p.Price)
	setIf(cols, "thumbnail_url", p.ThumbnailURL)
	setNullable(cols, "instructor_id", p.InstructorID)
	setNullable(cols, "category_id", p.CategoryID)
	setIf(cols, "level", p.Level)
	setIf(cols, "is_published", p.IsPublished)
	return cols
}

type Section struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"index;not null" json:"courseId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Order     int       `gorm:"column:sort_order;default:0" json:"order"`
	Lessons   []Lesson  `gorm:"foreignKey:SectionID" json:"lessons,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SectionPatch struct {
	Title *string
	Order *int
}

func (p *SectionPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "title", p.Title)
	setIf(cols, "sort_order", p.Order)
	return cols
}

type Lesson struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SectionID       uint      `gorm:"index;not null" json:"sectionId"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Content         string    `gorm:"type:text" json:"content"`
	VideoURL        string    `gorm:"size:500" json:"videoUrl"`
	DurationMinutes int       `gorm:"default:0" json:"durationMinutes"`
	Order           int       `gorm:"column:sort_order;default:0" json:"order"`
	IsFree          bool      `gorm:"default:false" json:"isFree"` // previewable without enrolling
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type LessonPatch struct {
	Title           *string
	Content         *string
	VideoURL        *string
	DurationMinutes *int
	Order           *int
	IsFree          *bool
}

func (p *LessonPatch) Columns() Columns {
	cols := Columns{}
	setIf(cols, "title", p.Title)
	setIf(cols, "content", p.Content)
	setIf(cols, "video_url", p.VideoURL)
	setIf(cols, "duration_minutes", p.DurationMinutes)
	setIf(cols, "sort_order", p.Order)
	setIf(cols, "is_free", p.IsFree)
	return cols
}

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

type Enrollment struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserID      uint             `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID    uint             `gorm:"uniqueIndex:idx_enrollment_user_course;index;not null" json:"courseId"`
	Status      EnrollmentStatus `gorm:"size:20;default:active" json:"status"`
	Progress    int              `gorm:"default:0" json:"progress"` // percent, 0..100
	EnrolledAt  time.Time        `json:"enrolledAt"`
	CompletedAt *time.Time       `json:"completedAt"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type LessonProgress struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EnrollmentID uint       `gorm:"uniqueIndex:idx_progress_enrollment_lesson;not null" json:"enrollmentId"`
	LessonID     uint       `gorm:"uniqueIndex:idx_progress_enrollment_lesson;not null" json:"lessonId"`
	Completed    bool       `gorm:"default:false" json:"completed"`
	CompletedAt  *time.Time `json:"completedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// Certificate is issued once when an enrollment reaches 100% and is never revoked.
type Certificate struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	EnrollmentID      uint      `gorm:"uniqueIndex;not null" json:"enrollmentId"`
	UserID            uint      `gorm:"index;not null" json:"userId"`
	CourseID          uint      `gorm:"index;not null" json:"courseId"`
	CertificateNumber string    `gorm:"uniqueIndex;size:64;not null" json:"certificateNumber"`
	IssuedAt          time.Time `json:"issuedAt"`
	CreatedAt         time.Time `json:"createdAt"`
}
