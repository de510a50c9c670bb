package http

import "github.com/fullsco/portal/internal/entities"

type courseRequest struct {
	Title        string               `json:"title" binding:"required,max=255"`
	Slug         string               `json:"slug" binding:"omitempty,max=255,slug"`
	Description  string               `json:"description"`
	Price        float64              `json:"price" binding:"gte=0"`
	ThumbnailURL string               `json:"thumbnailUrl" binding:"max=500"`
	InstructorID *uint                `json:"instructorId"`
	CategoryID   *uint                `json:"categoryId"`
	Level        entities.CourseLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished  bool                 `json:"isPublished"`
}

func (r *courseRequest) entity() *entities.Course {
	level := r.Level
	if level == "" {
		level = entities.CourseLevelBeginner
	}
	return &entities.Course{
		Title:        r.Title,
		Slug:         r.Slug,
		Description:  r.Description,
		Price:        r.Price,
		ThumbnailURL: r.ThumbnailURL,
		InstructorID: r.InstructorID,
		CategoryID:   r.CategoryID,
		Level:        level,
		IsPublished:  r.IsPublished,
	}
}

type coursePatchRequest struct {
	Title        *string                 `json:"title" binding:"omitempty,min=1,max=255"`
	Slug         *string                 `json:"slug" binding:"omitempty,max=255,slug"`
	Description  *string                 `json:"description"`
	Price        *float64                `json:"price" binding:"omitempty,gte=0"`
	ThumbnailURL *string                 `json:"thumbnailUrl" binding:"omitempty,max=500"`
	InstructorID entities.Nullable[uint] `json:"instructorId"`
	CategoryID   entities.Nullable[uint] `json:"categoryId"`
	Level        *entities.CourseLevel   `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished  *bool                   `json:"isPublished"`
}

func (r *coursePatchRequest) patch() *entities.CoursePatch {
	return &entities.CoursePatch{
		Title:        r.Title,
		Slug:         r.Slug,
		Description:  r.Description,
		Price:        r.Price,
		ThumbnailURL: r.ThumbnailURL,
		InstructorID: r.InstructorID,
		CategoryID:   r.CategoryID,
		Level:        r.Level,
		IsPublished:  r.IsPublished,
	}
}

type sectionRequest struct {
	Title string `json:"title" binding:"required,max=255"`
	Order int    `json:"order" binding:"gte=0"`
}

func (r *sectionRequest) entity() *entities.Section {
	return &entities.Section{Title: r.Title, Order: r.Order}
}

type sectionPatchRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=255"`
	Order *int    `json:"order" binding:"omitempty,gte=0"`
}

func (r *sectionPatchRequest) patch() *entities.SectionPatch {
	return &entities.SectionPatch{Title: r.Title, Order: r.Order}
}

type lessonRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Content         string `json:"content"`
	VideoURL        string `json:"videoUrl" binding:"omitempty,url,max=500"`
	DurationMinutes int    `json:"durationMinutes" binding:"gte=0"`
	Order           int    `json:"order" binding:"gte=0"`
	IsFree          bool   `json:"isFree"`
}

func (r *lessonRequest) entity() *entities.Lesson {
	return &entities.Lesson{
		Title:           r.Title,
		Content:         r.Content,
		VideoURL:        r.VideoURL,
		DurationMinutes: r.DurationMinutes,
		Order:           r.Order,
		IsFree:          r.IsFree,
	}
}

type lessonPatchRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content         *string `json:"content"`
	VideoURL        *string `json:"videoUrl" binding:"omitempty,url,max=500"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,gte=0"`
	Order           *int    `json:"order" binding:"omitempty,gte=0"`
	IsFree          *bool   `json:"isFree"`
}

func (r *lessonPatchRequest) patch() *entities.LessonPatch {
	return &entities.LessonPatch{
		Title:           r.Title,
		Content:         r.Content,
		VideoURL:        r.VideoURL,
		DurationMinutes: r.DurationMinutes,
		Order:           r.Order,
		IsFree:          r.IsFree,
	}
}

// enrollRequest enrolls the caller. Editors and admins may enroll another
// user by id; without one the logged-in user is enrolled.
type enrollRequest struct {
	CourseID uint `json:"courseId" binding:"required,gt=0"`
	UserID   uint `json:"userId"`
}
