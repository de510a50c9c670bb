package services

import (
	"context"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

// Store is the repository contract the generic service depends on.
// crud.Repository implements it.
type Store[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	FindBySlug(ctx context.Context, slug string) (*T, error)
	List(ctx context.Context, q crud.Query) ([]T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id uint, columns map[string]any) (*T, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// Recorder receives audit events for successful mutations. audit.Service
// implements it.
type Recorder interface {
	LogChange(ctx context.Context, eventType entities.AuditEventType, entityType string, entityID uint, description string)
	LogSettings(ctx context.Context, action, description string)
	LogEnrollment(ctx context.Context, action string, enrollmentID uint, metadata map[string]any)
}

// CourseRecalculator recomputes the progress of every enrollment of a
// course after its lessons changed. The task queue implements it; without
// a queue InlineRecalculator runs the work in the request.
type CourseRecalculator interface {
	ScheduleCourseRecalculation(ctx context.Context, courseID uint) error
}

var _ Store[entities.Category] = (*crud.Repository[entities.Category])(nil)
