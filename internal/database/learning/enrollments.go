package learning

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

type EnrollmentRepository struct {
	*crud.Repository[entities.Enrollment]
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{Repository: crud.NewRepository[entities.Enrollment](db)}
}

// FindByUserAndCourse returns the enrollment of a user in a course, or nil.
func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*entities.Enrollment, error) {
	return r.FindOne(ctx, crud.NewQuery().Eq("user_id", userID).Eq("course_id", courseID))
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]entities.Enrollment, error) {
	return r.List(ctx, crud.NewQuery().Eq("user_id", userID).OrderBy("enrolled_at", true))
}

func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID uint) ([]entities.Enrollment, error) {
	return r.List(ctx, crud.NewQuery().Eq("course_id", courseID).OrderBy("id", false))
}

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// MarkCompleted records a lesson as completed for an enrollment. Completing
// the same lesson twice keeps the first completion time.
func (r *ProgressRepository) MarkCompleted(ctx context.Context, enrollmentID, lessonID uint) (*entities.LessonProgress, error) {
	now := time.Now()
	progress := &entities.LessonProgress{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		Completed:    true,
		CompletedAt:  &now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).
		Create(progress).Error
	if err != nil {
		return nil, fmt.Errorf("mark lesson completed: %w", err)
	}

	var stored entities.LessonProgress
	err = r.db.WithContext(ctx).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Take(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("load lesson progress: %w", err)
	}
	return &stored, nil
}

// CountCompleted counts completed lessons of an enrollment that still belong
// to courseID. Lessons that were deleted, or whose section was deleted, are
// not counted.
func (r *ProgressRepository) CountCompleted(ctx context.Context, enrollmentID, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lesson_progress.enrollment_id = ? AND lesson_progress.completed = ?", enrollmentID, true).
		Where("sections.course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count completed lessons: %w", err)
	}
	return count, nil
}

func (r *ProgressRepository) ListByEnrollment(ctx context.Context, enrollmentID uint) ([]entities.LessonProgress, error) {
	var rows []entities.LessonProgress
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list lesson progress: %w", err)
	}
	return rows, nil
}

type CertificateRepository struct {
	*crud.Repository[entities.Certificate]
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{Repository: crud.NewRepository[entities.Certificate](db)}
}

func (r *CertificateRepository) FindByEnrollment(ctx context.Context, enrollmentID uint) (*entities.Certificate, error) {
	return r.FindOne(ctx, crud.NewQuery().Eq("enrollment_id", enrollmentID))
}

func (r *CertificateRepository) FindByNumber(ctx context.Context, number string) (*entities.Certificate, error) {
	return r.FindOne(ctx, crud.NewQuery().Eq("certificate_number", number))
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID uint) ([]entities.Certificate, error) {
	return r.List(ctx, crud.NewQuery().Eq("user_id", userID).OrderBy("issued_at", true))
}
