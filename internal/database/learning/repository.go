// Package learning provides database operations for the course marketplace:
// courses, sections, lessons, enrollments, lesson progress and certificates.
package learning

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
)

type CourseRepository struct {
	*crud.Repository[entities.Course]
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{Repository: crud.NewRepository[entities.Course](db)}
}

// FindWithCurriculum retrieves a course with its sections and lessons in
// display order. Returns nil when the course does not exist.
func (r *CourseRepository) FindWithCurriculum(ctx context.Context, id uint) (*entities.Course, error) {
	var courses []entities.Course
	err := r.DB(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		Limit(1).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("find course with curriculum: %w", err)
	}
	if len(courses) == 0 {
		return nil, nil
	}
	return &courses[0], nil
}

type SectionRepository struct {
	*crud.Repository[entities.Section]
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{Repository: crud.NewRepository[entities.Section](db)}
}

// ListByCourse returns the sections of a course in display order.
func (r *SectionRepository) ListByCourse(ctx context.Context, courseID uint) ([]entities.Section, error) {
	return r.List(ctx, crud.NewQuery().
		Eq("course_id", courseID).
		OrderBy("sort_order", false).
		OrderBy("id", false))
}

type LessonRepository struct {
	*crud.Repository[entities.Lesson]
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{Repository: crud.NewRepository[entities.Lesson](db)}
}

// ListBySection returns the lessons of a section in display order.
func (r *LessonRepository) ListBySection(ctx context.Context, sectionID uint) ([]entities.Lesson, error) {
	return r.List(ctx, crud.NewQuery().
		Eq("section_id", sectionID).
		OrderBy("sort_order", false).
		OrderBy("id", false))
}

// CountForCourse counts the lessons in every section of a course.
func (r *LessonRepository) CountForCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&entities.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count lessons for course: %w", err)
	}
	return count, nil
}

// CourseIDForLesson returns the course a lesson belongs to, or 0 when the
// lesson or its section does not exist.
func (r *LessonRepository) CourseIDForLesson(ctx context.Context, lessonID uint) (uint, error) {
	var courseIDs []uint
	err := r.DB(ctx).Model(&entities.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lessons.id = ?", lessonID).
		Limit(1).
		Pluck("sections.course_id", &courseIDs).Error
	if err != nil {
		return 0, fmt.Errorf("course for lesson: %w", err)
	}
	if len(courseIDs) == 0 {
		return 0, nil
	}
	return courseIDs[0], nil
}
