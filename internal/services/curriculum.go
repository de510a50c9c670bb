package services

import (
	"context"
	"fmt"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/database/learning"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/slug"
)

type (
	SectionService = CRUD[entities.Section, *entities.SectionPatch]
	LessonService  = CRUD[entities.Lesson, *entities.LessonPatch]
)

// CourseService manages courses and their published catalog.
type CourseService struct {
	*CRUD[entities.Course, *entities.CoursePatch]
	repo *learning.CourseRepository
}

func NewCourseService(repo *learning.CourseRepository, recorder Recorder) *CourseService {
	return &CourseService{
		CRUD: NewCRUD[entities.Course, *entities.CoursePatch](repo, "course", WithSlug(slug.Latin), WithRecorder(recorder)),
		repo: repo,
	}
}

// Catalog lists courses, optionally only published ones, newest first.
func (s *CourseService) Catalog(ctx context.Context, publishedOnly bool, page, limit int) (*crud.Page[entities.Course], error) {
	q := crud.NewQuery()
	if publishedOnly {
		q = q.Eq("is_published", true)
	}
	result, err := s.repo.Paginate(ctx, q.OrderBy("created_at", true).OrderBy("id", true), page, limit)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return result, nil
}

// GetWithCurriculum returns a course with its sections and lessons.
func (s *CourseService) GetWithCurriculum(ctx context.Context, id uint) (*entities.Course, error) {
	course, err := s.repo.FindWithCurriculum(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, NotFound(s.Entity())
	}
	return course, nil
}

// CurriculumService manages sections and lessons. Adding or removing a
// lesson changes every enrollment's progress, so those operations hand the
// course to the CourseRecalculator.
type CurriculumService struct {
	Sections *SectionService
	Lessons  *LessonService

	courses  *learning.CourseRepository
	sections *learning.SectionRepository
	lessons  *learning.LessonRepository
	recalc   CourseRecalculator
}

func NewCurriculumService(
	courses *learning.CourseRepository,
	sections *learning.SectionRepository,
	lessons *learning.LessonRepository,
	recalc CourseRecalculator,
	recorder Recorder,
) *CurriculumService {
	return &CurriculumService{
		Sections: NewCRUD[entities.Section, *entities.SectionPatch](sections, "section", WithRecorder(recorder)),
		Lessons:  NewCRUD[entities.Lesson, *entities.LessonPatch](lessons, "lesson", WithRecorder(recorder)),
		courses:  courses,
		sections: sections,
		lessons:  lessons,
		recalc:   recalc,
	}
}

func (s *CurriculumService) ListSections(ctx context.Context, courseID uint) ([]entities.Section, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	sections, err := s.sections.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	if sections == nil {
		sections = []entities.Section{}
	}
	return sections, nil
}

func (s *CurriculumService) AddSection(ctx context.Context, courseID uint, section *entities.Section) (*entities.Section, error) {
	if err := s.requireCourse(ctx, courseID); err != nil {
		return nil, err
	}
	section.CourseID = courseID
	return s.Sections.Create(ctx, section)
}

// DeleteSection removes a section. Its lessons are kept but no longer join
// to a course, so they drop out of both the lesson total and the completed
// count.
func (s *CurriculumService) DeleteSection(ctx context.Context, id uint) error {
	section, err := s.Sections.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Sections.Delete(ctx, id); err != nil {
		return err
	}
	return s.recalculate(ctx, section.CourseID)
}

func (s *CurriculumService) ListLessons(ctx context.Context, sectionID uint) ([]entities.Lesson, error) {
	if _, err := s.Sections.Get(ctx, sectionID); err != nil {
		return nil, err
	}
	lessons, err := s.lessons.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	if lessons == nil {
		lessons = []entities.Lesson{}
	}
	return lessons, nil
}

func (s *CurriculumService) AddLesson(ctx context.Context, sectionID uint, lesson *entities.Lesson) (*entities.Lesson, error) {
	section, err := s.Sections.Get(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	lesson.SectionID = sectionID
	created, err := s.Lessons.Create(ctx, lesson)
	if err != nil {
		return nil, err
	}
	if err := s.recalculate(ctx, section.CourseID); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CurriculumService) DeleteLesson(ctx context.Context, id uint) error {
	courseID, err := s.lessons.CourseIDForLesson(ctx, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if err := s.Lessons.Delete(ctx, id); err != nil {
		return err
	}
	if courseID == 0 {
		return nil
	}
	return s.recalculate(ctx, courseID)
}

func (s *CurriculumService) requireCourse(ctx context.Context, courseID uint) error {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return NotFound("course")
	}
	return nil
}

func (s *CurriculumService) recalculate(ctx context.Context, courseID uint) error {
	if s.recalc == nil {
		return nil
	}
	if err := s.recalc.ScheduleCourseRecalculation(ctx, courseID); err != nil {
		return fmt.Errorf("schedule progress recalculation: %w", err)
	}
	return nil
}

// InlineRecalculator recalculates in the calling goroutine. Used when the
// task queue is disabled.
type InlineRecalculator struct {
	Learning *LearningService
}

func (r InlineRecalculator) ScheduleCourseRecalculation(ctx context.Context, courseID uint) error {
	_, err := r.Learning.RecalculateCourse(ctx, courseID)
	return err
}
