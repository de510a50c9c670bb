package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fullsco/portal/internal/database/learning"
	"github.com/fullsco/portal/internal/database/users"
	"github.com/fullsco/portal/internal/entities"
)

// EnrollmentView is an enrollment with the lessons completed so far and
// the certificate, once issued.
type EnrollmentView struct {
	entities.Enrollment
	CompletedLessons []uint                `json:"completedLessons"`
	Certificate      *entities.Certificate `json:"certificate,omitempty"`
}

// LearningService handles enrollments, lesson progress and certificates.
type LearningService struct {
	courses      *learning.CourseRepository
	lessons      *learning.LessonRepository
	enrollments  *learning.EnrollmentRepository
	progress     *learning.ProgressRepository
	certificates *learning.CertificateRepository
	users        *users.Repository
	recorder     Recorder
	now          func() time.Time
}

type LearningRepositories struct {
	Courses      *learning.CourseRepository
	Lessons      *learning.LessonRepository
	Enrollments  *learning.EnrollmentRepository
	Progress     *learning.ProgressRepository
	Certificates *learning.CertificateRepository
	Users        *users.Repository
}

func NewLearningService(repos LearningRepositories, recorder Recorder) *LearningService {
	return &LearningService{
		courses:      repos.Courses,
		lessons:      repos.Lessons,
		enrollments:  repos.Enrollments,
		progress:     repos.Progress,
		certificates: repos.Certificates,
		users:        repos.Users,
		recorder:     recorder,
		now:          time.Now,
	}
}

// Enroll enrolls a user in a published course. Enrolling twice returns
// ErrAlreadyEnrolled.
func (s *LearningService) Enroll(ctx context.Context, userID, courseID uint) (*entities.Enrollment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	if user == nil {
		return nil, NotFound("user")
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	if course == nil {
		return nil, NotFound("course")
	}
	if !course.IsPublished {
		return nil, ErrCourseNotPublished
	}

	existing, err := s.enrollments.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &entities.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     entities.EnrollmentActive,
		EnrolledAt: s.now(),
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}

	s.logEnrollment(ctx, "course_enroll", enrollment.ID, map[string]any{"courseId": courseID, "userId": userID})
	return enrollment, nil
}

// GetEnrollment returns an enrollment with its completed lessons and certificate.
func (s *LearningService) GetEnrollment(ctx context.Context, id uint) (*EnrollmentView, error) {
	enrollment, err := s.findEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, enrollment)
}

func (s *LearningService) ListUserEnrollments(ctx context.Context, userID uint) ([]entities.Enrollment, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if enrollments == nil {
		enrollments = []entities.Enrollment{}
	}
	return enrollments, nil
}

// CompleteLesson marks a lesson of the enrolled course as completed and
// recalculates the enrollment progress.
func (s *LearningService) CompleteLesson(ctx context.Context, enrollmentID, lessonID uint) (*EnrollmentView, error) {
	enrollment, err := s.findEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	courseID, err := s.lessons.CourseIDForLesson(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("complete lesson: %w", err)
	}
	if courseID == 0 {
		return nil, NotFound("lesson")
	}
	if courseID != enrollment.CourseID {
		return nil, ErrLessonNotInCourse
	}

	if _, err := s.progress.MarkCompleted(ctx, enrollmentID, lessonID); err != nil {
		return nil, fmt.Errorf("complete lesson: %w", err)
	}

	updated, err := s.RecalculateProgress(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, updated)
}

// RecalculateProgress sets the progress of an enrollment to the floor of
// completed/total lessons as a percentage. A course without lessons stays
// at 0. Reaching 100 completes an active enrollment and issues its
// certificate; a completed enrollment never returns to active.
func (s *LearningService) RecalculateProgress(ctx context.Context, enrollmentID uint) (*entities.Enrollment, error) {
	enrollment, err := s.findEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	total, err := s.lessons.CountForCourse(ctx, enrollment.CourseID)
	if err != nil {
		return nil, fmt.Errorf("recalculate progress: %w", err)
	}
	completed, err := s.progress.CountCompleted(ctx, enrollmentID, enrollment.CourseID)
	if err != nil {
		return nil, fmt.Errorf("recalculate progress: %w", err)
	}

	progress := Progress(completed, total)
	columns := map[string]any{}
	if progress != enrollment.Progress {
		columns["progress"] = progress
	}

	justCompleted := progress == 100 && enrollment.Status == entities.EnrollmentActive
	if justCompleted {
		now := s.now()
		columns["status"] = entities.EnrollmentCompleted
		columns["completed_at"] = now
	}

	updated := enrollment
	if len(columns) > 0 {
		updated, err = s.enrollments.Update(ctx, enrollmentID, columns)
		if err != nil {
			return nil, fmt.Errorf("recalculate progress: %w", err)
		}
		if updated == nil {
			return nil, NotFound("enrollment")
		}
	}

	if progress == 100 {
		if _, err := s.issueCertificate(ctx, updated); err != nil {
			return nil, err
		}
	}
	if justCompleted {
		s.logEnrollment(ctx, "course_complete", enrollmentID, map[string]any{"courseId": enrollment.CourseID})
	}

	return updated, nil
}

// RecalculateCourse recalculates every enrollment of a course. Returns the
// number of enrollments processed.
func (s *LearningService) RecalculateCourse(ctx context.Context, courseID uint) (int, error) {
	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("recalculate course: %w", err)
	}
	for _, enrollment := range enrollments {
		if _, err := s.RecalculateProgress(ctx, enrollment.ID); err != nil {
			return 0, err
		}
	}
	return len(enrollments), nil
}

func (s *LearningService) GetCertificate(ctx context.Context, number string) (*entities.Certificate, error) {
	certificate, err := s.certificates.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	if certificate == nil {
		return nil, NotFound("certificate")
	}
	return certificate, nil
}

func (s *LearningService) ListUserCertificates(ctx context.Context, userID uint) ([]entities.Certificate, error) {
	certificates, err := s.certificates.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	if certificates == nil {
		certificates = []entities.Certificate{}
	}
	return certificates, nil
}

// issueCertificate returns the certificate of an enrollment, creating it on
// first call. A concurrent issuer losing the unique index race gets the
// winner's certificate.
func (s *LearningService) issueCertificate(ctx context.Context, enrollment *entities.Enrollment) (*entities.Certificate, error) {
	existing, err := s.certificates.FindByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("issue certificate: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	certificate := &entities.Certificate{
		EnrollmentID:      enrollment.ID,
		UserID:            enrollment.UserID,
		CourseID:          enrollment.CourseID,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          s.now(),
	}
	if err := s.certificates.Create(ctx, certificate); err != nil {
		winner, findErr := s.certificates.FindByEnrollment(ctx, enrollment.ID)
		if findErr == nil && winner != nil {
			return winner, nil
		}
		return nil, fmt.Errorf("issue certificate: %w", errors.Join(err, findErr))
	}

	s.logEnrollment(ctx, "certificate_issue", enrollment.ID, map[string]any{"certificateNumber": certificate.CertificateNumber})
	return certificate, nil
}

func (s *LearningService) findEnrollment(ctx context.Context, id uint) (*entities.Enrollment, error) {
	enrollment, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, NotFound("enrollment")
	}
	return enrollment, nil
}

func (s *LearningService) view(ctx context.Context, enrollment *entities.Enrollment) (*EnrollmentView, error) {
	rows, err := s.progress.ListByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}
	completed := make([]uint, 0, len(rows))
	for _, row := range rows {
		if row.Completed {
			completed = append(completed, row.LessonID)
		}
	}

	certificate, err := s.certificates.FindByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, err
	}

	return &EnrollmentView{
		Enrollment:       *enrollment,
		CompletedLessons: completed,
		Certificate:      certificate,
	}, nil
}

func (s *LearningService) logEnrollment(ctx context.Context, action string, enrollmentID uint, metadata map[string]any) {
	if s.recorder != nil {
		s.recorder.LogEnrollment(ctx, action, enrollmentID, metadata)
	}
}

// Progress returns completed/total as an integer percentage rounded down,
// capped at 100. Zero lessons means zero progress.
func Progress(completed, total int64) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(completed * 100 / total)
}
