package learning

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fullsco/portal/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := "./test_learning_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Course{},
		&entities.Section{},
		&entities.Lesson{},
		&entities.Enrollment{},
		&entities.LessonProgress{},
		&entities.Certificate{},
	))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})
	return db
}

type curriculum struct {
	course   *entities.Course
	sections []*entities.Section
	lessons  []*entities.Lesson
}

// seedCurriculum creates a course with two sections: the first holds two
// lessons, the second one.
func seedCurriculum(t *testing.T, db *gorm.DB, slug string) curriculum {
	t.Helper()
	ctx := context.Background()
	courses := NewCourseRepository(db)
	sections := NewSectionRepository(db)
	lessons := NewLessonRepository(db)

	c := curriculum{course: &entities.Course{Title: slug, Slug: slug, IsPublished: true}}
	require.NoError(t, courses.Create(ctx, c.course))

	for i, title := range []string{"Second", "First"} {
		s := &entities.Section{CourseID: c.course.ID, Title: title, Order: 1 - i}
		require.NoError(t, sections.Create(ctx, s))
		c.sections = append(c.sections, s)
	}
	for i, sectionIdx := range []int{0, 0, 1} {
		l := &entities.Lesson{SectionID: c.sections[sectionIdx].ID, Title: "Lesson", Order: 2 - i}
		require.NoError(t, lessons.Create(ctx, l))
		c.lessons = append(c.lessons, l)
	}
	return c
}

func TestCourseRepository_FindWithCurriculum(t *testing.T) {
	db := setupTestDB(t)
	c := seedCurriculum(t, db, "go")
	repo := NewCourseRepository(db)

	course, err := repo.FindWithCurriculum(context.Background(), c.course.ID)
	require.NoError(t, err)
	require.NotNil(t, course)
	require.Len(t, course.Sections, 2)
	assert.Equal(t, "First", course.Sections[0].Title)
	assert.Equal(t, "Second", course.Sections[1].Title)

	// The section created first holds two lessons, sorted by order.
	second := course.Sections[1]
	require.Len(t, second.Lessons, 2)
	assert.Equal(t, c.lessons[1].ID, second.Lessons[0].ID)
	assert.Equal(t, c.lessons[0].ID, second.Lessons[1].ID)

	missing, err := repo.FindWithCurriculum(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLessonRepository_CourseQueries(t *testing.T) {
	db := setupTestDB(t)
	goCourse := seedCurriculum(t, db, "go")
	rustCourse := seedCurriculum(t, db, "rust")
	repo := NewLessonRepository(db)
	ctx := context.Background()

	count, err := repo.CountForCourse(ctx, goCourse.course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	courseID, err := repo.CourseIDForLesson(ctx, rustCourse.lessons[2].ID)
	require.NoError(t, err)
	assert.Equal(t, rustCourse.course.ID, courseID)

	courseID, err = repo.CourseIDForLesson(ctx, 9999)
	require.NoError(t, err)
	assert.Zero(t, courseID)

	lessons, err := repo.ListBySection(ctx, goCourse.sections[0].ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 2)
}

func TestProgressRepository(t *testing.T) {
	db := setupTestDB(t)
	c := seedCurriculum(t, db, "go")
	enrollments := NewEnrollmentRepository(db)
	progress := NewProgressRepository(db)
	ctx := context.Background()

	enrollment := &entities.Enrollment{UserID: 1, CourseID: c.course.ID, Status: entities.EnrollmentActive, EnrolledAt: time.Now()}
	require.NoError(t, enrollments.Create(ctx, enrollment))

	first, err := progress.MarkCompleted(ctx, enrollment.ID, c.lessons[0].ID)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	again, err := progress.MarkCompleted(ctx, enrollment.ID, c.lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.CompletedAt.Unix(), again.CompletedAt.Unix())

	_, err = progress.MarkCompleted(ctx, enrollment.ID, c.lessons[1].ID)
	require.NoError(t, err)

	count, err := progress.CountCompleted(ctx, enrollment.ID, c.course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Progress rows of deleted lessons no longer count.
	_, err = NewLessonRepository(db).Delete(ctx, c.lessons[1].ID)
	require.NoError(t, err)
	count, err = progress.CountCompleted(ctx, enrollment.ID, c.course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	rows, err := progress.ListByEnrollment(ctx, enrollment.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Lessons of a deleted section no longer count either.
	_, err = progress.MarkCompleted(ctx, enrollment.ID, c.lessons[2].ID)
	require.NoError(t, err)
	count, err = progress.CountCompleted(ctx, enrollment.ID, c.course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = NewSectionRepository(db).Delete(ctx, c.sections[1].ID)
	require.NoError(t, err)
	count, err = progress.CountCompleted(ctx, enrollment.ID, c.course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestEnrollmentAndCertificateLookups(t *testing.T) {
	db := setupTestDB(t)
	c := seedCurriculum(t, db, "go")
	enrollments := NewEnrollmentRepository(db)
	certificates := NewCertificateRepository(db)
	ctx := context.Background()

	enrollment := &entities.Enrollment{UserID: 4, CourseID: c.course.ID, Status: entities.EnrollmentActive, EnrolledAt: time.Now()}
	require.NoError(t, enrollments.Create(ctx, enrollment))

	found, err := enrollments.FindByUserAndCourse(ctx, 4, c.course.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, enrollment.ID, found.ID)

	none, err := enrollments.FindByUserAndCourse(ctx, 5, c.course.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	duplicate := &entities.Enrollment{UserID: 4, CourseID: c.course.ID, EnrolledAt: time.Now()}
	assert.Error(t, enrollments.Create(ctx, duplicate))

	cert := &entities.Certificate{EnrollmentID: enrollment.ID, UserID: 4, CourseID: c.course.ID, CertificateNumber: "FS-TEST-0001", IssuedAt: time.Now()}
	require.NoError(t, certificates.Create(ctx, cert))

	byNumber, err := certificates.FindByNumber(ctx, "FS-TEST-0001")
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	assert.Equal(t, enrollment.ID, byNumber.EnrollmentID)

	byUser, err := certificates.ListByUser(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}
