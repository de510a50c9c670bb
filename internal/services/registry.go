package services

import (
	"gorm.io/gorm"

	"github.com/fullsco/portal/internal/database/cms"
	"github.com/fullsco/portal/internal/database/learning"
	"github.com/fullsco/portal/internal/database/users"
)

// Registry holds one instance of every domain service, all sharing db.
type Registry struct {
	Categories   *CategoryService
	Countries    *CountryService
	Levels       *LevelService
	Media        *MediaService
	Scholarships *ScholarshipService
	Posts        *PostService
	Menus        *MenuService
	SeoSettings  *SeoSettingService
	SiteSettings *SiteSettingsService
	Courses      *CourseService
	Curriculum   *CurriculumService
	Learning     *LearningService
}

// NewRegistry builds the repositories and services. A nil recalc
// recalculates course progress inline.
func NewRegistry(db *gorm.DB, recorder Recorder, recalc CourseRecalculator) *Registry {
	courses := learning.NewCourseRepository(db)
	sections := learning.NewSectionRepository(db)
	lessons := learning.NewLessonRepository(db)

	r := &Registry{
		Categories:   NewCategoryService(cms.NewCategoryRepository(db), recorder),
		Countries:    NewCountryService(cms.NewCountryRepository(db), recorder),
		Levels:       NewLevelService(cms.NewLevelRepository(db), recorder),
		Media:        NewMediaService(cms.NewMediaRepository(db), recorder),
		Scholarships: NewScholarshipService(cms.NewScholarshipRepository(db), recorder),
		Posts:        NewPostService(cms.NewPostRepository(db), recorder),
		Menus:        NewMenuService(cms.NewMenuRepository(db), cms.NewMenuItemRepository(db), recorder),
		SeoSettings:  NewSeoSettingService(cms.NewSeoSettingRepository(db), recorder),
		SiteSettings: NewSiteSettingsService(cms.NewSiteSettingsRepository(db), recorder),
		Courses:      NewCourseService(courses, recorder),
		Learning: NewLearningService(LearningRepositories{
			Courses:      courses,
			Lessons:      lessons,
			Enrollments:  learning.NewEnrollmentRepository(db),
			Progress:     learning.NewProgressRepository(db),
			Certificates: learning.NewCertificateRepository(db),
			Users:        users.NewRepository(db),
		}, recorder),
	}
	if recalc == nil {
		recalc = InlineRecalculator{Learning: r.Learning}
	}
	r.Curriculum = NewCurriculumService(courses, sections, lessons, recalc, recorder)
	return r
}
