// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into a generic repository and domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations, site settings seeding
//	├── crud/            # Generic Repository[T] and the Query specification
//	├── cms/             # Scholarships, categories, posts, menus, media, SEO, site settings
//	├── learning/        # Courses, sections, lessons, enrollments, progress, certificates
//	├── users/           # User lookups
//	└── audit/           # Audit event log and retention
//
// # Using Sub-packages
//
// Each sub-package provides repositories built on crud.Repository:
//
//	db, err := database.NewDatabase(cfg.Database, logger)
//	defer db.Close()
//
//	scholarships := cms.NewScholarshipRepository(db.DB)
//	page, err := scholarships.Search(ctx, cms.ScholarshipFilter{Featured: &yes}, 1, 10)
//
//	courses := learning.NewCourseRepository(db.DB)
//	course, err := courses.FindBySlug(ctx, "intro-to-go")
//
// # Adding a New Entity
//
//  1. Add the model and its XPatch type to internal/entities
//  2. Register the model in Models()
//  3. Use crud.NewRepository[entities.X](db) directly, or embed it in a
//     domain repository when extra queries are needed
package database
