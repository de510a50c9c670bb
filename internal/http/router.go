package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Reads are public, content changes need an editor and user management
// needs an admin.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logging.Nop()
	}

	router := gin.New()
	router.Use(log.Gin())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF runs before the session middleware so the session context
	// survives CSRF's request replacement.
	if len(cfg.CSRFSecret) > 0 && cfg.SessionManager != nil {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.SessionManager.Cookie.Name))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	middleware := cfg.AuthMiddleware
	if middleware == nil {
		middleware = auth.NewMiddleware(nil, nil, config.Auth{Mode: config.AuthModeNone})
	}
	router.Use(middleware.Handler())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group(cfg.APIPrefix)
	if cfg.APIPrefix != "" && cfg.APIPrefix != "/" {
		api.GET("/health", health.Status)
		api.GET("/ping", Ping)
	}

	editor := api.Group("", middleware.RequireEditor())
	admin := api.Group("", middleware.RequireAdmin())

	registerCMS(api, editor, cfg.Services, log)
	registerLearning(api, editor, middleware, cfg.Services, log)

	if cfg.AuthService != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.RateLimiter, authEvents(cfg), log)
		authController.RegisterRoutes(api.Group("/auth"), middleware.RequireAuth())

		users := NewUsersController(cfg.AuthService, log)
		admin.GET("/users", users.List)
		admin.POST("/users", users.Create)
		admin.GET("/users/:id", users.Show)
		admin.DELETE("/users/:id", users.Delete)
	}

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit, log)
		admin.GET("/admin/audit", auditController.Events)
	}

	return router
}

// authEvents avoids handing the controller a typed nil.
func authEvents(cfg RouterConfig) auth.AuthEvents {
	if cfg.Audit == nil {
		return nil
	}
	return cfg.Audit
}

func registerCMS(public, editor *gin.RouterGroup, svc *services.Registry, log *logging.Logger) {
	categories := NewResourceController(svc.Categories, (*categoryRequest).entity, (*categoryPatchRequest).patch, log)
	categories.Slugged = true
	categories.Register(public, editor, "/categories")

	countries := NewResourceController(svc.Countries, (*countryRequest).entity, (*countryPatchRequest).patch, log)
	countries.Slugged = true
	countries.Register(public, editor, "/countries")

	levels := NewResourceController(svc.Levels, (*levelRequest).entity, (*levelPatchRequest).patch, log)
	levels.Slugged = true
	levels.Register(public, editor, "/levels")

	scholarshipsController := NewScholarshipsController(svc.Scholarships, log)
	scholarships := NewResourceController(svc.Scholarships, (*scholarshipRequest).entity, (*scholarshipPatchRequest).patch, log)
	scholarships.IndexHandler = scholarshipsController.Index
	scholarships.BySlugHandler = scholarshipsController.View
	scholarships.Register(public, editor, "/scholarships")

	postsController := NewPostsController(svc.Posts, log)
	posts := NewResourceController(svc.Posts, (*postRequest).entity, (*postPatchRequest).patch, log)
	posts.IndexHandler = postsController.Index
	posts.BySlugHandler = postsController.View
	posts.Register(public, editor, "/posts")

	menusController := NewMenusController(svc.Menus, log)
	menus := NewResourceController(svc.Menus, (*menuRequest).entity, (*menuPatchRequest).patch, log)
	menus.BySlugHandler = menusController.BySlug
	menus.Register(public, editor, "/menus")
	public.GET("/menus/:id/items", menusController.Items)
	editor.POST("/menus/:id/items", menusController.AddItem)

	menuItems := NewResourceController(svc.Menus.Items, (*menuItemRequest).entity, (*menuItemPatchRequest).patch, log)
	public.GET("/menu-items/:id", menuItems.Show)
	menuItems.RegisterWrite(editor, "/menu-items")

	media := NewResourceController(svc.Media, (*mediaRequest).entity, (*mediaPatchRequest).patch, log)
	media.Register(public, editor, "/media")

	seoController := NewSeoSettingsController(svc.SeoSettings, log)
	public.GET("/seo-settings/page", seoController.ByPath)
	seo := NewResourceController(svc.SeoSettings, (*seoSettingRequest).entity, (*seoSettingPatchRequest).patch, log)
	seo.Register(public, editor, "/seo-settings")

	site := NewSiteSettingsController(svc.SiteSettings, log)
	public.GET("/site-settings", site.Get)
	editor.PUT("/site-settings", site.Update)
	editor.PATCH("/site-settings", site.Update)
}

func registerLearning(public, editor *gin.RouterGroup, middleware *auth.Middleware, svc *services.Registry, log *logging.Logger) {
	coursesController := NewCoursesController(svc.Courses, svc.Curriculum, log)
	courses := NewResourceController(svc.Courses, (*courseRequest).entity, (*coursePatchRequest).patch, log)
	courses.Slugged = true
	courses.IndexHandler = coursesController.Index
	courses.ShowHandler = coursesController.Show
	courses.Register(public, editor, "/courses")
	public.GET("/courses/:id/sections", coursesController.Sections)
	editor.POST("/courses/:id/sections", coursesController.AddSection)

	sections := NewResourceController(
		sectionResource{SectionService: svc.Curriculum.Sections, curriculum: svc.Curriculum},
		(*sectionRequest).entity, (*sectionPatchRequest).patch, log,
	)
	public.GET("/sections/:id", sections.Show)
	sections.RegisterWrite(editor, "/sections")
	public.GET("/sections/:id/lessons", coursesController.Lessons)
	editor.POST("/sections/:id/lessons", coursesController.AddLesson)

	lessons := NewResourceController(
		lessonResource{LessonService: svc.Curriculum.Lessons, curriculum: svc.Curriculum},
		(*lessonRequest).entity, (*lessonPatchRequest).patch, log,
	)
	public.GET("/lessons/:id", lessons.Show)
	lessons.RegisterWrite(editor, "/lessons")

	enrollments := NewEnrollmentsController(svc.Learning, log)
	learner := public.Group("", middleware.RequireAuth())
	learner.POST("/enrollments", enrollments.Enroll)
	learner.GET("/enrollments/:id", enrollments.Show)
	learner.POST("/enrollments/:id/lessons/:lessonId/complete", enrollments.CompleteLesson)
	learner.GET("/users/:id/enrollments", enrollments.UserEnrollments)
	learner.GET("/users/:id/certificates", enrollments.UserCertificates)
	public.GET("/certificates/:number", enrollments.Certificate)
}
