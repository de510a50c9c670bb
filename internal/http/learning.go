package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/request"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

// CoursesController serves the catalog and the course detail with its
// curriculum.
type CoursesController struct {
	courses    *services.CourseService
	curriculum *services.CurriculumService
	log        *logging.Logger
}

func NewCoursesController(courses *services.CourseService, curriculum *services.CurriculumService, log *logging.Logger) *CoursesController {
	return &CoursesController{courses: courses, curriculum: curriculum, log: log}
}

// Index returns one page of the catalog. Visitors only see published
// courses; editors see everything unless they ask for ?published=true.
// GET /courses?published=&page=&limit=
func (cc *CoursesController) Index(c *gin.Context) {
	published, ok := request.QueryBool(c, "published")
	if !ok {
		return
	}
	publishedOnly := !canEdit(c)
	if published != nil {
		publishedOnly = *published
	}

	page, limit, ok := pageQuery(c)
	if !ok {
		return
	}

	result, err := cc.courses.Catalog(c.Request.Context(), publishedOnly, page, limit)
	if err != nil {
		handleError(c, cc.log, err, "list courses")
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Show returns a course with its sections and lessons.
// GET /courses/:id
func (cc *CoursesController) Show(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	course, err := cc.courses.GetWithCurriculum(c.Request.Context(), id)
	if err != nil {
		handleError(c, cc.log, err, "get course")
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Sections lists the sections of a course.
// GET /courses/:id/sections
func (cc *CoursesController) Sections(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	sections, err := cc.curriculum.ListSections(c.Request.Context(), id)
	if err != nil {
		handleError(c, cc.log, err, "list sections")
		return
	}
	response.JSON(c, http.StatusOK, sections)
}

// AddSection creates a section in a course.
// POST /courses/:id/sections
func (cc *CoursesController) AddSection(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	var req sectionRequest
	if !request.BindJSON(c, &req) {
		return
	}
	section, err := cc.curriculum.AddSection(c.Request.Context(), id, req.entity())
	if err != nil {
		handleError(c, cc.log, err, "add section")
		return
	}
	response.JSON(c, http.StatusCreated, section, messageCreated)
}

// Lessons lists the lessons of a section.
// GET /sections/:id/lessons
func (cc *CoursesController) Lessons(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	lessons, err := cc.curriculum.ListLessons(c.Request.Context(), id)
	if err != nil {
		handleError(c, cc.log, err, "list lessons")
		return
	}
	response.JSON(c, http.StatusOK, lessons)
}

// AddLesson creates a lesson in a section. Enrollment progress of the
// course is recalculated.
// POST /sections/:id/lessons
func (cc *CoursesController) AddLesson(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	var req lessonRequest
	if !request.BindJSON(c, &req) {
		return
	}
	lesson, err := cc.curriculum.AddLesson(c.Request.Context(), id, req.entity())
	if err != nil {
		handleError(c, cc.log, err, "add lesson")
		return
	}
	response.JSON(c, http.StatusCreated, lesson, messageCreated)
}

// sectionResource deletes through the curriculum service so progress is
// recalculated.
type sectionResource struct {
	*services.SectionService
	curriculum *services.CurriculumService
}

func (r sectionResource) Delete(ctx context.Context, id uint) error {
	return r.curriculum.DeleteSection(ctx, id)
}

type lessonResource struct {
	*services.LessonService
	curriculum *services.CurriculumService
}

func (r lessonResource) Delete(ctx context.Context, id uint) error {
	return r.curriculum.DeleteLesson(ctx, id)
}

// EnrollmentsController serves enrollments, lesson completion and
// certificates.
type EnrollmentsController struct {
	service *services.LearningService
	log     *logging.Logger
}

func NewEnrollmentsController(service *services.LearningService, log *logging.Logger) *EnrollmentsController {
	return &EnrollmentsController{service: service, log: log}
}

// Enroll enrolls the caller, or userId when the caller is an editor.
// POST /enrollments
func (ec *EnrollmentsController) Enroll(c *gin.Context) {
	var req enrollRequest
	if !request.BindJSON(c, &req) {
		return
	}

	userID := auth.GetUserID(c)
	if req.UserID != 0 && req.UserID != userID {
		if !canEdit(c) {
			response.Abort(c, http.StatusForbidden, auth.MessageForbidden)
			return
		}
		userID = req.UserID
	}
	if userID == auth.AnonymousUserID {
		response.Abort(c, http.StatusBadRequest, request.MessageValidationFailed, map[string]string{"userId": "userId is required"})
		return
	}

	enrollment, err := ec.service.Enroll(c.Request.Context(), userID, req.CourseID)
	if err != nil {
		handleError(c, ec.log, err, "enroll")
		return
	}
	response.JSON(c, http.StatusCreated, enrollment, "تم التسجيل في الدورة")
}

// Show returns an enrollment with its completed lessons.
// GET /enrollments/:id
func (ec *EnrollmentsController) Show(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	view, err := ec.service.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		handleError(c, ec.log, err, "get enrollment")
		return
	}
	if !ownsOrEdits(c, view.UserID) {
		response.Abort(c, http.StatusForbidden, auth.MessageForbidden)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// CompleteLesson marks a lesson as completed.
// POST /enrollments/:id/lessons/:lessonId/complete
func (ec *EnrollmentsController) CompleteLesson(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	lessonID, ok := request.ParseID(c, "lessonId")
	if !ok {
		return
	}

	current, err := ec.service.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		handleError(c, ec.log, err, "complete lesson")
		return
	}
	if !ownsOrEdits(c, current.UserID) {
		response.Abort(c, http.StatusForbidden, auth.MessageForbidden)
		return
	}

	view, err := ec.service.CompleteLesson(c.Request.Context(), id, lessonID)
	if err != nil {
		handleError(c, ec.log, err, "complete lesson")
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// UserEnrollments lists the enrollments of a user.
// GET /users/:id/enrollments
func (ec *EnrollmentsController) UserEnrollments(c *gin.Context) {
	userID, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	if !ownsOrEdits(c, userID) {
		response.Abort(c, http.StatusForbidden, auth.MessageForbidden)
		return
	}
	enrollments, err := ec.service.ListUserEnrollments(c.Request.Context(), userID)
	if err != nil {
		handleError(c, ec.log, err, "list enrollments")
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Certificate looks a certificate up by number. Public, for verification.
// GET /certificates/:number
func (ec *EnrollmentsController) Certificate(c *gin.Context) {
	certificate, err := ec.service.GetCertificate(c.Request.Context(), c.Param("number"))
	if err != nil {
		handleError(c, ec.log, err, "get certificate")
		return
	}
	response.JSON(c, http.StatusOK, certificate)
}

// UserCertificates lists the certificates of a user.
// GET /users/:id/certificates
func (ec *EnrollmentsController) UserCertificates(c *gin.Context) {
	userID, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	if !ownsOrEdits(c, userID) {
		response.Abort(c, http.StatusForbidden, auth.MessageForbidden)
		return
	}
	certificates, err := ec.service.ListUserCertificates(c.Request.Context(), userID)
	if err != nil {
		handleError(c, ec.log, err, "list certificates")
		return
	}
	response.JSON(c, http.StatusOK, certificates)
}

// canEdit reports whether the caller may manage content. Without local
// authentication everyone can.
func canEdit(c *gin.Context) bool {
	if !auth.IsEnforced(c) {
		return true
	}
	role := auth.GetUserRole(c)
	return role == entities.UserRoleAdmin || role == entities.UserRoleEditor
}

// ownsOrEdits reports whether the caller is userID or may manage content.
func ownsOrEdits(c *gin.Context, userID uint) bool {
	if canEdit(c) {
		return true
	}
	return auth.IsAuthenticated(c) && auth.GetUserID(c) == userID
}
