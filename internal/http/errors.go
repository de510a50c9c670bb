package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

const (
	messageServerError = "حدث خطأ في الخادم"
	messageNotFound    = "غير موجود"
)

// entityNames are the Arabic names used in not-found messages.
var entityNames = map[string]string{
	"category":    "التصنيف",
	"country":     "الدولة",
	"level":       "المستوى الدراسي",
	"scholarship": "المنحة",
	"post":        "المقال",
	"menu":        "القائمة",
	"menu item":   "عنصر القائمة",
	"media":       "الملف",
	"seo setting": "إعداد SEO",
	"course":      "الدورة",
	"section":     "القسم",
	"lesson":      "الدرس",
	"enrollment":  "التسجيل",
	"certificate": "الشهادة",
	"user":        "المستخدم",
}

// notFoundMessage returns "<entity> غير موجود".
func notFoundMessage(entity string) string {
	name, ok := entityNames[entity]
	if !ok {
		name = entity
	}
	return name + " " + messageNotFound
}

// handleError is the shared exception handler of every controller. Typed
// errors pick their status; anything else is logged and classified by its
// message, falling back to a generic 500.
func handleError(c *gin.Context, log *logging.Logger, err error, context string) {
	var notFound *services.NotFoundError
	switch {
	case errors.As(err, &notFound):
		response.Abort(c, http.StatusNotFound, notFoundMessage(notFound.Entity))
		return
	case errors.Is(err, services.ErrAlreadyEnrolled):
		response.Abort(c, http.StatusConflict, "المستخدم مسجل بالفعل في هذه الدورة")
		return
	case errors.Is(err, services.ErrCourseNotPublished), errors.Is(err, services.ErrLessonNotInCourse):
		response.Abort(c, http.StatusBadRequest, err.Error())
		return
	}

	// auth errors (409 duplicate user, 404 unknown user, 400 invalid input)
	if status, message := auth.StatusFor(err); status != http.StatusInternalServerError {
		response.Abort(c, status, message)
		return
	}

	log.Errorf(err, "Request failed (%s)", context)

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, auth.MessageUnauthorized):
		response.Abort(c, http.StatusUnauthorized, auth.MessageUnauthorized)
	case strings.Contains(msg, "not found"), strings.Contains(msg, messageNotFound):
		response.Abort(c, http.StatusNotFound, messageNotFound)
	default:
		response.Abort(c, http.StatusInternalServerError, messageServerError)
	}
}
