package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/audit"
	auditrepo "github.com/fullsco/portal/internal/database/audit"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/request"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
)

const defaultAuditLimit = 25

type AuditController struct {
	auditService *audit.Service
	log          *logging.Logger
}

func NewAuditController(auditService *audit.Service, log *logging.Logger) *AuditController {
	return &AuditController{auditService: auditService, log: log}
}

type auditPage struct {
	Events     []entities.AuditEvent `json:"events"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	Total      int64                 `json:"total"`
	TotalPages int                   `json:"totalPages"`
}

// Events returns paginated audit events, newest first.
// GET /admin/audit?type=&entity=&user=&page=&limit=
func (ac *AuditController) Events(c *gin.Context) {
	page, ok := request.QueryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := request.QueryInt(c, "limit", defaultAuditLimit)
	if !ok {
		return
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultAuditLimit
	}

	userID, ok := request.QueryUint(c, "user")
	if !ok {
		return
	}
	filter := auditrepo.Filter{
		EventType:  entities.AuditEventType(c.Query("type")),
		EntityType: c.Query("entity"),
	}
	if userID != nil {
		filter.UserID = *userID
	}

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), filter, limit, (page-1)*limit)
	if err != nil {
		handleError(c, ac.log, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	response.JSON(c, http.StatusOK, auditPage{
		Events:     events,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}
