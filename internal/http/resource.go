package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/database/crud"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/request"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
)

// ResourceService is the part of services.CRUD a ResourceController needs.
type ResourceService[T any, P entities.Patch] interface {
	Entity() string
	Get(ctx context.Context, id uint) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	List(ctx context.Context, q crud.Query) ([]T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id uint, patch P) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// ResourceController serves list/get/getBySlug/create/update/delete for one
// entity. C is the create request schema and U the update schema; the two
// mapping functions turn a validated request into an entity or a patch.
type ResourceController[T any, P entities.Patch, C any, U any] struct {
	service  ResourceService[T, P]
	toEntity func(*C) *T
	toPatch  func(*U) P
	log      *logging.Logger

	// Slugged mounts GET <path>/slug/:slug.
	Slugged bool
	// Optional replacements of the generic read handlers.
	IndexHandler  gin.HandlerFunc
	ShowHandler   gin.HandlerFunc
	BySlugHandler gin.HandlerFunc
}

func NewResourceController[T any, P entities.Patch, C any, U any](
	service ResourceService[T, P],
	toEntity func(*C) *T,
	toPatch func(*U) P,
	log *logging.Logger,
) *ResourceController[T, P, C, U] {
	return &ResourceController[T, P, C, U]{
		service:  service,
		toEntity: toEntity,
		toPatch:  toPatch,
		log:      log,
	}
}

// Register mounts the read routes on public and the mutating routes on
// editor, both under path.
func (rc *ResourceController[T, P, C, U]) Register(public, editor gin.IRoutes, path string) {
	rc.RegisterRead(public, path)
	editor.POST(path, rc.Create)
	rc.RegisterWrite(editor, path)
}

// RegisterRead mounts GET path, GET path/:id and, for slugged entities,
// GET path/slug/:slug.
func (rc *ResourceController[T, P, C, U]) RegisterRead(routes gin.IRoutes, path string) {
	routes.GET(path, orDefault(rc.IndexHandler, rc.Index))
	routes.GET(path+"/:id", orDefault(rc.ShowHandler, rc.Show))
	if rc.Slugged || rc.BySlugHandler != nil {
		routes.GET(path+"/slug/:slug", orDefault(rc.BySlugHandler, rc.ShowBySlug))
	}
}

// RegisterWrite mounts PUT, PATCH and DELETE path/:id. Both update verbs
// apply a partial patch.
func (rc *ResourceController[T, P, C, U]) RegisterWrite(routes gin.IRoutes, path string) {
	routes.PUT(path+"/:id", rc.Update)
	routes.PATCH(path+"/:id", rc.Update)
	routes.DELETE(path+"/:id", rc.Delete)
}

func orDefault(h, def gin.HandlerFunc) gin.HandlerFunc {
	if h != nil {
		return h
	}
	return def
}

// Index returns every row.
func (rc *ResourceController[T, P, C, U]) Index(c *gin.Context) {
	items, err := rc.service.List(c.Request.Context(), crud.NewQuery().OrderBy("id", false))
	if err != nil {
		handleError(c, rc.log, err, "list "+rc.service.Entity())
		return
	}
	response.JSON(c, http.StatusOK, items)
}

func (rc *ResourceController[T, P, C, U]) Show(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	entity, err := rc.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, rc.log, err, "get "+rc.service.Entity())
		return
	}
	response.JSON(c, http.StatusOK, entity)
}

func (rc *ResourceController[T, P, C, U]) ShowBySlug(c *gin.Context) {
	entity, err := rc.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, rc.log, err, "get "+rc.service.Entity()+" by slug")
		return
	}
	response.JSON(c, http.StatusOK, entity)
}

func (rc *ResourceController[T, P, C, U]) Create(c *gin.Context) {
	var req C
	if !request.BindJSON(c, &req) {
		return
	}
	created, err := rc.service.Create(c.Request.Context(), rc.toEntity(&req))
	if err != nil {
		handleError(c, rc.log, err, "create "+rc.service.Entity())
		return
	}
	response.JSON(c, http.StatusCreated, created, messageCreated)
}

func (rc *ResourceController[T, P, C, U]) Update(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	var req U
	if !request.BindJSON(c, &req) {
		return
	}
	updated, err := rc.service.Update(c.Request.Context(), id, rc.toPatch(&req))
	if err != nil {
		handleError(c, rc.log, err, "update "+rc.service.Entity())
		return
	}
	response.JSON(c, http.StatusOK, updated, messageUpdated)
}

func (rc *ResourceController[T, P, C, U]) Delete(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	if err := rc.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, rc.log, err, "delete "+rc.service.Entity())
		return
	}
	response.JSON(c, http.StatusOK, nil, messageDeleted)
}

const (
	messageCreated = "تم الإنشاء بنجاح"
	messageUpdated = "تم التحديث بنجاح"
	messageDeleted = "تم الحذف بنجاح"
)

// pageQuery reads the optional page and limit query values.
func pageQuery(c *gin.Context) (page, limit int, ok bool) {
	if page, ok = request.QueryInt(c, "page", 1); !ok {
		return 0, 0, false
	}
	if limit, ok = request.QueryInt(c, "limit", crud.DefaultLimit); !ok {
		return 0, 0, false
	}
	page, limit = crud.Paginate(page, limit)
	return page, limit, true
}
