package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/database/cms"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/request"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

// ScholarshipsController serves the filtered scholarship listing and the
// public detail page, which counts views.
type ScholarshipsController struct {
	service *services.ScholarshipService
	log     *logging.Logger
}

func NewScholarshipsController(service *services.ScholarshipService, log *logging.Logger) *ScholarshipsController {
	return &ScholarshipsController{service: service, log: log}
}

// Index returns one page of scholarships.
// GET /scholarships?category=&country=&level=&featured=&active=&search=&page=&limit=
func (sc *ScholarshipsController) Index(c *gin.Context) {
	var filter cms.ScholarshipFilter
	var ok bool
	if filter.CategoryID, ok = request.QueryUint(c, "category"); !ok {
		return
	}
	if filter.CountryID, ok = request.QueryUint(c, "country"); !ok {
		return
	}
	if filter.LevelID, ok = request.QueryUint(c, "level"); !ok {
		return
	}
	if filter.Featured, ok = request.QueryBool(c, "featured"); !ok {
		return
	}
	if filter.Active, ok = request.QueryBool(c, "active"); !ok {
		return
	}
	filter.Search = c.Query("search")

	page, limit, ok := pageQuery(c)
	if !ok {
		return
	}

	result, err := sc.service.Search(c.Request.Context(), filter, page, limit)
	if err != nil {
		handleError(c, sc.log, err, "search scholarships")
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// View returns a scholarship by slug and counts the view.
// GET /scholarships/slug/:slug
func (sc *ScholarshipsController) View(c *gin.Context) {
	scholarship, err := sc.service.View(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, sc.log, err, "view scholarship")
		return
	}
	response.JSON(c, http.StatusOK, scholarship)
}

type PostsController struct {
	service *services.PostService
	log     *logging.Logger
}

func NewPostsController(service *services.PostService, log *logging.Logger) *PostsController {
	return &PostsController{service: service, log: log}
}

// Index returns one page of posts, optionally of one status.
// GET /posts?status=&page=&limit=
func (pc *PostsController) Index(c *gin.Context) {
	status := entities.PostStatus(c.Query("status"))
	switch status {
	case "", entities.PostStatusDraft, entities.PostStatusPublished:
	default:
		response.Abort(c, http.StatusBadRequest, "invalid status")
		return
	}

	page, limit, ok := pageQuery(c)
	if !ok {
		return
	}

	result, err := pc.service.ListByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		handleError(c, pc.log, err, "list posts")
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// View returns a post by slug and counts the view.
// GET /posts/slug/:slug
func (pc *PostsController) View(c *gin.Context) {
	post, err := pc.service.View(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, pc.log, err, "view post")
		return
	}
	response.JSON(c, http.StatusOK, post)
}

// MenusController serves menu items and the menu-with-items lookup.
type MenusController struct {
	service *services.MenuService
	log     *logging.Logger
}

func NewMenusController(service *services.MenuService, log *logging.Logger) *MenusController {
	return &MenusController{service: service, log: log}
}

// BySlug returns a menu with its items in display order.
// GET /menus/slug/:slug
func (mc *MenusController) BySlug(c *gin.Context) {
	menu, err := mc.service.GetWithItems(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, mc.log, err, "get menu")
		return
	}
	response.JSON(c, http.StatusOK, menu)
}

// Items lists the items of a menu.
// GET /menus/:id/items
func (mc *MenusController) Items(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	items, err := mc.service.ListItems(c.Request.Context(), id)
	if err != nil {
		handleError(c, mc.log, err, "list menu items")
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// AddItem attaches a new item to a menu.
// POST /menus/:id/items
func (mc *MenusController) AddItem(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	var req menuItemRequest
	if !request.BindJSON(c, &req) {
		return
	}
	item, err := mc.service.AddItem(c.Request.Context(), id, req.entity())
	if err != nil {
		handleError(c, mc.log, err, "add menu item")
		return
	}
	response.JSON(c, http.StatusCreated, item, messageCreated)
}

type SeoSettingsController struct {
	service *services.SeoSettingService
	log     *logging.Logger
}

func NewSeoSettingsController(service *services.SeoSettingService, log *logging.Logger) *SeoSettingsController {
	return &SeoSettingsController{service: service, log: log}
}

// ByPath returns the SEO metadata of one page.
// GET /seo-settings/page?path=/about
func (sc *SeoSettingsController) ByPath(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.Abort(c, http.StatusBadRequest, "path is required")
		return
	}
	setting, err := sc.service.GetByPagePath(c.Request.Context(), path)
	if err != nil {
		handleError(c, sc.log, err, "get seo setting")
		return
	}
	response.JSON(c, http.StatusOK, setting)
}

type SiteSettingsController struct {
	service *services.SiteSettingsService
	log     *logging.Logger
}

func NewSiteSettingsController(service *services.SiteSettingsService, log *logging.Logger) *SiteSettingsController {
	return &SiteSettingsController{service: service, log: log}
}

// Get returns the site settings.
// GET /site-settings
func (sc *SiteSettingsController) Get(c *gin.Context) {
	settings, err := sc.service.Get(c.Request.Context())
	if err != nil {
		handleError(c, sc.log, err, "get site settings")
		return
	}
	response.JSON(c, http.StatusOK, settings)
}

// Update applies a partial update from a JSON body or a form post.
// PUT /site-settings
func (sc *SiteSettingsController) Update(c *gin.Context) {
	var req siteSettingsRequest
	if !request.Bind(c, &req) {
		return
	}
	settings, err := sc.service.Update(c.Request.Context(), req.patch())
	if err != nil {
		handleError(c, sc.log, err, "update site settings")
		return
	}
	response.JSON(c, http.StatusOK, settings, "تم حفظ الإعدادات")
}
