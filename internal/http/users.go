package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/request"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
)

type createUserRequest struct {
	Username string            `json:"username" binding:"required,min=3,max=64"`
	Email    string            `json:"email" binding:"required,email,max=254"`
	Password string            `json:"password" binding:"required,min=8,max=72"`
	FullName string            `json:"fullName" binding:"max=255"`
	Role     entities.UserRole `json:"role" binding:"omitempty,oneof=admin editor user"`
}

// UsersController is the admin user management API.
type UsersController struct {
	service *auth.Service
	log     *logging.Logger
}

func NewUsersController(service *auth.Service, log *logging.Logger) *UsersController {
	return &UsersController{service: service, log: log}
}

// List returns every account.
// GET /users
func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.service.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, uc.log, err, "list users")
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Create adds an account with any role. A taken username or email is a 409.
// POST /users
func (uc *UsersController) Create(c *gin.Context) {
	var req createUserRequest
	if !request.BindJSON(c, &req) {
		return
	}
	user, err := uc.service.CreateUser(c.Request.Context(), auth.NewUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		handleError(c, uc.log, err, "create user")
		return
	}
	response.JSON(c, http.StatusCreated, user, messageCreated)
}

// GET /users/:id
func (uc *UsersController) Show(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	user, err := uc.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, uc.log, err, "get user")
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Delete removes an account. Admins cannot delete themselves.
// DELETE /users/:id
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := request.ParseID(c, "id")
	if !ok {
		return
	}
	if auth.IsAuthenticated(c) && auth.GetUserID(c) == id {
		response.Abort(c, http.StatusBadRequest, "لا يمكنك حذف حسابك")
		return
	}
	if err := uc.service.DeleteUser(c.Request.Context(), id); err != nil {
		handleError(c, uc.log, err, "delete user")
		return
	}
	response.JSON(c, http.StatusOK, nil, messageDeleted)
}
