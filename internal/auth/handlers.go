package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/http/request"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"fullName" binding:"max=255"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

// AuthController serves the /auth endpoints.
type AuthController struct {
	service     *Service
	sessions    *SessionManager
	rateLimiter *RateLimiter
	events      AuthEvents
	log         *logging.Logger
}

// AuthEvents is notified of logins, logouts and registrations.
// audit.Service implements it.
type AuthEvents interface {
	LogAuth(ctx context.Context, userID uint, action string, success bool)
}

func NewAuthController(service *Service, sessions *SessionManager, rateLimiter *RateLimiter, events AuthEvents, log *logging.Logger) *AuthController {
	return &AuthController{
		service:     service,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		events:      events,
		log:         log.With("auth"),
	}
}

// RegisterRoutes mounts the auth endpoints on group; requireAuth guards the
// endpoints that need a logged-in user.
func (ac *AuthController) RegisterRoutes(group *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group.POST("/register", ac.Register)
	group.POST("/login", ac.Login)
	group.POST("/logout", ac.Logout)
	group.GET("/csrf", CSRFToken)
	group.GET("/me", requireAuth, ac.Me)
	group.PUT("/password", requireAuth, ac.ChangePassword)
}

// Register creates an account and logs it in.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if !request.BindJSON(c, &req) {
		return
	}

	user, err := ac.service.Register(c.Request.Context(), NewUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		ac.writeError(c, err)
		return
	}
	ac.record(c, user.ID, "register", true)

	if ac.sessions != nil {
		if err := ac.sessions.CreateSession(c.Request.Context(), user); err != nil {
			ac.log.Error(err, "Failed to create session after registration")
		}
	}
	response.JSON(c, http.StatusCreated, user, "تم إنشاء الحساب بنجاح")
}

// Login checks credentials and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !request.BindJSON(c, &req) {
		return
	}
	clientIP := c.ClientIP()

	if ac.rateLimiter != nil {
		if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, req.Login); !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Abort(c, http.StatusTooManyRequests, "too many login attempts")
			return
		}
	}

	user, err := ac.service.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if ac.rateLimiter != nil && errors.Is(err, ErrInvalidLogin) {
			ac.rateLimiter.RecordFailure(clientIP, req.Login)
		}
		ac.record(c, 0, "login", false)
		ac.writeError(c, err)
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, req.Login)
	}
	if ac.sessions != nil {
		if err := ac.sessions.CreateSession(c.Request.Context(), user); err != nil {
			ac.log.Error(err, "Failed to create session")
			response.Abort(c, http.StatusInternalServerError, "failed to create session")
			return
		}
	}
	ac.record(c, user.ID, "login", true)
	response.JSON(c, http.StatusOK, user, "تم تسجيل الدخول بنجاح")
}

// Logout destroys the session. Logging out without a session succeeds.
func (ac *AuthController) Logout(c *gin.Context) {
	userID := GetUserID(c)
	if ac.sessions != nil {
		if err := ac.sessions.DestroySession(c.Request.Context()); err != nil {
			ac.log.Error(err, "Failed to destroy session")
		}
	}
	if userID != AnonymousUserID {
		ac.record(c, userID, "logout", true)
	}
	response.JSON(c, http.StatusOK, nil, "تم تسجيل الخروج")
}

// Me returns the logged-in user.
func (ac *AuthController) Me(c *gin.Context) {
	if !IsAuthenticated(c) {
		response.Abort(c, http.StatusUnauthorized, MessageUnauthorized)
		return
	}
	user, err := ac.service.GetUserByID(c.Request.Context(), GetUserID(c))
	if err != nil {
		ac.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !request.BindJSON(c, &req) {
		return
	}
	userID := GetUserID(c)
	if err := ac.service.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		ac.writeError(c, err)
		return
	}
	ac.record(c, userID, "password_change", true)
	response.JSON(c, http.StatusOK, nil, "تم تغيير كلمة المرور")
}

func (ac *AuthController) record(c *gin.Context, userID uint, action string, success bool) {
	if ac.events != nil {
		ac.events.LogAuth(c.Request.Context(), userID, action, success)
	}
}

// writeError maps auth errors to statuses. Anything unknown is a 500 with a
// generic message; the cause is logged.
func (ac *AuthController) writeError(c *gin.Context, err error) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		ac.log.Error(err, "Auth request failed")
	}
	response.Abort(c, status, message)
}

// StatusFor returns the HTTP status and client message for an auth error.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUserExists):
		return http.StatusConflict, "اسم المستخدم أو البريد الإلكتروني مستخدم بالفعل"
	case errors.Is(err, ErrInvalidLogin), errors.Is(err, ErrInvalidPassword):
		return http.StatusUnauthorized, MessageUnauthorized
	case errors.Is(err, ErrAccountLocked):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "المستخدم غير موجود"
	case errors.Is(err, ErrUsernameRequired), errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrPasswordRequired), errors.Is(err, ErrUsernameInvalid),
		errors.Is(err, ErrEmailInvalid), errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "حدث خطأ في الخادم"
}
