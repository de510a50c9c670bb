package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/audit"
	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/entities"
	"github.com/fullsco/portal/internal/http/response"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
	ContextKeyRole     = "auth_role"
	ContextKeyAuthType = "auth_type"
	ContextKeyEnforced = "auth_enforced"
)

// AuthType indicates how the user was authenticated
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
)

// AnonymousUserID is the user id of requests without a session.
const AnonymousUserID = uint(0)

// Messages of the 401 and 403 envelopes, shared by every handler of the API.
const (
	MessageUnauthorized = "غير مصرح"
	MessageForbidden    = "ليس لديك صلاحية للقيام بهذا الإجراء"
)

// Middleware resolves the caller of each request and guards routes.
type Middleware struct {
	service  *Service
	sessions *SessionManager
	config   config.Auth
}

func NewMiddleware(service *Service, sessions *SessionManager, cfg config.Auth) *Middleware {
	return &Middleware{service: service, sessions: sessions, config: cfg}
}

// Handler identifies the caller and stores it in the gin context and, as an
// audit.Actor, in the request context. It never rejects a request; use
// RequireAuth and RequireRole on the routes that need a user.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, AnonymousUserID)
		c.Set(ContextKeyAuthType, AuthTypeNone)
		c.Set(ContextKeyEnforced, m.config.Mode == config.AuthModeLocal)

		if m.config.Mode == config.AuthModeLocal {
			if user := m.trySessionAuth(c); user != nil {
				setUserContext(c, user, AuthTypeSession)
			}
		}

		actor := audit.Actor{
			UserID:    GetUserID(c),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// trySessionAuth returns the session's user, re-read from the database so a
// deleted account or a changed role takes effect immediately.
func (m *Middleware) trySessionAuth(c *gin.Context) *entities.User {
	if m.sessions == nil {
		return nil
	}

	ctx := c.Request.Context()
	userID := m.sessions.GetUserID(ctx)
	if userID == 0 {
		return nil
	}

	user, err := m.service.GetUserByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}

func setUserContext(c *gin.Context, user *entities.User, authType AuthType) {
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyUsername, user.Username)
	c.Set(ContextKeyRole, user.Role)
	c.Set(ContextKeyAuthType, authType)
}

// RequireAuth rejects anonymous requests with 401 when auth is enabled.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.config.Mode == config.AuthModeLocal && GetUserID(c) == AnonymousUserID {
			response.Abort(c, http.StatusUnauthorized, MessageUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and users outside roles
// with 403. Everything passes when auth is disabled.
func (m *Middleware) RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	roleSet := make(map[entities.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if m.config.Mode != config.AuthModeLocal {
			c.Next()
			return
		}
		if GetUserID(c) == AnonymousUserID {
			response.Abort(c, http.StatusUnauthorized, MessageUnauthorized)
			return
		}
		if !roleSet[GetUserRole(c)] {
			response.Abort(c, http.StatusForbidden, MessageForbidden)
			return
		}
		c.Next()
	}
}

// RequireEditor allows admins and editors.
func (m *Middleware) RequireEditor() gin.HandlerFunc {
	return m.RequireRole(entities.UserRoleAdmin, entities.UserRoleEditor)
}

// RequireAdmin allows admins only.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(entities.UserRoleAdmin)
}

// GetUserID returns AnonymousUserID when the request has no user.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return AnonymousUserID
}

func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

func GetUserRole(c *gin.Context) entities.UserRole {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(entities.UserRole); ok {
			return role
		}
	}
	return ""
}

func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}

// IsEnforced reports whether the request runs with local authentication.
// When false every caller is treated as an editor.
func IsEnforced(c *gin.Context) bool {
	return c.GetBool(ContextKeyEnforced)
}

// IsAuthenticated returns true if the request carries a logged-in user.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != AnonymousUserID
}
