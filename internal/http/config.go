package http

import (
	"github.com/fullsco/portal/internal/audit"
	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Services *services.Registry

	// Application info
	Version   string
	APIPrefix string

	Log      *logging.Logger
	Database Pinger
	Audit    *audit.Service

	// Authentication. A nil AuthMiddleware serves every request anonymously
	// with no role checks; a nil AuthService leaves /auth and /users unmounted.
	AuthConfig     config.Auth
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	RateLimiter    *auth.RateLimiter

	// CSRF protection is enabled when CSRFSecret is set.
	CSRFSecret    []byte
	SecureCookies bool
}
