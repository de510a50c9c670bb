// Package auth provides authentication and authorization for the API.
//
// It supports two authentication modes:
//   - "none": No authentication required (default), every request is anonymous and allowed
//   - "local": Local user database with session cookies
//
// # Configuration
//
//	AUTH_MODE=none   # Default, no auth required
//	AUTH_MODE=local  # Requires user creation and login
//
// For local mode, additional configuration:
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//
// # Usage
//
//	authService := auth.NewService(userRepo, cfg.Auth, logger)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Database.Driver, cfg.Auth)
//	mw := auth.NewMiddleware(authService, sessions, cfg.Auth)
//	router.Use(sessions.SessionLoadSave(), mw.Handler())
//	admin := api.Group("/admin", mw.RequireRole(entities.UserRoleAdmin))
//
// Handlers read the caller with auth.GetUserID(c) and auth.GetUserRole(c).
package auth
