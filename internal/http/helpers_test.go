package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fullsco/portal/internal/audit"
	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/database"
	auditrepo "github.com/fullsco/portal/internal/database/audit"
	"github.com/fullsco/portal/internal/database/users"
	"github.com/fullsco/portal/internal/http/response"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/services"
)

type testServer struct {
	router   *gin.Engine
	db       *database.Database
	services *services.Registry
	auth     *auth.Service
	audit    *audit.Service
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     dbPath,
		LogLevel: "silent",
	}, logging.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db
}

func testAuthConfig(mode config.AuthMode) config.Auth {
	return config.Auth{
		Mode:             mode,
		SessionLifetime:  time.Hour,
		BcryptCost:       bcrypt.MinCost,
		MaxLoginAttempts: 5,
		RateLimitWindow:  time.Minute,
		LockoutDuration:  time.Minute,
	}
}

// setupTestServer wires the full router over a fresh sqlite database.
func setupTestServer(t *testing.T, mode config.AuthMode) *testServer {
	t.Helper()
	db := setupTestDB(t)
	log := logging.Nop()
	authCfg := testAuthConfig(mode)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB), log)
	t.Cleanup(auditService.Wait)
	registry := services.NewRegistry(db.DB, auditService, nil)
	authService := auth.NewService(users.NewRepository(db.DB), authCfg, log)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := auth.NewSessionManager(sqlDB, config.DriverSQLite, authCfg)
	require.NoError(t, err)
	limiter := auth.NewRateLimiter(authCfg)
	t.Cleanup(limiter.Stop)

	router := NewRouter(RouterConfig{
		Services:       registry,
		Version:        "test",
		APIPrefix:      "/api",
		Log:            log,
		Database:       db,
		Audit:          auditService,
		AuthConfig:     authCfg,
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService, sessions, authCfg),
		SessionManager: sessions,
		RateLimiter:    limiter,
	})

	return &testServer{router: router, db: db, services: registry, auth: authService, audit: auditService}
}

func (s *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env response.Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

// data decodes the data member of the last response into dst.
func data(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "fullsco_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("response did not set a session cookie")
	return nil
}
