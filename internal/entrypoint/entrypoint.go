package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fullsco/portal/internal/audit"
	"github.com/fullsco/portal/internal/auth"
	"github.com/fullsco/portal/internal/config"
	"github.com/fullsco/portal/internal/database"
	auditrepo "github.com/fullsco/portal/internal/database/audit"
	"github.com/fullsco/portal/internal/database/users"
	"github.com/fullsco/portal/internal/entities"
	http_controllers "github.com/fullsco/portal/internal/http"
	"github.com/fullsco/portal/internal/logging"
	"github.com/fullsco/portal/internal/scheduler"
	"github.com/fullsco/portal/internal/services"
	"github.com/fullsco/portal/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *logging.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infof("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server Shutdown")
	}

	// Background work stops after in-flight requests have drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("Server exiting")
}

// Run builds every component from cfg and serves until shutdown. Resources
// are released in reverse order of construction.
func Run(cfg *config.Config, version string) {
	log := logging.New(cfg.Log)
	logConfigWarnings(cfg, log)
	log.Infof("Starting FULLSCO portal v%s", version)
	gin.SetMode(gin.ReleaseMode)

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		log.Fatal(err, "Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error(err, "Error closing database")
		}
	}()

	auditService := audit.NewService(auditrepo.NewRepository(db.DB), log)
	defer auditService.Wait()

	// Task queue. Course progress recalculation and audit cleanup run on it
	// when enabled, inline otherwise.
	var taskClient *tasks.Client
	var recalc services.CourseRecalculator
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromConfig(cfg.Tasks), log)
		if err != nil {
			log.Fatal(err, "Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error(err, "Error closing task client")
			}
		}()
		recalc = tasks.QueueRecalculator{Client: taskClient}
	}

	registry := services.NewRegistry(db.DB, auditService, recalc)

	taskCtx, taskCancel := context.WithCancel(context.Background())
	defer taskCancel()
	if taskClient != nil {
		taskClient.Register(
			tasks.NewRecalculateCourseProgressQueue(registry.Learning, log),
			tasks.NewCleanupAuditEventsQueue(auditService, log),
		)
		taskClient.Start(taskCtx)
	}

	cleanup := scheduler.NewAuditCleanupScheduler(cfg.Audit, taskClient, auditService, log)
	if err := cleanup.Start(taskCtx); err != nil {
		log.Error(err, "Audit cleanup scheduler not started")
	}

	authService := auth.NewService(users.NewRepository(db.DB), cfg.Auth, log)
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var rateLimiter *auth.RateLimiter
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Info("Authentication mode: local")

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal(err, "Failed to get SQL DB for sessions")
		}
		sessionManager, err = auth.NewSessionManager(sqlDB, db.Driver(), cfg.Auth)
		if err != nil {
			log.Fatal(err, "Failed to initialize session manager")
		}
		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)
		rateLimiter = auth.NewRateLimiter(cfg.Auth)
		defer rateLimiter.Stop()

		csrfSecret, err = sessionSecret(cfg.Auth.SessionSecret)
		if err != nil {
			log.Fatal(err, "Failed to generate CSRF secret")
		}
		if cfg.Auth.SessionSecret == "" {
			log.Info("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		hasUsers, err := authService.HasUsers(context.Background())
		if err != nil {
			log.Error(err, "Failed to check for users")
		} else if !hasUsers {
			log.Info("No users found. The first account registered becomes the administrator.")
		}
	} else {
		log.Info("Authentication mode: none (no authentication required)")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Services:       registry,
		Version:        version,
		APIPrefix:      cfg.HTTP.APIPrefix,
		Log:            log,
		Database:       db,
		Audit:          auditService,
		AuthConfig:     cfg.Auth,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		RateLimiter:    rateLimiter,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
	})

	onShutdown := func(ctx context.Context) {
		cleanup.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		taskCancel()
	}

	Serve(router, cfg, log, onShutdown)
}

// logConfigWarnings reports problems found while loading the configuration.
func logConfigWarnings(cfg *config.Config, log *logging.Logger) {
	for _, warning := range cfg.Warnings {
		log.Warnf("config: %s", warning)
	}
}

// sessionSecret decodes a hex AUTH_SESSION_SECRET, falls back to its raw
// bytes, and generates a random one when it is empty.
func sessionSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}
	generated, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(generated)
}

// CreateAdmin creates an administrator account from the command line.
func CreateAdmin(cfg *config.Config, username, email, password string) error {
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	log := logging.New(cfg.Log)
	logConfigWarnings(cfg, log)

	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(users.NewRepository(db.DB), cfg.Auth, log)
	user, err := service.CreateUser(context.Background(), auth.NewUser{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entities.UserRoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Infof("Created administrator %s (id %d)", user.Username, user.ID)
	return nil
}
