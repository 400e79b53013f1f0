// Package main provides the entry point for the socialnet server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"socialnet/internal/api"
	"socialnet/internal/api/middleware"
	"socialnet/internal/config"
	"socialnet/internal/repository"
	"socialnet/internal/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := repository.Open(cfg.GetDatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("database close failed", "error", err)
		}
	}()

	// Repositories.
	userRepo := repository.NewSQLiteUserRepository(db)
	postRepo := repository.NewSQLitePostRepository(db)
	ratingRepo := repository.NewSQLitePostRatingRepository(db)
	notificationRepo := repository.NewSQLiteNotificationRepository(db)
	auditLogRepo := repository.NewSQLiteAuditLogRepository(db)
	requestLogRepo := repository.NewSQLiteRequestLogRepository(db)

	// Services.
	tokenCache := services.NewTokenInvalidationCache()
	defer tokenCache.Close()

	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, tokenCache, userService, cfg.GetJWTSecret(), cfg.GetJWTExpiration())
	postService := services.NewPostService(postRepo, userRepo)
	ratingService := services.NewPostRatingService(ratingRepo, postRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	auditLogService := services.NewAuditLogService(auditLogRepo)
	requestLogService := services.NewRequestLogService(requestLogRepo)
	presenceHub := services.NewPresenceHub(userRepo, logger)

	router, throttler, err := setupRouter(ctx, cfg, logger, &handlers{
		auth:          api.NewAuthHandler(authService),
		users:         api.NewUserHandler(userService),
		posts:         api.NewPostHandler(postService),
		ratings:       api.NewPostRatingHandler(ratingService),
		notifications: api.NewNotificationHandler(notificationService),
		auditLogs:     api.NewAuditLogHandler(auditLogService, requestLogService),
		health:        api.NewHealthHandler(db),
		presence:      api.NewPresenceHandler(presenceHub, cfg.GetAllowedOrigins(), logger),
		authGuard:     middleware.NewAuthMiddleware(authService),
		requestLogs:   requestLogRepo,
	})
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}
	if throttler != nil {
		defer throttler.Stop()
	}

	server := &http.Server{
		Addr:         ":" + cfg.GetServerPort(),
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
		IdleTimeout:  cfg.GetIdleTimeout(),
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "environment", cfg.GetEnvironment())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
		logger.Info("context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

type handlers struct {
	auth          *api.AuthHandler
	users         *api.UserHandler
	posts         *api.PostHandler
	ratings       *api.PostRatingHandler
	notifications *api.NotificationHandler
	auditLogs     *api.AuditLogHandler
	health        *api.HealthHandler
	presence      *api.PresenceHandler
	authGuard     *middleware.AuthMiddleware
	requestLogs   repository.RequestLogRepository
}

// setupRouter configures the Gin router with all middleware and routes.
func setupRouter(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
	h *handlers,
) (*gin.Engine, *middleware.Throttler, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	if cfg.IsProduction() {
		router.Use(middleware.StructuredLoggingMiddleware())
	} else {
		router.Use(middleware.DefaultLoggingMiddleware())
	}
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.DefaultCORSMiddleware(cfg.GetAllowedOrigins()))
	router.Use(middleware.RequestLoggerMiddleware(h.requestLogs, logger, middleware.RequestLoggerConfig{
		SkipPaths: []string{"/health", "/ready"},
	}))

	var throttler *middleware.Throttler
	if cfg.GetThrottleEnabled() {
		var err error
		throttler, err = middleware.NewThrottler(ctx, middleware.ThrottleConfig{
			RequestsPerMinute: cfg.GetThrottleRequestsPerMinute(),
			UseRedis:          cfg.GetRedisEnabled(),
			RedisAddr:         cfg.GetRedisAddr(),
			RedisPassword:     cfg.GetRedisPassword(),
			RedisDB:           cfg.GetRedisDB(),
		})
		if err != nil {
			return nil, nil, err
		}
		router.Use(throttler.Middleware())
	}

	h.health.RegisterRoutes(router)

	apiGroup := router.Group("/api")
	h.auth.RegisterRoutes(apiGroup)
	h.presence.RegisterRoutes(apiGroup)
	h.users.RegisterRoutes(apiGroup)

	// Content and log routes require a valid session.
	protected := apiGroup.Group("", h.authGuard.RequireAuth())
	h.posts.RegisterRoutes(protected)
	h.ratings.RegisterRoutes(protected)
	h.notifications.RegisterRoutes(protected)

	admin := apiGroup.Group("", h.authGuard.RequireAuth(), h.authGuard.RequireRole("admin"))
	h.auditLogs.RegisterRoutes(admin)

	return router, throttler, nil
}

func newLogger(cfg *config.AppConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.GetLogLevel() {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
