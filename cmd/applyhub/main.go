package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/applyhub/applyhub/db"
	"github.com/applyhub/applyhub/internal/auth"
	"github.com/applyhub/applyhub/internal/config"
	"github.com/applyhub/applyhub/internal/drafts"
	"github.com/applyhub/applyhub/internal/handlers"
	"github.com/applyhub/applyhub/internal/logging"
	"github.com/applyhub/applyhub/internal/ratelimit"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/router"
	"github.com/applyhub/applyhub/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("close database", "error", err)
		}
	}()
	if err := db.MigrateDatabase(gdb); err != nil {
		return err
	}
	logger.Info("database ready", "driver", cfg.Database.Driver)

	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	var (
		limiter    ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.ApplyRateLimit, cfg.ApplyRateWindow)
		draftStore drafts.Store      = drafts.NewMemoryStore(cfg.DraftTTL)
	)
	rdb, err := db.OpenRedis(ctx, cfg.RedisURL)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, using in-memory rate limiter and drafts", "error", err)
	case rdb != nil:
		defer rdb.Close()
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.ApplyRateLimit, cfg.ApplyRateWindow, ratelimit.ApplyPrefix, logger)
		draftStore = drafts.NewRedisStore(rdb, cfg.DraftTTL)
		logger.Info("redis connected")
	}

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}

	store := repository.New(gdb)
	hub := handlers.NewHub(cfg.AllowedOrigins, logger)

	mailer := services.NewMailer(cfg.Mail, logger)
	if !mailer.Enabled() {
		logger.Warn("email credentials not configured, notifications will fail")
	}
	notifier := services.NewEmailNotifier(store.Emails, store.Notifications, mailer, logger)

	admins := services.NewAdminService(store.Admins, issuer, logger)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := admins.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("bootstrap admin created", "email", cfg.AdminEmail)
		}
	}

	h := handlers.New(handlers.Deps{
		Intake:       services.NewIntakeService(store.Applications, store.Courses, hub, logger),
		Review:       services.NewReviewService(store.Applications, notifier, hub, logger),
		Applications: services.NewApplicationService(store.Applications, store.Notifications, hub, logger),
		Courses:      services.NewCourseService(store.Courses, hub, logger),
		Emails:       services.NewEmailService(store.Emails, hub, logger),
		Admins:       admins,
		Drafts:       draftStore,
		Ping:         sqlDB.PingContext,
		Cookie:       handlers.CookieConfig{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure},
		Logger:       logger,
	})

	engine := router.NewRouter(router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Release:        cfg.GinMode == gin.ReleaseMode,
		Logger:         logger,
		ApplyLimiter:   limiter,
		Authenticator:  admins,
	}, h, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
