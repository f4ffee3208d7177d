// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adminRouter "github.com/createx/registration/internal/admin/router"
	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/database"
	"github.com/createx/registration/internal/database/migrate"
	"github.com/createx/registration/internal/health"
	"github.com/createx/registration/internal/mailer"
	"github.com/createx/registration/internal/middleware"
	settingsRouter "github.com/createx/registration/internal/settings/router"
	"github.com/createx/registration/internal/storage"
	teamRouter "github.com/createx/registration/internal/team/router"
	"github.com/createx/registration/pkg/logger"
	"github.com/createx/registration/pkg/tasks"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck // stdout sync errors are not actionable

	gin.SetMode(cfg.GinMode)

	db, err := database.New()
	if err != nil {
		zl.Fatalw("failed to connect to database", "error", err)
	}

	if err := migrate.Migrate(db); err != nil {
		zl.Fatalw("failed to run migrations", "error", err)
	}

	store, err := storage.NewDisk(cfg.Registration.AssetDir, zl)
	if err != nil {
		zl.Fatalw("failed to initialize asset storage", "error", err)
	}
	notifier := mailer.NewFromConfig(cfg.Registration, zl)
	runner := tasks.NewRunner(zl)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := adminRouter.NewService(db, cfg.Auth, zl).Seed(seedCtx); err != nil {
		cancel()
		zl.Fatalw("failed to provision admin account", "error", err)
	}
	cancel()

	r := gin.New()
	r.Use(middleware.Recovery(zl))
	r.Use(middleware.Logger(zl))

	r.GET("/health", health.New(db, zl).Check)

	adminAuth := middleware.AdminAuth(cfg.Auth.JWTSecret)
	api := r.Group("/api")
	adminRouter.RegisterRoutes(api, db, cfg.Auth, zl)
	teamRouter.RegisterRoutes(api, db, teamRouter.Deps{
		Logger:       zl,
		Store:        store,
		Notifier:     notifier,
		Runner:       runner,
		Registration: cfg.Registration,
		AdminAuth:    adminAuth,
	})
	settingsRouter.RegisterRoutes(api, db, settingsRouter.Deps{
		Logger:       zl,
		Store:        store,
		Registration: cfg.Registration,
		AdminAuth:    adminAuth,
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zl.Infow("server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Infow("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Errorw("server shutdown failed", "error", err)
	}

	// Let in-flight asset finalizations and emails drain.
	runner.Wait()
	zl.Infow("server stopped")
}
