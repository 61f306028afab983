package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/teacher-admin-api/api/swagger"
	"github.com/noah-isme/teacher-admin-api/internal/repository"
	"github.com/noah-isme/teacher-admin-api/internal/service"
	"github.com/noah-isme/teacher-admin-api/pkg/config"
	"github.com/noah-isme/teacher-admin-api/pkg/logger"
)

// @title Teacher Admin API
// @version 1.0.0
// @description Teacher roster, qualifications and weekly booking grid
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openSnapshotBackend(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open storage backend", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer backend.Close(logr)

	metrics := service.NewMetricsService()
	notifications := service.NewNotificationService(cfg.Roster.NotificationTTL, nil)
	roster := service.NewRosterService(
		repository.NewRosterRepository(backend.store, logr),
		validator.New(),
		notifications,
		metrics,
		logr,
		service.RosterOptions{PageSize: cfg.Roster.PageSize},
	)
	roster.Load(ctx)
	exports := service.NewExportService(roster, nil, nil, logr)

	router := newRouter(cfg, services{
		roster:        roster,
		exports:       exports,
		notifications: notifications,
		metrics:       metrics,
		checks:        backend.checks,
	}, logr)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
