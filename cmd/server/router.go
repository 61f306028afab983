package main

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-admin-api/internal/handler"
	"github.com/noah-isme/teacher-admin-api/internal/middleware"
	"github.com/noah-isme/teacher-admin-api/internal/service"
	"github.com/noah-isme/teacher-admin-api/pkg/config"
	"github.com/noah-isme/teacher-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/teacher-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/teacher-admin-api/pkg/middleware/requestid"
)

type services struct {
	roster        *service.RosterService
	exports       *service.ExportService
	notifications *service.NotificationService
	metrics       *service.MetricsService
	checks        map[string]handler.ReadinessCheck
}

func newRouter(cfg *config.Config, svc services, logr *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svc.metrics))

	metricsHandler := handler.NewMetricsHandler(svc.metrics, svc.checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logr).Middleware())
	}

	teachers := handler.NewTeacherHandler(svc.roster)
	schedules := handler.NewScheduleHandler(svc.roster, svc.exports, time.Local)
	notifications := handler.NewNotificationHandler(svc.notifications)

	api.GET("/teachers", teachers.List)
	api.POST("/teachers", teachers.Create)
	api.GET("/teachers/:id", teachers.Get)
	api.PUT("/teachers/:id", teachers.Update)
	api.DELETE("/teachers/:id", teachers.Delete)

	api.GET("/selection", teachers.Selection)
	api.PUT("/selection/:id", teachers.Select)

	api.PUT("/teachers/:id/qualifications", teachers.ReplaceQualifications)
	api.POST("/teachers/:id/qualifications", teachers.AddQualification)
	api.PATCH("/teachers/:id/qualifications/:qid/toggle", teachers.ToggleQualification)
	api.DELETE("/teachers/:id/qualifications/:qid", teachers.RemoveQualification)

	api.GET("/teachers/:id/schedule", schedules.Get)
	api.PUT("/teachers/:id/schedule", schedules.Replace)
	api.POST("/teachers/:id/schedule/clicks", schedules.Click)
	api.PUT("/teachers/:id/schedule/slots", schedules.UpsertSlot)
	api.GET("/teachers/:id/schedule/week", schedules.Week)
	api.GET("/teachers/:id/schedule/export", schedules.Export)

	api.GET("/notifications", notifications.List)
	api.DELETE("/notifications/:id", notifications.Dismiss)

	return r
}
