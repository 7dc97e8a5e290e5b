package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ailyedu2030/cet4-gateway/api/swagger"
	"github.com/ailyedu2030/cet4-gateway/internal/api"
	"github.com/ailyedu2030/cet4-gateway/internal/handler"
	"github.com/ailyedu2030/cet4-gateway/internal/middleware"
	"github.com/ailyedu2030/cet4-gateway/internal/models"
	"github.com/ailyedu2030/cet4-gateway/internal/repository"
	"github.com/ailyedu2030/cet4-gateway/internal/service"
	"github.com/ailyedu2030/cet4-gateway/internal/upstream"
	"github.com/ailyedu2030/cet4-gateway/pkg/cache"
	"github.com/ailyedu2030/cet4-gateway/pkg/config"
	"github.com/ailyedu2030/cet4-gateway/pkg/jobs"
	"github.com/ailyedu2030/cet4-gateway/pkg/logger"
	corsmiddleware "github.com/ailyedu2030/cet4-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/ailyedu2030/cet4-gateway/pkg/middleware/requestid"
)

// @title CET4 Admin Gateway
// @version 1.0.0
// @description Admin gateway for the CET4 learning platform core API
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ClassroomTTL, logr, cfg.Cache.Enabled)

	session := upstream.NewMemorySession(cfg.Upstream.ServiceToken)
	client := upstream.NewClient(cfg.Upstream, session, logr)

	classroomAPI := api.NewClassroomAPI(client)
	registrationAPI := api.NewRegistrationAPI(client)
	notificationAPI := api.NewNotificationAPI(client)
	workshopAPI := api.NewWorkshopAPI(client)

	validate := validator.New()

	authSvc := service.NewAuthService(cfg.JWT)
	classroomSvc := service.NewClassroomService(classroomAPI, cacheSvc, cfg.Cache.ClassroomTTL, metrics, validate, logr)
	conflictSvc := service.NewConflictService(classroomAPI, logr).
		WithBookingListener(classroomSvc.InvalidateCache)
	workshopSvc := service.NewWorkshopService(workshopAPI, metrics, logr)

	var notificationSvc *service.NotificationService
	if cfg.Notifications.Enabled {
		notificationSvc = service.NewNotificationService(notificationAPI, jobs.QueueConfig{
			Workers:    cfg.Notifications.Workers,
			BufferSize: cfg.Notifications.BufferSize,
			MaxRetries: cfg.Notifications.MaxRetries,
			RetryDelay: cfg.Notifications.RetryDelay,
		}, metrics, validate, logr)
		notificationSvc.Start(ctx)
		defer notificationSvc.Stop()
	}

	var notifier service.ReviewNotifier
	if notificationSvc != nil {
		notifier = notificationSvc
	}
	registrationSvc := service.NewRegistrationService(registrationAPI, notifier, metrics, validate, logr)

	var reportSvc *service.ReportService
	if cfg.Reports.Enabled {
		reportSvc = service.NewReportService(classroomSvc, logr)
	}

	r := setupRouter(cfg, logr, routerDeps{
		metrics:       metrics,
		auth:          authSvc,
		classrooms:    classroomSvc,
		conflicts:     conflictSvc,
		registrations: registrationSvc,
		notifications: notificationSvc,
		workshops:     workshopSvc,
		reports:       reportSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}

type routerDeps struct {
	metrics       *service.MetricsService
	auth          *service.AuthService
	classrooms    *service.ClassroomService
	conflicts     *service.ConflictService
	registrations *service.RegistrationService
	notifications *service.NotificationService
	workshops     *service.WorkshopService
	reports       *service.ReportService
}

func setupRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(deps.metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	classroomHandler := handler.NewClassroomHandler(deps.classrooms, deps.conflicts, deps.reports)
	conflictHandler := handler.NewConflictHandler(deps.conflicts)
	registrationHandler := handler.NewRegistrationHandler(deps.registrations)
	workshopHandler := handler.NewWorkshopHandler(deps.workshops)

	apiGroup := r.Group(cfg.APIPrefix)
	apiGroup.Use(middleware.JWT(deps.auth))
	apiGroup.Use(middleware.RequireRoles(string(models.RoleAdmin), string(models.RoleTeacher)))

	classrooms := apiGroup.Group("/classrooms")
	classrooms.GET("", classroomHandler.List)
	classrooms.GET("/time-presets", classroomHandler.Presets)
	classrooms.POST("/check-conflict", classroomHandler.CheckConflict)
	classrooms.POST("/schedules", classroomHandler.CreateSchedule)
	classrooms.GET("/usage-report", classroomHandler.ExportUsage)
	classrooms.POST("/:id/conflict-sessions", conflictHandler.Open)

	sessions := apiGroup.Group("/conflict-sessions")
	sessions.GET("/:sid", conflictHandler.State)
	sessions.PUT("/:sid", conflictHandler.UpdateForm)
	sessions.POST("/:sid/check", conflictHandler.Check)
	sessions.POST("/:sid/confirm", conflictHandler.Confirm)
	sessions.DELETE("/:sid", conflictHandler.Close)

	registrations := apiGroup.Group("/registrations")
	registrations.GET("", registrationHandler.List)
	registrations.POST("/:id/review", registrationHandler.Review)
	registrations.POST("/batch-review", registrationHandler.BatchReview)

	if deps.notifications != nil {
		notificationHandler := handler.NewNotificationHandler(deps.notifications)
		notifications := apiGroup.Group("/notifications")
		notifications.GET("", notificationHandler.List)
		notifications.POST("", notificationHandler.Dispatch)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}

	workshops := apiGroup.Group("/workshops")
	workshops.GET("/config", workshopHandler.GetConfig)
	workshops.PUT("/config", workshopHandler.UpdateConfig)

	apiGroup.GET("/system/metrics", metricsHandler.Snapshot)

	return r
}
