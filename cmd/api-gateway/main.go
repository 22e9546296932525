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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eserbisyo/brgy-docs-api/api/swagger"
	"github.com/eserbisyo/brgy-docs-api/internal/handler"
	"github.com/eserbisyo/brgy-docs-api/internal/middleware"
	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/notify"
	"github.com/eserbisyo/brgy-docs-api/internal/registry"
	"github.com/eserbisyo/brgy-docs-api/internal/repository"
	"github.com/eserbisyo/brgy-docs-api/internal/service"
	"github.com/eserbisyo/brgy-docs-api/pkg/cache"
	"github.com/eserbisyo/brgy-docs-api/pkg/config"
	"github.com/eserbisyo/brgy-docs-api/pkg/database"
	"github.com/eserbisyo/brgy-docs-api/pkg/logger"
	corsmiddleware "github.com/eserbisyo/brgy-docs-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eserbisyo/brgy-docs-api/pkg/middleware/requestid"
	"github.com/eserbisyo/brgy-docs-api/pkg/storage"
)

// @title Barangay Document Requests API
// @version 1.0.0
// @description Civil document request lifecycle, unified staff queue and notifications
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, queue caching and stream notifications disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	reg := registry.NewDefault(
		repository.NewClearanceRepository(db),
		repository.NewIndigencyRepository(db),
		repository.NewBusinessRepository(db),
		repository.NewCedulaRepository(db),
	)

	var sender notify.Sender = notify.NewLogSender(logr)
	if cfg.Notifications.Enabled && cfg.Notifications.Sender == "stream" && redisClient != nil {
		sender = notify.NewStreamSender(redisClient, cfg.Notifications.Stream)
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Async {
		asyncSender := notify.NewAsyncSender(sender, cfg.Notifications.Workers, logr)
		asyncSender.Start(context.Background())
		defer asyncSender.Stop()
		sender = asyncSender
	}
	dispatcher := notify.NewDispatcher(sender, userRepo, logr)

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Queue.CacheTTL, logr, cfg.Queue.CacheEnabled)
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Queue.CacheTTL, logr, false)
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	requestSvc := service.NewRequestService(reg, dispatcher, userRepo, metricsSvc, logr)
	queueSvc := service.NewQueueService(reg, cacheSvc, cfg.Queue.DefaultPageSize, cfg.Queue.MaxPageSize, logr)
	exportSvc := service.NewExportService(queueSvc, service.ExportConfig{
		MaxRows:  cfg.Exports.MaxRows,
		PDFTitle: cfg.Exports.PDFTitle,
	}, logr, nil, nil)
	if cfg.Exports.ArchiveDir != "" {
		archive, err := storage.NewArchiveStore(cfg.Exports.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export archive", "error", err)
		}
		if deleted, err := archive.CleanupOlderThan(cfg.Exports.ArchiveTTL); err != nil {
			logr.Sugar().Warnw("export archive cleanup failed", "error", err)
		} else if len(deleted) > 0 {
			logr.Sugar().Infow("export archive cleaned", "deleted", len(deleted))
		}
		exportSvc = exportSvc.WithArchive(archive)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	requestHandler := handler.NewRequestHandler(requestSvc, queueSvc, exportSvc, reg, validate, logr)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	requests := api.Group("/document-requests")
	requests.Use(middleware.JWT(authSvc))
	requests.POST("/barangay-clearance", requestHandler.CreateClearance)
	requests.POST("/barangay-indigency", requestHandler.CreateIndigency)
	requests.POST("/business-clearance", requestHandler.CreateBusinessClearance)
	requests.POST("/cedula", requestHandler.CreateCedula)

	staffOnly := middleware.RequireRoles(models.RoleSecretary, models.RoleCaptain)
	requests.GET("", staffOnly, requestHandler.List)
	requests.GET("/export", staffOnly, requestHandler.Export)
	requests.PATCH("/:type/:id/status", staffOnly, requestHandler.UpdateStatus)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
}
