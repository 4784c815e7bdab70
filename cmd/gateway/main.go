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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edubel/exemption-gateway/api/swagger"
	"github.com/edubel/exemption-gateway/pkg/cache"
	"github.com/edubel/exemption-gateway/pkg/config"
	"github.com/edubel/exemption-gateway/pkg/database"
	"github.com/edubel/exemption-gateway/pkg/logger"
	corsmiddleware "github.com/edubel/exemption-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/edubel/exemption-gateway/pkg/middleware/requestid"
	"github.com/edubel/exemption-gateway/pkg/storage"

	"github.com/edubel/exemption-gateway/internal/handler"
	"github.com/edubel/exemption-gateway/internal/middleware"
	"github.com/edubel/exemption-gateway/internal/repository"
	"github.com/edubel/exemption-gateway/internal/service"
	"github.com/edubel/exemption-gateway/internal/wizard"
)

// @title Exemption Wizard Gateway
// @version 0.1.0
// @description Gateway for the course exemption request wizard
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

	metricsSvc := service.NewMetricsService()

	store := repository.NewHTTPDossierStore(cfg.Backend.BaseURL, cfg.Backend.Timeout, metricsSvc)

	// Redis backs the catalog cache and the notification feed. Without it the
	// gateway still works, catalog reads just hit the backend every time and
	// notifications are dropped.
	var cacheRepo repository.CacheRepository
	var notifier service.NotificationService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache and notifications disabled", "error", err)
		notifier = service.NewNoopNotificationService()
	} else {
		defer redisClient.Close() //nolint:errcheck
		if cfg.Catalog.CacheEnabled {
			cacheRepo = repository.NewRedisCacheRepository(redisClient)
		}
		notifier = service.NewNotificationService(
			repository.NewRedisNotificationRepository(redisClient),
			cfg.Notifications.TTL, cfg.Notifications.MaxPerUser, logr)
	}

	auditSvc := service.NewNoopAuditService()
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Warnw("postgres unavailable, audit trail disabled", "error", err)
		} else {
			defer db.Close() //nolint:errcheck
			svc, queue := service.NewAuditService(
				repository.NewPostgresAuditRepository(db),
				cfg.Audit.QueueWorkers, cfg.Audit.QueueRetries, logr)
			queue.Start(context.Background())
			defer queue.Stop()
			auditSvc = svc
		}
	}

	files, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	guard := wizard.NewAnalysisGuard()
	authSvc := service.NewAuthService(cfg.JWT, service.SeedStudents(), logr)
	dossierSvc := service.NewDossierService(store, guard, notifier, auditSvc, logr)
	catalogSvc := service.NewCatalogService(store, cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr)
	uploadSvc := service.NewUploadService(files, signer,
		cfg.Uploads.PublicBaseURL+cfg.APIPrefix,
		cfg.Uploads.MaxFileSizeBytes, cfg.Uploads.AllowedMIMEs, logr)
	exportSvc := service.NewExportService(dossierSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "metrics": metricsSvc.Snapshot()})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterValidations()
	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Dossiers:      handler.NewDossierHandler(dossierSvc, auditSvc),
		Catalog:       handler.NewCatalogHandler(catalogSvc),
		Uploads:       handler.NewUploadHandler(uploadSvc),
		Notifications: handler.NewNotificationHandler(notifier),
		Exports:       handler.NewExportHandler(exportSvc),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}
