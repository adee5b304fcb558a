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

	_ "github.com/delguerso1/CT-Supera-sub000/api/swagger"
	"github.com/delguerso1/CT-Supera-sub000/internal/handler"
	"github.com/delguerso1/CT-Supera-sub000/internal/middleware"
	"github.com/delguerso1/CT-Supera-sub000/internal/repository"
	"github.com/delguerso1/CT-Supera-sub000/internal/service"
	"github.com/delguerso1/CT-Supera-sub000/internal/upstream"
	"github.com/delguerso1/CT-Supera-sub000/pkg/cache"
	"github.com/delguerso1/CT-Supera-sub000/pkg/config"
	"github.com/delguerso1/CT-Supera-sub000/pkg/export"
	"github.com/delguerso1/CT-Supera-sub000/pkg/logger"
	corsmiddleware "github.com/delguerso1/CT-Supera-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/delguerso1/CT-Supera-sub000/pkg/middleware/requestid"
	"github.com/delguerso1/CT-Supera-sub000/pkg/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title CT Supera Web Gateway
// @version 1.0.0
// @description Gateway for the CT Supera volleyball academy web client.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	// Redis is optional: without it sessions live in memory and listings
	// always hit the upstream API.
	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, running without cache", zap.Error(err))
	} else {
		redisClient = client
	}

	metrics := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	var cacheBackend service.CacheRepository
	if redisClient != nil {
		cacheBackend = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheBackend, metrics, cfg.Catalog.CacheTTL, logr)
	sessions := repository.NewSessionRepository(redisClient)

	client := upstream.NewClient(cfg.Upstream, logr)
	client.SetObserver(metrics.ObserveUpstreamRequest)

	auth := service.NewAuthService(client, sessions, cfg.Session.Secret, cfg.Session.TTL, nil, logr)
	catalog := service.NewCatalogService(client, cacheSvc, cfg.Catalog.CacheTTL, logr)
	enrollments := service.NewEnrollmentService(client, catalog, cacheSvc, metrics, nil, logr)
	precadastros := service.NewPreCadastroService(client, cacheSvc, nil, logr)
	users := service.NewUserService(client, nil, logr)
	turmas := service.NewTurmaService(client, nil, logr)
	cts := service.NewCTService(client, nil, logr)
	attendance := service.NewAttendanceService(client, nil, logr)
	billing := service.NewBillingService(client, metrics, cfg.Billing.PixPollInterval, cfg.Billing.PixWatchTimeout, nil, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var contracts *service.ContractService
	if cfg.Contracts.Enabled {
		store, err := storage.NewLocalStorage(cfg.Contracts.StorageDir)
		if err != nil {
			logr.Fatal("failed to init contract storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Contracts.SignedURLSecret, cfg.Contracts.SignedURLTTL)
		contracts = service.NewContractService(export.NewPDFExporter(), store, signer, service.ContractQueueConfig{
			Workers: cfg.Contracts.WorkerConcurrency,
			Retries: cfg.Contracts.WorkerRetries,
		}, logr)
		contracts.Start(ctx)
		defer contracts.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.Register(r, cfg.APIPrefix, handler.Services{
		Auth:         auth,
		Catalog:      catalog,
		Enrollments:  enrollments,
		PreCadastros: precadastros,
		Users:        users,
		Turmas:       turmas,
		CTs:          cts,
		Attendance:   attendance,
		Billing:      billing,
		Contracts:    contracts,
		Metrics:      metrics,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("forced shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = cacheRepo.Close()
	}
}
