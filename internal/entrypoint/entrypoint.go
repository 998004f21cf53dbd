package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookstore/internal/config"
	http_controllers "github.com/mrlokans/bookstore/internal/http"
	"github.com/mrlokans/bookstore/internal/logging"
	"github.com/mrlokans/bookstore/internal/scheduler"
	"github.com/mrlokans/bookstore/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) {
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Global.ShutdownTimeoutInSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exited")
}

// TaskConfig maps the application task settings onto the queue config,
// keeping defaults for zero values.
func TaskConfig(cfg *config.Config) tasks.Config {
	taskCfg := tasks.DefaultConfig()
	if cfg.Tasks.Workers > 0 {
		taskCfg.Workers = cfg.Tasks.Workers
	}
	if cfg.Tasks.MaxRetries > 0 {
		taskCfg.MaxRetries = cfg.Tasks.MaxRetries
	}
	if cfg.Tasks.RetryDelay > 0 {
		taskCfg.RetryDelay = cfg.Tasks.RetryDelay
	}
	if cfg.Tasks.TaskTimeout > 0 {
		taskCfg.TaskTimeout = cfg.Tasks.TaskTimeout
	}
	if cfg.Tasks.ReleaseAfter > 0 {
		taskCfg.ReleaseAfter = cfg.Tasks.ReleaseAfter
	}
	if cfg.Tasks.CleanupInterval > 0 {
		taskCfg.CleanupInterval = cfg.Tasks.CleanupInterval
	}
	if cfg.Tasks.RetentionDuration > 0 {
		taskCfg.RetentionDuration = cfg.Tasks.RetentionDuration
	}
	return taskCfg
}

func Run(cfg *config.Config, version string) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	catalog, err := NewCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize catalog", zap.Error(err))
	}

	routerCfg := http_controllers.RouterConfig{
		Books:       catalog.Books,
		Authors:     catalog.Authors,
		Publishers:  catalog.Publishers,
		Tags:        catalog.Tags,
		Audit:       catalog.Audit,
		Database:    catalog.DB,
		Metrics:     catalog.Metrics,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Logger:      logger,
		Version:     version,
	}
	if catalog.Cache != nil {
		routerCfg.Cache = catalog.Cache
	}

	var (
		taskClient *tasks.Client
		taskCancel context.CancelFunc = func() {}
		maint      *scheduler.MaintenanceScheduler
	)
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, TaskConfig(cfg), logger.Named("tasks"))
		if err != nil {
			logger.Fatal("failed to initialize task client", zap.Error(err))
		}
		taskClient.Register(
			tasks.NewAdjustPricesQueue(catalog.Books, logger),
			tasks.NewCleanupOrphanTagsQueue(catalog.TagRepo, catalog.Audit, logger),
			tasks.NewCleanupAuditEventsQueue(catalog.Audit, logger),
		)

		var taskCtx context.Context
		taskCtx, taskCancel = context.WithCancel(ctx)
		taskClient.Start(taskCtx)
		routerCfg.Tasks = taskClient

		if cfg.Maintenance.Enabled {
			maint = scheduler.NewMaintenanceScheduler(taskClient, cfg.Maintenance.Schedule, cfg.Audit.RetentionDays, logger)
			if err := maint.Start(taskCtx); err != nil {
				logger.Error("failed to start maintenance scheduler", zap.Error(err))
				maint = nil
			} else {
				routerCfg.Maintenance = maint
			}
		}
	} else if cfg.Maintenance.Enabled {
		logger.Warn("maintenance schedule ignored because the task queue is disabled")
	}

	var limiter *http_controllers.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = http_controllers.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		routerCfg.RateLimiter = limiter
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maint != nil {
			maint.Stop()
		}
		if taskClient != nil {
			logger.Info("stopping task client")
			taskClient.Stop(ctx)
			taskCancel()
			if err := taskClient.Close(); err != nil {
				logger.Warn("error closing task database", zap.Error(err))
			}
		}
		if limiter != nil {
			limiter.Stop()
		}
		catalog.Close()
	}

	Serve(router, cfg, logger, onShutdown)
}
