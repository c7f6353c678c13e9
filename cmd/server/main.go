package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"gameplan.app/gameplan/common/id"
	"gameplan.app/gameplan/common/logger"
	"gameplan.app/gameplan/common/otel"
	"gameplan.app/gameplan/core/config"
	"gameplan.app/gameplan/core/db"
	"gameplan.app/gameplan/internal/catalog"
	httprouter "gameplan.app/gameplan/internal/http/router"
	"gameplan.app/gameplan/internal/service"
	"gameplan.app/gameplan/internal/service/issue_tracker"
	"gameplan.app/gameplan/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "gameplan starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load issue catalog", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	stores := store.New(database)
	planService := service.NewPlanService(cat)

	var pushService service.PushService
	if cfg.GitLab.Enabled() {
		tracker, err := issue_tracker.NewGitLab(issue_tracker.GitLabConfig{
			BaseURL: cfg.GitLab.BaseURL,
			Token:   cfg.GitLab.Token,
			Project: cfg.GitLab.Project,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to initialize issue tracker", "error", err)
			os.Exit(1)
		}
		pushService = service.NewPushService(tracker,
			service.WithDelay(time.Duration(cfg.CreateDelayMs)*time.Millisecond))
		slog.InfoContext(ctx, "issue tracker configured", "project", cfg.GitLab.Project)
	} else {
		slog.InfoContext(ctx, "issue tracker disabled (no token configured)")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, planService, pushService, stores)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, planService service.PlanService, pushService service.PushService, stores *store.Store) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span first so recovery and handlers log
	// with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(gin.Recovery())

	httprouter.SetupRoutes(router, planService, pushService, stores.Plans)

	return router
}
