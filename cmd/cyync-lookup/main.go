package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cyync-lookup/internal/config"
	logpkg "github.com/kailas-cloud/cyync-lookup/internal/logger"
	"github.com/kailas-cloud/cyync-lookup/internal/metrics"
	chiTransport "github.com/kailas-cloud/cyync-lookup/internal/transport/chi"
	"github.com/kailas-cloud/cyync-lookup/internal/transport/cyync"
	"github.com/kailas-cloud/cyync-lookup/internal/usecase/executor"
	healthuc "github.com/kailas-cloud/cyync-lookup/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/cyync-lookup/internal/usecase/lookup"
	"github.com/kailas-cloud/cyync-lookup/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cyync-lookup API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cyync_url", cfg.Cyync.URL),
		logpkg.Secret("cyync_access_token", cfg.Cyync.AccessToken),
		zap.Strings("workspace_ids", cfg.Lookup.WorkspaceIDs),
		zap.Strings("search_scopes", cfg.Lookup.SearchScopes.Values()),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterQueryMetrics()
	metrics.RegisterHTTPMetrics()

	client := cyync.New(&cyync.Config{
		URL:         cfg.Cyync.URL,
		AccessToken: cfg.Cyync.AccessToken,
		RoleID:      cfg.Cyync.RoleID,
		Timeout:     cfg.Cyync.Timeout(),
		RateLimit:   cfg.Cyync.RateLimit,
		RateBurst:   cfg.Cyync.RateBurst,
		Logger:      logger,
	})

	exec := executor.New(client, logger).
		WithConcurrency(cfg.Lookup.Concurrency).
		WithOnlyReturnPopulated(cfg.Lookup.PopulatedOnly())

	lookupSvc := lookupuc.New(exec, logger).
		WithDefaults(cfg.Lookup.Options()).
		WithRemovePrivateIPs(cfg.Lookup.RemovePrivateIPs).
		WithEntityTypes(cfg.Lookup.EntityTypes...)

	healthSvc := healthuc.New(logger).WithDependency("cyync", client)

	server := chiTransport.NewServer(lookupSvc, healthSvc, cfg.Cyync.Connection(), logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
