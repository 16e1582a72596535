package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smart-dashboard-backend/internal/api"
	"smart-dashboard-backend/internal/db"
	"smart-dashboard-backend/internal/logger"
	"smart-dashboard-backend/internal/metrics"
	"smart-dashboard-backend/internal/notification"
	"smart-dashboard-backend/internal/session"
	"smart-dashboard-backend/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd)
		},
	}
}

func serve(cmd *cobra.Command) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()
	log.Info("configuration loaded", zap.String("path", configPath))

	gormDB, err := db.Init(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info("database initialized", zap.String("driver", cfg.Database.Driver))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appStore := store.NewGormStore(gormDB)
	m := metrics.New()

	sessions := session.NewRegistry(ctx, session.Options{
		IdleTTL:         cfg.Session.IdleTTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		TickInterval:    cfg.Clock.Interval,
		Location:        cfg.Clock.Location,
	}, m, log.Named("session"))
	defer sessions.Close()

	var (
		notifier       api.Notifier
		webpushOptions *webpush.Options
	)
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions, cfg.Push.MaxRetries, m, log.Named("notification"))
		pool.Start(ctx)
		notifier = pool
		log.Info("push notifications enabled", zap.Int("workers", cfg.WorkerPool.Size))
	} else {
		log.Warn("VAPID keys not configured, push notifications disabled")
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(sessions, appStore, notifier, webpushOptions, m, log.Named("api"))
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(handler, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping services")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	log.Info("server gracefully stopped")
	return nil
}
