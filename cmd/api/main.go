package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelter-registry/internal/adapters/storage"
	"shelter-registry/internal/domain/shelters"
	"shelter-registry/internal/platform/config"
	"shelter-registry/internal/platform/logger"
	"shelter-registry/internal/platform/metrics"
	"shelter-registry/internal/platform/observability"
	"shelter-registry/internal/router"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.New(logger.Options{}).Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingOptions{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.App.Name,
		Pretty:      cfg.Tracing.Pretty,
	})
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	repo, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	m := metrics.New()
	svc := shelters.NewService(repo, shelters.WithLogger(log), shelters.WithRecorder(m))

	// Documento malformado => no arranca
	if err := svc.Load(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(router.Options{Service: svc, Metrics: m, Logger: log}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTP.Addr, "storage": string(cfg.Storage.Driver)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
