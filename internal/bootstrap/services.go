package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/koherence/ui-api/config"
	"github.com/koherence/ui-api/internal/data/memstore"
	"github.com/koherence/ui-api/internal/devseed"
	httpx "github.com/koherence/ui-api/internal/http"
	"github.com/koherence/ui-api/internal/observability/statsd"
	"github.com/koherence/ui-api/internal/service"
)

// ServiceDeps groups the dependencies for Run.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// Run wires the full service: metrics sink, identity provider, session
// manager, data store, and HTTP server. It blocks until the context is
// canceled or a termination signal arrives, then shuts the server down
// gracefully.
func Run(ctx context.Context, deps *ServiceDeps) error {
	if deps == nil || deps.Config == nil {
		return errors.New("bootstrap: config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.StatsdAddr != "",
		Address: cfg.Observability.StatsdAddr,
		Prefix:  cfg.Observability.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	provider, err := NewIdentityProvider(ctx, cfg.Auth, logger)
	if err != nil {
		return err
	}

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		Provider: provider,
		Logger:   logger,
		Metrics:  metrics,
	})
	if err := sessions.Start(ctx); err != nil {
		return err
	}
	defer sessions.Close()

	store := memstore.New(memstore.Options{
		Latency: memstore.Latency{
			List:   cfg.Store.ListLatency,
			Get:    cfg.Store.GetLatency,
			Create: cfg.Store.CreateLatency,
			Update: cfg.Store.UpdateLatency,
			Delete: cfg.Store.DeleteLatency,
		},
		Logger: logger,
	})
	if cfg.Store.Seed {
		devseed.Apply(store)
		logger.InfoContext(ctx, "seeded referential data store")
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Sessions: sessions,
		Programs: store,
		Routines: store,
		Steps:    store,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", "addr", cfg.HTTP.Addr)
		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
