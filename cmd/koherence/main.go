package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/koherence/ui-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting koherence service",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"seed", cfg.Store.Seed,
		"dev", cfg.IsDev)

	return bootstrap.Run(ctx, &bootstrap.ServiceDeps{
		Config: &cfg,
		Logger: logger,
	})
}
