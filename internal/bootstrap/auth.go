package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/koherence/ui-api/config"
	"github.com/koherence/ui-api/internal/adapters/devidp"
	"github.com/koherence/ui-api/internal/adapters/oidc"
	"github.com/koherence/ui-api/internal/ports"
)

// NewIdentityProvider constructs the identity provider selected by
// AUTH_MODE.
//
//nolint:ireturn // provider selection is the point of this constructor.
func NewIdentityProvider(
	ctx context.Context,
	cfg config.AuthConfig,
	logger *slog.Logger,
) (ports.IdentityProvider, error) {
	switch cfg.Mode {
	case config.AuthModeOIDC:
		provider, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:          cfg.OIDC.ClientID,
			ClientSecret:      cfg.OIDC.ClientSecret,
			IssuerURL:         cfg.OIDC.IssuerURL,
			Scope:             cfg.OIDC.Scope,
			RecoverURL:        cfg.OIDC.RecoverURL,
			PasswordUpdateURL: cfg.OIDC.PasswordURL,
		})
		if err != nil {
			return nil, fmt.Errorf("oidc provider: %w", err)
		}
		return provider, nil

	case config.AuthModeDev:
		logger.WarnContext(ctx, "using dev identity provider; do not use in production",
			"email", cfg.DevAuth.Email)
		provider, err := devidp.NewProvider(devidp.Config{
			Email:       cfg.DevAuth.Email,
			Password:    cfg.DevAuth.Password,
			UserID:      cfg.DevAuth.UserID,
			DisplayName: cfg.DevAuth.DisplayName,
			SessionTTL:  cfg.DevAuth.SessionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev identity provider: %w", err)
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Mode)
	}
}
