package bootstrap

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koherence/ui-api/config"
	"github.com/koherence/ui-api/internal/adapters/devidp"
)

func TestNewIdentityProvider_DevMode(t *testing.T) {
	cfg := config.AuthConfig{
		Mode: config.AuthModeDev,
		DevAuth: config.DevAuthConfig{
			Email:    "admin@x.com",
			Password: "correct",
		},
	}

	provider, err := NewIdentityProvider(context.Background(), cfg, slog.Default())

	require.NoError(t, err)
	assert.IsType(t, &devidp.Provider{}, provider)
}

func TestNewIdentityProvider_DevModeRequiresCredentials(t *testing.T) {
	cfg := config.AuthConfig{Mode: config.AuthModeDev}

	_, err := NewIdentityProvider(context.Background(), cfg, slog.Default())

	assert.Error(t, err)
}

func TestNewIdentityProvider_UnknownMode(t *testing.T) {
	cfg := config.AuthConfig{Mode: config.AuthMode("saml")}

	_, err := NewIdentityProvider(context.Background(), cfg, slog.Default())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth mode")
}
