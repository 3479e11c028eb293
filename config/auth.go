package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC uses a hosted OIDC/OAuth2 identity service.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeDev uses the in-memory dev identity provider (development only).
	AuthModeDev AuthMode = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "dev":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, dev)", v)
	}
}

// OIDCConfig contains OIDC/OAuth2 configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	IssuerURL    string `env:"ISSUER_URL"`
	Scope        string `env:"SCOPE"               envDefault:"openid profile email"`
	RecoverURL   string `env:"RECOVER_URL"`
	PasswordURL  string `env:"PASSWORD_UPDATE_URL"`
}

// DevAuthConfig controls the dev identity provider (used when Mode=dev).
type DevAuthConfig struct {
	Email       string        `env:"EMAIL"        envDefault:"admin@x.com"`
	Password    string        `env:"PASSWORD"     envDefault:"correct"`
	UserID      string        `env:"USER_ID"      envDefault:"dev-user"`
	DisplayName string        `env:"DISPLAY_NAME" envDefault:"Dev Admin"`
	SessionTTL  time.Duration `env:"SESSION_TTL"  envDefault:"8h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"dev"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=dev).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}
