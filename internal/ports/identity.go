package ports

// Package ports defines interfaces (hexagonal ports) for the session core.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
)

// SignInResult is the provider's response to a successful credential sign-in.
type SignInResult struct {
	User    *domainauth.User
	Session *domainauth.Session
}

// IdentityProvider is the external identity provider consumed by the session
// manager. Every call is a suspension point: it returns a value or an error,
// and failures are surfaced as internal/errors codes (InvalidCredentials,
// ProviderUnavailable).
type IdentityProvider interface {
	// CurrentSession returns the provider's current session, or nil when
	// no session exists. Called exactly once during initialization.
	CurrentSession(ctx context.Context) (*domainauth.Session, error)

	// CurrentUser resolves the profile for the current session.
	CurrentUser(ctx context.Context) (*domainauth.User, error)

	// SignIn exchanges credentials for a session and its user.
	SignIn(ctx context.Context, email, password string) (SignInResult, error)

	// SignOut invalidates the provider-side session.
	SignOut(ctx context.Context) error

	// ResetPassword triggers a password-reset flow for the address. Pure
	// side effect; no session state changes.
	ResetPassword(ctx context.Context, email string) error

	// UpdatePassword replaces the current user's password.
	UpdatePassword(ctx context.Context, newPassword string) error

	// SessionChanges registers a callback invoked with every session change
	// the provider emits, in emission order: the new session on sign-in or
	// token refresh, nil on sign-out or expiry. The returned handle must be
	// released with Unsubscribe on every exit path.
	SessionChanges(fn func(session *domainauth.Session)) (Subscription, error)
}

// Subscription is a disposable handle for a standing session-change
// subscription. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}
