package devidp

// Package devidp provides a config-driven, in-memory IdentityProvider for
// local development and tests. It accepts exactly one email/password pair
// and emits session-change notifications the way a real provider would:
// on sign-in and sign-out, in emission order.

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/ports"
)

// Config controls the dev identity provider behavior.
type Config struct {
	Email       string
	Password    string
	UserID      string
	DisplayName string
	SessionTTL  time.Duration // default 8h when zero
}

// Provider implements ports.IdentityProvider against in-memory state.
type Provider struct {
	cfg Config

	mu       sync.Mutex
	password string
	session  *domainauth.Session
	user     *domainauth.User

	listeners map[string]func(*domainauth.Session)

	// emitMu serializes notifications so listeners observe changes in
	// emission order even when operations overlap.
	emitMu sync.Mutex
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider constructs a dev identity provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, apperrors.Validation("dev idp: Email is required")
	}
	if cfg.Password == "" {
		return nil, apperrors.Validation("dev idp: Password is required")
	}
	if cfg.UserID == "" {
		cfg.UserID = uuid.NewString()
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 8 * time.Hour
	}
	return &Provider{
		cfg:       cfg,
		password:  cfg.Password,
		listeners: make(map[string]func(*domainauth.Session)),
	}, nil
}

// CurrentSession returns the active session, or nil when signed out.
func (p *Provider) CurrentSession(_ context.Context) (*domainauth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneSession(p.session), nil
}

// CurrentUser returns the profile for the active session, or nil when
// signed out.
func (p *Provider) CurrentUser(_ context.Context) (*domainauth.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cloneUser(p.user), nil
}

// SignIn validates the configured credential pair, installs a fresh session,
// and notifies session-change listeners.
func (p *Provider) SignIn(_ context.Context, email, password string) (ports.SignInResult, error) {
	p.mu.Lock()
	if !strings.EqualFold(email, p.cfg.Email) || password != p.password {
		p.mu.Unlock()
		return ports.SignInResult{}, apperrors.InvalidCredentials("invalid email or password")
	}

	user := &domainauth.User{
		ID:          p.cfg.UserID,
		Email:       p.cfg.Email,
		DisplayName: p.cfg.DisplayName,
	}
	session := &domainauth.Session{
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(p.cfg.SessionTTL),
		UserID:       user.ID,
	}
	p.session = session
	p.user = user
	p.mu.Unlock()

	p.notify(cloneSession(session))
	return ports.SignInResult{User: cloneUser(user), Session: cloneSession(session)}, nil
}

// SignOut clears the session and notifies listeners with nil. Signing out
// while already signed out succeeds and emits nothing.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	wasSignedIn := p.session != nil
	p.session = nil
	p.user = nil
	p.mu.Unlock()

	if wasSignedIn {
		p.notify(nil)
	}
	return nil
}

// ResetPassword is a fire-and-forget side effect; like most providers it
// does not reveal whether the address exists.
func (p *Provider) ResetPassword(_ context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.Validation("email is required")
	}
	return nil
}

// UpdatePassword replaces the accepted password for the configured account.
// Requires an active session.
func (p *Provider) UpdatePassword(_ context.Context, newPassword string) error {
	if newPassword == "" {
		return apperrors.Validation("new password is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return apperrors.ProviderUnavailable("no active session")
	}
	p.password = newPassword
	return nil
}

// SessionChanges registers fn for session-change notifications and returns
// its disposable handle.
func (p *Provider) SessionChanges(fn func(session *domainauth.Session)) (ports.Subscription, error) {
	id := uuid.NewString()
	p.mu.Lock()
	p.listeners[id] = fn
	p.mu.Unlock()
	return &subscription{provider: p, id: id}, nil
}

// notify delivers a session change to every listener, serialized so
// overlapping operations cannot reorder notifications.
func (p *Provider) notify(session *domainauth.Session) {
	p.mu.Lock()
	fns := make([]func(*domainauth.Session), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	for _, fn := range fns {
		fn(cloneSession(session))
	}
}

type subscription struct {
	provider *Provider
	id       string
	once     sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.provider.mu.Lock()
		delete(s.provider.listeners, s.id)
		s.provider.mu.Unlock()
	})
}

func cloneSession(s *domainauth.Session) *domainauth.Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func cloneUser(u *domainauth.User) *domainauth.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
