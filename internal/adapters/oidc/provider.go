package oidc

// Package oidc implements the identity provider port against a hosted
// OIDC/OAuth2 service using the resource-owner password grant. Session
// refreshes are driven lazily: when a caller reads the current session after
// the access token expired, the provider refreshes it and notifies
// session-change listeners with the new session.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/ports"
)

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	IssuerURL    string
	Scope        string
	// RecoverURL is the endpoint that sends password-recovery mail.
	RecoverURL string
	// PasswordUpdateURL is the endpoint that accepts password changes for the
	// bearer of an access token.
	PasswordUpdateURL string
	HTTPClient        *http.Client // Optional, defaults to a 30s-timeout client
}

// Provider implements ports.IdentityProvider using OIDC/OAuth2.
type Provider struct {
	config            *oauth2.Config
	recoverURL        string
	passwordUpdateURL string
	httpClient        *http.Client

	oidcProvider *gooidc.Provider

	mu      sync.Mutex
	token   *oauth2.Token
	session *domainauth.Session
	user    *domainauth.User

	listeners map[string]func(*domainauth.Session)

	// emitMu serializes notifications so listeners observe changes in
	// emission order.
	emitMu sync.Mutex
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider creates a new OIDC provider. It performs a single discovery
// fetch against the issuer.
func NewProvider(ctx context.Context, config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, apperrors.Validation("oidc: client ID is required")
	}
	if config.IssuerURL == "" {
		return nil, apperrors.Validation("oidc: issuer URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(config.IssuerURL, "/")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, "oidc discovery")
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes:       strings.Fields(config.Scope),
			Endpoint:     op.Endpoint(),
		},
		recoverURL:        config.RecoverURL,
		passwordUpdateURL: config.PasswordUpdateURL,
		httpClient:        httpClient,
		oidcProvider:      op,
		listeners:         make(map[string]func(*domainauth.Session)),
	}, nil
}

// CurrentSession returns the active session, or nil when signed out. An
// expired token is refreshed transparently; the refreshed session is also
// pushed to session-change listeners.
func (p *Provider) CurrentSession(ctx context.Context) (*domainauth.Session, error) {
	p.mu.Lock()
	token := p.token
	session := cloneSession(p.session)
	p.mu.Unlock()

	if token == nil {
		return nil, nil
	}
	if token.Valid() {
		return session, nil
	}
	return p.refresh(ctx, token)
}

// refresh exchanges the refresh token for a new access token and installs the
// resulting session.
func (p *Provider) refresh(ctx context.Context, stale *oauth2.Token) (*domainauth.Session, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	fresh, err := p.config.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, wrapTokenError(err, "refresh session")
	}

	p.mu.Lock()
	if p.token == nil {
		// Signed out while the refresh was in flight; drop the result.
		p.mu.Unlock()
		return nil, nil
	}
	p.token = fresh
	p.session = sessionFromToken(fresh, p.session.UserID)
	session := cloneSession(p.session)
	p.mu.Unlock()

	p.notify(cloneSession(session))
	return session, nil
}

// CurrentUser returns the profile for the active session, or nil when signed
// out.
func (p *Provider) CurrentUser(ctx context.Context) (*domainauth.User, error) {
	p.mu.Lock()
	token := p.token
	cached := cloneUser(p.user)
	p.mu.Unlock()

	if token == nil {
		return nil, nil
	}
	if cached != nil {
		return cached, nil
	}

	user, err := p.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	if p.token != nil {
		p.user = cloneUser(user)
	}
	p.mu.Unlock()
	return user, nil
}

// SignIn exchanges credentials for a token via the password grant, resolves
// the user profile, and notifies session-change listeners.
func (p *Provider) SignIn(ctx context.Context, email, password string) (ports.SignInResult, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return ports.SignInResult{}, wrapTokenError(err, "sign in")
	}

	user, err := p.fetchUser(ctx, token)
	if err != nil {
		return ports.SignInResult{}, err
	}

	session := sessionFromToken(token, user.ID)
	p.mu.Lock()
	p.token = token
	p.session = session
	p.user = user
	p.mu.Unlock()

	p.notify(cloneSession(session))
	return ports.SignInResult{User: cloneUser(user), Session: cloneSession(session)}, nil
}

// SignOut clears the local token state and notifies listeners with nil.
// Signing out while already signed out succeeds and emits nothing.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	wasSignedIn := p.token != nil
	p.token = nil
	p.session = nil
	p.user = nil
	p.mu.Unlock()

	if wasSignedIn {
		p.notify(nil)
	}
	return nil
}

// ResetPassword asks the identity service to send recovery mail for the
// address. Like the service itself, it does not reveal whether the address
// exists.
func (p *Provider) ResetPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if p.recoverURL == "" {
		return apperrors.ProviderUnavailable("password recovery endpoint not configured")
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode recovery request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.recoverURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build recovery request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, "send recovery request")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return apperrors.ProviderUnavailable(fmt.Sprintf("recovery endpoint returned %d", resp.StatusCode))
	}
	return nil
}

// UpdatePassword changes the password for the bearer of the active session.
func (p *Provider) UpdatePassword(ctx context.Context, newPassword string) error {
	if newPassword == "" {
		return apperrors.ValidationField("new_password", "new password is required")
	}
	if p.passwordUpdateURL == "" {
		return apperrors.ProviderUnavailable("password update endpoint not configured")
	}

	p.mu.Lock()
	token := p.token
	p.mu.Unlock()
	if token == nil {
		return apperrors.ProviderUnavailable("no active session")
	}

	body, err := json.Marshal(map[string]string{"password": newPassword})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode password update")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.passwordUpdateURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build password update")
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, "send password update")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return apperrors.ProviderUnavailable(fmt.Sprintf("password endpoint returned %d", resp.StatusCode))
	}
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

// fetchUser resolves the profile from the userinfo endpoint.
func (p *Provider) fetchUser(ctx context.Context, token *oauth2.Token) (*domainauth.User, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	info, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, "fetch user info")
	}

	var claims struct {
		Sub   string         `json:"sub"`
		Email string         `json:"email"`
		Name  string         `json:"name"`
		Extra map[string]any `json:"user_metadata"`
	}
	if err := info.Claims(&claims); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, "decode user info")
	}

	return &domainauth.User{
		ID:          claims.Sub,
		Email:       firstNonEmpty(claims.Email, info.Email),
		DisplayName: claims.Name,
		Metadata:    claims.Extra,
	}, nil
}

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

func sessionFromToken(token *oauth2.Token, userID string) *domainauth.Session {
	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return &domainauth.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    tokenType,
		ExpiresAt:    token.Expiry,
		UserID:       userID,
	}
}

// wrapTokenError maps oauth2 token-endpoint failures onto the application
// error taxonomy. Rejected grants become invalid-credential errors;
// everything else means the provider itself is unhealthy.
func wrapTokenError(err error, op string) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		code := retrieveErr.Response.StatusCode
		if code == http.StatusBadRequest || code == http.StatusUnauthorized {
			return apperrors.InvalidCredentials("invalid email or password")
		}
	}
	return apperrors.Wrap(err, apperrors.ErrCodeProviderUnavailable, op)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
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
