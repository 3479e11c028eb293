package auth

// Package auth contains domain-level types for the authentication session
// lifecycle. It is pure and free of adapter/transport concerns.

import "time"

// Session is the opaque proof of authentication issued by the identity
// provider. The token fields are provider-defined and treated as a blob;
// nothing outside the session manager may mutate a Session.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
	UserID       string    `json:"user_id,omitempty"`
}

// User is the authenticated principal's profile, derived from the session.
// It is non-nil exactly when the session is non-nil.
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// State is the published, consumer-facing snapshot of the session lifecycle.
// Loading is true only during the one-time initialization or while an
// explicit operation is in flight; LastError carries the message from the
// most recent failed operation and is cleared when a new one starts.
//
// Invariant: (Session == nil) == (User == nil) for every published State.
type State struct {
	Session   *Session
	User      *User
	Loading   bool
	LastError string
}

// Authenticated reports whether the snapshot carries a live session.
// It is recomputed on every read, never cached.
func (s State) Authenticated() bool { return s.Session != nil }

// Consistent reports whether the snapshot honors the session/user pairing
// invariant. Every published State must satisfy this.
func (s State) Consistent() bool { return (s.Session == nil) == (s.User == nil) }
