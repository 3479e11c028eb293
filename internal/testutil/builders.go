// Package testutil provides testing utilities and helpers for the koherence
// session and catalog system.
package testutil

import (
	"time"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
	"github.com/koherence/ui-api/internal/domain/model"
)

// SessionBuilder provides a fluent interface for building Session objects for testing.
type SessionBuilder struct {
	session *domainauth.Session
}

// NewSession creates a new SessionBuilder with sensible defaults.
func NewSession() *SessionBuilder {
	return &SessionBuilder{
		session: &domainauth.Session{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			TokenType:    "bearer",
			ExpiresAt:    time.Now().Add(time.Hour),
			UserID:       "user-1",
		},
	}
}

// WithAccessToken sets the access token.
func (b *SessionBuilder) WithAccessToken(token string) *SessionBuilder {
	b.session.AccessToken = token
	return b
}

// WithUserID sets the owning user id.
func (b *SessionBuilder) WithUserID(id string) *SessionBuilder {
	b.session.UserID = id
	return b
}

// WithExpiresAt sets the expiry.
func (b *SessionBuilder) WithExpiresAt(t time.Time) *SessionBuilder {
	b.session.ExpiresAt = t
	return b
}

// Build returns the constructed Session.
func (b *SessionBuilder) Build() *domainauth.Session {
	clone := *b.session
	return &clone
}

// UserBuilder provides a fluent interface for building User objects for testing.
type UserBuilder struct {
	user *domainauth.User
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: &domainauth.User{
			ID:          "user-1",
			Email:       "admin@x.com",
			DisplayName: "Admin",
		},
	}
}

// WithID sets the user id.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the email address.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithMetadata sets the metadata map.
func (b *UserBuilder) WithMetadata(metadata map[string]any) *UserBuilder {
	b.user.Metadata = metadata
	return b
}

// Build returns the constructed User.
func (b *UserBuilder) Build() *domainauth.User {
	clone := *b.user
	return &clone
}

// ProgramDraftBuilder provides a fluent interface for building ProgramDraft objects for testing.
type ProgramDraftBuilder struct {
	draft model.ProgramDraft
}

// NewProgramDraft creates a new ProgramDraftBuilder with sensible defaults.
func NewProgramDraft() *ProgramDraftBuilder {
	return &ProgramDraftBuilder{
		draft: model.ProgramDraft{
			Name:     "Test Program",
			Category: "wellness",
			Duration: "4 weeks",
			IsActive: true,
		},
	}
}

// WithName sets the program name.
func (b *ProgramDraftBuilder) WithName(name string) *ProgramDraftBuilder {
	b.draft.Name = name
	return b
}

// WithRoutineIDs sets the referenced routine ids.
func (b *ProgramDraftBuilder) WithRoutineIDs(ids ...int) *ProgramDraftBuilder {
	b.draft.RoutineIDs = ids
	return b
}

// Build returns the constructed ProgramDraft.
func (b *ProgramDraftBuilder) Build() model.ProgramDraft {
	return b.draft
}
