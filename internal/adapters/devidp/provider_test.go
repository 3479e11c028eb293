package devidp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
	apperrors "github.com/koherence/ui-api/internal/errors"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(Config{
		Email:       "admin@x.com",
		Password:    "correct",
		UserID:      "user-1",
		DisplayName: "Admin",
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresCredentials(t *testing.T) {
	_, err := NewProvider(Config{Password: "pw"})
	assert.Error(t, err)

	_, err = NewProvider(Config{Email: "a@x.com"})
	assert.Error(t, err)
}

func TestSignIn_Success(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	result, err := p.SignIn(ctx, "admin@x.com", "correct")

	require.NoError(t, err)
	assert.Equal(t, "admin@x.com", result.User.Email)
	assert.Equal(t, "user-1", result.Session.UserID)
	assert.NotEmpty(t, result.Session.AccessToken)
	assert.True(t, result.Session.ExpiresAt.After(time.Now()))

	session, err := p.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Session.AccessToken, session.AccessToken)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	_, err := p.SignIn(ctx, "admin@x.com", "wrong")

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredentials(err))

	session, serr := p.CurrentSession(ctx)
	require.NoError(t, serr)
	assert.Nil(t, session)
}

func TestSignOut_ClearsSessionAndNotifies(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	var pushes []*domainauth.Session
	sub, err := p.SessionChanges(func(s *domainauth.Session) { pushes = append(pushes, s) })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	_, err = p.SignIn(ctx, "admin@x.com", "correct")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))

	require.Len(t, pushes, 2)
	assert.NotNil(t, pushes[0])
	assert.Nil(t, pushes[1])

	user, err := p.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSignOut_WhenSignedOut(t *testing.T) {
	p := newTestProvider(t)

	var pushes int
	sub, err := p.SessionChanges(func(*domainauth.Session) { pushes++ })
	require.NoError(t, err)
	defer sub.Unsubscribe()

	assert.NoError(t, p.SignOut(context.Background()))
	assert.Zero(t, pushes)
}

func TestUpdatePassword(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	err := p.UpdatePassword(ctx, "next")
	assert.True(t, apperrors.IsProviderUnavailable(err))

	_, err = p.SignIn(ctx, "admin@x.com", "correct")
	require.NoError(t, err)
	require.NoError(t, p.UpdatePassword(ctx, "next"))
	require.NoError(t, p.SignOut(ctx))

	_, err = p.SignIn(ctx, "admin@x.com", "correct")
	assert.True(t, apperrors.IsInvalidCredentials(err))

	_, err = p.SignIn(ctx, "admin@x.com", "next")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	p := newTestProvider(t)

	assert.NoError(t, p.ResetPassword(context.Background(), "anyone@x.com"))
	assert.Error(t, p.ResetPassword(context.Background(), "  "))
}

func TestUnsubscribe_StopsNotifications(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	var pushes int
	sub, err := p.SessionChanges(func(*domainauth.Session) { pushes++ })
	require.NoError(t, err)

	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	_, err = p.SignIn(ctx, "admin@x.com", "correct")
	require.NoError(t, err)
	assert.Zero(t, pushes)
}
