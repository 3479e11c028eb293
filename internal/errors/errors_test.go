package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "message only",
			err:  NotFound("program not found"),
			want: "program not found",
		},
		{
			name: "message with cause",
			err:  Wrap(errors.New("connection refused"), ErrCodeProviderUnavailable, "sign in"),
			want: "sign in: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "wrapped")

	assert.ErrorIs(t, err, cause)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", NotFoundf("routine %d not found", 42), IsNotFound},
		{"validation", Validation("name is required"), IsValidation},
		{"validation field", ValidationField("name", "name is required"), IsValidation},
		{"invalid credentials", InvalidCredentials("invalid email or password"), IsInvalidCredentials},
		{"provider unavailable", ProviderUnavailable("identity provider unreachable"), IsProviderUnavailable},
		{"internal", Internal("unexpected"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.False(t, tt.pred(errors.New("plain error")))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := InvalidCredentials("invalid email or password")
	outer := fmt.Errorf("login: %w", inner)

	assert.True(t, IsInvalidCredentials(outer))
	assert.False(t, IsNotFound(outer))
}

func TestWrap_NilCause(t *testing.T) {
	require.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	require.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, GetCode(NotFound("missing")))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "name", GetField(ValidationField("name", "name is required")))
	assert.Equal(t, "", GetField(Validation("no field")))
	assert.Equal(t, "", GetField(errors.New("plain")))
}
