package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/service"
)

// AuthHandlers exposes the session lifecycle operations over HTTP.
type AuthHandlers struct {
	Sessions *service.SessionManager
	Logger   *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User    *domainauth.User    `json:"user"`
	Session *domainauth.Session `json:"session"`
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		WriteAppError(w, apperrors.ValidationField("email", "email is required"))
		return
	}
	if req.Password == "" {
		WriteAppError(w, apperrors.ValidationField("password", "password is required"))
		return
	}

	result, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{User: result.User, Session: result.Session})
}

// Logout handles POST /auth/logout. The local session is cleared even when
// the provider call fails; the error is still reported so callers can log it.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Logout(r.Context()); err != nil {
		h.Logger.WarnContext(r.Context(), "provider sign-out failed", "error", err)
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		WriteAppError(w, apperrors.ValidationField("email", "email is required"))
		return
	}

	if err := h.Sessions.ResetPassword(r.Context(), req.Email); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

type updatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// UpdatePassword handles POST /auth/update-password.
func (h *AuthHandlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		WriteAppError(w, apperrors.ValidationField("new_password", "new password is required"))
		return
	}

	if err := h.Sessions.UpdatePassword(r.Context(), req.NewPassword); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusResponse struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	User          *domainauth.User `json:"user,omitempty"`
	LastError     string           `json:"last_error,omitempty"`
}

// Status handles GET /auth/status. It reports the latest snapshot without
// gating, so clients can poll it to drive their own routing decisions.
func (h *AuthHandlers) Status(w http.ResponseWriter, _ *http.Request) {
	st := h.Sessions.Snapshot()
	WriteJSON(w, http.StatusOK, statusResponse{
		Authenticated: st.Authenticated(),
		Loading:       st.Loading,
		User:          st.User,
		LastError:     st.LastError,
	})
}
