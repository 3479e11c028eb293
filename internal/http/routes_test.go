package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koherence/ui-api/internal/adapters/devidp"
	"github.com/koherence/ui-api/internal/data/memstore"
	"github.com/koherence/ui-api/internal/devseed"
	"github.com/koherence/ui-api/internal/domain/model"
	"github.com/koherence/ui-api/internal/service"
)

// newTestRouter wires a full stack: dev identity provider, session manager,
// and a seeded zero-latency store.
func newTestRouter(t *testing.T) (http.Handler, *service.SessionManager) {
	t.Helper()

	provider, err := devidp.NewProvider(devidp.Config{
		Email:    "admin@x.com",
		Password: "correct",
		UserID:   "user-1",
	})
	require.NoError(t, err)

	sessions := service.NewSessionManager(service.SessionManagerOptions{Provider: provider})
	require.NoError(t, sessions.Start(context.Background()))
	t.Cleanup(sessions.Close)

	store := memstore.New(memstore.Options{})
	devseed.Apply(store)

	router := NewRouter(RouterServices{
		Sessions: sessions,
		Programs: store,
		Routines: store,
		Steps:    store,
	})
	return router, sessions
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router http.Handler) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@x.com",
		"password": "correct",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_GateBlocksAnonymousAPI(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/programs", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginThenListPrograms(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var programs []model.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &programs))
	require.Len(t, programs, 5)
	assert.Equal(t, "Mindfulness Fundamentals", programs[0].Name)
}

func TestRouter_Login_InvalidCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"email":    "admin@x.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestRouter_Login_MissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{"email": "admin@x.com"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"password"`)
}

func TestRouter_AuthStatusReflectsLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/auth/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	login(t, router)

	rec = doJSON(t, router, http.MethodGet, "/auth/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), "admin@x.com")
}

func TestRouter_LogoutClosesTheGate(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/programs", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_UpdatePasswordRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/update-password", map[string]string{
		"new_password": "next",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ResetPasswordIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/reset-password", map[string]string{
		"email": "anyone@x.com",
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRouter_ProgramCRUD(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/programs", map[string]any{
		"name":     "Focus Training",
		"category": "wellness",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 6, created.ID, "IDs continue past the seed data")

	rec = doJSON(t, router, http.MethodPut, "/api/programs/6", map[string]any{
		"description": "Short attention exercises",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Focus Training", updated.Name, "unset fields survive a partial update")
	assert.Equal(t, "Short attention exercises", updated.Description)

	rec = doJSON(t, router, http.MethodDelete, "/api/programs/6", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/programs/6", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CreateProgramRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/programs", map[string]any{
		"category": "wellness",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"name"`)
}

func TestRouter_GetUnknownStepReturnsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/steps/999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestRouter_BadIDIsValidationError(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/routines/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnknownJSONFieldRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/steps", map[string]any{
		"name":    "Body Scan",
		"unknown": true,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}
