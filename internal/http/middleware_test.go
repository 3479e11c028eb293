package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/koherence/ui-api/internal/domain/auth"
)

type staticSessions struct {
	st domainauth.State
}

func (s staticSessions) Snapshot() domainauth.State { return s.st }

func gatedHandler(st domainauth.State, next http.Handler) http.Handler {
	return RequireAuth(staticSessions{st: st})(next)
}

func TestRequireAuth_WhileLoading(t *testing.T) {
	h := gatedHandler(domainauth.State{Loading: true}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run before the session state is known")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/programs", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRequireAuth_UnauthenticatedAPI(t *testing.T) {
	h := gatedHandler(domainauth.State{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/programs", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
}

func TestRequireAuth_UnauthenticatedBrowserRedirects(t *testing.T) {
	h := gatedHandler(domainauth.State{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard?tab=programs", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard%3Ftab%3Dprograms", rec.Header().Get("Location"))
}

func TestRequireAuth_AdmitsAndExposesUser(t *testing.T) {
	st := domainauth.State{
		Session: &domainauth.Session{AccessToken: "tok"},
		User:    &domainauth.User{ID: "user-1", Email: "admin@x.com"},
	}

	var seen *domainauth.User
	h := gatedHandler(st, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/programs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin@x.com", seen.Email)
}

func TestSafeRedirectPath(t *testing.T) {
	assert.Equal(t, "/dashboard", safeRedirectPath("/dashboard"))
	assert.Equal(t, "/a?b=c", safeRedirectPath("/a?b=c"))
	assert.Empty(t, safeRedirectPath("//evil.example.com"))
	assert.Empty(t, safeRedirectPath("https://evil.example.com/x"))
	assert.Empty(t, safeRedirectPath("dashboard"))
	assert.Empty(t, safeRedirectPath(""))
}
