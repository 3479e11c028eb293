package httpx

import (
	"log/slog"
	"net/http"

	"github.com/koherence/ui-api/internal/ports"
	"github.com/koherence/ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Sessions *service.SessionManager
	Programs ports.ProgramStore
	Routines ports.RoutineStore
	Steps    ports.StepStore
	Logger   *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router. The referential
// collections sit behind the access gate; the auth endpoints themselves are
// reachable without a session, except password updates which require one.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	gate := RequireAuth(services.Sessions)

	authHandlers := &AuthHandlers{Sessions: services.Sessions, Logger: logger}
	registerAuthRoutes(mux, authHandlers, gate)

	registerCRUD(mux, crudRoutes{
		Base: "/api/programs",
		Handlers: crudHandlers(&ProgramHandlers{Svc: services.Programs}),
		Middleware: gate,
	})
	registerCRUD(mux, crudRoutes{
		Base: "/api/routines",
		Handlers: crudHandlers(&RoutineHandlers{Svc: services.Routines}),
		Middleware: gate,
	})
	registerCRUD(mux, crudRoutes{
		Base: "/api/steps",
		Handlers: crudHandlers(&StepHandlers{Svc: services.Steps}),
		Middleware: gate,
	})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Recover(logger)(Logging(logger)(mux))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, gate func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("POST /auth/reset-password", h.ResetPassword)
	mux.Handle("POST /auth/update-password", gate(http.HandlerFunc(h.UpdatePassword)))
	mux.HandleFunc("GET /auth/status", h.Status)
}

// resourceHandlers is the handler set every collection exposes.
type resourceHandlers interface {
	Create(http.ResponseWriter, *http.Request)
	List(http.ResponseWriter, *http.Request)
	GetByID(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

type crudHandlerSet struct {
	Create  http.HandlerFunc
	List    http.HandlerFunc
	GetByID http.HandlerFunc
	Update  http.HandlerFunc
	Delete  http.HandlerFunc
}

func crudHandlers(h resourceHandlers) crudHandlerSet {
	return crudHandlerSet{
		Create:  h.Create,
		List:    h.List,
		GetByID: h.GetByID,
		Update:  h.Update,
		Delete:  h.Delete,
	}
}

// crudRoutes registers standard CRUD routes for a resource base path,
// applying Middleware if non-nil.
type crudRoutes struct {
	Base       string
	Handlers   crudHandlerSet
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty")
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Handlers.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.Handlers.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.Handlers.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Handlers.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Handlers.Delete))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
