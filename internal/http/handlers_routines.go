package httpx

import (
	"net/http"

	"github.com/koherence/ui-api/internal/domain/model"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/ports"
)

// RoutineHandlers exposes the routine collection over HTTP.
type RoutineHandlers struct {
	Svc ports.RoutineStore
}

// List handles GET /api/routines.
func (h *RoutineHandlers) List(w http.ResponseWriter, r *http.Request) {
	routines, err := h.Svc.ListRoutines(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, routines)
}

// GetByID handles GET /api/routines/{id}.
func (h *RoutineHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	routine, err := h.Svc.GetRoutine(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, routine)
}

// Create handles POST /api/routines.
func (h *RoutineHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.RoutineDraft
	if !DecodeJSON(w, r, &draft) {
		return
	}
	if draft.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name is required"))
		return
	}

	routine, err := h.Svc.CreateRoutine(r.Context(), draft)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, routine)
}

// Update handles PUT /api/routines/{id}.
func (h *RoutineHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update model.RoutineUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}
	if update.Name != nil && *update.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name must not be empty"))
		return
	}

	routine, err := h.Svc.UpdateRoutine(r.Context(), id, update)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, routine)
}

// Delete handles DELETE /api/routines/{id}.
func (h *RoutineHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteRoutine(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
