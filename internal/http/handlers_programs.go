package httpx

import (
	"net/http"

	"github.com/koherence/ui-api/internal/domain/model"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/ports"
)

// ProgramHandlers exposes the program collection over HTTP.
type ProgramHandlers struct {
	Svc ports.ProgramStore
}

// List handles GET /api/programs.
func (h *ProgramHandlers) List(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Svc.ListPrograms(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, programs)
}

// GetByID handles GET /api/programs/{id}.
func (h *ProgramHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	program, err := h.Svc.GetProgram(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, program)
}

// Create handles POST /api/programs.
func (h *ProgramHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.ProgramDraft
	if !DecodeJSON(w, r, &draft) {
		return
	}
	if draft.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name is required"))
		return
	}

	program, err := h.Svc.CreateProgram(r.Context(), draft)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, program)
}

// Update handles PUT /api/programs/{id}.
func (h *ProgramHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update model.ProgramUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}
	if update.Name != nil && *update.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name must not be empty"))
		return
	}

	program, err := h.Svc.UpdateProgram(r.Context(), id, update)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, program)
}

// Delete handles DELETE /api/programs/{id}.
func (h *ProgramHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteProgram(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
