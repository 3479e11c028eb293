package httpx

import (
	"net/http"

	"github.com/koherence/ui-api/internal/domain/model"
	apperrors "github.com/koherence/ui-api/internal/errors"
	"github.com/koherence/ui-api/internal/ports"
)

// StepHandlers exposes the step collection over HTTP.
type StepHandlers struct {
	Svc ports.StepStore
}

// List handles GET /api/steps.
func (h *StepHandlers) List(w http.ResponseWriter, r *http.Request) {
	steps, err := h.Svc.ListSteps(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, steps)
}

// GetByID handles GET /api/steps/{id}.
func (h *StepHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	step, err := h.Svc.GetStep(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, step)
}

// Create handles POST /api/steps.
func (h *StepHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.StepDraft
	if !DecodeJSON(w, r, &draft) {
		return
	}
	if draft.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name is required"))
		return
	}

	step, err := h.Svc.CreateStep(r.Context(), draft)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, step)
}

// Update handles PUT /api/steps/{id}.
func (h *StepHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var update model.StepUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}
	if update.Name != nil && *update.Name == "" {
		WriteAppError(w, apperrors.ValidationField("name", "name must not be empty"))
		return
	}

	step, err := h.Svc.UpdateStep(r.Context(), id, update)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, step)
}

// Delete handles DELETE /api/steps/{id}.
func (h *StepHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteStep(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
