package handler

import (
	"log/slog"
	"net/http"

	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// LifecycleHandler exposes the status transition engine and the archival
// and reset workflows over HTTP
type LifecycleHandler struct {
	lifecycle services.LifecycleService
	logger    *slog.Logger
}

// NewLifecycleHandler creates a new lifecycle handler
func NewLifecycleHandler(lifecycle services.LifecycleService, logger *slog.Logger) *LifecycleHandler {
	return &LifecycleHandler{
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// statusRequest carries a requested status change
type statusRequest struct {
	Status models.ProjectStatus `json:"status"`
}

// ChangeStatus applies a generic status transition
// PATCH /api/projects/{id}/status
func (h *LifecycleHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	var req statusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.Status == "" {
		httputil.RespondError(w, http.StatusBadRequest, "status is required")
		return
	}

	project, err := h.lifecycle.ChangeStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// GeneratePlan runs the planning workflow and advances the project to REVIEW
// POST /api/projects/{id}/generate-plan
func (h *LifecycleHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	outcome, err := h.lifecycle.GeneratePlan(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, outcome)
}

// Archive moves the project to FINISHED
// POST /api/projects/{id}/archive
func (h *LifecycleHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	project, err := h.lifecycle.Archive(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// Restore moves a FINISHED project back to IN_PROGRESS
// POST /api/projects/{id}/restore
func (h *LifecycleHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	project, err := h.lifecycle.Restore(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// Reset returns the project to a re-testable state
// POST /api/projects/{id}/reset
func (h *LifecycleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	outcome, err := h.lifecycle.Reset(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "project reset",
		"details": outcome,
	})
}

// History returns the project's status-change audit trail
// GET /api/projects/{id}/history
func (h *LifecycleHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	changes, err := h.lifecycle.History(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, changes)
}
