package handler

import (
	"log/slog"
	"net/http"

	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
	"atelier/internal/httputil"
)

// SprintHandler handles sprint and review HTTP requests
type SprintHandler struct {
	sprintService services.SprintService
	reviewService services.ReviewService
	logger        *slog.Logger
}

// NewSprintHandler creates a new sprint handler
func NewSprintHandler(sprintService services.SprintService, reviewService services.ReviewService, logger *slog.Logger) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		reviewService: reviewService,
		logger:        logger,
	}
}

// CreateSprint creates a sprint under a project
// POST /api/projects/{id}/sprints
func (h *SprintHandler) CreateSprint(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	projectID := r.PathValue("id")

	var req services.CreateSprintRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sprint, err := h.sprintService.CreateSprint(r.Context(), userID, projectID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sprint)
}

// ListSprints lists a project's sprints
// GET /api/projects/{id}/sprints
func (h *SprintHandler) ListSprints(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	projectID := r.PathValue("id")

	sprints, err := h.sprintService.ListSprints(r.Context(), userID, projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sprints)
}

// sprintStatusRequest carries a requested sprint status change
type sprintStatusRequest struct {
	Status models.SprintStatus `json:"status"`
}

// ChangeStatus applies a sprint status transition
// PATCH /api/sprints/{id}/status
func (h *SprintHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	var req sprintStatusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.Status == "" {
		httputil.RespondError(w, http.StatusBadRequest, "status is required")
		return
	}

	sprint, err := h.sprintService.ChangeSprintStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sprint)
}

// AppendFeedback appends one entry to the sprint review conversation log
// POST /api/sprints/{id}/feedback
func (h *SprintHandler) AppendFeedback(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	var req services.AppendEntryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.reviewService.AppendEntry(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetReview returns the sprint's review with its conversation log
// GET /api/sprints/{id}/review
func (h *SprintHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	id := r.PathValue("id")

	review, err := h.reviewService.GetReview(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, review)
}
