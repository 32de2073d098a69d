package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/domain"
)

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", fmt.Errorf("project x: %w", domain.ErrNotFound), http.StatusNotFound},
		{"forbidden collapses to not found", fmt.Errorf("access denied: %w", domain.ErrForbidden), http.StatusNotFound},
		{"unauthorized", fmt.Errorf("bad token: %w", domain.ErrUnauthorized), http.StatusUnauthorized},
		{"validation", fmt.Errorf("%w: name required", domain.ErrValidation), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: slug taken", domain.ErrConflict), http.StatusConflict},
		{"invalid transition", &domain.InvalidTransitionError{
			Entity: "project", From: "INTAKE", Requested: "FINISHED",
		}, http.StatusBadRequest},
		{"upstream failure", &domain.UpstreamError{
			Op: "generate plan", Err: errors.New("model overloaded"),
		}, http.StatusInternalServerError},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var problem map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if int(problem["status"].(float64)) != tt.wantStatus {
				t.Errorf("problem status = %v, want %d", problem["status"], tt.wantStatus)
			}
		})
	}
}

// A caller probing a foreign resource gets the same response as one
// probing an absent resource.
func TestHandleErrorHidesExistence(t *testing.T) {
	forbidden := httptest.NewRecorder()
	handleError(forbidden, fmt.Errorf("access denied to project p1: %w", domain.ErrForbidden))

	missing := httptest.NewRecorder()
	handleError(missing, fmt.Errorf("project p2: %w", domain.ErrNotFound))

	if forbidden.Code != missing.Code {
		t.Fatalf("codes differ: forbidden=%d missing=%d", forbidden.Code, missing.Code)
	}
	if forbidden.Body.String() != missing.Body.String() {
		t.Errorf("bodies differ:\nforbidden: %s\nmissing:   %s", forbidden.Body.String(), missing.Body.String())
	}
}

func TestHandleErrorDoesNotLeakInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, errors.New("pq: connection refused to 10.0.0.5"))

	var problem map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if detail, ok := problem["detail"].(string); ok && detail != "internal server error" {
		t.Errorf("detail = %q, internal errors must stay generic", detail)
	}
}
