package services

import (
	"context"

	"atelier/internal/domain/models"
)

// PlanOutcome is the response of a successful planning run
type PlanOutcome struct {
	Success   bool   `json:"success"`
	Summary   string `json:"summary"`
	ProjectID string `json:"project_id"`
}

// ResetOutcome reports what the reset cascade touched. Counts are derived
// from the pre-mutation snapshot, never from a second read.
type ResetOutcome struct {
	SprintsReset     int `json:"sprints_reset"`
	ArtifactsKept    int `json:"artifacts_kept"`
	ArtifactsDeleted int `json:"artifacts_deleted"`
}

// LifecycleService is the status transition engine plus the archival and
// reset workflows built on top of it. Every mutation verifies ownership
// before any write and appends exactly one status-change audit record per
// applied transition.
type LifecycleService interface {
	// ChangeStatus validates the requested edge against the transition
	// table and applies it with its cascading effects in one atomic unit.
	ChangeStatus(ctx context.Context, userID, projectID string, requested models.ProjectStatus) (*models.Project, error)

	// GeneratePlan invokes the planning workflow and advances the project
	// to REVIEW. On upstream failure the status is reverted best-effort and
	// the upstream error surfaced.
	GeneratePlan(ctx context.Context, userID, projectID string) (*PlanOutcome, error)

	// Archive moves the project to FINISHED and stamps archived_at
	Archive(ctx context.Context, userID, projectID string) (*models.Project, error)

	// Restore moves a FINISHED project back to IN_PROGRESS and clears
	// archived_at
	Restore(ctx context.Context, userID, projectID string) (*models.Project, error)

	// Reset returns the project to a re-testable state: sprints forced to
	// PLANNED, disposable artifacts and all conversations deleted, project
	// status set to APPROVED.
	Reset(ctx context.Context, userID, projectID string) (*ResetOutcome, error)

	// History returns the project's status-change audit trail
	History(ctx context.Context, userID, projectID string) ([]models.StatusChange, error)
}
