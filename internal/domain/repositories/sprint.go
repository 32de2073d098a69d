package repositories

import (
	"context"

	"atelier/internal/domain/models"
)

// SprintRepository defines data access operations for sprints
type SprintRepository interface {
	// Create creates a sprint with the next sequence number for the project
	Create(ctx context.Context, sprint *models.Sprint) error

	// GetByID retrieves a sprint by ID (no owner scoping; authorization
	// goes through the sprint's project)
	GetByID(ctx context.Context, id string) (*models.Sprint, error)

	// ListByProject returns the project's sprints ordered by sequence
	ListByProject(ctx context.Context, projectID string) ([]models.Sprint, error)

	// UpdateStatus writes status, started_at, completed_at and review_summary
	Update(ctx context.Context, sprint *models.Sprint) error

	// ResetAll forces every sprint under the project to PLANNED with
	// started_at/completed_at/review_summary nulled. Returns the number of
	// sprints affected.
	ResetAll(ctx context.Context, projectID string) (int, error)
}

// ArtifactRepository defines data access operations for artifacts
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *models.Artifact) error

	// ListByProject returns the project's artifacts newest first
	ListByProject(ctx context.Context, projectID string) ([]models.Artifact, error)

	// DeleteByTypes deletes the project's artifacts whose type is in types.
	// Returns the number of rows deleted.
	DeleteByTypes(ctx context.Context, projectID string, types []models.ArtifactType) (int, error)
}

// ConversationRepository defines data access operations for the
// append-only workflow audit log
type ConversationRepository interface {
	Create(ctx context.Context, conv *models.Conversation) error
	ListByProject(ctx context.Context, projectID string) ([]models.Conversation, error)

	// DeleteByProject removes all conversation records for the project
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}
