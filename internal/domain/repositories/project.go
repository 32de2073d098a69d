package repositories

import (
	"context"

	"atelier/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
// All reads are owner-scoped: a project that exists but belongs to another
// user surfaces as ErrNotFound, so handlers never leak existence.
type ProjectRepository interface {
	// Create creates a new project and fills in generated ID and timestamps
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID, scoped to the owning user
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// List retrieves all projects for a user, newest first. If status is
	// non-empty the list is filtered to that status.
	List(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error)

	// Update persists name, intake and updated_at
	Update(ctx context.Context, project *models.Project) error

	// UpdateStatus writes the status and archived_at columns. archivedAt
	// semantics: nil clears the column, non-nil stamps it.
	UpdateStatus(ctx context.Context, project *models.Project) error

	// UpdatePlanDocuments persists the plan, architecture and summary
	// documents produced by the planning workflow.
	UpdatePlanDocuments(ctx context.Context, project *models.Project) error
}

// ClientRepository defines data access operations for clients
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id, userID string) (*models.Client, error)
	List(ctx context.Context, userID string) ([]models.Client, error)
}

// StatusChangeRepository appends and reads the immutable status audit trail
type StatusChangeRepository interface {
	// Append records one transition. Never skipped for an applied transition.
	Append(ctx context.Context, change *models.StatusChange) error

	// ListByProject returns the trail oldest first
	ListByProject(ctx context.Context, projectID string) ([]models.StatusChange, error)
}
