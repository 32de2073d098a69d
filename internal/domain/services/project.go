package services

import (
	"context"

	"atelier/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID   string                 `json:"user_id"`
	ClientID string                 `json:"client_id"`
	Name     string                 `json:"name"`
	Intake   map[string]interface{} `json:"intake"`
}

// UpdateProjectRequest represents a request to update a project's
// mutable non-lifecycle fields
type UpdateProjectRequest struct {
	Name   *string                `json:"name"`
	Intake map[string]interface{} `json:"intake"`
}

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// CreateSprintRequest represents a request to create a sprint
type CreateSprintRequest struct {
	Goal string `json:"goal"`
}

// ProjectService defines CRUD operations for projects and clients
type ProjectService interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error)
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*models.Project, error)

	CreateClient(ctx context.Context, req *CreateClientRequest) (*models.Client, error)
	ListClients(ctx context.Context, userID string) ([]models.Client, error)
}

// SprintService defines sprint operations outside the lifecycle engine
type SprintService interface {
	CreateSprint(ctx context.Context, userID, projectID string, req *CreateSprintRequest) (*models.Sprint, error)
	ListSprints(ctx context.Context, userID, projectID string) ([]models.Sprint, error)

	// ChangeSprintStatus validates the edge against the sprint transition
	// table and maintains the started_at/completed_at stamps
	ChangeSprintStatus(ctx context.Context, userID, sprintID string, requested models.SprintStatus) (*models.Sprint, error)
}
