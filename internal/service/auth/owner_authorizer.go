package auth

import (
	"context"
	"errors"
	"fmt"

	"atelier/internal/domain"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

// OwnerBasedAuthorizer implements Authorizer using ownership checks.
// A user can access a resource if they own the project that contains it.
// There is no role hierarchy, delegation or group access; any richer model
// belongs in the repository's query predicate, not in branches here.
type OwnerBasedAuthorizer struct {
	projectRepo repositories.ProjectRepository
	sprintRepo  repositories.SprintRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	projectRepo repositories.ProjectRepository,
	sprintRepo repositories.SprintRepository,
) services.Authorizer {
	return &OwnerBasedAuthorizer{
		projectRepo: projectRepo,
		sprintRepo:  sprintRepo,
	}
}

// CanAccessProject checks if user owns the project.
// ProjectRepository.GetByID already filters by userID, so a foreign or
// absent project both come back as ErrNotFound; the caller cannot tell
// which, which is the point.
func (a *OwnerBasedAuthorizer) CanAccessProject(ctx context.Context, userID, projectID string) error {
	_, err := a.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("access denied to project %s: %w", projectID, domain.ErrForbidden)
		}
		return fmt.Errorf("check project access: %w", err)
	}
	return nil
}

// CanAccessSprint checks if user can access a sprint (via its project)
func (a *OwnerBasedAuthorizer) CanAccessSprint(ctx context.Context, userID, sprintID string) error {
	sprint, err := a.sprintRepo.GetByID(ctx, sprintID)
	if err != nil {
		return fmt.Errorf("get sprint for auth: %w", err)
	}

	return a.CanAccessProject(ctx, userID, sprint.ProjectID)
}
