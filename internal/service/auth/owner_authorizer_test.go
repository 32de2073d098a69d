package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
)

type stubProjectRepo struct {
	projects map[string]*models.Project
}

func (r *stubProjectRepo) Create(ctx context.Context, project *models.Project) error { return nil }

func (r *stubProjectRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (r *stubProjectRepo) List(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error) {
	return nil, nil
}
func (r *stubProjectRepo) Update(ctx context.Context, project *models.Project) error       { return nil }
func (r *stubProjectRepo) UpdateStatus(ctx context.Context, project *models.Project) error { return nil }
func (r *stubProjectRepo) UpdatePlanDocuments(ctx context.Context, project *models.Project) error {
	return nil
}

type stubSprintRepo struct {
	sprints map[string]*models.Sprint
}

func (r *stubSprintRepo) Create(ctx context.Context, sprint *models.Sprint) error { return nil }

func (r *stubSprintRepo) GetByID(ctx context.Context, id string) (*models.Sprint, error) {
	sp, ok := r.sprints[id]
	if !ok {
		return nil, fmt.Errorf("sprint %s: %w", id, domain.ErrNotFound)
	}
	return sp, nil
}

func (r *stubSprintRepo) ListByProject(ctx context.Context, projectID string) ([]models.Sprint, error) {
	return nil, nil
}
func (r *stubSprintRepo) Update(ctx context.Context, sprint *models.Sprint) error { return nil }
func (r *stubSprintRepo) ResetAll(ctx context.Context, projectID string) (int, error) {
	return 0, nil
}

func newTestAuthorizer() (*stubProjectRepo, *stubSprintRepo, *OwnerBasedAuthorizer) {
	projects := &stubProjectRepo{projects: map[string]*models.Project{
		"proj-1": {ID: "proj-1", UserID: "owner"},
	}}
	sprints := &stubSprintRepo{sprints: map[string]*models.Sprint{
		"sprint-1": {ID: "sprint-1", ProjectID: "proj-1"},
	}}
	authorizer := NewOwnerBasedAuthorizer(projects, sprints).(*OwnerBasedAuthorizer)
	return projects, sprints, authorizer
}

func TestCanAccessProject(t *testing.T) {
	_, _, authorizer := newTestAuthorizer()

	if err := authorizer.CanAccessProject(context.Background(), "owner", "proj-1"); err != nil {
		t.Errorf("owner denied: %v", err)
	}

	err := authorizer.CanAccessProject(context.Background(), "intruder", "proj-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign caller: error = %v, want ErrForbidden", err)
	}

	err = authorizer.CanAccessProject(context.Background(), "owner", "no-such-project")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("absent project: error = %v, want ErrForbidden (indistinguishable from foreign)", err)
	}
}

func TestCanAccessSprint(t *testing.T) {
	_, _, authorizer := newTestAuthorizer()

	if err := authorizer.CanAccessSprint(context.Background(), "owner", "sprint-1"); err != nil {
		t.Errorf("owner denied: %v", err)
	}

	err := authorizer.CanAccessSprint(context.Background(), "intruder", "sprint-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign caller: error = %v, want ErrForbidden", err)
	}

	err = authorizer.CanAccessSprint(context.Background(), "owner", "no-such-sprint")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("absent sprint: error = %v, want ErrNotFound", err)
	}
}
