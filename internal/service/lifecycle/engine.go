package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

// lifecycleService implements the LifecycleService interface.
// Ownership is enforced by owner-scoped project reads: a foreign project id
// surfaces as ErrNotFound before any write is attempted.
type lifecycleService struct {
	projectRepo  repositories.ProjectRepository
	sprintRepo   repositories.SprintRepository
	artifactRepo repositories.ArtifactRepository
	convRepo     repositories.ConversationRepository
	changeRepo   repositories.StatusChangeRepository
	planner      services.Planner
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewLifecycleService creates the status transition engine with its
// archival and reset workflows
func NewLifecycleService(
	projectRepo repositories.ProjectRepository,
	sprintRepo repositories.SprintRepository,
	artifactRepo repositories.ArtifactRepository,
	convRepo repositories.ConversationRepository,
	changeRepo repositories.StatusChangeRepository,
	planner services.Planner,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.LifecycleService {
	return &lifecycleService{
		projectRepo:  projectRepo,
		sprintRepo:   sprintRepo,
		artifactRepo: artifactRepo,
		convRepo:     convRepo,
		changeRepo:   changeRepo,
		planner:      planner,
		txManager:    txManager,
		logger:       logger,
	}
}

// ChangeStatus validates the requested edge and applies it together with
// its audit record in one transaction.
func (s *lifecycleService) ChangeStatus(ctx context.Context, userID, projectID string, requested models.ProjectStatus) (*models.Project, error) {
	if !models.ValidProjectStatus(requested) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, requested)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, userID, project, requested); err != nil {
		return nil, err
	}

	return project, nil
}

// Archive moves the project to FINISHED and stamps archived_at
func (s *lifecycleService) Archive(ctx context.Context, userID, projectID string) (*models.Project, error) {
	return s.ChangeStatus(ctx, userID, projectID, models.ProjectStatusFinished)
}

// Restore moves a FINISHED project back to IN_PROGRESS and clears archived_at
func (s *lifecycleService) Restore(ctx context.Context, userID, projectID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	if project.Status != models.ProjectStatusFinished {
		return nil, &domain.InvalidTransitionError{
			Entity:    "project",
			From:      string(project.Status),
			Requested: string(models.ProjectStatusInProgress),
		}
	}

	if err := s.applyTransition(ctx, userID, project, models.ProjectStatusInProgress); err != nil {
		return nil, err
	}

	return project, nil
}

// History returns the project's status-change audit trail
func (s *lifecycleService) History(ctx context.Context, userID, projectID string) ([]models.StatusChange, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.changeRepo.ListByProject(ctx, projectID)
}

// applyTransition validates the edge, maintains the archived_at invariant
// and performs the status write plus exactly one history append inside a
// single transaction. project is mutated to reflect the applied state.
func (s *lifecycleService) applyTransition(ctx context.Context, userID string, project *models.Project, requested models.ProjectStatus) error {
	from := project.Status
	prevArchivedAt := project.ArchivedAt

	if !models.CanTransitionProject(from, requested) {
		return &domain.InvalidTransitionError{
			Entity:    "project",
			From:      string(from),
			Requested: string(requested),
		}
	}

	// archived_at is non-null iff the project is FINISHED
	switch {
	case requested == models.ProjectStatusFinished:
		now := time.Now()
		project.ArchivedAt = &now
	case from == models.ProjectStatusFinished:
		project.ArchivedAt = nil
	}
	project.Status = requested

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projectRepo.UpdateStatus(txCtx, project); err != nil {
			return err
		}
		return s.changeRepo.Append(txCtx, &models.StatusChange{
			ProjectID: project.ID,
			OldStatus: from,
			NewStatus: requested,
			ChangedBy: userID,
		})
	})
	if err != nil {
		// Leave the in-memory copy consistent with the store
		project.Status = from
		project.ArchivedAt = prevArchivedAt
		return err
	}

	s.logger.Info("project status changed",
		"project_id", project.ID,
		"old_status", from,
		"new_status", requested,
		"changed_by", userID,
	)

	return nil
}
