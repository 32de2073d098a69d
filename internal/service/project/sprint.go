package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

// sprintService implements the SprintService interface
type sprintService struct {
	sprintRepo repositories.SprintRepository
	reviewRepo repositories.SprintReviewRepository
	authorizer services.Authorizer
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewSprintService creates a new sprint service
func NewSprintService(
	sprintRepo repositories.SprintRepository,
	reviewRepo repositories.SprintReviewRepository,
	authorizer services.Authorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.SprintService {
	return &sprintService{
		sprintRepo: sprintRepo,
		reviewRepo: reviewRepo,
		authorizer: authorizer,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateSprint creates a sprint with the next sequence number, together
// with its empty review record
func (s *sprintService) CreateSprint(ctx context.Context, userID, projectID string, req *services.CreateSprintRequest) (*models.Sprint, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	sprint := &models.Sprint{
		ProjectID: projectID,
		Status:    models.SprintStatusPlanned,
		Goal:      strings.TrimSpace(req.Goal),
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.sprintRepo.Create(txCtx, sprint); err != nil {
			return err
		}
		return s.reviewRepo.Create(txCtx, &models.SprintReview{SprintID: sprint.ID})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sprint created",
		"id", sprint.ID,
		"project_id", projectID,
		"sequence", sprint.Sequence,
	)

	return sprint, nil
}

// ListSprints returns the project's sprints ordered by sequence
func (s *sprintService) ListSprints(ctx context.Context, userID, projectID string) ([]models.Sprint, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.sprintRepo.ListByProject(ctx, projectID)
}

// ChangeSprintStatus validates the edge against the sprint transition table
// and maintains the execution timestamps: entering IN_PROGRESS stamps
// started_at, entering DONE stamps completed_at.
func (s *sprintService) ChangeSprintStatus(ctx context.Context, userID, sprintID string, requested models.SprintStatus) (*models.Sprint, error) {
	if !models.ValidSprintStatus(requested) {
		return nil, fmt.Errorf("%w: unknown sprint status %q", domain.ErrValidation, requested)
	}

	if err := s.authorizer.CanAccessSprint(ctx, userID, sprintID); err != nil {
		return nil, err
	}

	sprint, err := s.sprintRepo.GetByID(ctx, sprintID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionSprint(sprint.Status, requested) {
		return nil, &domain.InvalidTransitionError{
			Entity:    "sprint",
			From:      string(sprint.Status),
			Requested: string(requested),
		}
	}

	now := time.Now()
	switch requested {
	case models.SprintStatusInProgress:
		sprint.StartedAt = &now
	case models.SprintStatusDone:
		sprint.CompletedAt = &now
	}
	old := sprint.Status
	sprint.Status = requested

	if err := s.sprintRepo.Update(ctx, sprint); err != nil {
		return nil, err
	}

	s.logger.Info("sprint status changed",
		"id", sprint.ID,
		"old_status", old,
		"new_status", requested,
		"changed_by", userID,
	)

	return sprint, nil
}
