package lifecycle

import (
	"context"

	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
)

// Reset returns a project to a re-testable state: every sprint forced back
// to PLANNED with execution timestamps and review summaries cleared,
// disposable artifacts and all workflow conversations deleted, project
// status set to APPROVED.
//
// The reported counts come from the snapshot read before the mutation, so
// a concurrent writer cannot skew what the caller is told was touched.
// The cascade itself runs in one transaction.
func (s *lifecycleService) Reset(ctx context.Context, userID, projectID string) (*services.ResetOutcome, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	sprints, err := s.sprintRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	artifacts, err := s.artifactRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	kept, deleted := 0, 0
	for _, a := range artifacts {
		if a.Type.Disposable() {
			deleted++
		} else {
			kept++
		}
	}

	from := project.Status
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.sprintRepo.ResetAll(txCtx, projectID); err != nil {
			return err
		}
		if _, err := s.artifactRepo.DeleteByTypes(txCtx, projectID, models.DisposableArtifactTypes); err != nil {
			return err
		}
		if _, err := s.convRepo.DeleteByProject(txCtx, projectID); err != nil {
			return err
		}

		if err := s.projectRepo.UpdateStatus(txCtx, projectWithStatus(project, models.ProjectStatusApproved)); err != nil {
			return err
		}
		return s.changeRepo.Append(txCtx, &models.StatusChange{
			ProjectID: project.ID,
			OldStatus: from,
			NewStatus: models.ProjectStatusApproved,
			ChangedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	project.Status = models.ProjectStatusApproved

	s.logger.Info("project reset",
		"project_id", project.ID,
		"sprints_reset", len(sprints),
		"artifacts_kept", kept,
		"artifacts_deleted", deleted,
	)

	return &services.ResetOutcome{
		SprintsReset:     len(sprints),
		ArtifactsKept:    kept,
		ArtifactsDeleted: deleted,
	}, nil
}
