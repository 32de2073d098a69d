package lifecycle

import (
	"context"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/services"
)

// Conversation roles recorded for a planning run. Two records are written
// per successful run, one per contributing role.
const (
	rolePlanner   = "planner"
	roleArchitect = "architect"

	interactionPlanGeneration = "plan_generation"
)

// GeneratePlan runs the planning workflow for a project in INTAKE or
// PLANNING and advances it to REVIEW.
//
// The project is moved to PLANNING before the invocation so concurrent
// callers see the run in flight. If the planner fails, the status is
// reverted to INTAKE best-effort: a failed revert is logged and swallowed
// because the upstream error already dominates the response.
func (s *lifecycleService) GeneratePlan(ctx context.Context, userID, projectID string) (*services.PlanOutcome, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	switch project.Status {
	case models.ProjectStatusIntake:
		if err := s.applyTransition(ctx, userID, project, models.ProjectStatusPlanning); err != nil {
			return nil, err
		}
	case models.ProjectStatusPlanning:
		// A previous run failed after the INTAKE -> PLANNING step; resume.
	default:
		return nil, &domain.InvalidTransitionError{
			Entity:    "project",
			From:      string(project.Status),
			Requested: string(models.ProjectStatusReview),
		}
	}

	result, planErr := s.planner.Invoke(ctx, project.Intake)
	if planErr != nil {
		if revertErr := s.applyTransition(ctx, userID, project, models.ProjectStatusIntake); revertErr != nil {
			s.logger.Error("failed to revert project status after planner failure",
				"project_id", project.ID,
				"error", revertErr,
			)
		}
		return nil, &domain.UpstreamError{Op: "generate plan", Err: planErr}
	}

	project.Plan = result.Plan
	project.Architecture = result.Architecture
	project.Summary = &result.Summary

	// Persist documents, audit conversations and the PLANNING -> REVIEW
	// step as one unit: either the plan landed and the project is in
	// REVIEW, or none of it happened.
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.projectRepo.UpdatePlanDocuments(txCtx, project); err != nil {
			return err
		}

		for _, conv := range planConversations(project, result, s.planner.Name()) {
			if err := s.convRepo.Create(txCtx, conv); err != nil {
				return err
			}
		}

		if err := s.projectRepo.UpdateStatus(txCtx, projectWithStatus(project, models.ProjectStatusReview)); err != nil {
			return err
		}
		return s.changeRepo.Append(txCtx, &models.StatusChange{
			ProjectID: project.ID,
			OldStatus: models.ProjectStatusPlanning,
			NewStatus: models.ProjectStatusReview,
			ChangedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	project.Status = models.ProjectStatusReview

	s.logger.Info("plan generated",
		"project_id", project.ID,
		"provider", s.planner.Name(),
	)

	return &services.PlanOutcome{
		Success:   true,
		Summary:   result.Summary,
		ProjectID: project.ID,
	}, nil
}

// planConversations builds the audit records for one planning run
func planConversations(project *models.Project, result *services.PlanResult, provider string) []*models.Conversation {
	input := map[string]interface{}{
		"intake":   project.Intake,
		"provider": provider,
	}
	return []*models.Conversation{
		{
			ProjectID:       project.ID,
			Role:            rolePlanner,
			InteractionType: interactionPlanGeneration,
			Input:           input,
			Output:          result.Plan,
		},
		{
			ProjectID:       project.ID,
			Role:            roleArchitect,
			InteractionType: interactionPlanGeneration,
			Input:           input,
			Output:          result.Architecture,
		},
	}
}

// projectWithStatus returns a shallow copy with the status applied, keeping
// the caller's copy untouched until the transaction commits. The archived_at
// invariant rides along: only FINISHED projects carry a stamp.
func projectWithStatus(project *models.Project, status models.ProjectStatus) *models.Project {
	copied := *project
	copied.Status = status
	if status != models.ProjectStatusFinished {
		copied.ArchivedAt = nil
	}
	return &copied
}
