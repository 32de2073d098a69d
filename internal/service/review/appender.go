package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

// maxAppendRetries bounds the compare-and-append retry loop. Contention on
// a single review log is human-paced; running out of retries means
// something is systematically wrong, not that we should spin harder.
const maxAppendRetries = 8

// reviewService implements the ReviewService interface
type reviewService struct {
	sprintRepo repositories.SprintRepository
	reviewRepo repositories.SprintReviewRepository
	authorizer services.Authorizer
	logger     *slog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	sprintRepo repositories.SprintRepository,
	reviewRepo repositories.SprintReviewRepository,
	authorizer services.Authorizer,
	logger *slog.Logger,
) services.ReviewService {
	return &reviewService{
		sprintRepo: sprintRepo,
		reviewRepo: reviewRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// AppendEntry appends one entry to the sprint's review conversation log.
//
// The append is a read + conditional write keyed on the log length,
// retried on conflict: concurrent appenders each land their entry, none
// overwrite another's. Entries are never removed.
func (s *reviewService) AppendEntry(ctx context.Context, userID, sprintID string, req *services.AppendEntryRequest) (*services.AppendEntryResult, error) {
	if req.Role == "" {
		return nil, fmt.Errorf("%w: role is required", domain.ErrValidation)
	}
	hasQuestion := req.Question != ""
	hasAck := req.Acknowledgment != ""
	if hasQuestion == hasAck {
		return nil, fmt.Errorf("%w: exactly one of question or acknowledgment must be provided", domain.ErrValidation)
	}

	if err := s.authorizer.CanAccessSprint(ctx, userID, sprintID); err != nil {
		return nil, err
	}

	entry := models.ConversationEntry{
		Role:      req.Role,
		Timestamp: time.Now().UTC(),
	}
	if hasQuestion {
		entry.Type = models.EntryTypeAIQuestion
		entry.Content = req.Question
		entry.QuestionID = uuid.NewString()
	} else {
		entry.Type = models.EntryTypeAIAcknowledgment
		entry.Content = req.Acknowledgment
	}

	var length int
	for attempt := 0; ; attempt++ {
		rev, err := s.reviewRepo.GetBySprintID(ctx, sprintID)
		if err != nil {
			return nil, err
		}

		err = s.reviewRepo.AppendEntry(ctx, rev.ID, len(rev.ConversationLog), entry)
		if err == nil {
			length = len(rev.ConversationLog) + 1
			break
		}
		if !errors.Is(err, repositories.ErrLogConflict) {
			return nil, err
		}
		if attempt+1 >= maxAppendRetries {
			return nil, fmt.Errorf("append conversation entry: %w", err)
		}
		s.logger.Debug("conversation log conflict, retrying",
			"sprint_id", sprintID,
			"attempt", attempt+1,
		)
	}

	s.logger.Info("conversation entry appended",
		"sprint_id", sprintID,
		"entry_type", entry.Type,
		"length", length,
	)

	return &services.AppendEntryResult{
		Success:            true,
		EntryType:          entry.Type,
		QuestionID:         entry.QuestionID,
		ConversationLength: length,
	}, nil
}

// GetReview returns the sprint's review with its full conversation log
func (s *reviewService) GetReview(ctx context.Context, userID, sprintID string) (*models.SprintReview, error) {
	if err := s.authorizer.CanAccessSprint(ctx, userID, sprintID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetBySprintID(ctx, sprintID)
}
