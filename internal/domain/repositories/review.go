package repositories

import (
	"context"
	"errors"

	"atelier/internal/domain/models"
)

// ErrLogConflict is returned by AppendEntry when the conversation log
// changed between the caller's read and the conditional write. Callers
// re-read and retry.
var ErrLogConflict = errors.New("conversation log changed concurrently")

// SprintReviewRepository defines data access operations for sprint reviews.
type SprintReviewRepository interface {
	// Create creates a review with an empty conversation log
	Create(ctx context.Context, review *models.SprintReview) error

	// GetBySprintID retrieves the review attached to a sprint
	GetBySprintID(ctx context.Context, sprintID string) (*models.SprintReview, error)

	// AppendEntry appends one entry iff the stored log still has
	// expectedLen entries. A concurrent append in between makes the
	// length check fail and returns ErrLogConflict without writing.
	// This is the storage-level compare-and-append that keeps the
	// read-modify-write race from losing entries.
	AppendEntry(ctx context.Context, reviewID string, expectedLen int, entry models.ConversationEntry) error
}
