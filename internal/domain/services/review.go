package services

import (
	"context"

	"atelier/internal/domain/models"
)

// AppendEntryRequest carries one conversation-log entry to append.
// Exactly one of Question or Acknowledgment must be supplied.
type AppendEntryRequest struct {
	Role           string `json:"role"`
	Question       string `json:"question"`
	Acknowledgment string `json:"acknowledgment"`
}

// AppendEntryResult reports what was appended
type AppendEntryResult struct {
	Success            bool                         `json:"success"`
	EntryType          models.ConversationEntryType `json:"entry_type"`
	QuestionID         string                       `json:"question_id,omitempty"`
	ConversationLength int                          `json:"conversation_length"`
}

// ReviewService manages sprint review conversation logs
type ReviewService interface {
	// AppendEntry appends one entry to the sprint's review log. Concurrent
	// appenders never lose entries: the append is a storage-level
	// compare-and-append retried on conflict.
	AppendEntry(ctx context.Context, userID, sprintID string, req *AppendEntryRequest) (*AppendEntryResult, error)

	// GetReview returns the sprint's review with its full log
	GetReview(ctx context.Context, userID, sprintID string) (*models.SprintReview, error)
}
