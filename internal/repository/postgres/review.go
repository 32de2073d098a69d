package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresSprintReviewRepository implements the SprintReviewRepository interface
type PostgresSprintReviewRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSprintReviewRepository creates a new sprint review repository
func NewSprintReviewRepository(config *RepositoryConfig) repositories.SprintReviewRepository {
	return &PostgresSprintReviewRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a review with an empty conversation log
func (r *PostgresSprintReviewRepository) Create(ctx context.Context, review *models.SprintReview) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (sprint_id, conversation_log, created_at, updated_at)
		VALUES ($1, '[]'::jsonb, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, r.tables.SprintReviews)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, review.SprintID).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("review for sprint %s already exists", review.SprintID),
				ResourceType: "sprint_review",
				ResourceID:   review.SprintID,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("sprint %s: %w", review.SprintID, domain.ErrNotFound)
		}
		return fmt.Errorf("create sprint review: %w", err)
	}

	review.ConversationLog = []models.ConversationEntry{}
	return nil
}

// GetBySprintID retrieves the review attached to a sprint
func (r *PostgresSprintReviewRepository) GetBySprintID(ctx context.Context, sprintID string) (*models.SprintReview, error) {
	query := fmt.Sprintf(`
		SELECT id, sprint_id, conversation_log, created_at, updated_at
		FROM %s
		WHERE sprint_id = $1
	`, r.tables.SprintReviews)

	var review models.SprintReview
	var rawLog []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, sprintID).Scan(
		&review.ID,
		&review.SprintID,
		&rawLog,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("review for sprint %s: %w", sprintID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get sprint review: %w", err)
	}

	if err := json.Unmarshal(rawLog, &review.ConversationLog); err != nil {
		return nil, fmt.Errorf("decode conversation log: %w", err)
	}
	if review.ConversationLog == nil {
		review.ConversationLog = []models.ConversationEntry{}
	}

	return &review, nil
}

// AppendEntry appends one entry iff the stored log still has expectedLen
// entries. The length guard in the WHERE clause makes this a storage-level
// compare-and-append: a concurrent writer that got in first changes the
// length, the UPDATE matches zero rows, and the caller retries with a
// fresh read instead of overwriting the other writer's entry.
func (r *PostgresSprintReviewRepository) AppendEntry(ctx context.Context, reviewID string, expectedLen int, entry models.ConversationEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET conversation_log = conversation_log || $1::jsonb, updated_at = NOW()
		WHERE id = $2 AND jsonb_array_length(conversation_log) = $3
	`, r.tables.SprintReviews)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, payload, reviewID, expectedLen)
	if err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a lost race from a vanished review
		existsQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1`, r.tables.SprintReviews)
		var one int
		if err := executor.QueryRow(ctx, existsQuery, reviewID).Scan(&one); err != nil {
			if IsPgNoRowsError(err) {
				return fmt.Errorf("review %s: %w", reviewID, domain.ErrNotFound)
			}
			return fmt.Errorf("check review existence: %w", err)
		}
		return repositories.ErrLogConflict
	}

	return nil
}
