package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresConversationRepository implements the ConversationRepository interface
type PostgresConversationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(config *RepositoryConfig) repositories.ConversationRepository {
	return &PostgresConversationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends one workflow audit record
func (r *PostgresConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, role, interaction_type, input, output, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		conv.ProjectID,
		conv.Role,
		conv.InteractionType,
		conv.Input,
		conv.Output,
	).Scan(&conv.ID, &conv.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", conv.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create conversation: %w", err)
	}

	return nil
}

// ListByProject returns the project's conversations oldest first
func (r *PostgresConversationRepository) ListByProject(ctx context.Context, projectID string) ([]models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, role, interaction_type, input, output, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		err := rows.Scan(
			&conv.ID,
			&conv.ProjectID,
			&conv.Role,
			&conv.InteractionType,
			&conv.Input,
			&conv.Output,
			&conv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	if convs == nil {
		convs = []models.Conversation{}
	}

	return convs, nil
}

// DeleteByProject removes all conversation records for the project
func (r *PostgresConversationRepository) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("delete conversations: %w", err)
	}

	return int(result.RowsAffected()), nil
}
