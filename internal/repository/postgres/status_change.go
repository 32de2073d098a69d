package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresStatusChangeRepository implements the StatusChangeRepository interface
type PostgresStatusChangeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewStatusChangeRepository creates a new status change repository
func NewStatusChangeRepository(config *RepositoryConfig) repositories.StatusChangeRepository {
	return &PostgresStatusChangeRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Append records one transition in the audit trail
func (r *PostgresStatusChangeRepository) Append(ctx context.Context, change *models.StatusChange) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, old_status, new_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, changed_at
	`, r.tables.StatusChanges)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		change.ProjectID,
		change.OldStatus,
		change.NewStatus,
		change.ChangedBy,
	).Scan(&change.ID, &change.ChangedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", change.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("append status change: %w", err)
	}

	return nil
}

// ListByProject returns the trail oldest first
func (r *PostgresStatusChangeRepository) ListByProject(ctx context.Context, projectID string) ([]models.StatusChange, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, old_status, new_status, changed_by, changed_at
		FROM %s
		WHERE project_id = $1
		ORDER BY changed_at ASC
	`, r.tables.StatusChanges)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()

	var changes []models.StatusChange
	for rows.Next() {
		var change models.StatusChange
		err := rows.Scan(
			&change.ID,
			&change.ProjectID,
			&change.OldStatus,
			&change.NewStatus,
			&change.ChangedBy,
			&change.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status changes: %w", err)
	}

	if changes == nil {
		changes = []models.StatusChange{}
	}

	return changes, nil
}
