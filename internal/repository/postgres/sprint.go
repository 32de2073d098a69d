package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresSprintRepository implements the SprintRepository interface
type PostgresSprintRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSprintRepository creates a new sprint repository
func NewSprintRepository(config *RepositoryConfig) repositories.SprintRepository {
	return &PostgresSprintRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const sprintColumns = `id, project_id, sequence, status, goal, started_at, completed_at, review_summary, created_at, updated_at`

func scanSprint(row interface{ Scan(...interface{}) error }, s *models.Sprint) error {
	return row.Scan(
		&s.ID,
		&s.ProjectID,
		&s.Sequence,
		&s.Status,
		&s.Goal,
		&s.StartedAt,
		&s.CompletedAt,
		&s.ReviewSummary,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Create creates a sprint with the next sequence number for the project.
// The sequence is computed in the INSERT so two concurrent creates cannot
// read the same max; the unique (project_id, sequence) index backstops it.
func (r *PostgresSprintRepository) Create(ctx context.Context, sprint *models.Sprint) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, sequence, status, goal, created_at, updated_at)
		SELECT $1, COALESCE(MAX(sequence), 0) + 1, $2, $3, NOW(), NOW()
		FROM %s WHERE project_id = $1
		RETURNING id, sequence, created_at, updated_at
	`, r.tables.Sprints, r.tables.Sprints)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		sprint.ProjectID,
		sprint.Status,
		sprint.Goal,
	).Scan(&sprint.ID, &sprint.Sequence, &sprint.CreatedAt, &sprint.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "sprint sequence already taken, retry",
				ResourceType: "sprint",
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", sprint.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create sprint: %w", err)
	}

	return nil
}

// GetByID retrieves a sprint by ID
func (r *PostgresSprintRepository) GetByID(ctx context.Context, id string) (*models.Sprint, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, sprintColumns, r.tables.Sprints)

	var sprint models.Sprint
	executor := GetExecutor(ctx, r.pool)
	err := scanSprint(executor.QueryRow(ctx, query, id), &sprint)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("sprint %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get sprint: %w", err)
	}

	return &sprint, nil
}

// ListByProject returns the project's sprints ordered by sequence
func (r *PostgresSprintRepository) ListByProject(ctx context.Context, projectID string) ([]models.Sprint, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1
		ORDER BY sequence ASC
	`, sprintColumns, r.tables.Sprints)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer rows.Close()

	var sprints []models.Sprint
	for rows.Next() {
		var sprint models.Sprint
		if err := scanSprint(rows, &sprint); err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		sprints = append(sprints, sprint)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sprints: %w", err)
	}

	if sprints == nil {
		sprints = []models.Sprint{}
	}

	return sprints, nil
}

// Update writes status, timestamps and review summary
func (r *PostgresSprintRepository) Update(ctx context.Context, sprint *models.Sprint) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, started_at = $2, completed_at = $3, review_summary = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Sprints)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		sprint.Status,
		sprint.StartedAt,
		sprint.CompletedAt,
		sprint.ReviewSummary,
		sprint.ID,
	).Scan(&sprint.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("sprint %s: %w", sprint.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update sprint: %w", err)
	}

	return nil
}

// ResetAll forces every sprint under the project back to PLANNED
func (r *PostgresSprintRepository) ResetAll(ctx context.Context, projectID string) (int, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, started_at = NULL, completed_at = NULL, review_summary = NULL, updated_at = NOW()
		WHERE project_id = $2
	`, r.tables.Sprints)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, models.SprintStatusPlanned, projectID)
	if err != nil {
		return 0, fmt.Errorf("reset sprints: %w", err)
	}

	return int(result.RowsAffected()), nil
}
