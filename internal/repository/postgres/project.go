package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, client_id, user_id, slug, name, status, intake, plan, architecture, summary, created_at, updated_at, archived_at`

func scanProject(row interface{ Scan(...interface{}) error }, p *models.Project) error {
	return row.Scan(
		&p.ID,
		&p.ClientID,
		&p.UserID,
		&p.Slug,
		&p.Name,
		&p.Status,
		&p.Intake,
		&p.Plan,
		&p.Architecture,
		&p.Summary,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ArchivedAt,
	)
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (client_id, user_id, slug, name, status, intake, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.ClientID,
		project.UserID,
		project.Slug,
		project.Name,
		project.Status,
		project.Intake,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project slug '%s' already exists", project.Slug),
				ResourceType: "project",
				ResourceID:   project.Slug,
			}
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("client %s: %w", project.ClientID, domain.ErrNotFound)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID, scoped to the owning user
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, projectColumns, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := scanProject(executor.QueryRow(ctx, query, id, userID), &project)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves all projects for a user, newest first
func (r *PostgresProjectRepository) List(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY updated_at DESC
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// Update persists name, intake and updated_at
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, intake = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Intake,
		project.ID,
		project.UserID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

// UpdateStatus writes the status and archived_at columns
func (r *PostgresProjectRepository) UpdateStatus(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, archived_at = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4
		RETURNING updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Status,
		project.ArchivedAt,
		project.ID,
		project.UserID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update project status: %w", err)
	}

	return nil
}

// UpdatePlanDocuments persists the plan, architecture and summary documents
func (r *PostgresProjectRepository) UpdatePlanDocuments(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET plan = $1, architecture = $2, summary = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Plan,
		project.Architecture,
		project.Summary,
		project.ID,
		project.UserID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update plan documents: %w", err)
	}

	return nil
}
