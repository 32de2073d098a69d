package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresArtifactRepository implements the ArtifactRepository interface
type PostgresArtifactRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(config *RepositoryConfig) repositories.ArtifactRepository {
	return &PostgresArtifactRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new artifact
func (r *PostgresArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, type, title, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`, r.tables.Artifacts)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		artifact.ProjectID,
		artifact.Type,
		artifact.Title,
		artifact.Content,
	).Scan(&artifact.ID, &artifact.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", artifact.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create artifact: %w", err)
	}

	return nil
}

// ListByProject returns the project's artifacts newest first
func (r *PostgresArtifactRepository) ListByProject(ctx context.Context, projectID string) ([]models.Artifact, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, type, title, content, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, r.tables.Artifacts)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []models.Artifact
	for rows.Next() {
		var artifact models.Artifact
		err := rows.Scan(
			&artifact.ID,
			&artifact.ProjectID,
			&artifact.Type,
			&artifact.Title,
			&artifact.Content,
			&artifact.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}

	if artifacts == nil {
		artifacts = []models.Artifact{}
	}

	return artifacts, nil
}

// DeleteByTypes deletes the project's artifacts whose type is in types
func (r *PostgresArtifactRepository) DeleteByTypes(ctx context.Context, projectID string, types []models.ArtifactType) (int, error) {
	if len(types) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND type = ANY($2)
	`, r.tables.Artifacts)

	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, typeStrings)
	if err != nil {
		return 0, fmt.Errorf("delete artifacts: %w", err)
	}

	return int(result.RowsAffected()), nil
}
