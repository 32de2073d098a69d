package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
)

// PostgresClientRepository implements the ClientRepository interface
type PostgresClientRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewClientRepository creates a new client repository
func NewClientRepository(config *RepositoryConfig) repositories.ClientRepository {
	return &PostgresClientRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new client
func (r *PostgresClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, company, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, r.tables.Clients)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		client.UserID,
		client.Name,
		client.Company,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetByID retrieves a client by ID, scoped to the owning user
func (r *PostgresClientRepository) GetByID(ctx context.Context, id, userID string) (*models.Client, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, company, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Clients)

	var client models.Client
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, userID).Scan(
		&client.ID,
		&client.UserID,
		&client.Name,
		&client.Company,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	return &client, nil
}

// List retrieves all clients for a user, newest first
func (r *PostgresClientRepository) List(ctx context.Context, userID string) ([]models.Client, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, company, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Clients)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		err := rows.Scan(
			&client.ID,
			&client.UserID,
			&client.Name,
			&client.Company,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	if clients == nil {
		clients = []models.Client{}
	}

	return clients, nil
}
