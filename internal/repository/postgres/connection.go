package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Clients       string
	Projects      string
	Sprints       string
	Artifacts     string
	Conversations string
	SprintReviews string
	StatusChanges string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Clients:       fmt.Sprintf("%sclients", prefix),
		Projects:      fmt.Sprintf("%sprojects", prefix),
		Sprints:       fmt.Sprintf("%ssprints", prefix),
		Artifacts:     fmt.Sprintf("%sartifacts", prefix),
		Conversations: fmt.Sprintf("%sconversations", prefix),
		SprintReviews: fmt.Sprintf("%ssprint_reviews", prefix),
		StatusChanges: fmt.Sprintf("%sstatus_changes", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// When the database sits behind a transaction pooler (port 6543), prepared
// statements break with "prepared statement already exists". CacheDescribe
// keeps the extended protocol (needed for JSONB encoding of
// map[string]interface{}) while staying pooler compatible. An explicit
// default_query_exec_mode in the connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for pooler compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
