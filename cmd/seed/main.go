package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"atelier/internal/config"
	"atelier/internal/domain/models"
	"atelier/internal/repository/postgres"
)

// Seeds a demo client and project with sprints and artifacts across the
// retention partition, so the lifecycle endpoints have something to chew
// on in dev.
func main() {
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	userID := flag.String("user", "demo-user", "Owner user ID for the seeded data")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: no demo data in production
	if cfg.Environment == "prod" {
		log.Fatalf("BLOCKED: cannot seed the production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("schema ready", "prefix", cfg.TablePrefix)

	if *schemaOnly {
		return
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	clientRepo := postgres.NewClientRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	sprintRepo := postgres.NewSprintRepository(repoConfig)
	artifactRepo := postgres.NewArtifactRepository(repoConfig)
	reviewRepo := postgres.NewSprintReviewRepository(repoConfig)

	client := &models.Client{
		UserID:  *userID,
		Name:    "Acme Robotics",
		Company: "Acme Robotics GmbH",
	}
	if err := clientRepo.Create(ctx, client); err != nil {
		log.Fatalf("Failed to seed client: %v", err)
	}

	project := &models.Project{
		ClientID: client.ID,
		UserID:   *userID,
		Slug:     "acme-fleet-dashboard",
		Name:     "Acme Fleet Dashboard",
		Status:   models.ProjectStatusApproved,
		Intake: map[string]interface{}{
			"goal":     "Operations dashboard for the delivery robot fleet",
			"budget":   "mid",
			"deadline": "Q4",
		},
	}
	if err := projectRepo.Create(ctx, project); err != nil {
		log.Fatalf("Failed to seed project: %v", err)
	}

	for _, goal := range []string{"Fleet map and live telemetry", "Alerting and dispatch", "Reporting"} {
		sprint := &models.Sprint{
			ProjectID: project.ID,
			Status:    models.SprintStatusPlanned,
			Goal:      goal,
		}
		if err := sprintRepo.Create(ctx, sprint); err != nil {
			log.Fatalf("Failed to seed sprint: %v", err)
		}
		if err := reviewRepo.Create(ctx, &models.SprintReview{SprintID: sprint.ID}); err != nil {
			log.Fatalf("Failed to seed sprint review: %v", err)
		}
	}

	artifacts := []models.Artifact{
		{Type: models.ArtifactTypeBacklog, Title: "Product backlog"},
		{Type: models.ArtifactTypeArchitecture, Title: "System architecture"},
		{Type: models.ArtifactTypeSprintStatus, Title: "Sprint 1 status"},
		{Type: models.ArtifactTypeHandoff, Title: "Sprint 1 handoff"},
	}
	for i := range artifacts {
		artifacts[i].ProjectID = project.ID
		artifacts[i].Content = map[string]interface{}{"seeded": true}
		if err := artifactRepo.Create(ctx, &artifacts[i]); err != nil {
			log.Fatalf("Failed to seed artifact: %v", err)
		}
	}

	logger.Info("seeded demo data",
		"client_id", client.ID,
		"project_id", project.ID,
		"user_id", *userID,
	)
}
