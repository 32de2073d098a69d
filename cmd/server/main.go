package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"atelier/internal/auth"
	"atelier/internal/config"
	"atelier/internal/handler"
	"atelier/internal/middleware"
	"atelier/internal/repository/postgres"
	authService "atelier/internal/service/auth"
	"atelier/internal/service/lifecycle"
	"atelier/internal/service/planner"
	projectService "atelier/internal/service/project"
	"atelier/internal/service/review"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for bearer-token authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	clientRepo := postgres.NewClientRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	sprintRepo := postgres.NewSprintRepository(repoConfig)
	artifactRepo := postgres.NewArtifactRepository(repoConfig)
	convRepo := postgres.NewConversationRepository(repoConfig)
	reviewRepo := postgres.NewSprintReviewRepository(repoConfig)
	changeRepo := postgres.NewStatusChangeRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Planning provider
	plannerProvider, err := planner.Setup(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup planner: %v", err)
	}

	// Services
	authorizer := authService.NewOwnerBasedAuthorizer(projectRepo, sprintRepo)
	projects := projectService.NewProjectService(projectRepo, clientRepo, logger)
	sprints := projectService.NewSprintService(sprintRepo, reviewRepo, authorizer, txManager, logger)
	reviews := review.NewReviewService(sprintRepo, reviewRepo, authorizer, logger)
	engine := lifecycle.NewLifecycleService(
		projectRepo,
		sprintRepo,
		artifactRepo,
		convRepo,
		changeRepo,
		plannerProvider,
		txManager,
		logger,
	)

	// Handlers
	projectHandler := handler.NewProjectHandler(projects, logger)
	lifecycleHandler := handler.NewLifecycleHandler(engine, logger)
	sprintHandler := handler.NewSprintHandler(sprints, reviews, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", projectHandler.HealthCheck)

	// Client routes
	mux.HandleFunc("POST /api/clients", projectHandler.CreateClient)
	mux.HandleFunc("GET /api/clients", projectHandler.ListClients)

	// Project routes
	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{id}", projectHandler.UpdateProject)

	// Lifecycle routes
	mux.HandleFunc("PATCH /api/projects/{id}/status", lifecycleHandler.ChangeStatus)
	mux.HandleFunc("POST /api/projects/{id}/generate-plan", lifecycleHandler.GeneratePlan)
	mux.HandleFunc("POST /api/projects/{id}/archive", lifecycleHandler.Archive)
	mux.HandleFunc("POST /api/projects/{id}/restore", lifecycleHandler.Restore)
	mux.HandleFunc("POST /api/projects/{id}/reset", lifecycleHandler.Reset)
	mux.HandleFunc("GET /api/projects/{id}/history", lifecycleHandler.History)

	// Sprint routes
	mux.HandleFunc("GET /api/projects/{id}/sprints", sprintHandler.ListSprints)
	mux.HandleFunc("POST /api/projects/{id}/sprints", sprintHandler.CreateSprint)
	mux.HandleFunc("PATCH /api/sprints/{id}/status", sprintHandler.ChangeStatus)
	mux.HandleFunc("POST /api/sprints/{id}/feedback", sprintHandler.AppendFeedback)
	mux.HandleFunc("GET /api/sprints/{id}/review", sprintHandler.GetReview)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
