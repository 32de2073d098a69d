package project

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

const maxNameLength = 120

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	clientRepo  repositories.ClientRepository
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	clientRepo repositories.ClientRepository,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project in INTAKE for one of the caller's clients
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ClientID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, maxNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The client must belong to the caller; a foreign client id reads as
	// absent, same as projects.
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID, req.UserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	project := &models.Project{
		ClientID: req.ClientID,
		UserID:   req.UserID,
		Slug:     Slugify(name),
		Name:     name,
		Status:   models.ProjectStatusIntake,
		Intake:   req.Intake,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"slug", project.Slug,
		"client_id", project.ClientID,
		"user_id", req.UserID,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, userID)
}

// ListProjects retrieves the caller's projects, optionally filtered by status
func (s *projectService) ListProjects(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error) {
	if status != "" && !models.ValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return s.projectRepo.List(ctx, userID, status)
}

// UpdateProject updates a project's name and intake payload
func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if req.Name == nil && req.Intake == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > maxNameLength {
			return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrValidation, maxNameLength)
		}
		project.Name = name
	}
	if req.Intake != nil {
		project.Intake = req.Intake
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID, "user_id", userID)

	return project, nil
}

// CreateClient creates a new client
func (s *projectService) CreateClient(ctx context.Context, req *services.CreateClientRequest) (*models.Client, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, maxNameLength)),
		validation.Field(&req.Company, validation.Length(0, maxNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	client := &models.Client{
		UserID:  req.UserID,
		Name:    strings.TrimSpace(req.Name),
		Company: strings.TrimSpace(req.Company),
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client created", "id", client.ID, "user_id", req.UserID)

	return client, nil
}

// ListClients retrieves all clients for a user
func (s *projectService) ListClients(ctx context.Context, userID string) ([]models.Client, error) {
	return s.clientRepo.List(ctx, userID)
}

var slugScrub = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a project name
func Slugify(name string) string {
	slug := slugScrub.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
