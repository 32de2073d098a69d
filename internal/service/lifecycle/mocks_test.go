package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"atelier/internal/domain"
	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"
	"atelier/internal/domain/services"
)

// memStore is a shared in-memory backing store for the fake repositories.
// Reads hand out copies so service-side mutation never reaches the store
// except through an explicit repository write. writes counts every
// mutating call, which lets tests assert that rejected operations touched
// nothing.
type memStore struct {
	mu            sync.Mutex
	projects      map[string]*models.Project
	sprints       map[string]*models.Sprint
	artifacts     map[string]*models.Artifact
	conversations map[string]*models.Conversation
	changes       []models.StatusChange
	nextID        int
	writes        int
}

func newMemStore() *memStore {
	return &memStore{
		projects:      make(map[string]*models.Project),
		sprints:       make(map[string]*models.Sprint),
		artifacts:     make(map[string]*models.Artifact),
		conversations: make(map[string]*models.Conversation),
	}
}

func (s *memStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type fakeProjectRepo struct{ s *memStore }

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if project.ID == "" {
		project.ID = r.s.id("proj")
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	copied := *project
	r.s.projects[project.ID] = &copied
	r.s.writes++
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, userID string, status models.ProjectStatus) ([]models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Project
	for _, p := range r.s.projects {
		if p.UserID != userID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[project.ID]
	if !ok || p.UserID != project.UserID {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	p.Name = project.Name
	p.Intake = project.Intake
	p.UpdatedAt = time.Now()
	r.s.writes++
	return nil
}

func (r *fakeProjectRepo) UpdateStatus(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[project.ID]
	if !ok || p.UserID != project.UserID {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	p.Status = project.Status
	p.ArchivedAt = project.ArchivedAt
	p.UpdatedAt = time.Now()
	r.s.writes++
	return nil
}

func (r *fakeProjectRepo) UpdatePlanDocuments(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[project.ID]
	if !ok || p.UserID != project.UserID {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	p.Plan = project.Plan
	p.Architecture = project.Architecture
	p.Summary = project.Summary
	p.UpdatedAt = time.Now()
	r.s.writes++
	return nil
}

type fakeSprintRepo struct{ s *memStore }

func (r *fakeSprintRepo) Create(ctx context.Context, sprint *models.Sprint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sprint.ID == "" {
		sprint.ID = r.s.id("sprint")
	}
	seq := 0
	for _, sp := range r.s.sprints {
		if sp.ProjectID == sprint.ProjectID && sp.Sequence > seq {
			seq = sp.Sequence
		}
	}
	sprint.Sequence = seq + 1
	copied := *sprint
	r.s.sprints[sprint.ID] = &copied
	r.s.writes++
	return nil
}

func (r *fakeSprintRepo) GetByID(ctx context.Context, id string) (*models.Sprint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.sprints[id]
	if !ok {
		return nil, fmt.Errorf("sprint %s: %w", id, domain.ErrNotFound)
	}
	copied := *sp
	return &copied, nil
}

func (r *fakeSprintRepo) ListByProject(ctx context.Context, projectID string) ([]models.Sprint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Sprint
	for _, sp := range r.s.sprints {
		if sp.ProjectID == projectID {
			out = append(out, *sp)
		}
	}
	return out, nil
}

func (r *fakeSprintRepo) Update(ctx context.Context, sprint *models.Sprint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.sprints[sprint.ID]
	if !ok {
		return fmt.Errorf("sprint %s: %w", sprint.ID, domain.ErrNotFound)
	}
	sp.Status = sprint.Status
	sp.StartedAt = sprint.StartedAt
	sp.CompletedAt = sprint.CompletedAt
	sp.ReviewSummary = sprint.ReviewSummary
	sp.UpdatedAt = time.Now()
	r.s.writes++
	return nil
}

func (r *fakeSprintRepo) ResetAll(ctx context.Context, projectID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, sp := range r.s.sprints {
		if sp.ProjectID != projectID {
			continue
		}
		sp.Status = models.SprintStatusPlanned
		sp.StartedAt = nil
		sp.CompletedAt = nil
		sp.ReviewSummary = nil
		sp.UpdatedAt = time.Now()
		n++
	}
	r.s.writes++
	return n, nil
}

type fakeArtifactRepo struct{ s *memStore }

func (r *fakeArtifactRepo) Create(ctx context.Context, artifact *models.Artifact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if artifact.ID == "" {
		artifact.ID = r.s.id("artifact")
	}
	copied := *artifact
	r.s.artifacts[artifact.ID] = &copied
	r.s.writes++
	return nil
}

func (r *fakeArtifactRepo) ListByProject(ctx context.Context, projectID string) ([]models.Artifact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Artifact
	for _, a := range r.s.artifacts {
		if a.ProjectID == projectID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeArtifactRepo) DeleteByTypes(ctx context.Context, projectID string, types []models.ArtifactType) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, a := range r.s.artifacts {
		if a.ProjectID != projectID {
			continue
		}
		for _, t := range types {
			if a.Type == t {
				delete(r.s.artifacts, id)
				n++
				break
			}
		}
	}
	r.s.writes++
	return n, nil
}

type fakeConvRepo struct{ s *memStore }

func (r *fakeConvRepo) Create(ctx context.Context, conv *models.Conversation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if conv.ID == "" {
		conv.ID = r.s.id("conv")
	}
	conv.CreatedAt = time.Now()
	copied := *conv
	r.s.conversations[conv.ID] = &copied
	r.s.writes++
	return nil
}

func (r *fakeConvRepo) ListByProject(ctx context.Context, projectID string) ([]models.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Conversation
	for _, c := range r.s.conversations {
		if c.ProjectID == projectID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConvRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, c := range r.s.conversations {
		if c.ProjectID == projectID {
			delete(r.s.conversations, id)
			n++
		}
	}
	r.s.writes++
	return n, nil
}

type fakeChangeRepo struct{ s *memStore }

func (r *fakeChangeRepo) Append(ctx context.Context, change *models.StatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	change.ID = r.s.id("change")
	change.ChangedAt = time.Now()
	r.s.changes = append(r.s.changes, *change)
	r.s.writes++
	return nil
}

func (r *fakeChangeRepo) ListByProject(ctx context.Context, projectID string) ([]models.StatusChange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.StatusChange
	for _, c := range r.s.changes {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeTxManager runs the function directly. failOn, when non-nil, fails
// the nth ExecTx call (1-based) after running the function, simulating a
// commit failure.
type fakeTxManager struct {
	mu     sync.Mutex
	calls  int
	failOn int
	err    error
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()
	if err := fn(ctx); err != nil {
		return err
	}
	if m.failOn != 0 && call == m.failOn {
		return m.err
	}
	return nil
}

// fakePlanner returns a canned result or error and records invocations
type fakePlanner struct {
	mu      sync.Mutex
	result  *services.PlanResult
	err     error
	invoked int
}

func (p *fakePlanner) Name() string { return "fake" }

func (p *fakePlanner) Invoke(ctx context.Context, intake map[string]interface{}) (*services.PlanResult, error) {
	p.mu.Lock()
	p.invoked++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

// env bundles a fully wired service over the fake store
type env struct {
	store   *memStore
	planner *fakePlanner
	tx      *fakeTxManager
	svc     services.LifecycleService
}

func newEnv() *env {
	store := newMemStore()
	planner := &fakePlanner{
		result: &services.PlanResult{
			Plan:         map[string]interface{}{"phases": []interface{}{"build"}},
			Architecture: map[string]interface{}{"style": "modular"},
			Summary:      "a short plan",
		},
	}
	tx := &fakeTxManager{}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := NewLifecycleService(
		&fakeProjectRepo{s: store},
		&fakeSprintRepo{s: store},
		&fakeArtifactRepo{s: store},
		&fakeConvRepo{s: store},
		&fakeChangeRepo{s: store},
		planner,
		tx,
		logger,
	)
	return &env{store: store, planner: planner, tx: tx, svc: svc}
}

func (e *env) addProject(userID string, status models.ProjectStatus) *models.Project {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	p := &models.Project{
		ID:     e.store.id("proj"),
		UserID: userID,
		Status: status,
		Intake: map[string]interface{}{"goal": "ship it"},
	}
	if status == models.ProjectStatusFinished {
		now := time.Now()
		p.ArchivedAt = &now
	}
	e.store.projects[p.ID] = p
	return p
}

func (e *env) addSprint(projectID string, status models.SprintStatus, seq int) *models.Sprint {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	now := time.Now()
	sp := &models.Sprint{
		ID:        e.store.id("sprint"),
		ProjectID: projectID,
		Sequence:  seq,
		Status:    status,
	}
	if status != models.SprintStatusPlanned {
		sp.StartedAt = &now
	}
	if status == models.SprintStatusDone {
		sp.CompletedAt = &now
	}
	e.store.sprints[sp.ID] = sp
	return sp
}

func (e *env) addArtifact(projectID string, artifactType models.ArtifactType) *models.Artifact {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	a := &models.Artifact{
		ID:        e.store.id("artifact"),
		ProjectID: projectID,
		Type:      artifactType,
		Content:   map[string]interface{}{"body": "content"},
	}
	e.store.artifacts[a.ID] = a
	return a
}

func (e *env) addConversation(projectID string) *models.Conversation {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	c := &models.Conversation{
		ID:        e.store.id("conv"),
		ProjectID: projectID,
		Role:      rolePlanner,
	}
	e.store.conversations[c.ID] = c
	return c
}

func (e *env) storedProject(id string) *models.Project {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	copied := *e.store.projects[id]
	return &copied
}

func (e *env) changesFor(projectID string) []models.StatusChange {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	var out []models.StatusChange
	for _, c := range e.store.changes {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out
}
