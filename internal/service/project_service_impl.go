package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/clock"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	users    repository.UserRepo
	clk      clock.Clock
}

func NewProjectService(projects repository.ProjectRepo, tasks repository.TaskRepo, users repository.UserRepo, clk clock.Clock) ProjectService {
	return &projectService{projects: projects, tasks: tasks, users: users, clk: clk}
}

func (s *projectService) Create(ctx context.Context, requesterID string, p *domain.Project) error {
	admin, err := requireAdmin(ctx, s.users, requesterID)
	if err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("project name required: %w", domain.ErrValidation)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	p.CreatedBy = admin.ID
	p.CreatedAt = s.clk.Now()
	return s.projects.Create(ctx, p)
}

func (s *projectService) Update(ctx context.Context, requesterID string, p *domain.Project) error {
	if _, err := requireAdmin(ctx, s.users, requesterID); err != nil {
		return err
	}
	return s.projects.Update(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) CreateTask(ctx context.Context, requesterID string, t *domain.Task) error {
	if _, err := requireAdmin(ctx, s.users, requesterID); err != nil {
		return err
	}
	if t.Name == "" {
		return fmt.Errorf("task name required: %w", domain.ErrValidation)
	}
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.ProjectActive
	}
	t.CreatedAt = s.clk.Now()
	return s.tasks.Create(ctx, t)
}

func (s *projectService) UpdateTask(ctx context.Context, requesterID string, t *domain.Task) error {
	if _, err := requireAdmin(ctx, s.users, requesterID); err != nil {
		return err
	}
	return s.tasks.Update(ctx, t)
}

func (s *projectService) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if projectID == "" {
		return s.tasks.List(ctx)
	}
	return s.tasks.ListByProject(ctx, projectID)
}
