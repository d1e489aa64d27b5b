package service

import (
	"context"
	"testing"

	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectServiceFixture(t *testing.T) (*fixture, ProjectService, *domain.User, *domain.User) {
	t.Helper()
	f := newFixture(t)
	svc := NewProjectService(f.projs, f.tasks, f.users, f.clk)
	admin := f.seedAdmin(t, "root")
	employee := testutil.NewTestUser("worker")
	require.NoError(t, f.users.Create(context.Background(), employee))
	return f, svc, admin, employee
}

func TestProjectCreate_AdminOnly(t *testing.T) {
	_, svc, admin, employee := newProjectServiceFixture(t)
	ctx := context.Background()

	p := &domain.Project{Name: "Rollout"}
	err := svc.Create(ctx, employee.ID, p)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.Create(ctx, admin.ID, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.ProjectActive, p.Status)
	assert.Equal(t, admin.ID, p.CreatedBy)
}

func TestProjectCreate_NameRequired(t *testing.T) {
	_, svc, admin, _ := newProjectServiceFixture(t)

	err := svc.Create(context.Background(), admin.ID, &domain.Project{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateTask_RequiresExistingProject(t *testing.T) {
	_, svc, admin, _ := newProjectServiceFixture(t)
	ctx := context.Background()

	err := svc.CreateTask(ctx, admin.ID, &domain.Task{Name: "Orphan", ProjectID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := &domain.Project{Name: "Rollout"}
	require.NoError(t, svc.Create(ctx, admin.ID, p))

	task := &domain.Task{Name: "Phase 1", ProjectID: p.ID}
	require.NoError(t, svc.CreateTask(ctx, admin.ID, task))

	tasks, err := svc.ListTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Phase 1", tasks[0].Name)
}

func TestUserProvision_AdminOnlyAndDefaults(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users, f.clk)
	admin := f.seedAdmin(t, "root")
	ctx := context.Background()

	u := &domain.User{Email: "new@example.com", Name: "New Person"}
	require.NoError(t, svc.Provision(ctx, admin.ID, u))
	assert.Equal(t, domain.RoleEmployee, u.Role)
	assert.Equal(t, domain.UserActive, u.Status)

	err := svc.Provision(ctx, u.ID, &domain.User{Email: "x@example.com", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = svc.Provision(ctx, admin.ID, &domain.User{Name: "No Email"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Duplicate email is a conflict.
	err = svc.Provision(ctx, admin.ID, &domain.User{Email: "new@example.com", Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUpdate_SelfServiceLimits(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users, f.clk)
	f.seedAdmin(t, "root")
	ctx := context.Background()

	user, proj, task := f.seedEmployee(t, "worker")

	// Users may set their own defaults.
	user.DefaultProject = &proj.ID
	user.DefaultTask = &task.ID
	require.NoError(t, svc.Update(ctx, user.ID, user))

	fetched, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.DefaultProject)
	assert.Equal(t, proj.ID, *fetched.DefaultProject)

	// But not their own role.
	fetched.Role = domain.RoleAdmin
	err = svc.Update(ctx, user.ID, fetched)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// And not other users at all.
	other := testutil.NewTestUser("other")
	require.NoError(t, f.users.Create(ctx, other))
	err = svc.Update(ctx, user.ID, other)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
