package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
	"github.com/omnigratum/timeclock/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fixture bundles the repositories and services most tests need, all
// sharing one database and a fake clock.
type fixture struct {
	db    *sql.DB
	uow   db.UnitOfWork
	clk   *testutil.FakeClock
	users repository.UserRepo
	projs repository.ProjectRepo
	tasks repository.TaskRepo
	sess  repository.SessionRepo
	entr  repository.EntryRepo
	shts  repository.TimesheetRepo
	notif repository.NotificationRepo

	timers  TimerService
	entries EntryService
	sheets  TimesheetService
	notifs  NotificationService
	reports ReportService
}

// baseTime is a Monday morning; week tests lean on that.
var baseTime = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clk := testutil.NewFakeClock(baseTime)

	f := &fixture{
		db:    database,
		uow:   uow,
		clk:   clk,
		users: repository.NewSQLiteUserRepo(database),
		projs: repository.NewSQLiteProjectRepo(database),
		tasks: repository.NewSQLiteTaskRepo(database),
		sess:  repository.NewSQLiteSessionRepo(database),
		entr:  repository.NewSQLiteEntryRepo(database),
		shts:  repository.NewSQLiteTimesheetRepo(database),
		notif: repository.NewSQLiteNotificationRepo(database),
	}
	f.timers = NewTimerService(f.sess, uow, clk)
	f.entries = NewEntryService(f.entr, f.users, uow, clk)
	f.sheets = NewTimesheetService(f.shts, f.users, uow, clk, nil)
	f.notifs = NewNotificationService(f.notif)
	f.reports = NewReportService(f.entr, f.users, f.projs, f.tasks, f.shts, f.sess, clk)
	return f
}

// seedEmployee creates an active employee with a project/task to log
// time against.
func (f *fixture) seedEmployee(t *testing.T, name string) (*domain.User, *domain.Project, *domain.Task) {
	t.Helper()
	ctx := context.Background()

	user := testutil.NewTestUser(name)
	require.NoError(t, f.users.Create(ctx, user))
	proj := testutil.NewTestProject("Omni", user.ID)
	require.NoError(t, f.projs.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Implementation")
	require.NoError(t, f.tasks.Create(ctx, task))
	return user, proj, task
}

func (f *fixture) seedAdmin(t *testing.T, name string) *domain.User {
	t.Helper()
	admin := testutil.NewTestUser(name, testutil.WithRole(domain.RoleAdmin))
	require.NoError(t, f.users.Create(context.Background(), admin))
	return admin
}
