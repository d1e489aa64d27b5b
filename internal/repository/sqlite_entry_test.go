package repository

import (
	"context"
	"testing"
	"time"

	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryTestSetup(t *testing.T) (*SQLiteEntryRepo, *domain.User, *domain.Project, *domain.Task) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(db)
	projRepo := NewSQLiteProjectRepo(db)
	taskRepo := NewSQLiteTaskRepo(db)
	entryRepo := NewSQLiteEntryRepo(db)

	user := testutil.NewTestUser("bob")
	require.NoError(t, userRepo.Create(ctx, user))

	proj := testutil.NewTestProject("Support", user.ID)
	require.NoError(t, projRepo.Create(ctx, proj))

	task := testutil.NewTestTask(proj.ID, "Tickets")
	require.NoError(t, taskRepo.Create(ctx, task))

	return entryRepo, user, proj, task
}

func TestEntryRepo_CreateAndGetByID(t *testing.T) {
	repo, user, proj, task := entryTestSetup(t)
	ctx := context.Background()

	start := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	entry := testutil.NewTestEntry(user.ID, proj.ID, task.ID, start, 3600)
	entry.Notes = "morning block"
	require.NoError(t, repo.Create(ctx, entry))

	fetched, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 3600, fetched.Duration)
	assert.Equal(t, domain.EntryManual, fetched.EntryType)
	assert.Equal(t, "2026-08-24", fetched.Date)
	assert.Equal(t, "morning block", fetched.Notes)
	assert.True(t, fetched.EndTime.Equal(start.Add(time.Hour)))
}

func TestEntryRepo_List_DateRange(t *testing.T) {
	repo, user, proj, task := entryTestSetup(t)
	ctx := context.Background()

	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	inWeek := testutil.NewTestEntry(user.ID, proj.ID, task.ID, monday, 3600)
	sunday := testutil.NewTestEntry(user.ID, proj.ID, task.ID, monday.AddDate(0, 0, 6), 1800)
	nextWeek := testutil.NewTestEntry(user.ID, proj.ID, task.ID, monday.AddDate(0, 0, 7), 900)
	for _, e := range []*domain.TimeEntry{inWeek, sunday, nextWeek} {
		require.NoError(t, repo.Create(ctx, e))
	}

	// Bounds are inclusive on both ends.
	list, err := repo.List(ctx, EntryFilter{UserID: user.ID, StartDate: "2026-08-24", EndDate: "2026-08-30"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, sunday.ID, list[0].ID)
	assert.Equal(t, inWeek.ID, list[1].ID)
}

func TestEntryRepo_List_FilterByProject(t *testing.T) {
	repo, user, proj, task := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry(user.ID, proj.ID, task.ID, time.Now().UTC(), 600)
	require.NoError(t, repo.Create(ctx, entry))

	list, err := repo.List(ctx, EntryFilter{ProjectID: proj.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.List(ctx, EntryFilter{ProjectID: "other"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryRepo_SumDurations(t *testing.T) {
	repo, user, proj, task := entryTestSetup(t)
	ctx := context.Background()

	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry(user.ID, proj.ID, task.ID, monday, 3600)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry(user.ID, proj.ID, task.ID, monday.AddDate(0, 0, 1), 1800)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry(user.ID, proj.ID, task.ID, monday.AddDate(0, 0, 8), 999)))

	total, err := repo.SumDurations(ctx, user.ID, "2026-08-24", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 5400, total)

	// Empty range sums to zero, not an error.
	total, err = repo.SumDurations(ctx, user.ID, "2020-01-01", "2020-01-07")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestEntryRepo_Delete(t *testing.T) {
	repo, user, proj, task := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry(user.ID, proj.ID, task.ID, time.Now().UTC(), 600)
	require.NoError(t, repo.Create(ctx, entry))

	require.NoError(t, repo.Delete(ctx, entry.ID))

	_, err := repo.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryRepo_ZeroDurationAllowed(t *testing.T) {
	repo, user, proj, task := entryTestSetup(t)
	ctx := context.Background()

	entry := testutil.NewTestEntry(user.ID, proj.ID, task.ID, time.Now().UTC(), 0)
	require.NoError(t, repo.Create(ctx, entry))

	fetched, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Duration)
}
