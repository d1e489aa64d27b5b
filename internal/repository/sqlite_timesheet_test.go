package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timesheetTestSetup(t *testing.T) (*SQLiteTimesheetRepo, *domain.User) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(db)
	sheetRepo := NewSQLiteTimesheetRepo(db)

	user := testutil.NewTestUser("carol")
	require.NoError(t, userRepo.Create(ctx, user))

	return sheetRepo, user
}

func newDraftSheet(userID, weekStart, weekEnd string) *domain.Timesheet {
	return &domain.Timesheet{
		ID:        uuid.New().String(),
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Status:    domain.TimesheetDraft,
		CreatedAt: time.Now().UTC(),
	}
}

func TestTimesheetRepo_CreateAndGetByUserWeek(t *testing.T) {
	repo, user := timesheetTestSetup(t)
	ctx := context.Background()

	sheet := newDraftSheet(user.ID, "2026-08-24", "2026-08-30")
	sheet.TotalHours = 12.5
	require.NoError(t, repo.Create(ctx, sheet))

	fetched, err := repo.GetByUserWeek(ctx, user.ID, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, sheet.ID, fetched.ID)
	assert.Equal(t, 12.5, fetched.TotalHours)
	assert.Equal(t, domain.TimesheetDraft, fetched.Status)
	assert.Nil(t, fetched.SubmittedAt)
	assert.Nil(t, fetched.ReviewedBy)

	_, err = repo.GetByUserWeek(ctx, user.ID, "2026-08-31")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimesheetRepo_OneSheetPerUserWeek(t *testing.T) {
	repo, user := timesheetTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newDraftSheet(user.ID, "2026-08-24", "2026-08-30")))

	err := repo.Create(ctx, newDraftSheet(user.ID, "2026-08-24", "2026-08-30"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTimesheetRepo_UpdateRoundTripsReviewFields(t *testing.T) {
	repo, user := timesheetTestSetup(t)
	ctx := context.Background()

	sheet := newDraftSheet(user.ID, "2026-08-24", "2026-08-30")
	require.NoError(t, repo.Create(ctx, sheet))

	submittedAt := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	reviewedAt := submittedAt.Add(time.Hour)
	reviewer := "admin-1"
	comment := "fix dates"

	sheet.Status = domain.TimesheetDenied
	sheet.SubmittedAt = &submittedAt
	sheet.ReviewedAt = &reviewedAt
	sheet.ReviewedBy = &reviewer
	sheet.AdminComment = &comment
	require.NoError(t, repo.Update(ctx, sheet))

	fetched, err := repo.GetByID(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetDenied, fetched.Status)
	require.NotNil(t, fetched.SubmittedAt)
	assert.True(t, fetched.SubmittedAt.Equal(submittedAt))
	require.NotNil(t, fetched.ReviewedBy)
	assert.Equal(t, "admin-1", *fetched.ReviewedBy)
	require.NotNil(t, fetched.AdminComment)
	assert.Equal(t, "fix dates", *fetched.AdminComment)
}

func TestTimesheetRepo_List_FilterAndOrder(t *testing.T) {
	repo, user := timesheetTestSetup(t)
	ctx := context.Background()

	older := newDraftSheet(user.ID, "2026-08-17", "2026-08-23")
	newer := newDraftSheet(user.ID, "2026-08-24", "2026-08-30")
	newer.Status = domain.TimesheetSubmitted
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.List(ctx, TimesheetFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Most recent week first.
	assert.Equal(t, newer.ID, all[0].ID)

	submitted, err := repo.List(ctx, TimesheetFilter{Status: domain.TimesheetSubmitted})
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, newer.ID, submitted[0].ID)
}

func TestTimesheetRepo_CountByStatus(t *testing.T) {
	repo, user := timesheetTestSetup(t)
	ctx := context.Background()

	draft := newDraftSheet(user.ID, "2026-08-17", "2026-08-23")
	submitted := newDraftSheet(user.ID, "2026-08-24", "2026-08-30")
	submitted.Status = domain.TimesheetSubmitted
	require.NoError(t, repo.Create(ctx, draft))
	require.NoError(t, repo.Create(ctx, submitted))

	n, err := repo.CountByStatus(ctx, domain.TimesheetSubmitted)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountByStatus(ctx, domain.TimesheetApproved)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
