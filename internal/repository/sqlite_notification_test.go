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

func notificationTestSetup(t *testing.T) (*SQLiteNotificationRepo, *domain.User, *domain.User) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(db)
	repo := NewSQLiteNotificationRepo(db)

	owner := testutil.NewTestUser("dave")
	other := testutil.NewTestUser("erin")
	require.NoError(t, userRepo.Create(ctx, owner))
	require.NoError(t, userRepo.Create(ctx, other))

	return repo, owner, other
}

func newNotification(userID string, createdAt time.Time) *domain.Notification {
	return &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.NotifTimesheetSubmitted,
		Title:     "New Timesheet Submission",
		Message:   "dave submitted a timesheet for 2026-08-24",
		CreatedAt: createdAt,
	}
}

func TestNotificationRepo_ListByUser_NewestFirst(t *testing.T) {
	repo, owner, _ := notificationTestSetup(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	first := newNotification(owner.ID, base)
	second := newNotification(owner.ID, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByUser(ctx, owner.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.False(t, list[0].Read)

	// Limit truncates from the newest end.
	list, err = repo.ListByUser(ctx, owner.ID, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestNotificationRepo_MarkRead_OwnerOnly(t *testing.T) {
	repo, owner, other := notificationTestSetup(t)
	ctx := context.Background()

	n := newNotification(owner.ID, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, n))

	// Another user cannot mark it read.
	err := repo.MarkRead(ctx, n.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.MarkRead(ctx, n.ID, owner.ID))

	count, err := repo.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNotificationRepo_MarkAllRead(t *testing.T) {
	repo, owner, other := notificationTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newNotification(owner.ID, time.Now().UTC())))
	require.NoError(t, repo.Create(ctx, newNotification(owner.ID, time.Now().UTC())))
	require.NoError(t, repo.Create(ctx, newNotification(other.ID, time.Now().UTC())))

	require.NoError(t, repo.MarkAllRead(ctx, owner.ID))

	count, err := repo.CountUnread(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Other users' notifications are untouched.
	count, err = repo.CountUnread(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
