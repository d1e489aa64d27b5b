package service

import (
	"context"
	"testing"
	"time"

	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/repository"
	"github.com/omnigratum/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordManual(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	entry, err := f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start.Add(90*time.Minute), "standup prep")
	require.NoError(t, err)

	assert.Equal(t, 5400, entry.Duration)
	assert.Equal(t, domain.EntryManual, entry.EntryType)
	assert.Equal(t, "2026-08-25", entry.Date)
	assert.Equal(t, "standup prep", entry.Notes)
}

func TestRecordManual_EndBeforeStart(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	_, err := f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start.Add(-time.Minute), "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Nothing was recorded.
	list, err := f.entr.List(ctx, repository.EntryFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordManual_ZeroDurationAllowed(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	entry, err := f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start, "")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Duration)
}

func TestRecordManual_OverlapsPermitted(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	_, err := f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)
	_, err = f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start.Add(30*time.Minute), start.Add(2*time.Hour), "")
	require.NoError(t, err)

	list, err := f.entr.List(ctx, repository.EntryFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRecordManual_WhileTimerRuns(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	_, err := f.timers.Start(ctx, user.ID, proj.ID, task.ID)
	require.NoError(t, err)

	// Manual entries do not touch timer exclusivity.
	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	_, err = f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)

	active, err := f.timers.GetActive(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, active)
}

func TestRecordManual_RefreshesDraftTimesheet(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	sheet, err := f.sheets.EnsureDraft(ctx, user.ID, "2026-08-24")
	require.NoError(t, err)

	start := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	_, err = f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)

	refreshed, err := f.shts.GetByID(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, refreshed.TotalHours)
}

func TestEntryDelete_OwnerAndAdminOnly(t *testing.T) {
	f := newFixture(t)
	owner, proj, task := f.seedEmployee(t, "bob")
	admin := f.seedAdmin(t, "root")
	ctx := context.Background()

	other := testutil.NewTestUser("mallory")
	require.NoError(t, f.users.Create(ctx, other))

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	first, err := f.entries.RecordManual(ctx, owner.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)
	second, err := f.entries.RecordManual(ctx, owner.ID, proj.ID, task.ID, start.Add(time.Hour), start.Add(2*time.Hour), "")
	require.NoError(t, err)

	err = f.entries.Delete(ctx, first.ID, other.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.entries.Delete(ctx, first.ID, owner.ID))
	require.NoError(t, f.entries.Delete(ctx, second.ID, admin.ID))

	list, err := f.entr.List(ctx, repository.EntryFilter{UserID: owner.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEntryDelete_RefreshesDraftButNotFrozen(t *testing.T) {
	f := newFixture(t)
	user, proj, task := f.seedEmployee(t, "bob")
	ctx := context.Background()

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	entry, err := f.entries.RecordManual(ctx, user.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)

	sheet, err := f.sheets.EnsureDraft(ctx, user.ID, "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 1.0, sheet.TotalHours)

	// Freeze the week, then delete the entry: the snapshot must hold.
	sheet, err = f.sheets.Submit(ctx, sheet.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, f.entries.Delete(ctx, entry.ID, user.ID))

	frozen, err := f.shts.GetByID(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, frozen.TotalHours, "submitted snapshot is not recomputed")
}

func TestEntryList_NonAdminSeesOnlyOwn(t *testing.T) {
	f := newFixture(t)
	bob, proj, task := f.seedEmployee(t, "bob")
	admin := f.seedAdmin(t, "root")
	ctx := context.Background()

	carol := testutil.NewTestUser("carol")
	require.NoError(t, f.users.Create(ctx, carol))

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	_, err := f.entries.RecordManual(ctx, bob.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)
	_, err = f.entries.RecordManual(ctx, carol.ID, proj.ID, task.ID, start, start.Add(time.Hour), "")
	require.NoError(t, err)

	// Bob asks for Carol's entries and gets his own instead.
	list, err := f.entries.List(ctx, bob.ID, repository.EntryFilter{UserID: carol.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bob.ID, list[0].UserID)

	// Admin can scope to anyone or see everything.
	list, err = f.entries.List(ctx, admin.ID, repository.EntryFilter{UserID: carol.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, carol.ID, list[0].UserID)

	list, err = f.entries.List(ctx, admin.ID, repository.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
