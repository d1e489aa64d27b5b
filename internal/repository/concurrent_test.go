package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/omnigratum/timeclock/internal/domain"
	"github.com/omnigratum/timeclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentStart_UniqueIndexElectsOneWinner races many inserts of an
// active session for the same user against the partial unique index. A
// file-backed DB is required so all pool connections see the same state.
func TestConcurrentStart_UniqueIndexElectsOneWinner(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(database)
	projRepo := NewSQLiteProjectRepo(database)
	taskRepo := NewSQLiteTaskRepo(database)
	sessRepo := NewSQLiteSessionRepo(database)

	user := testutil.NewTestUser("racer")
	require.NoError(t, userRepo.Create(ctx, user))
	proj := testutil.NewTestProject("Race", user.ID)
	require.NoError(t, projRepo.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Sprint")
	require.NoError(t, taskRepo.Create(ctx, task))

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := testutil.NewTestSession(user.ID, proj.ID, task.ID, time.Now().UTC())
			results <- sessRepo.Create(ctx, sess)
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrTransient):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one concurrent start must win")
	assert.Equal(t, attempts-1, conflicts)

	n, err := sessRepo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// TestConcurrentDeactivate_OneTransition races terminations of the same
// session; only one caller may observe the active-to-inactive transition.
func TestConcurrentDeactivate_OneTransition(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(database)
	projRepo := NewSQLiteProjectRepo(database)
	taskRepo := NewSQLiteTaskRepo(database)
	sessRepo := NewSQLiteSessionRepo(database)

	user := testutil.NewTestUser("stopper")
	require.NoError(t, userRepo.Create(ctx, user))
	proj := testutil.NewTestProject("Race", user.ID)
	require.NoError(t, projRepo.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Sprint")
	require.NoError(t, taskRepo.Create(ctx, task))

	sess := testutil.NewTestSession(user.ID, proj.ID, task.ID, time.Now().UTC())
	require.NoError(t, sessRepo.Create(ctx, sess))

	const attempts = 8
	var wg sync.WaitGroup
	wins := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := sessRepo.Deactivate(ctx, sess.ID)
			if err != nil {
				// Lock contention surfaces as a transient error; the caller
				// simply did not win.
				if !errors.Is(err, domain.ErrTransient) {
					t.Errorf("deactivate: %v", err)
				}
				wins <- false
				return
			}
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one caller performs the transition")
}
