package cron

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type countJob struct {
	count atomic.Int32
}

func (j *countJob) Name() string { return "count" }
func (j *countJob) RunNow() bool  { return true }
func (j *countJob) Next() time.Time {
	return time.Now().Add(10 * time.Millisecond)
}

func (j *countJob) Do(context.Context) error {
	if j.count.Add(1) == 2 {
		return errors.New("flaky")
	}

	return nil
}

type panicJob struct {
	runs atomic.Int32
}

func (j *panicJob) Name() string    { return "panic" }
func (j *panicJob) RunNow() bool    { return false }
func (j *panicJob) Next() time.Time { return time.Now().Add(5 * time.Millisecond) }
func (j *panicJob) Do(context.Context) error {
	j.runs.Add(1)
	panic("boom")
}

func TestCronJobManager(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())
	defer cancel()

	job := &countJob{}
	crashing := &panicJob{}
	manager := NewCronJobManager()
	manager.Register(job)
	manager.Register(crashing)

	done := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(done)
	}()

	// A failing or panicking run does not stop later runs.
	require.Eventually(t, func() bool {
		return job.count.Load() >= 3 && crashing.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}
}

func TestLiftSuspensionCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	suspend := func(id string, until time.Time) {
		err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).
			Update("suspended_until", sql.NullTime{Valid: true, Time: until}).Error
		require.NoError(t, err)
	}
	suspend(testutil.User1.ID, time.Now().Add(-time.Hour))
	suspend(testutil.User2.ID, time.Now().Add(time.Hour))

	userRepo := repository.NewUserRepository()
	require.NoError(t, NewLiftSuspensionCronJob(userRepo, time.Hour).Do(ctx))

	user1, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, user1.SuspendedUntil.Valid)

	user2, err := userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.True(t, user2.SuspendedUntil.Valid)
}
