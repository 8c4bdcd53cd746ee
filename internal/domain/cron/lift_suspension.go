package cron

import (
	"context"
	"time"

	"github.com/campusboard/backend/internal/repository"
	"github.com/campusboard/backend/pkg/xcontext"
)

// LiftSuspensionCronJob clears the suspension of users whose suspended_until
// has passed.
type LiftSuspensionCronJob struct {
	userRepo repository.UserRepository
	interval time.Duration
}

func NewLiftSuspensionCronJob(userRepo repository.UserRepository, interval time.Duration) *LiftSuspensionCronJob {
	return &LiftSuspensionCronJob{userRepo: userRepo, interval: interval}
}

func (job *LiftSuspensionCronJob) Name() string {
	return "lift_suspension"
}

func (job *LiftSuspensionCronJob) Do(ctx context.Context) error {
	lifted, err := job.userRepo.LiftExpiredSuspensions(ctx, time.Now())
	if err != nil {
		return err
	}

	if lifted > 0 {
		xcontext.Logger(ctx).Infof("Lifted %d expired suspensions", lifted)
	}

	return nil
}

func (job *LiftSuspensionCronJob) RunNow() bool {
	return true
}

func (job *LiftSuspensionCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
