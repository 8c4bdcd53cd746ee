package cron

import (
	"context"
	"sync"
	"time"

	"github.com/campusboard/backend/internal/common"
	"github.com/campusboard/backend/pkg/xcontext"
)

type CronJob interface {
	Name() string
	Do(context.Context) error

	// RunNow reports whether the job runs once at start instead of waiting
	// for its first Next.
	RunNow() bool
	Next() time.Time
}

// CronJobManager runs each registered job in its own loop until the context
// given to Start is done.
type CronJobManager struct {
	mutex sync.Mutex
	jobs  []CronJob
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{}
}

func (m *CronJobManager) Register(job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.jobs = append(m.jobs, job)
}

// Start blocks until ctx is done and every in-flight run has returned.
func (m *CronJobManager) Start(ctx context.Context) {
	m.mutex.Lock()
	jobs := append([]CronJob(nil), m.jobs...)
	m.mutex.Unlock()

	xcontext.Logger(ctx).Infof("Cron job manager started with %d jobs", len(jobs))

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		go func(job CronJob) {
			defer wg.Done()
			m.loop(ctx, job)
		}(job)
	}

	wg.Wait()
	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) loop(ctx context.Context, job CronJob) {
	if job.RunNow() {
		m.run(ctx, job)
	}

	for {
		timer := time.NewTimer(time.Until(job.Next()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			m.run(ctx, job)
		}
	}
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	result := "ok"
	defer func() {
		if r := recover(); r != nil {
			xcontext.Logger(ctx).Errorf("Cron job %s panicked: %v", job.Name(), r)
			result = "panic"
		}

		common.PromCounters[common.CronJobRunsTotal].WithLabelValues(job.Name(), result).Inc()
	}()

	start := time.Now()
	if err := job.Do(ctx); err != nil {
		result = "error"
		xcontext.Logger(ctx).Errorf("Cron job %s failed: %v", job.Name(), err)
		return
	}

	xcontext.Logger(ctx).Debugf("Cron job %s done in %s", job.Name(), time.Since(start))
}
