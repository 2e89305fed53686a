package cron

import (
	"context"
	"sync"
	"time"

	"github.com/questx-lab/fittrack/internal/common"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/robfig/cron/v3"
)

type CronJob interface {
	Name() string
	Do(context.Context) error
	RunNow() bool
	Next() time.Time
}

type CronJobManager struct {
	mutex sync.Mutex
	wait  sync.WaitGroup
	jobs  map[CronJob]*time.Timer
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{jobs: make(map[CronJob]*time.Timer)}
}

// Start runs the jobs on their schedules and blocks until ctx is done or
// Cancel is called.
func (m *CronJobManager) Start(ctx context.Context, jobs ...CronJob) {
	xcontext.Logger(ctx).Infof("Cron job manager started")

	m.mutex.Lock()
	for _, job := range jobs {
		m.jobs[job] = nil
		m.wait.Add(1)
	}
	m.mutex.Unlock()

	for _, job := range jobs {
		if job.RunNow() {
			go m.run(ctx, job)
		} else {
			m.schedule(ctx, job)
		}
	}

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			m.Cancel(ctx)
		case <-stopped:
		}
	}()

	m.wait.Wait()
	close(stopped)
	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}

func (m *CronJobManager) Cancel(ctx context.Context) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for job, timer := range m.jobs {
		if timer != nil {
			timer.Stop()
		}

		xcontext.Logger(ctx).Infof("Stopped %s", job.Name())
		m.wait.Done()
	}

	// Clear all jobs to not schedule them again.
	m.jobs = make(map[CronJob]*time.Timer)
}

func (m *CronJobManager) run(ctx context.Context, job CronJob) {
	defer m.schedule(ctx, job)
	defer func() {
		if r := recover(); r != nil {
			xcontext.Logger(ctx).Errorf("%s panicked: %v", job.Name(), r)
			common.PromCounters[common.CronJobFailureTotal].WithLabelValues(job.Name()).Inc()
		}
	}()

	tickCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Cron.TickTimeout.Duration)
	defer cancel()

	xcontext.Logger(ctx).Debugf("%s is running...", job.Name())
	if err := job.Do(tickCtx); err != nil {
		xcontext.Logger(ctx).Errorf("%s failed: %v", job.Name(), err)
		common.PromCounters[common.CronJobFailureTotal].WithLabelValues(job.Name()).Inc()
		return
	}

	xcontext.Logger(ctx).Debugf("%s ok", job.Name())
}

func (m *CronJobManager) schedule(ctx context.Context, job CronJob) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Only schedule jobs which still exist in the job list.
	if _, ok := m.jobs[job]; ok {
		m.jobs[job] = time.AfterFunc(time.Until(job.Next()), func() { m.run(ctx, job) })
	}
}

// ParseSchedule accepts standard five field expressions and descriptors such
// as "@every 15m".
func ParseSchedule(expr string) (cron.Schedule, error) {
	return cron.ParseStandard(expr)
}
