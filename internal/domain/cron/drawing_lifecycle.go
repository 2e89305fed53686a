package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/questx-lab/fittrack/internal/domain"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/robfig/cron/v3"
)

type DrawingLifecycleCronJob struct {
	drawingDomain domain.DrawingDomain
	schedule      cron.Schedule
}

func NewDrawingLifecycleCronJob(
	drawingDomain domain.DrawingDomain, schedule string,
) (*DrawingLifecycleCronJob, error) {
	s, err := ParseSchedule(schedule)
	if err != nil {
		return nil, err
	}

	return &DrawingLifecycleCronJob{drawingDomain: drawingDomain, schedule: s}, nil
}

func (job *DrawingLifecycleCronJob) Name() string {
	return "drawing_lifecycle"
}

func (job *DrawingLifecycleCronJob) Do(ctx context.Context) error {
	resp, err := job.drawingDomain.RunLifecycle(ctx, time.Now())
	if err != nil {
		return err
	}

	if n := len(resp.Closed) + len(resp.Executed); n > 0 {
		xcontext.Logger(ctx).Infof("Drawing lifecycle: closed %d, executed %d",
			len(resp.Closed), len(resp.Executed))
	}

	if len(resp.Failed) > 0 {
		return fmt.Errorf("%d drawings failed: %v", len(resp.Failed), resp.Failed)
	}

	return nil
}

func (job *DrawingLifecycleCronJob) RunNow() bool {
	return true
}

func (job *DrawingLifecycleCronJob) Next() time.Time {
	return job.schedule.Next(time.Now())
}
