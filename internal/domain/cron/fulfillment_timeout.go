package cron

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/internal/domain"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/robfig/cron/v3"
)

type FulfillmentTimeoutCronJob struct {
	fulfillmentDomain domain.FulfillmentDomain
	schedule          cron.Schedule
}

func NewFulfillmentTimeoutCronJob(
	fulfillmentDomain domain.FulfillmentDomain, schedule string,
) (*FulfillmentTimeoutCronJob, error) {
	s, err := ParseSchedule(schedule)
	if err != nil {
		return nil, err
	}

	return &FulfillmentTimeoutCronJob{fulfillmentDomain: fulfillmentDomain, schedule: s}, nil
}

func (job *FulfillmentTimeoutCronJob) Name() string {
	return "fulfillment_timeout"
}

func (job *FulfillmentTimeoutCronJob) Do(ctx context.Context) error {
	resp, err := job.fulfillmentDomain.ProcessTimeouts(ctx, time.Now())
	if resp != nil && (len(resp.Forfeited) > 0 || len(resp.Warned) > 0 || len(resp.Failed) > 0) {
		xcontext.Logger(ctx).Infof("Fulfillment timeouts: forfeited %d, warned %d, failed %d",
			len(resp.Forfeited), len(resp.Warned), len(resp.Failed))
	}

	return err
}

func (job *FulfillmentTimeoutCronJob) RunNow() bool {
	return false
}

func (job *FulfillmentTimeoutCronJob) Next() time.Time {
	return job.schedule.Next(time.Now())
}
