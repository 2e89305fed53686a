package cron

import (
	"context"
	"time"

	"github.com/questx-lab/fittrack/internal/domain/leaderboard"
	"github.com/robfig/cron/v3"
)

type LeaderboardRefreshCronJob struct {
	leaderboard leaderboard.Leaderboard
	schedule    cron.Schedule
}

func NewLeaderboardRefreshCronJob(
	leaderboard leaderboard.Leaderboard, schedule string,
) (*LeaderboardRefreshCronJob, error) {
	s, err := ParseSchedule(schedule)
	if err != nil {
		return nil, err
	}

	return &LeaderboardRefreshCronJob{leaderboard: leaderboard, schedule: s}, nil
}

func (job *LeaderboardRefreshCronJob) Name() string {
	return "leaderboard_refresh"
}

func (job *LeaderboardRefreshCronJob) Do(ctx context.Context) error {
	_, err := job.leaderboard.Refresh(ctx)
	return err
}

// RunNow warms the cache as soon as the worker starts.
func (job *LeaderboardRefreshCronJob) RunNow() bool {
	return true
}

func (job *LeaderboardRefreshCronJob) Next() time.Time {
	return job.schedule.Next(time.Now())
}
