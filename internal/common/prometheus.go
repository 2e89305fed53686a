package common

import "github.com/prometheus/client_golang/prometheus"

const (
	PointsAwardedTotal              = "points_awarded_total"
	TicketsPurchasedTotal           = "tickets_purchased_total"
	DrawingsExecutedTotal           = "drawings_executed_total"
	CronJobFailureTotal             = "cron_job_failure_total"
	DrawingExecutionDurationSeconds = "drawing_execution_duration_seconds"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		PointsAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PointsAwardedTotal,
			Help: "Sum of points credited to users",
		}, []string{"type"}),
		TicketsPurchasedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: TicketsPurchasedTotal,
			Help: "Count of tickets sold",
		}, []string{"drawing_type"}),
		DrawingsExecutedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DrawingsExecutedTotal,
			Help: "Count of completed drawings",
		}, []string{"drawing_type"}),
		CronJobFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CronJobFailureTotal,
			Help: "Count of failed or panicking cron job ticks",
		}, []string{"job"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		DrawingExecutionDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: DrawingExecutionDurationSeconds,
			Help: "Duration of drawing executions",
		}, []string{"drawing_type"}),
	}
)
