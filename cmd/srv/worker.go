package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/fittrack/internal/domain/cron"
	"github.com/questx-lab/fittrack/pkg/prometheus"
	"github.com/questx-lab/fittrack/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startWorker(*cli.Context) error {
	if err := s.loadAll(); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)
	leaderboardJob, err := cron.NewLeaderboardRefreshCronJob(s.leaderboard, cfg.Leaderboard.Schedule)
	if err != nil {
		return err
	}

	drawingJob, err := cron.NewDrawingLifecycleCronJob(s.drawingDomain, cfg.Drawing.LifecycleSchedule)
	if err != nil {
		return err
	}

	fulfillmentJob, err := cron.NewFulfillmentTimeoutCronJob(s.fulfillmentDomain, cfg.Fulfillment.Schedule)
	if err != nil {
		return err
	}

	metricsServer := s.startMetricsServer()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot shutdown metrics server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cron.NewCronJobManager().Start(ctx, leaderboardJob, drawingJob, fulfillmentJob)
	return nil
}

func (s *srv) startMetricsServer() *http.Server {
	server := prometheus.NewServer(xcontext.Configs(s.ctx).Metrics.Addr)

	go func() {
		xcontext.Logger(s.ctx).Infof("Serving metrics on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xcontext.Logger(s.ctx).Errorf("Metrics server stopped: %v", err)
		}
	}()

	return server
}
