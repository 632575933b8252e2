package health

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Monitor runs a Checker on a fixed interval and logs state changes.
type Monitor struct {
	checker *Checker
	cron    *cron.Cron
	logger  *zerolog.Logger

	healthy bool
}

func NewMonitor(checker *Checker, interval time.Duration, logger *zerolog.Logger) *Monitor {
	m := &Monitor{
		checker: checker,
		logger:  logger,
		healthy: true,
	}

	cronLogger := cron.PrintfLogger(logger)
	m.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))
	m.cron.Schedule(cron.Every(interval), cron.FuncJob(m.run))

	return m
}

// Start schedules the checks in the background.
func (m *Monitor) Start() {
	m.logger.Info().Msg("starting health monitor")
	m.cron.Start()
}

// Stop waits for a running check to finish, or for ctx to end.
func (m *Monitor) Stop(ctx context.Context) {
	m.logger.Info().Msg("stopping health monitor")
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// run is only ever called by one goroutine at a time (SkipIfStillRunning).
func (m *Monitor) run() {
	report := m.checker.Run(context.Background())

	switch healthy := report.Healthy(); {
	case healthy && !m.healthy:
		m.logger.Info().Msg("dependencies recovered")
	case !healthy && m.healthy:
		m.logger.Warn().Interface("checks", report.Checks).Msg("dependencies degraded")
	}
	m.healthy = report.Healthy()
}
