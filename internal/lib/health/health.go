// Package health probes the dependencies of the API.
//
// A Checker runs every configured probe concurrently and produces a
// Report. The status endpoint serves that report; a Monitor runs the same
// checker on a cron schedule and logs degradations.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Pinger is a dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Check is one named probe. A failing Required check makes the whole
// report unhealthy; other failures are only reported.
type Check struct {
	Name     string
	Required bool
	Pinger   Pinger
}

// Result is the outcome of one check.
type Result struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// Report is the outcome of a full run.
type Report struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment string            `json:"environment"`
	Checks      map[string]Result `json:"checks"`
}

// Healthy reports whether every required check passed.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type Checker struct {
	checks      []Check
	timeout     time.Duration
	environment string
	logger      *zerolog.Logger
	nrApp       *newrelic.Application
}

// NewChecker builds a Checker. nrApp may be nil.
func NewChecker(environment string, timeout time.Duration, logger *zerolog.Logger, nrApp *newrelic.Application, checks ...Check) *Checker {
	return &Checker{
		checks:      checks,
		timeout:     timeout,
		environment: environment,
		logger:      logger,
		nrApp:       nrApp,
	}
}

// Run probes every check concurrently, each bounded by the checker timeout.
func (c *Checker) Run(ctx context.Context) Report {
	report := Report{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: c.environment,
		Checks:      make(map[string]Result, len(c.checks)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, check := range c.checks {
		g.Go(func() error {
			result := c.probe(gctx, check)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[check.Name] = result
			if result.Status != StatusHealthy && check.Required {
				report.Status = StatusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func (c *Checker) probe(ctx context.Context, check Check) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := check.Pinger.Ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("check", check.Name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		if c.nrApp != nil {
			c.nrApp.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       check.Name,
				"operation":        "health_check",
				"error_type":       check.Name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return Result{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	c.logger.Debug().
		Str("check", check.Name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return Result{
		Status:       StatusHealthy,
		ResponseTime: elapsed.String(),
	}
}
