package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func TestCheckerRun(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("all checks pass", func(t *testing.T) {
		c := NewChecker("local", time.Second, &logger, nil,
			Check{Name: "database", Required: true, Pinger: PingerFunc(ok)},
			Check{Name: "redis", Pinger: PingerFunc(ok)},
		)

		report := c.Run(context.Background())
		assert.True(t, report.Healthy())
		assert.Equal(t, "local", report.Environment)
		require.Len(t, report.Checks, 2)
		assert.Equal(t, StatusHealthy, report.Checks["database"].Status)
	})

	t.Run("optional failure keeps the report healthy", func(t *testing.T) {
		c := NewChecker("local", time.Second, &logger, nil,
			Check{Name: "database", Required: true, Pinger: PingerFunc(ok)},
			Check{Name: "redis", Pinger: PingerFunc(failing)},
		)

		report := c.Run(context.Background())
		assert.True(t, report.Healthy())
		assert.Equal(t, StatusUnhealthy, report.Checks["redis"].Status)
		assert.Equal(t, "connection refused", report.Checks["redis"].Error)
	})

	t.Run("required failure makes the report unhealthy", func(t *testing.T) {
		c := NewChecker("local", time.Second, &logger, nil,
			Check{Name: "database", Required: true, Pinger: PingerFunc(failing)},
		)

		assert.False(t, c.Run(context.Background()).Healthy())
	})

	t.Run("checks are bounded by the timeout", func(t *testing.T) {
		slow := PingerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		c := NewChecker("local", 10*time.Millisecond, &logger, nil,
			Check{Name: "database", Required: true, Pinger: slow},
		)

		report := c.Run(context.Background())
		assert.False(t, report.Healthy())
		assert.Contains(t, report.Checks["database"].Error, "deadline exceeded")
	})
}

func TestMonitorTracksTransitions(t *testing.T) {
	logger := zerolog.Nop()
	healthy := true
	c := NewChecker("local", time.Second, &logger, nil,
		Check{Name: "database", Required: true, Pinger: PingerFunc(func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("down")
		})},
	)
	m := NewMonitor(c, time.Hour, &logger)

	m.run()
	assert.True(t, m.healthy)

	healthy = false
	m.run()
	assert.False(t, m.healthy)

	healthy = true
	m.run()
	assert.True(t, m.healthy)
}
