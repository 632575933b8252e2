package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/workout-api/internal/middleware"
	"github.com/deppfellow/workout-api/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth runs the configured dependency checks. It answers 200 when
// every required check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := h.server.Health.Run(c.Request().Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
	}

	if err := c.JSON(status, report); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
