package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/workout-api/internal/logger"
	"github.com/deppfellow/workout-api/internal/server"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	LoggerKey   = "logger"
)

// ContextEnhancer gives every request its own logger. The logger lives on
// the echo context and on the request context, where services read it
// with zerolog.Ctx.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext runs after routing, so the route template and the :id
// path parameter are already known.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fields := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("route", c.Path()).
				Str("ip", c.RealIP())
			if id := c.Param("id"); id != "" {
				fields = fields.Str("resource_id", id)
			}
			requestLogger := fields.Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				requestLogger = logger.WithTraceContext(requestLogger, txn)
			}

			setLogger(c, requestLogger)
			return next(c)
		}
	}
}

// setUser records the authenticated caller and adds it to the request
// logger. Route-level guards call it, after EnhanceContext has run.
func setUser(c echo.Context, userID, role string) {
	c.Set(UserIDKey, userID)
	c.Set(UserRoleKey, role)

	fields := GetLogger(c).With().Str("user_id", userID)
	if role != "" {
		fields = fields.Str("user_role", role)
	}
	setLogger(c, fields.Logger())

	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("user.id", userID)
	}
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// GetUserID returns the Clerk subject set by RequireAuth, if any.
func GetUserID(c echo.Context) string {
	userID, _ := c.Get(UserIDKey).(string)
	return userID
}

// GetLogger returns the request logger, or a no-op logger when
// EnhanceContext has not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
