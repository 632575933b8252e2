// Package router builds the echo instance: the middleware chain, the
// system routes and the versioned API routes.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/middleware"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
	"github.com/deppfellow/workout-api/internal/validation"
)

// APIPrefix is the mount point of the versioned resources.
const APIPrefix = "/api/v1"

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Binder = validation.DefaultBinder
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// "/api/v1/atletas/" and "/api/v1/atletas" are the same collection.
	router.Pre(echomw.RemoveTrailingSlash())

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group(APIPrefix)

	var guard []echo.MiddlewareFunc
	if services.Auth.Enabled() {
		guard = append(guard, middlewares.Auth.RequireAuth)
	}

	registerAthleteRoutes(v1, h, guard)
	registerCategoryRoutes(v1, h, guard)
	registerTrainingCenterRoutes(v1, h, guard)

	return router
}
