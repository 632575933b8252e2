package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/model"
)

// Mutating routes take the guard middleware; reads are public.

func registerAthleteRoutes(v1 *echo.Group, h *handler.Handlers, guard []echo.MiddlewareFunc) {
	ah := h.Athletes
	g := v1.Group("/atletas")

	g.POST("", handler.Handle(ah.Handler, ah.CreateAthlete, http.StatusCreated, &model.CreateAthleteRequest{}), guard...)
	g.GET("", handler.Handle(ah.Handler, ah.ListAthletes, http.StatusOK, &model.ListAthletesRequest{}))
	g.GET("/:id", handler.Handle(ah.Handler, ah.GetAthlete, http.StatusOK, &model.AthleteIDRequest{}))
	g.PATCH("/:id", handler.Handle(ah.Handler, ah.UpdateAthlete, http.StatusOK, &model.UpdateAthleteRequest{}), guard...)
	g.DELETE("/:id", handler.HandleNoContent(ah.Handler, ah.DeleteAthlete, http.StatusNoContent, &model.AthleteIDRequest{}), guard...)
}

func registerCategoryRoutes(v1 *echo.Group, h *handler.Handlers, guard []echo.MiddlewareFunc) {
	ch := h.Categories
	g := v1.Group("/categorias")

	g.POST("", handler.Handle(ch.Handler, ch.CreateCategory, http.StatusCreated, &model.CreateCategoryRequest{}), guard...)
	g.GET("", handler.Handle(ch.Handler, ch.ListCategories, http.StatusOK, &model.ListCategoriesRequest{}))
	g.GET("/:id", handler.Handle(ch.Handler, ch.GetCategory, http.StatusOK, &model.CategoryIDRequest{}))
}

func registerTrainingCenterRoutes(v1 *echo.Group, h *handler.Handlers, guard []echo.MiddlewareFunc) {
	th := h.TrainingCenters
	g := v1.Group("/centros_treinamento")

	g.POST("", handler.Handle(th.Handler, th.CreateTrainingCenter, http.StatusCreated, &model.CreateTrainingCenterRequest{}), guard...)
	g.GET("", handler.Handle(th.Handler, th.ListTrainingCenters, http.StatusOK, &model.ListTrainingCentersRequest{}))
	g.GET("/:id", handler.Handle(th.Handler, th.GetTrainingCenter, http.StatusOK, &model.TrainingCenterIDRequest{}))
}
