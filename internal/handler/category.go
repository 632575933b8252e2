package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
)

type CategoryHandler struct {
	Handler
	categories *service.CategoryService
}

func NewCategoryHandler(s *server.Server, categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		Handler:    NewHandler(s),
		categories: categories,
	}
}

func (h *CategoryHandler) CreateCategory(c echo.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	return h.categories.Create(c.Request().Context(), req)
}

func (h *CategoryHandler) ListCategories(c echo.Context, req *model.ListCategoriesRequest) (model.Page[model.Category], error) {
	return h.categories.List(c.Request().Context(), req)
}

func (h *CategoryHandler) GetCategory(c echo.Context, req *model.CategoryIDRequest) (*model.Category, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.categories.Get(c.Request().Context(), id)
}
