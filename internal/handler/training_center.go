package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
)

type TrainingCenterHandler struct {
	Handler
	trainingCenters *service.TrainingCenterService
}

func NewTrainingCenterHandler(s *server.Server, trainingCenters *service.TrainingCenterService) *TrainingCenterHandler {
	return &TrainingCenterHandler{
		Handler:         NewHandler(s),
		trainingCenters: trainingCenters,
	}
}

func (h *TrainingCenterHandler) CreateTrainingCenter(c echo.Context, req *model.CreateTrainingCenterRequest) (*model.TrainingCenter, error) {
	return h.trainingCenters.Create(c.Request().Context(), req)
}

func (h *TrainingCenterHandler) ListTrainingCenters(c echo.Context, req *model.ListTrainingCentersRequest) (model.Page[model.TrainingCenter], error) {
	return h.trainingCenters.List(c.Request().Context(), req)
}

func (h *TrainingCenterHandler) GetTrainingCenter(c echo.Context, req *model.TrainingCenterIDRequest) (*model.TrainingCenter, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.trainingCenters.Get(c.Request().Context(), id)
}
