package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
)

type AthleteHandler struct {
	Handler
	athletes *service.AthleteService
}

func NewAthleteHandler(s *server.Server, athletes *service.AthleteService) *AthleteHandler {
	return &AthleteHandler{
		Handler:  NewHandler(s),
		athletes: athletes,
	}
}

func (h *AthleteHandler) CreateAthlete(c echo.Context, req *model.CreateAthleteRequest) (*model.Athlete, error) {
	return h.athletes.Create(c.Request().Context(), req)
}

func (h *AthleteHandler) ListAthletes(c echo.Context, req *model.ListAthletesRequest) (model.Page[model.AthleteSummary], error) {
	return h.athletes.List(c.Request().Context(), req)
}

func (h *AthleteHandler) GetAthlete(c echo.Context, req *model.AthleteIDRequest) (*model.Athlete, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.athletes.Get(c.Request().Context(), id)
}

func (h *AthleteHandler) UpdateAthlete(c echo.Context, req *model.UpdateAthleteRequest) (*model.Athlete, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	return h.athletes.Update(c.Request().Context(), id, req.AthletePatch)
}

func (h *AthleteHandler) DeleteAthlete(c echo.Context, req *model.AthleteIDRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}
	return h.athletes.Delete(c.Request().Context(), id)
}

// parseID converts a validated path id.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("Invalid id", true, nil, []errs.FieldError{
			{Field: "id", Error: "must be a valid UUID"},
		}, nil)
	}
	return id, nil
}
