// Package handler is the HTTP layer. Each handler binds and validates a
// typed request through the Handle pipeline and delegates to a service.
package handler

import (
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
)

type Handlers struct {
	Health          *HealthHandler
	OpenAPI         *OpenAPIHandler
	Athletes        *AthleteHandler
	Categories      *CategoryHandler
	TrainingCenters *TrainingCenterHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:          NewHealthHandler(s),
		OpenAPI:         NewOpenAPIHandler(s),
		Athletes:        NewAthleteHandler(s, services.Athletes),
		Categories:      NewCategoryHandler(s, services.Categories),
		TrainingCenters: NewTrainingCenterHandler(s, services.TrainingCenters),
	}
}
