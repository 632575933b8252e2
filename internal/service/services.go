// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated requests, scopes transactions, calls the repositories and
// maps storage failures onto the domain error taxonomy.
package service

import (
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/server"
)

type Services struct {
	Auth            *AuthService
	Athletes        *AthleteService
	Categories      *CategoryService
	TrainingCenters *TrainingCenterService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	opts := []AthleteServiceOption{
		WithLegacyDuplicateStatus(s.Config.Server.LegacyDuplicateStatus),
	}
	if s.Job != nil {
		opts = append(opts, WithEventPublisher(s.Job))
	}

	return &Services{
		Auth:            NewAuthService(s),
		Athletes:        NewAthleteService(s.DB, repos.Athletes, repos.Categories, repos.TrainingCenters, opts...),
		Categories:      NewCategoryService(s.DB, repos.Categories),
		TrainingCenters: NewTrainingCenterService(s.DB, repos.TrainingCenters),
	}
}
