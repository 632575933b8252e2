package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model"
)

// Transactor hands out the pool for reads and scoped transactions for writes.
// *database.Database satisfies it.
type Transactor interface {
	Conn() database.Querier
	WithTx(ctx context.Context, fn func(q database.Querier) error) error
}

type AthleteStore interface {
	Create(ctx context.Context, q database.Querier, a *model.Athlete) error
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Athlete, error)
	GetByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Athlete, error)
	List(ctx context.Context, q database.Querier, filter model.AthleteFilter, params model.PageParams) ([]model.Athlete, int64, error)
	Update(ctx context.Context, q database.Querier, a *model.Athlete) error
	Delete(ctx context.Context, q database.Querier, id uuid.UUID) error
}

type CategoryStore interface {
	Create(ctx context.Context, q database.Querier, c *model.Category) error
	GetByName(ctx context.Context, q database.Querier, nome string) (*model.Category, error)
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context, q database.Querier, params model.PageParams) ([]model.Category, int64, error)
}

type TrainingCenterStore interface {
	Create(ctx context.Context, q database.Querier, tc *model.TrainingCenter) error
	GetByName(ctx context.Context, q database.Querier, nome string) (*model.TrainingCenter, error)
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*model.TrainingCenter, error)
	List(ctx context.Context, q database.Querier, params model.PageParams) ([]model.TrainingCenter, int64, error)
}

// EventPublisher announces domain events to background workers.
type EventPublisher interface {
	PublishAthleteRegistered(ctx context.Context, athlete *model.Athlete) error
}
