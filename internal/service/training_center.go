package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/sqlerr"
)

type TrainingCenterService struct {
	db              Transactor
	trainingCenters TrainingCenterStore
}

func NewTrainingCenterService(db Transactor, trainingCenters TrainingCenterStore) *TrainingCenterService {
	return &TrainingCenterService{
		db:              db,
		trainingCenters: trainingCenters,
	}
}

func (s *TrainingCenterService) Create(ctx context.Context, req *model.CreateTrainingCenterRequest) (*model.TrainingCenter, error) {
	trainingCenter := &model.TrainingCenter{
		ID:           uuid.New(),
		Nome:         req.Nome,
		Endereco:     req.Endereco,
		Proprietario: req.Proprietario,
	}

	err := s.db.WithTx(ctx, func(q database.Querier) error {
		if err := s.trainingCenters.Create(ctx, q, trainingCenter); err != nil {
			return mapWriteError(err, sqlerr.ConstraintTable{
				{
					Code:       sqlerr.UniqueViolation,
					Constraint: constraintTrainingCenterName,
					Column:     "nome",
					Err: func(*sqlerr.Error) error {
						code := errs.CodeTrainingCenterAlreadyExists
						return errs.NewConflictError(
							fmt.Sprintf("A training center named %s already exists", req.Nome), true, &code)
					},
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return trainingCenter, nil
}

func (s *TrainingCenterService) List(ctx context.Context, req *model.ListTrainingCentersRequest) (model.Page[model.TrainingCenter], error) {
	items, total, err := s.trainingCenters.List(ctx, s.db.Conn(), req.PageParams)
	if err != nil {
		return model.Page[model.TrainingCenter]{}, err
	}
	return model.NewPage(items, total, req.PageParams), nil
}

func (s *TrainingCenterService) Get(ctx context.Context, id uuid.UUID) (*model.TrainingCenter, error) {
	trainingCenter, err := s.trainingCenters.GetByID(ctx, s.db.Conn(), id)
	if isNotFound(err) {
		return nil, errs.NewResourceNotFoundError(errs.CodeTrainingCenterNotFound,
			fmt.Sprintf("Training center not found for id %s", id))
	}
	if err != nil {
		return nil, err
	}
	return trainingCenter, nil
}
