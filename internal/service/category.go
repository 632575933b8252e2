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

type CategoryService struct {
	db         Transactor
	categories CategoryStore
}

func NewCategoryService(db Transactor, categories CategoryStore) *CategoryService {
	return &CategoryService{
		db:         db,
		categories: categories,
	}
}

func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:   uuid.New(),
		Nome: req.Nome,
	}

	err := s.db.WithTx(ctx, func(q database.Querier) error {
		if err := s.categories.Create(ctx, q, category); err != nil {
			return mapWriteError(err, sqlerr.ConstraintTable{
				{
					Code:       sqlerr.UniqueViolation,
					Constraint: constraintCategoryName,
					Column:     "nome",
					Err: func(*sqlerr.Error) error {
						code := errs.CodeCategoryAlreadyExists
						return errs.NewConflictError(
							fmt.Sprintf("A category named %s already exists", req.Nome), true, &code)
					},
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) List(ctx context.Context, req *model.ListCategoriesRequest) (model.Page[model.Category], error) {
	items, total, err := s.categories.List(ctx, s.db.Conn(), req.PageParams)
	if err != nil {
		return model.Page[model.Category]{}, err
	}
	return model.NewPage(items, total, req.PageParams), nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, s.db.Conn(), id)
	if isNotFound(err) {
		return nil, errs.NewResourceNotFoundError(errs.CodeCategoryNotFound,
			fmt.Sprintf("Category not found for id %s", id))
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}
