package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/sqlerr"
)

// AthletesPath is where the athlete collection is mounted. Duplicate CPF
// redirects point into it.
const AthletesPath = "/api/v1/atletas"

type AthleteService struct {
	db              Transactor
	athletes        AthleteStore
	categories      CategoryStore
	trainingCenters TrainingCenterStore
	events          EventPublisher

	// legacyDuplicateStatus answers a duplicate CPF with 303 See Other.
	legacyDuplicateStatus bool

	now func() time.Time
}

// AthleteServiceOption configures an AthleteService.
type AthleteServiceOption func(*AthleteService)

// WithEventPublisher publishes athlete:registered after every create.
func WithEventPublisher(p EventPublisher) AthleteServiceOption {
	return func(s *AthleteService) { s.events = p }
}

// WithLegacyDuplicateStatus switches duplicate CPF answers to 303.
func WithLegacyDuplicateStatus(enabled bool) AthleteServiceOption {
	return func(s *AthleteService) { s.legacyDuplicateStatus = enabled }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AthleteServiceOption {
	return func(s *AthleteService) { s.now = now }
}

func NewAthleteService(db Transactor, athletes AthleteStore, categories CategoryStore, trainingCenters TrainingCenterStore, opts ...AthleteServiceOption) *AthleteService {
	s := &AthleteService{
		db:              db,
		athletes:        athletes,
		categories:      categories,
		trainingCenters: trainingCenters,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers an athlete in the category and training center named
// by the request.
//
// The returned record is the one that was built and inserted; it is not
// read back.
func (s *AthleteService) Create(ctx context.Context, req *model.CreateAthleteRequest) (*model.Athlete, error) {
	var athlete *model.Athlete

	err := s.db.WithTx(ctx, func(q database.Querier) error {
		category, err := s.categories.GetByName(ctx, q, req.Categoria.Nome)
		if isNotFound(err) {
			return errs.NewReferenceNotFoundError(errs.CodeCategoryNotFound,
				fmt.Sprintf("Category %s was not found", req.Categoria.Nome))
		}
		if err != nil {
			return err
		}

		trainingCenter, err := s.trainingCenters.GetByName(ctx, q, req.CentroTreinamento.Nome)
		if isNotFound(err) {
			return errs.NewReferenceNotFoundError(errs.CodeTrainingCenterNotFound,
				fmt.Sprintf("Training center %s was not found", req.CentroTreinamento.Nome))
		}
		if err != nil {
			return err
		}

		a := &model.Athlete{
			ID:                uuid.New(),
			Nome:              req.Nome,
			CPF:               req.CPF,
			Idade:             req.Idade,
			Peso:              req.Peso,
			Altura:            req.Altura,
			Sexo:              req.Sexo,
			CreatedAt:         s.now().UTC().Truncate(time.Microsecond),
			CategoryID:        category.PkID,
			TrainingCenterID:  trainingCenter.PkID,
			Categoria:         model.CategoryRef{Nome: category.Nome},
			CentroTreinamento: model.TrainingCenterRef{Nome: trainingCenter.Nome},
		}

		if err := s.athletes.Create(ctx, q, a); err != nil {
			return mapWriteError(err, s.athleteConstraints(req.CPF))
		}

		athlete = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishRegistered(ctx, athlete)

	return athlete, nil
}

// publishRegistered is best effort: the athlete is already committed.
func (s *AthleteService) publishRegistered(ctx context.Context, athlete *model.Athlete) {
	if s.events == nil {
		return
	}

	if err := s.events.PublishAthleteRegistered(ctx, athlete); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("athlete_id", athlete.ID.String()).
			Msg("failed to publish athlete registered event")
	}
}

// List returns a page of athlete summaries matching the request filters.
func (s *AthleteService) List(ctx context.Context, req *model.ListAthletesRequest) (model.Page[model.AthleteSummary], error) {
	athletes, total, err := s.athletes.List(ctx, s.db.Conn(), req.Filter(), req.PageParams)
	if err != nil {
		return model.Page[model.AthleteSummary]{}, err
	}

	items := make([]model.AthleteSummary, 0, len(athletes))
	for i := range athletes {
		items = append(items, athletes[i].Summary())
	}

	return model.NewPage(items, total, req.PageParams), nil
}

func (s *AthleteService) Get(ctx context.Context, id uuid.UUID) (*model.Athlete, error) {
	athlete, err := s.athletes.GetByID(ctx, s.db.Conn(), id)
	if isNotFound(err) {
		return nil, athleteNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return athlete, nil
}

// Update applies the supplied fields of patch and returns the stored
// record. An empty patch returns the record unchanged.
func (s *AthleteService) Update(ctx context.Context, id uuid.UUID, patch model.AthletePatch) (*model.Athlete, error) {
	var updated *model.Athlete

	err := s.db.WithTx(ctx, func(q database.Querier) error {
		current, err := s.athletes.GetByIDForUpdate(ctx, q, id)
		if isNotFound(err) {
			return athleteNotFound(id)
		}
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			updated = current
			return nil
		}

		patch.Apply(current)

		if err := s.athletes.Update(ctx, q, current); err != nil {
			if isNotFound(err) {
				return athleteNotFound(id)
			}
			return mapWriteError(err, s.athleteConstraints(current.CPF))
		}

		updated, err = s.athletes.GetByID(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the athlete permanently.
func (s *AthleteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithTx(ctx, func(q database.Querier) error {
		err := s.athletes.Delete(ctx, q, id)
		if isNotFound(err) {
			return athleteNotFound(id)
		}
		return err
	})
}

func (s *AthleteService) athleteConstraints(cpf string) sqlerr.ConstraintTable {
	return sqlerr.ConstraintTable{
		{
			Code:       sqlerr.UniqueViolation,
			Constraint: constraintAthleteCPF,
			Column:     "cpf",
			Err: func(*sqlerr.Error) error {
				return errs.NewDuplicateIdentifierError(
					errs.CodeAthleteAlreadyExists,
					fmt.Sprintf("An athlete with CPF %s already exists", cpf),
					s.legacyDuplicateStatus,
					AthletesPath+"?cpf="+url.QueryEscape(cpf),
				)
			},
		},
	}
}

func athleteNotFound(id uuid.UUID) error {
	return errs.NewResourceNotFoundError(errs.CodeAthleteNotFound,
		fmt.Sprintf("Athlete not found for id %s", id))
}
