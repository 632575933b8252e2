// Package testsupport provides an in-memory stand-in for the PostgreSQL
// repositories, for service and handler tests.
package testsupport

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
)

// Store keeps the three tables in memory.
//
// WithTx serializes transactions and restores a snapshot when the
// callback fails. Reads outside a transaction may observe uncommitted
// writes; the tests using it never depend on isolation.
type Store struct {
	txMu sync.Mutex

	mu              sync.RWMutex
	athletes        []model.Athlete
	categories      []model.Category
	trainingCenters []model.TrainingCenter
	nextPK          int

	// athleteInsertErr, when set, fails the next athlete insert.
	athleteInsertErr error
}

func NewStore() *Store {
	return &Store{nextPK: 1}
}

// Conn returns a nil Querier; the in-memory repositories ignore it.
func (s *Store) Conn() database.Querier {
	return nil
}

func (s *Store) WithTx(ctx context.Context, fn func(q database.Querier) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(nil)
}

type state struct {
	athletes        []model.Athlete
	categories      []model.Category
	trainingCenters []model.TrainingCenter
	nextPK          int
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return state{
		athletes:        slices.Clone(s.athletes),
		categories:      slices.Clone(s.categories),
		trainingCenters: slices.Clone(s.trainingCenters),
		nextPK:          s.nextPK,
	}
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.athletes = st.athletes
	s.categories = st.categories
	s.trainingCenters = st.trainingCenters
	s.nextPK = st.nextPK
}

// FailNextAthleteInsert makes the next athlete insert return err.
func (s *Store) FailNextAthleteInsert(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.athleteInsertErr = err
}

// AthleteCount returns the number of stored athletes.
func (s *Store) AthleteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.athletes)
}

// SeedCategory stores a category named nome.
func (s *Store) SeedCategory(nome string) model.Category {
	c := model.Category{ID: uuid.New(), Nome: nome}
	if err := s.Categories().Create(context.Background(), nil, &c); err != nil {
		panic(err)
	}
	return c
}

// SeedTrainingCenter stores a training center named nome.
func (s *Store) SeedTrainingCenter(nome string) model.TrainingCenter {
	tc := model.TrainingCenter{ID: uuid.New(), Nome: nome, Endereco: "Rua A, 1", Proprietario: "Owner"}
	if err := s.TrainingCenters().Create(context.Background(), nil, &tc); err != nil {
		panic(err)
	}
	return tc
}

func (s *Store) Athletes() *AthleteRepo               { return &AthleteRepo{s: s} }
func (s *Store) Categories() *CategoryRepo            { return &CategoryRepo{s: s} }
func (s *Store) TrainingCenters() *TrainingCenterRepo { return &TrainingCenterRepo{s: s} }

// uniqueViolation mimics the error PostgreSQL reports for constraint.
func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		TableName:      table,
		ConstraintName: constraint,
	}
}

func page[T any](items []T, params model.PageParams) []T {
	if params.Offset >= len(items) {
		return []T{}
	}
	end := min(params.Offset+params.Limit, len(items))
	return slices.Clone(items[params.Offset:end])
}

// ------------------------------------------------------------

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, _ database.Querier, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.categories {
		if existing.Nome == c.Nome {
			return uniqueViolation(repository.TableCategories, "categories_name_key")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.PkID = r.s.nextPK
	r.s.nextPK++
	r.s.categories = append(r.s.categories, *c)
	return nil
}

func (r *CategoryRepo) GetByName(_ context.Context, _ database.Querier, nome string) (*model.Category, error) {
	return r.find(func(c model.Category) bool { return c.Nome == nome })
}

func (r *CategoryRepo) GetByID(_ context.Context, _ database.Querier, id uuid.UUID) (*model.Category, error) {
	return r.find(func(c model.Category) bool { return c.ID == id })
}

func (r *CategoryRepo) find(match func(model.Category) bool) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if match(c) {
			return &c, nil
		}
	}
	return nil, repository.NotFound(repository.TableCategories)
}

func (r *CategoryRepo) List(_ context.Context, _ database.Querier, params model.PageParams) ([]model.Category, int64, error) {
	r.s.mu.RLock()
	all := slices.Clone(r.s.categories)
	r.s.mu.RUnlock()

	slices.SortFunc(all, func(a, b model.Category) int { return compareStrings(a.Nome, b.Nome) })
	return page(all, params), int64(len(all)), nil
}

// ------------------------------------------------------------

type TrainingCenterRepo struct{ s *Store }

func (r *TrainingCenterRepo) Create(_ context.Context, _ database.Querier, tc *model.TrainingCenter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.trainingCenters {
		if existing.Nome == tc.Nome {
			return uniqueViolation(repository.TableTrainingCenters, "training_centers_name_key")
		}
	}
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	tc.PkID = r.s.nextPK
	r.s.nextPK++
	r.s.trainingCenters = append(r.s.trainingCenters, *tc)
	return nil
}

func (r *TrainingCenterRepo) GetByName(_ context.Context, _ database.Querier, nome string) (*model.TrainingCenter, error) {
	return r.find(func(tc model.TrainingCenter) bool { return tc.Nome == nome })
}

func (r *TrainingCenterRepo) GetByID(_ context.Context, _ database.Querier, id uuid.UUID) (*model.TrainingCenter, error) {
	return r.find(func(tc model.TrainingCenter) bool { return tc.ID == id })
}

func (r *TrainingCenterRepo) find(match func(model.TrainingCenter) bool) (*model.TrainingCenter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, tc := range r.s.trainingCenters {
		if match(tc) {
			return &tc, nil
		}
	}
	return nil, repository.NotFound(repository.TableTrainingCenters)
}

func (r *TrainingCenterRepo) List(_ context.Context, _ database.Querier, params model.PageParams) ([]model.TrainingCenter, int64, error) {
	r.s.mu.RLock()
	all := slices.Clone(r.s.trainingCenters)
	r.s.mu.RUnlock()

	slices.SortFunc(all, func(a, b model.TrainingCenter) int { return compareStrings(a.Nome, b.Nome) })
	return page(all, params), int64(len(all)), nil
}

// ------------------------------------------------------------

type AthleteRepo struct{ s *Store }

func (r *AthleteRepo) Create(_ context.Context, _ database.Querier, a *model.Athlete) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.athleteInsertErr; err != nil {
		r.s.athleteInsertErr = nil
		return err
	}

	for _, existing := range r.s.athletes {
		if existing.CPF == a.CPF {
			return uniqueViolation(repository.TableAthletes, "athletes_cpf_key")
		}
		if existing.ID == a.ID {
			return uniqueViolation(repository.TableAthletes, "athletes_id_key")
		}
	}

	a.PkID = r.s.nextPK
	r.s.nextPK++
	r.s.athletes = append(r.s.athletes, *a)
	return nil
}

func (r *AthleteRepo) GetByID(_ context.Context, _ database.Querier, id uuid.UUID) (*model.Athlete, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.athleteIndex(id); i >= 0 {
		a := r.s.athletes[i]
		return &a, nil
	}
	return nil, repository.NotFound(repository.TableAthletes)
}

// GetByIDForUpdate needs no lock: WithTx already serializes writers.
func (r *AthleteRepo) GetByIDForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*model.Athlete, error) {
	return r.GetByID(ctx, q, id)
}

func (r *AthleteRepo) List(_ context.Context, _ database.Querier, filter model.AthleteFilter, params model.PageParams) ([]model.Athlete, int64, error) {
	r.s.mu.RLock()
	var matched []model.Athlete
	for _, a := range r.s.athletes {
		if filter.Nome != "" && a.Nome != filter.Nome {
			continue
		}
		if filter.CPF != "" && a.CPF != filter.CPF {
			continue
		}
		matched = append(matched, a)
	}
	r.s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b model.Athlete) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return page(matched, params), int64(len(matched)), nil
}

func (r *AthleteRepo) Update(_ context.Context, _ database.Querier, a *model.Athlete) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.athleteIndex(a.ID)
	if i < 0 {
		return repository.NotFound(repository.TableAthletes)
	}

	stored := &r.s.athletes[i]
	stored.Nome = a.Nome
	stored.Idade = a.Idade
	stored.Peso = a.Peso
	stored.Altura = a.Altura
	stored.Sexo = a.Sexo
	return nil
}

func (r *AthleteRepo) Delete(_ context.Context, _ database.Querier, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.athleteIndex(id)
	if i < 0 {
		return repository.NotFound(repository.TableAthletes)
	}
	r.s.athletes = slices.Delete(r.s.athletes, i, i+1)
	return nil
}

// athleteIndex must be called with mu held.
func (s *Store) athleteIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.athletes, func(a model.Athlete) bool { return a.ID == id })
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
