package testsupport

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
)

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(q database.Querier) error {
		require.NoError(t, s.Athletes().Create(ctx, q, &model.Athlete{ID: uuid.New(), CPF: "1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.AthleteCount())

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(q database.Querier) error {
			_ = s.Athletes().Create(ctx, q, &model.Athlete{ID: uuid.New(), CPF: "2"})
			panic("boom")
		})
	})
	assert.Zero(t, s.AthleteCount())
}

func TestUniqueViolations(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Athletes().Create(ctx, nil, &model.Athlete{ID: uuid.New(), CPF: "1"}))
	err := s.Athletes().Create(ctx, nil, &model.Athlete{ID: uuid.New(), CPF: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "athletes_cpf_key")

	s.SeedCategory("Scale")
	err = s.Categories().Create(ctx, nil, &model.Category{Nome: "Scale"})
	assert.Contains(t, err.Error(), "categories_name_key")
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Categories().GetByName(ctx, nil, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Athletes().Delete(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
