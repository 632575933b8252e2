package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/workout-api/internal/model"
)

func TestAthleteWhere(t *testing.T) {
	tests := []struct {
		name   string
		filter model.AthleteFilter
		where  string
		args   []any
	}{
		{
			name:   "no filters",
			filter: model.AthleteFilter{},
			where:  "",
			args:   nil,
		},
		{
			name:   "name only",
			filter: model.AthleteFilter{Nome: "Ana"},
			where:  " WHERE a.nome = $1",
			args:   []any{"Ana"},
		},
		{
			name:   "cpf only",
			filter: model.AthleteFilter{CPF: "111"},
			where:  " WHERE a.cpf = $1",
			args:   []any{"111"},
		},
		{
			name:   "both filters are combined",
			filter: model.AthleteFilter{Nome: "Ana", CPF: "111"},
			where:  " WHERE a.nome = $1 AND a.cpf = $2",
			args:   []any{"Ana", "111"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := athleteWhere(tt.filter)
			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestNotFoundWrapsErrNotFound(t *testing.T) {
	err := NotFound(TableAthletes)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "table:athletes:")
}
