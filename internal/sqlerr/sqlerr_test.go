package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/workout-api/internal/errs"
)

var errDuplicate = errors.New("duplicate")

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestAsErrorUnwrapsDriverError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "athletes_cpf_key", TableName: "athletes"}
	err := fmt.Errorf("insert athlete: %w", pgErr)

	sqlErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, "athletes_cpf_key", sqlErr.ConstraintName)
	assert.True(t, sqlErr.IsIntegrityViolation())
	assert.ErrorIs(t, sqlErr, pgErr)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestConstraintTableTranslate(t *testing.T) {
	table := ConstraintTable{
		{
			Code:       UniqueViolation,
			Constraint: "athletes_cpf_key",
			Column:     "cpf",
			Err:        func(*Error) error { return errDuplicate },
		},
	}

	tests := []struct {
		name    string
		err     error
		matched bool
	}{
		{
			name:    "named constraint",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "athletes_cpf_key"},
			matched: true,
		},
		{
			name:    "other named constraint",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "athletes_id_key", Message: "cpf mentioned"},
			matched: false,
		},
		{
			name:    "unnamed constraint falls back to column token",
			err:     &pgconn.PgError{Code: "23505", Detail: "Key (cpf)=(111) already exists."},
			matched: true,
		},
		{
			name:    "wrong violation kind",
			err:     &pgconn.PgError{Code: "23502", ConstraintName: "athletes_cpf_key"},
			matched: false,
		},
		{
			name:    "not a database error",
			err:     errors.New("boom"),
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped, ok := table.Translate(tt.err)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.ErrorIs(t, mapped, errDuplicate)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("http errors pass through", func(t *testing.T) {
		in := errs.NewResourceNotFoundError(errs.CodeAthleteNotFound, "missing")
		assert.Same(t, in, HandleError(in))
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23505", TableName: "categories", ConstraintName: "categories_nome_key"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "CATEGORY_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Category with this Nome already exists", httpErr.Message)
	})

	t.Run("foreign key violation names the reference", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23503", TableName: "athletes", ColumnName: "training_center_id"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "The referenced Training Center does not exist", httpErr.Message)
	})

	t.Run("not null violation carries a field error", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23502", TableName: "athletes", ColumnName: "sexo"})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "sexo", httpErr.Errors[0].Field)
	})

	t.Run("other integrity violation", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{Code: "23P01"})
		assert.ErrorIs(t, err, &errs.HTTPError{Code: errs.CodeDataIntegrity})
	})

	t.Run("no rows with table hint", func(t *testing.T) {
		err := HandleError(fmt.Errorf("table:athletes: %w", pgx.ErrNoRows))

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Athlete not found", httpErr.Message)
	})

	t.Run("no rows names every table", func(t *testing.T) {
		for table, want := range map[string]string{
			"categories":       "Category not found",
			"training_centers": "Training Center not found",
		} {
			err := HandleError(fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows))

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, want, httpErr.Message, table)
		}
	})

	t.Run("unknown errors are hidden", func(t *testing.T) {
		err := HandleError(errors.New("connection reset"))
		assert.ErrorIs(t, err, &errs.HTTPError{Code: "INTERNAL_SERVER_ERROR"})
	})
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table string
		code  Code
		want  string
	}{
		{"athletes", UniqueViolation, "ATHLETE_ALREADY_EXISTS"},
		{"categories", UniqueViolation, "CATEGORY_ALREADY_EXISTS"},
		{"training_centers", ForeignKeyViolation, "TRAINING_CENTER_NOT_FOUND"},
		{"categories", CheckViolation, "CATEGORY_INVALID"},
		{"", NotNullViolation, "RECORD_REQUIRED"},
		{"athletes", Other, "ATHLETE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, generateErrorCode(tt.table, tt.code))
		})
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "cpf", extractColumnForUniqueViolation("athletes_cpf_key"))
	assert.Equal(t, "cpf", extractColumnForUniqueViolation("unique_athletes_cpf"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
}
