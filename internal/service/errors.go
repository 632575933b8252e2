package service

import (
	"errors"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/sqlerr"
)

// Constraint names declared by the schema migrations.
const (
	constraintAthleteCPF         = "athletes_cpf_key"
	constraintCategoryName       = "categories_name_key"
	constraintTrainingCenterName = "training_centers_name_key"
)

// mapWriteError turns a failed write into a domain error: a violation
// listed in table, then any other integrity violation as a data integrity
// error. Everything else is returned as is.
func mapWriteError(err error, table sqlerr.ConstraintTable) error {
	if mapped, ok := table.Translate(err); ok {
		return mapped
	}
	if sqlerr.IsIntegrityViolation(err) {
		return errors.Join(errs.NewDataIntegrityError(), err)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
