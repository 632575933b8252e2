// Package repository holds the SQL of the API.
//
// Every method takes a database.Querier, so the caller decides whether it
// runs on the pool or inside a transaction. Lookups that match no row
// return an error wrapping ErrNotFound.
package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound reports a lookup that matched no row.
var ErrNotFound = pgx.ErrNoRows

// Table names, also used to tag not-found errors.
const (
	TableAthletes        = "athletes"
	TableCategories      = "categories"
	TableTrainingCenters = "training_centers"
)

// NotFound tags ErrNotFound with the table it was raised for.
func NotFound(table string) error {
	return fmt.Errorf("table:%s: %w", table, ErrNotFound)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Athletes        *AthleteRepository
	Categories      *CategoryRepository
	TrainingCenters *TrainingCenterRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Athletes:        NewAthleteRepository(),
		Categories:      NewCategoryRepository(),
		TrainingCenters: NewTrainingCenterRepository(),
	}
}
