package model

import (
	"github.com/google/uuid"

	"github.com/deppfellow/workout-api/internal/validation"
)

// Category groups athletes, e.g. "Scale" or "RX".
type Category struct {
	PkID int       `json:"-"`
	ID   uuid.UUID `json:"id"`
	Nome string    `json:"nome"`
}

// CategoryRef names a category inside an athlete record.
type CategoryRef struct {
	Nome string `json:"nome" validate:"required,max=10"`
}

type CreateCategoryRequest struct {
	Nome string `json:"nome" validate:"required,max=10"`
}

func (r *CreateCategoryRequest) Validate() error {
	return validation.Struct(r)
}

type ListCategoriesRequest struct {
	PageParams
}

func (r *ListCategoriesRequest) Validate() error {
	return validation.Struct(r)
}

type CategoryIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *CategoryIDRequest) Validate() error {
	return validation.Struct(r)
}
