package model

import (
	"github.com/google/uuid"

	"github.com/deppfellow/workout-api/internal/validation"
)

// TrainingCenter is the gym an athlete trains at.
type TrainingCenter struct {
	PkID         int       `json:"-"`
	ID           uuid.UUID `json:"id"`
	Nome         string    `json:"nome"`
	Endereco     string    `json:"endereco"`
	Proprietario string    `json:"proprietario"`
}

// TrainingCenterRef names a training center inside an athlete record.
type TrainingCenterRef struct {
	Nome string `json:"nome" validate:"required,max=20"`
}

type CreateTrainingCenterRequest struct {
	Nome         string `json:"nome" validate:"required,max=20"`
	Endereco     string `json:"endereco" validate:"required,max=60"`
	Proprietario string `json:"proprietario" validate:"required,max=30"`
}

func (r *CreateTrainingCenterRequest) Validate() error {
	return validation.Struct(r)
}

type ListTrainingCentersRequest struct {
	PageParams
}

func (r *ListTrainingCentersRequest) Validate() error {
	return validation.Struct(r)
}

type TrainingCenterIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *TrainingCenterIDRequest) Validate() error {
	return validation.Struct(r)
}
