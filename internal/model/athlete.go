package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/workout-api/internal/validation"
)

// Athlete is a registered athlete. It is also the full output record.
type Athlete struct {
	PkID              int               `json:"-"`
	ID                uuid.UUID         `json:"id"`
	Nome              string            `json:"nome"`
	CPF               string            `json:"cpf"`
	Idade             int               `json:"idade"`
	Peso              decimal.Decimal   `json:"peso"`
	Altura            decimal.Decimal   `json:"altura"`
	Sexo              string            `json:"sexo"`
	CreatedAt         time.Time         `json:"created_at"`
	CategoryID        int               `json:"-"`
	TrainingCenterID  int               `json:"-"`
	Categoria         CategoryRef       `json:"categoria"`
	CentroTreinamento TrainingCenterRef `json:"centro_treinamento"`
}

// AthleteSummary is the listing projection of an athlete.
type AthleteSummary struct {
	ID                uuid.UUID         `json:"id"`
	Nome              string            `json:"nome"`
	Categoria         CategoryRef       `json:"categoria"`
	CentroTreinamento TrainingCenterRef `json:"centro_treinamento"`
}

// Summary projects a into its listing form.
func (a *Athlete) Summary() AthleteSummary {
	return AthleteSummary{
		ID:                a.ID,
		Nome:              a.Nome,
		Categoria:         a.Categoria,
		CentroTreinamento: a.CentroTreinamento,
	}
}

// AthleteFilter holds the equality filters of a listing. Empty fields do
// not filter.
type AthleteFilter struct {
	Nome string
	CPF  string
}

// AthletePatch is a partial update. Nil fields are left untouched.
//
// Bounds follow the athletes table: idade is an INTEGER, peso and altura
// are NUMERIC(10,3).
type AthletePatch struct {
	Nome   *string          `json:"nome" validate:"omitempty,max=50"`
	Idade  *int             `json:"idade" validate:"omitempty,gt=0,lte=2147483647"`
	Peso   *decimal.Decimal `json:"peso" validate:"omitempty,gt=0,lt=10000000,decimals=3"`
	Altura *decimal.Decimal `json:"altura" validate:"omitempty,gt=0,lt=10000000,decimals=3"`
	Sexo   *string          `json:"sexo" validate:"omitempty,oneof=M F"`
}

// IsEmpty reports whether the patch changes nothing.
func (p AthletePatch) IsEmpty() bool {
	return p.Nome == nil && p.Idade == nil && p.Peso == nil && p.Altura == nil && p.Sexo == nil
}

// Apply copies every supplied field onto a.
func (p AthletePatch) Apply(a *Athlete) {
	if p.Nome != nil {
		a.Nome = *p.Nome
	}
	if p.Idade != nil {
		a.Idade = *p.Idade
	}
	if p.Peso != nil {
		a.Peso = *p.Peso
	}
	if p.Altura != nil {
		a.Altura = *p.Altura
	}
	if p.Sexo != nil {
		a.Sexo = *p.Sexo
	}
}

type CreateAthleteRequest struct {
	Nome              string            `json:"nome" validate:"required,max=50"`
	CPF               string            `json:"cpf" validate:"required,max=11"`
	Idade             int               `json:"idade" validate:"required,gt=0,lte=2147483647"`
	Peso              decimal.Decimal   `json:"peso" validate:"gt=0,lt=10000000,decimals=3"`
	Altura            decimal.Decimal   `json:"altura" validate:"gt=0,lt=10000000,decimals=3"`
	Sexo              string            `json:"sexo" validate:"required,oneof=M F"`
	Categoria         CategoryRef       `json:"categoria" validate:"required"`
	CentroTreinamento TrainingCenterRef `json:"centro_treinamento" validate:"required"`
}

func (r *CreateAthleteRequest) Validate() error {
	return validation.Struct(r)
}

type ListAthletesRequest struct {
	PageParams
	Nome string `query:"nome" validate:"omitempty,max=50"`
	CPF  string `query:"cpf" validate:"omitempty,max=11"`
}

func (r *ListAthletesRequest) Validate() error {
	return validation.Struct(r)
}

// Filter returns the equality filters of the request.
func (r *ListAthletesRequest) Filter() AthleteFilter {
	return AthleteFilter{Nome: r.Nome, CPF: r.CPF}
}

type AthleteIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *AthleteIDRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateAthleteRequest struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
	AthletePatch
}

func (r *UpdateAthleteRequest) Validate() error {
	return validation.Struct(r)
}
