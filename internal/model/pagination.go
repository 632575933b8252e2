package model

import "github.com/deppfellow/workout-api/internal/validation"

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// PageParams are the limit/offset query parameters of a listing.
type PageParams struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// SetDefaults applies the default limit before binding.
func (p *PageParams) SetDefaults() {
	p.Limit = DefaultPageLimit
	p.Offset = 0
}

func (p *PageParams) Validate() error {
	return validation.Struct(p)
}

// Page is one slice of a listing. Total counts every record matching the
// listing's filters, not only the ones in Items.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewPage builds a Page. Items is never nil, so it encodes as [].
func NewPage[T any](items []T, total int64, params PageParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:  items,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
}
