// Package model holds the persisted entities of the API and the request
// records bound from HTTP input.
package model

import "github.com/shopspring/decimal"

func init() {
	// Weight and height are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}
