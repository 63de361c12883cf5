package calculator

import (
	"fmt"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// Recommendation is the advice shown next to a comparison.
type Recommendation struct {
	Path    domain.Path `json:"path"`
	Title   string      `json:"title"`
	Detail  string      `json:"detail"`
	Savings string      `json:"savings"`
}

// Recommend describes the winning path of c in the terms of profile p.
func Recommend(c domain.Comparison, p domain.Profile) Recommendation {
	savings := domain.FormatAmount(c.Savings, 2) + " " + p.Currency

	r := Recommendation{Path: c.Winner, Savings: savings}
	switch c.Winner {
	case domain.PathCash:
		r.Title = "Withdraw cash"
		r.Detail = fmt.Sprintf("Exchange at %s. It is better by %s.", p.StreetExchange, savings)
	case domain.PathTransfer:
		r.Title = "Transfer via the cross-currency route"
		r.Detail = fmt.Sprintf("Convert through USD. You save %s.", savings)
	default:
		r.Title = "Pay directly by card"
		r.Detail = "Direct payment comes out ahead. Check the rates."
	}
	return r
}
