package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Path is one way of turning EUR into local currency.
type Path string

const (
	PathDirect   Path = "direct"
	PathTransfer Path = "transfer"
	PathCash     Path = "cash"
)

// Paths lists every conversion path in declaration order. Ties in a comparison
// are resolved in favour of the earlier entry.
var Paths = []Path{PathDirect, PathTransfer, PathCash}

// Title returns a short human-readable name for the path.
func (p Path) Title() string {
	switch p {
	case PathDirect:
		return "Direct card payment"
	case PathTransfer:
		return "Cross-currency transfer"
	case PathCash:
		return "Cash (ATM + exchange)"
	default:
		return string(p)
	}
}

// Fees holds the fee inputs of the transfer and cash paths.
type Fees struct {
	TransferPct float64 `json:"transfer_fee_pct"`
	CashPct     float64 `json:"cash_fee_pct"`
	CashFixed   float64 `json:"cash_fee_fixed"`
}

// Inputs is everything one comparison needs.
type Inputs struct {
	Amount float64 `json:"last_amount"`
	Rates
	Fees
}

// PathResult is the outcome of a single conversion path.
type PathResult struct {
	Path         Path    `json:"path"`
	NetSpend     float64 `json:"netSpend"`               // EUR left after fees
	Intermediate float64 `json:"intermediate,omitempty"` // USD leg, transfer only
	Received     float64 `json:"received"`
	Loss         float64 `json:"loss"`
	LossPercent  float64 `json:"lossPercent"`
}

// Comparison is the ephemeral result of comparing all paths for one amount.
type Comparison struct {
	Amount    float64      `json:"amount"`
	Reference float64      `json:"reference"`
	Results   []PathResult `json:"results"`
	Winner    Path         `json:"winner"`
	Savings   float64      `json:"savings"`
}

// Result returns the outcome for the given path.
func (c Comparison) Result(p Path) (PathResult, bool) {
	for _, r := range c.Results {
		if r.Path == p {
			return r, true
		}
	}
	return PathResult{}, false
}

// Best returns the winning path's outcome.
func (c Comparison) Best() PathResult {
	r, _ := c.Result(c.Winner)
	return r
}

// jsonNumber writes infinities and NaN as quoted strings.
type jsonNumber float64

func (n jsonNumber) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.AppendQuote(nil, strconv.FormatFloat(v, 'f', -1, 64)), nil
	}
	return json.Marshal(v)
}

// MarshalJSON encodes the result; degenerate values come out as "+Inf", "-Inf" or "NaN".
func (r PathResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path         Path       `json:"path"`
		NetSpend     jsonNumber `json:"netSpend"`
		Intermediate jsonNumber `json:"intermediate,omitempty"`
		Received     jsonNumber `json:"received"`
		Loss         jsonNumber `json:"loss"`
		LossPercent  jsonNumber `json:"lossPercent"`
	}{
		Path:         r.Path,
		NetSpend:     jsonNumber(r.NetSpend),
		Intermediate: jsonNumber(r.Intermediate),
		Received:     jsonNumber(r.Received),
		Loss:         jsonNumber(r.Loss),
		LossPercent:  jsonNumber(r.LossPercent),
	})
}

// MarshalJSON encodes the comparison the same way as PathResult.
func (c Comparison) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount    jsonNumber   `json:"amount"`
		Reference jsonNumber   `json:"reference"`
		Results   []PathResult `json:"results"`
		Winner    Path         `json:"winner"`
		Savings   jsonNumber   `json:"savings"`
	}{
		Amount:    jsonNumber(c.Amount),
		Reference: jsonNumber(c.Reference),
		Results:   c.Results,
		Winner:    c.Winner,
		Savings:   jsonNumber(c.Savings),
	})
}
