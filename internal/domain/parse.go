package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeNumber trims the input and accepts a comma as decimal separator.
func normalizeNumber(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
}

// ParseNumber parses user-typed numeric input, accepting both "." and "," as
// decimal separator. Empty or invalid input yields the fallback.
func ParseNumber(value string, fallback float64) float64 {
	f, err := ParseStrict(value)
	if err != nil {
		return fallback
	}
	return f
}

// ParseStrict parses user-typed numeric input and reports malformed values.
func ParseStrict(value string) (float64, error) {
	s := normalizeNumber(value)
	if s == "" {
		return 0, fmt.Errorf("%w: empty number", ErrValidation)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", ErrValidation, value)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: number out of range %q", ErrValidation, value)
	}
	return f, nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// FormatAmount renders a value with a fixed number of decimal places.
// Infinities and NaN render as "+Inf", "-Inf" and "NaN".
func FormatAmount(value float64, places int32) string {
	if !finite(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return decimal.NewFromFloat(value).StringFixed(places)
}

// RoundTo rounds a value half away from zero to the given number of places.
// Non-finite values are returned unchanged.
func RoundTo(value float64, places int32) float64 {
	if !finite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
