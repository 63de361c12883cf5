package ratesource

import (
	"fmt"

	"github.com/mtlprog/fxcompare/internal/domain"
)

const applyPlaces = 4

// Apply copies the fetched quotes into rates, rounded to four places, and
// returns one summary line per value it changed. Quotes that were not fetched
// leave the corresponding rate as it was.
func Apply(rates domain.Rates, snap Snapshot, p domain.Profile) (domain.Rates, []string) {
	var lines []string
	format := func(v float64) string { return domain.FormatAmount(v, applyPlaces) }

	if v, ok := snap.Quotes[QuoteReferenceEUR]; ok {
		rates.Reference = domain.RoundTo(v, applyPlaces)
		lines = append(lines, fmt.Sprintf("%s: 1 EUR = %s %s", p.Bank, format(v), p.Currency))
	}
	if v, ok := snap.Quotes[QuoteStreetEUR]; ok {
		rates.Street = domain.RoundTo(v, applyPlaces)
		lines = append(lines, fmt.Sprintf("%s: 1 EUR = %s %s", p.StreetExchange, format(v), p.Currency))
	}
	if v, ok := snap.Quotes[QuoteStreetUSD]; ok {
		rates.Secondary = domain.RoundTo(v, applyPlaces)
		lines = append(lines, fmt.Sprintf("%s: 1 USD = %s %s", p.StreetExchange, format(v), p.Currency))
	}
	if v, ok := snap.Quotes[QuoteCrossEURUSD]; ok {
		rates.Cross = domain.RoundTo(v, applyPlaces)
		label := "EUR/USD cross rate"
		if snap.CrossDerived {
			label = "EUR/USD cross rate (derived from " + p.Bank + ")"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, format(v)))
	}

	return rates, lines
}
