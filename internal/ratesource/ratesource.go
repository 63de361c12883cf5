// Package ratesource fetches current rates for profiles that have a concrete
// integration. Fetches are best-effort: each upstream is queried independently
// and whatever succeeded is returned.
package ratesource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// Quote names one fetched value.
type Quote string

const (
	QuoteReferenceEUR Quote = "reference_eur" // central bank, local per EUR
	QuoteReferenceUSD Quote = "reference_usd" // central bank, local per USD
	QuoteStreetEUR    Quote = "street_eur"    // exchange office, local per EUR
	QuoteStreetUSD    Quote = "street_usd"    // exchange office, local per USD
	QuoteCrossEURUSD  Quote = "cross_eur_usd" // USD per EUR
)

// ErrUnsupported is returned for profiles without a concrete integration.
var ErrUnsupported = fmt.Errorf("%w: automatic rates not available for this profile", domain.ErrSourceUnavailable)

// Failure records one upstream that could not be read.
type Failure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Snapshot is the outcome of one fetch.
type Snapshot struct {
	Quotes       map[Quote]float64 `json:"quotes"`
	CrossDerived bool              `json:"crossDerived"`
	Failures     []Failure         `json:"failures,omitempty"`
	FetchedAt    time.Time         `json:"fetchedAt"`
}

// Has reports whether the quote was fetched.
func (s Snapshot) Has(q Quote) bool {
	_, ok := s.Quotes[q]
	return ok
}

func (s *Snapshot) set(q Quote, v float64) {
	if s.Quotes == nil {
		s.Quotes = make(map[Quote]float64)
	}
	s.Quotes[q] = v
}

func (s *Snapshot) fail(source string, err error) {
	slog.Warn("rate source failed", "source", source, "error", err)
	s.Failures = append(s.Failures, Failure{Source: source, Error: err.Error()})
}

// Fetcher is the contract the calculator depends on.
type Fetcher interface {
	Supports(p domain.Profile) bool
	Fetch(ctx context.Context, p domain.Profile) (Snapshot, error)
}

// Integration fetches raw quotes for one specific country.
type Integration interface {
	Fetch(ctx context.Context) Snapshot
}

// Service routes fetches to the integration registered for a profile key.
type Service struct {
	integrations map[string]Integration
}

// NewService creates a Service with the given integrations keyed by profile key.
func NewService(integrations map[string]Integration) *Service {
	return &Service{integrations: integrations}
}

// Supports is true only when the profile declares a rate endpoint and an
// integration exists for its key.
func (s *Service) Supports(p domain.Profile) bool {
	if !p.HasRateAPI() {
		return false
	}
	_, ok := s.integrations[p.Key]
	return ok
}

// Fetch queries the profile's integration. When the cross rate is missing but
// both central-bank quotes arrived, it is derived as EUR/USD. An empty
// snapshot is reported as domain.ErrSourceUnavailable.
func (s *Service) Fetch(ctx context.Context, p domain.Profile) (Snapshot, error) {
	if !s.Supports(p) {
		return Snapshot{}, ErrUnsupported
	}

	snap := s.integrations[p.Key].Fetch(ctx)
	snap.FetchedAt = time.Now().UTC()

	if !snap.Has(QuoteCrossEURUSD) && snap.Has(QuoteReferenceEUR) && snap.Has(QuoteReferenceUSD) {
		if usd := snap.Quotes[QuoteReferenceUSD]; usd != 0 {
			snap.set(QuoteCrossEURUSD, snap.Quotes[QuoteReferenceEUR]/usd)
			snap.CrossDerived = true
		}
	}

	if len(snap.Quotes) == 0 {
		return snap, fmt.Errorf("%w: no data from any source for %s", domain.ErrSourceUnavailable, p.Key)
	}
	return snap, nil
}

// IsUnsupported reports whether err means the profile has no integration.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
