// Package calculator is the boundary between front-ends and the comparison
// engine. Front-ends pass raw strings and get typed results back; the service
// owns parsing fallbacks and the save step after a successful calculation.
package calculator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/fxcompare/internal/conversion"
	"github.com/mtlprog/fxcompare/internal/domain"
	"github.com/mtlprog/fxcompare/internal/profile"
	"github.com/mtlprog/fxcompare/internal/ratesource"
)

// defaultAmount is used when the typed amount cannot be parsed.
const defaultAmount = 100.0

// RawInputs holds the comparison inputs exactly as the user typed them.
type RawInputs struct {
	Amount         string `json:"amount"`
	Reference      string `json:"reference_rate"`
	Street         string `json:"street_rate"`
	Direct         string `json:"direct_rate"`
	Cross          string `json:"cross_rate"`
	Secondary      string `json:"secondary_rate"`
	TransferFeePct string `json:"transfer_fee_pct"`
	CashFeePct     string `json:"cash_fee_pct"`
	CashFeeFixed   string `json:"cash_fee_fixed"`
}

// Parse turns raw inputs into numbers. A field that is empty or malformed takes
// its value from fallback, except the amount which falls back to 100.
func (r RawInputs) Parse(fallback domain.Inputs) domain.Inputs {
	return domain.Inputs{
		Amount: domain.ParseNumber(r.Amount, defaultAmount),
		Rates: domain.Rates{
			Reference: domain.ParseNumber(r.Reference, fallback.Reference),
			Street:    domain.ParseNumber(r.Street, fallback.Street),
			Direct:    domain.ParseNumber(r.Direct, fallback.Direct),
			Cross:     domain.ParseNumber(r.Cross, fallback.Cross),
			Secondary: domain.ParseNumber(r.Secondary, fallback.Secondary),
		},
		Fees: domain.Fees{
			TransferPct: domain.ParseNumber(r.TransferFeePct, fallback.TransferPct),
			CashPct:     domain.ParseNumber(r.CashFeePct, fallback.CashPct),
			CashFixed:   domain.ParseNumber(r.CashFeeFixed, fallback.CashFixed),
		},
	}
}

// FetchOutcome reports what an automatic rate fetch changed.
type FetchOutcome struct {
	Profile      string               `json:"profile"`
	Rates        domain.Rates         `json:"rates"`
	Applied      []string             `json:"applied"`
	Failures     []ratesource.Failure `json:"failures,omitempty"`
	CrossDerived bool                 `json:"crossDerived"`
	Comparison   *domain.Comparison   `json:"comparison,omitempty"`
}

// Service drives one user session over a profile store.
// It is not safe for concurrent use.
type Service struct {
	store   *profile.Store
	fetcher ratesource.Fetcher
}

// New creates a Service. fetcher may be nil, in which case every fetch is
// reported as unsupported.
func New(store *profile.Store, fetcher ratesource.Fetcher) *Service {
	return &Service{store: store, fetcher: fetcher}
}

// Calculate parses raw, compares all three paths and, on success, records the
// inputs and saves them. A failed save is logged; the comparison still stands.
func (s *Service) Calculate(raw RawInputs) (domain.Comparison, error) {
	in := raw.Parse(s.store.Settings().Inputs)

	cmp, err := conversion.Compare(in.Amount, in.Rates, in.Fees)
	if err != nil {
		return domain.Comparison{}, err
	}

	s.store.UpdateInputs(in)
	s.save()
	return cmp, nil
}

// Current compares the stored inputs without changing anything.
func (s *Service) Current() (domain.Comparison, error) {
	in := s.store.Settings().Inputs
	return conversion.Compare(in.Amount, in.Rates, in.Fees)
}

// FetchRates pulls current rates for the active profile. The stored rates are
// updated only once the fetch has completed, and then saved.
func (s *Service) FetchRates(ctx context.Context) (FetchOutcome, error) {
	p := s.store.Active()
	if s.fetcher == nil || !s.fetcher.Supports(p) {
		return FetchOutcome{}, fmt.Errorf("%s (%s): %w", p.Name, p.Bank, ratesource.ErrUnsupported)
	}

	snap, err := s.fetcher.Fetch(ctx, p)
	if err != nil {
		return FetchOutcome{Profile: p.Key, Failures: snap.Failures}, fmt.Errorf("fetching rates for %s: %w", p.Key, err)
	}

	in := s.store.Settings().Inputs
	rates, applied := ratesource.Apply(in.Rates, snap, p)
	if len(applied) == 0 {
		return FetchOutcome{Profile: p.Key, Failures: snap.Failures},
			fmt.Errorf("fetching rates for %s: %w: no usable rates", p.Key, domain.ErrSourceUnavailable)
	}
	in.Rates = rates
	s.store.UpdateInputs(in)
	s.save()

	slog.Info("rates fetched", "profile", p.Key, "applied", len(applied), "failures", len(snap.Failures))

	out := FetchOutcome{
		Profile:      p.Key,
		Rates:        rates,
		Applied:      applied,
		Failures:     snap.Failures,
		CrossDerived: snap.CrossDerived,
	}
	if cmp, err := conversion.Compare(in.Amount, in.Rates, in.Fees); err == nil {
		out.Comparison = &cmp
	}
	return out, nil
}

// Profiles lists every profile, built-ins first.
func (s *Service) Profiles() []domain.Profile {
	return s.store.ListProfiles()
}

// ActiveProfile returns the selected profile.
func (s *Service) ActiveProfile() domain.Profile {
	return s.store.Active()
}

// AddProfile stores a user profile under key.
func (s *Service) AddProfile(key string, in profile.ProfileInput) (domain.Profile, error) {
	return s.store.AddProfile(key, in)
}

// DeleteProfile removes a user profile.
func (s *Service) DeleteProfile(key string) error {
	return s.store.DeleteProfile(profile.NormalizeKey(key))
}

// SwitchProfile activates key and returns the new active profile.
func (s *Service) SwitchProfile(key string) (domain.Profile, error) {
	if err := s.store.SwitchActive(profile.NormalizeKey(key)); err != nil {
		return domain.Profile{}, err
	}
	return s.store.Active(), nil
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() domain.Settings {
	return s.store.Settings()
}

// SetTheme records and saves the theme.
func (s *Service) SetTheme(t domain.Theme) error {
	if err := s.store.SetTheme(t); err != nil {
		return err
	}
	return s.store.Save()
}

// ToggleTheme flips between dark and light and saves.
func (s *Service) ToggleTheme() (domain.Theme, error) {
	next := s.store.Settings().Theme.Toggle()
	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}

// SetDates records and saves the rate observation dates.
func (s *Service) SetDates(d domain.Dates) error {
	s.store.SetDates(d)
	return s.store.Save()
}

// Save persists the current settings.
func (s *Service) Save() error {
	return s.store.Save()
}

func (s *Service) save() {
	if err := s.store.Save(); err != nil {
		slog.Warn("failed to save settings", "path", s.store.Path(), "error", err)
	}
}
