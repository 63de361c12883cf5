package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/mtlprog/fxcompare/internal/domain"
)

// Template labels for profiles whose optional fields were left blank.
const (
	defaultBank           = "CB"
	defaultBankFull       = "Central Bank"
	defaultStreetExchange = "Exchange office"
	defaultCrossRate      = 1.08
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProfileInput is the user-supplied part of a new profile. Rate is the
// reference rate as typed; the other default rates are derived from it.
type ProfileInput struct {
	Name           string `json:"name" validate:"required"`
	Flag           string `json:"flag" validate:"required"`
	Currency       string `json:"currency" validate:"required"`
	Symbol         string `json:"symbol" validate:"required"`
	Rate           string `json:"rate"`
	City           string `json:"city"`
	CurrencyName   string `json:"currency_name"`
	Bank           string `json:"bank"`
	BankFull       string `json:"bank_full"`
	StreetExchange string `json:"street_exchange"`
}

func (in ProfileInput) trimmed() ProfileInput {
	return ProfileInput{
		Name:           strings.TrimSpace(in.Name),
		Flag:           strings.TrimSpace(in.Flag),
		Currency:       strings.ToUpper(strings.TrimSpace(in.Currency)),
		Symbol:         strings.TrimSpace(in.Symbol),
		Rate:           strings.TrimSpace(in.Rate),
		City:           strings.TrimSpace(in.City),
		CurrencyName:   strings.TrimSpace(in.CurrencyName),
		Bank:           strings.TrimSpace(in.Bank),
		BankFull:       strings.TrimSpace(in.BankFull),
		StreetExchange: strings.TrimSpace(in.StreetExchange),
	}
}

// DerivedRates spreads a single reference rate over the five default rates.
func DerivedRates(rate float64) domain.Rates {
	return domain.Rates{
		Reference: rate,
		Street:    rate * 0.99,
		Direct:    rate * 0.96,
		Cross:     defaultCrossRate,
		Secondary: rate / defaultCrossRate,
	}
}

// Build validates the input and turns it into a user profile under key.
func (in ProfileInput) Build(key string) (domain.Profile, error) {
	key = NormalizeKey(key)
	in = in.trimmed()

	if key == "" {
		return domain.Profile{}, fmt.Errorf("%w: profile key is empty", domain.ErrValidation)
	}
	if err := validate.Struct(in); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}

	rate, err := domain.ParseStrict(in.Rate)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("reference rate: %w", err)
	}
	if rate <= 0 {
		return domain.Profile{}, fmt.Errorf("%w: reference rate must be positive, got %v", domain.ErrValidation, rate)
	}

	p := domain.Profile{
		Key:            key,
		Name:           in.Name,
		Flag:           in.Flag,
		City:           in.City,
		Currency:       in.Currency,
		Symbol:         in.Symbol,
		CurrencyName:   in.CurrencyName,
		Bank:           in.Bank,
		BankFull:       in.BankFull,
		StreetExchange: in.StreetExchange,
		DefaultRates:   DerivedRates(rate),
		Origin:         domain.OriginUser,
	}
	return fillTemplate(p), nil
}

// fillTemplate fills blank optional fields of a user profile.
func fillTemplate(p domain.Profile) domain.Profile {
	p.City = lo.CoalesceOrEmpty(p.City, p.Name)
	p.CurrencyName = lo.CoalesceOrEmpty(p.CurrencyName, p.Currency)
	p.Bank = lo.CoalesceOrEmpty(p.Bank, defaultBank)
	p.BankFull = lo.CoalesceOrEmpty(p.BankFull, defaultBankFull)
	p.StreetExchange = lo.CoalesceOrEmpty(p.StreetExchange, defaultStreetExchange)

	r := &p.DefaultRates
	for _, v := range []*float64{&r.Reference, &r.Street, &r.Direct, &r.Cross, &r.Secondary} {
		if *v <= 0 {
			*v = 1.0
		}
	}
	return p
}

// missingRequired lists the required fields a stored profile lacks.
func missingRequired(p domain.Profile) []string {
	fields := map[string]string{
		"name":     p.Name,
		"flag":     p.Flag,
		"currency": p.Currency,
		"symbol":   p.Symbol,
	}
	missing := lo.Filter([]string{"name", "flag", "currency", "symbol"}, func(f string, _ int) bool {
		return strings.TrimSpace(fields[f]) == ""
	})
	return missing
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	names := lo.Map(verrs, func(fe validator.FieldError, _ int) string { return strings.ToLower(fe.Field()) })
	return "missing required fields: " + strings.Join(names, ", ")
}
