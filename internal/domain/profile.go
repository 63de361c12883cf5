package domain

// Origin tells whether a profile ships with the program or was added by the user.
type Origin string

const (
	OriginBuiltin Origin = "builtin"
	OriginUser    Origin = "user"
)

// Rates holds the five conversion rates for one country context.
// All values are local units per 1 EUR except Cross, which is USD per EUR.
type Rates struct {
	Reference float64 `json:"reference_rate"`
	Street    float64 `json:"street_rate"`
	Direct    float64 `json:"direct_rate"`
	Cross     float64 `json:"cross_rate"`
	Secondary float64 `json:"secondary_rate"`
}

// Profile identifies one country/currency context.
type Profile struct {
	Key            string `json:"-"`
	Name           string `json:"name"`
	Flag           string `json:"flag"`
	City           string `json:"city"`
	Currency       string `json:"currency"`
	Symbol         string `json:"symbol"`
	CurrencyName   string `json:"currency_name"`
	Bank           string `json:"bank"`
	BankFull       string `json:"bank_full"`
	BankAPI        string `json:"bank_api"`
	StreetExchange string `json:"street_exchange"`
	DefaultRates   Rates  `json:"default_rates"`
	Origin         Origin `json:"-"`
}

// IsBuiltin returns true for profiles compiled into the program.
func (p Profile) IsBuiltin() bool {
	return p.Origin == OriginBuiltin
}

// HasRateAPI returns true if the profile declares a reference-institution endpoint.
func (p Profile) HasRateAPI() bool {
	return p.BankAPI != ""
}

// Label formats the profile the way menus list it, e.g. "🇬🇪 Georgia (GEL)".
func (p Profile) Label() string {
	return p.Flag + " " + p.Name + " (" + p.Currency + ")"
}
