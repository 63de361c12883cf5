package profile

import "github.com/mtlprog/fxcompare/internal/domain"

// builtinProfiles is the curated catalog, in menu order. Entries are copied out
// by Builtins and never mutated.
var builtinProfiles = []domain.Profile{
	// Caucasus
	{
		Key: "georgia", Name: "Georgia", Flag: "🇬🇪", City: "Batumi",
		Currency: "GEL", Symbol: "₾", CurrencyName: "Lari",
		Bank: "NBG", BankFull: "National Bank of Georgia",
		BankAPI:        "https://nbg.gov.ge/gw/api/ct/monetarypolicy/currencies",
		StreetExchange: "Valuto/Rico",
		DefaultRates:   domain.Rates{Reference: 3.16, Street: 3.14, Direct: 3.02, Cross: 1.08, Secondary: 2.9},
	},
	{
		Key: "armenia", Name: "Armenia", Flag: "🇦🇲", City: "Yerevan",
		Currency: "AMD", Symbol: "֏", CurrencyName: "Dram",
		Bank: "CBA", BankFull: "Central Bank of Armenia",
		StreetExchange: "Exchange office",
		DefaultRates:   domain.Rates{Reference: 430.0, Street: 428.0, Direct: 420.0, Cross: 1.08, Secondary: 400.0},
	},
	{
		Key: "azerbaijan", Name: "Azerbaijan", Flag: "🇦🇿", City: "Baku",
		Currency: "AZN", Symbol: "₼", CurrencyName: "Manat",
		Bank: "CBAR", BankFull: "Central Bank of Azerbaijan",
		StreetExchange: "Exchange office",
		DefaultRates:   domain.Rates{Reference: 1.84, Street: 1.82, Direct: 1.78, Cross: 1.08, Secondary: 1.7},
	},

	// Balkans
	{
		Key: "serbia", Name: "Serbia", Flag: "🇷🇸", City: "Belgrade",
		Currency: "RSD", Symbol: "дин", CurrencyName: "Dinar",
		Bank: "NBS", BankFull: "National Bank of Serbia",
		BankAPI: "https://nbs.rs/", StreetExchange: "Menjačnica",
		DefaultRates: domain.Rates{Reference: 117.0, Street: 116.5, Direct: 115.0, Cross: 1.08, Secondary: 108.0},
	},
	{
		Key: "albania", Name: "Albania", Flag: "🇦🇱", City: "Tirana",
		Currency: "ALL", Symbol: "L", CurrencyName: "Lek",
		Bank: "BoA", BankFull: "Bank of Albania",
		StreetExchange: "Këmbim Valutor",
		DefaultRates:   domain.Rates{Reference: 100.0, Street: 99.0, Direct: 97.0, Cross: 1.08, Secondary: 93.0},
	},
	{
		Key: "north_macedonia", Name: "North Macedonia", Flag: "🇲🇰", City: "Skopje",
		Currency: "MKD", Symbol: "ден", CurrencyName: "Denar",
		Bank: "NBRNM", BankFull: "National Bank of North Macedonia",
		StreetExchange: "Menuvačnica",
		DefaultRates:   domain.Rates{Reference: 61.5, Street: 61.0, Direct: 60.0, Cross: 1.08, Secondary: 57.0},
	},
	{
		Key: "bosnia", Name: "Bosnia and Herzegovina", Flag: "🇧🇦", City: "Sarajevo",
		Currency: "BAM", Symbol: "KM", CurrencyName: "Convertible mark",
		Bank: "CBBH", BankFull: "Central Bank of Bosnia and Herzegovina",
		StreetExchange: "Mjenjačnica",
		DefaultRates:   domain.Rates{Reference: 1.96, Street: 1.95, Direct: 1.92, Cross: 1.08, Secondary: 1.81},
	},

	// Eastern Europe
	{
		Key: "ukraine", Name: "Ukraine", Flag: "🇺🇦", City: "Kyiv",
		Currency: "UAH", Symbol: "₴", CurrencyName: "Hryvnia",
		Bank: "NBU", BankFull: "National Bank of Ukraine",
		StreetExchange: "Obmin valiut",
		DefaultRates:   domain.Rates{Reference: 44.0, Street: 43.5, Direct: 42.0, Cross: 1.08, Secondary: 41.0},
	},
	{
		Key: "moldova", Name: "Moldova", Flag: "🇲🇩", City: "Chișinău",
		Currency: "MDL", Symbol: "L", CurrencyName: "Leu",
		Bank: "NBM", BankFull: "National Bank of Moldova",
		StreetExchange: "Schimb Valutar",
		DefaultRates:   domain.Rates{Reference: 19.5, Street: 19.3, Direct: 19.0, Cross: 1.08, Secondary: 18.0},
	},
	{
		Key: "belarus", Name: "Belarus", Flag: "🇧🇾", City: "Minsk",
		Currency: "BYN", Symbol: "Br", CurrencyName: "Ruble",
		Bank: "NBRB", BankFull: "National Bank of Belarus",
		StreetExchange: "Exchange office",
		DefaultRates:   domain.Rates{Reference: 3.5, Street: 3.45, Direct: 3.4, Cross: 1.08, Secondary: 3.2},
	},
	{
		Key: "russia", Name: "Russia", Flag: "🇷🇺", City: "Moscow",
		Currency: "RUB", Symbol: "₽", CurrencyName: "Ruble",
		Bank: "CBR", BankFull: "Bank of Russia",
		BankAPI: "https://cbr.ru/", StreetExchange: "Exchange office",
		DefaultRates: domain.Rates{Reference: 105.0, Street: 103.0, Direct: 100.0, Cross: 1.08, Secondary: 97.0},
	},

	// Central Europe
	{
		Key: "poland", Name: "Poland", Flag: "🇵🇱", City: "Warsaw",
		Currency: "PLN", Symbol: "zł", CurrencyName: "Złoty",
		Bank: "NBP", BankFull: "National Bank of Poland",
		BankAPI: "https://nbp.pl/", StreetExchange: "Kantor",
		DefaultRates: domain.Rates{Reference: 4.3, Street: 4.25, Direct: 4.15, Cross: 1.08, Secondary: 4.0},
	},
	{
		Key: "czechia", Name: "Czechia", Flag: "🇨🇿", City: "Prague",
		Currency: "CZK", Symbol: "Kč", CurrencyName: "Koruna",
		Bank: "ČNB", BankFull: "Czech National Bank",
		BankAPI: "https://cnb.cz/", StreetExchange: "Směnárna",
		DefaultRates: domain.Rates{Reference: 25.3, Street: 25.0, Direct: 24.5, Cross: 1.08, Secondary: 23.5},
	},
	{
		Key: "hungary", Name: "Hungary", Flag: "🇭🇺", City: "Budapest",
		Currency: "HUF", Symbol: "Ft", CurrencyName: "Forint",
		Bank: "MNB", BankFull: "Magyar Nemzeti Bank",
		BankAPI: "https://mnb.hu/", StreetExchange: "Pénzváltó",
		DefaultRates: domain.Rates{Reference: 395.0, Street: 390.0, Direct: 380.0, Cross: 1.08, Secondary: 365.0},
	},
	{
		Key: "romania", Name: "Romania", Flag: "🇷🇴", City: "Bucharest",
		Currency: "RON", Symbol: "lei", CurrencyName: "Leu",
		Bank: "BNR", BankFull: "National Bank of Romania",
		BankAPI: "https://bnr.ro/", StreetExchange: "Casa de Schimb",
		DefaultRates: domain.Rates{Reference: 4.97, Street: 4.92, Direct: 4.85, Cross: 1.08, Secondary: 4.6},
	},
	{
		Key: "bulgaria", Name: "Bulgaria", Flag: "🇧🇬", City: "Sofia",
		Currency: "BGN", Symbol: "лв", CurrencyName: "Lev",
		Bank: "BNB", BankFull: "Bulgarian National Bank",
		BankAPI: "https://bnb.bg/", StreetExchange: "Obmenno byuro",
		DefaultRates: domain.Rates{Reference: 1.96, Street: 1.94, Direct: 1.90, Cross: 1.08, Secondary: 1.81},
	},

	// Scandinavia
	{
		Key: "sweden", Name: "Sweden", Flag: "🇸🇪", City: "Stockholm",
		Currency: "SEK", Symbol: "kr", CurrencyName: "Krona",
		Bank: "Riksbank", BankFull: "Sveriges Riksbank",
		BankAPI: "https://riksbank.se/", StreetExchange: "Forex",
		DefaultRates: domain.Rates{Reference: 11.5, Street: 11.3, Direct: 11.0, Cross: 1.08, Secondary: 10.6},
	},
	{
		Key: "norway", Name: "Norway", Flag: "🇳🇴", City: "Oslo",
		Currency: "NOK", Symbol: "kr", CurrencyName: "Krone",
		Bank: "Norges Bank", BankFull: "Norges Bank",
		BankAPI: "https://norges-bank.no/", StreetExchange: "Forex",
		DefaultRates: domain.Rates{Reference: 11.8, Street: 11.6, Direct: 11.3, Cross: 1.08, Secondary: 10.9},
	},
	{
		Key: "denmark", Name: "Denmark", Flag: "🇩🇰", City: "Copenhagen",
		Currency: "DKK", Symbol: "kr", CurrencyName: "Krone",
		Bank: "Danmarks NB", BankFull: "Danmarks Nationalbank",
		BankAPI: "https://nationalbanken.dk/", StreetExchange: "Forex",
		DefaultRates: domain.Rates{Reference: 7.46, Street: 7.4, Direct: 7.3, Cross: 1.08, Secondary: 6.9},
	},
	{
		Key: "iceland", Name: "Iceland", Flag: "🇮🇸", City: "Reykjavík",
		Currency: "ISK", Symbol: "kr", CurrencyName: "Króna",
		Bank: "Seðlabanki", BankFull: "Central Bank of Iceland",
		StreetExchange: "Gjaldeyrisskipti",
		DefaultRates:   domain.Rates{Reference: 150.0, Street: 148.0, Direct: 145.0, Cross: 1.08, Secondary: 139.0},
	},

	// Western Europe outside the eurozone
	{
		Key: "uk", Name: "United Kingdom", Flag: "🇬🇧", City: "London",
		Currency: "GBP", Symbol: "£", CurrencyName: "Pound",
		Bank: "BoE", BankFull: "Bank of England",
		BankAPI: "https://bankofengland.co.uk/", StreetExchange: "Bureau de Change",
		DefaultRates: domain.Rates{Reference: 0.84, Street: 0.83, Direct: 0.82, Cross: 1.08, Secondary: 0.78},
	},
	{
		Key: "switzerland", Name: "Switzerland", Flag: "🇨🇭", City: "Zürich",
		Currency: "CHF", Symbol: "Fr", CurrencyName: "Franc",
		Bank: "SNB", BankFull: "Swiss National Bank",
		BankAPI: "https://snb.ch/", StreetExchange: "Wechselstube",
		DefaultRates: domain.Rates{Reference: 0.94, Street: 0.93, Direct: 0.91, Cross: 1.08, Secondary: 0.87},
	},

	{
		Key: "turkey", Name: "Turkey", Flag: "🇹🇷", City: "Istanbul",
		Currency: "TRY", Symbol: "₺", CurrencyName: "Lira",
		Bank: "TCMB", BankFull: "Central Bank of the Republic of Türkiye",
		BankAPI: "https://tcmb.gov.tr/", StreetExchange: "Döviz Bürosu",
		DefaultRates: domain.Rates{Reference: 35.0, Street: 34.8, Direct: 34.0, Cross: 1.08, Secondary: 32.5},
	},
}

// Builtins returns a copy of the curated catalog in menu order, each entry
// tagged with the builtin origin.
func Builtins() []domain.Profile {
	out := make([]domain.Profile, len(builtinProfiles))
	for i, p := range builtinProfiles {
		p.Origin = domain.OriginBuiltin
		out[i] = p
	}
	return out
}
