// Package iso bundles a curated ISO-4217 currency table as plain Go seed
// data. It stands in for an external seed loader: no file formats are
// parsed, the data is just registry-shaped values.
package iso

import (
	"sync"

	"github.com/randomseed-io/bankster-sub000/currency"
	"github.com/randomseed-io/bankster-sub000/scale"
)

// Version tags registries built from this table.
const Version = "iso-4217-2024"

func fiat(id string, numeric int64, sc int32) currency.Currency {
	return currency.MustNewWith(id, numeric, sc, currency.DomainISO, currency.KindFiat)
}

func commodity(id string, numeric int64) currency.Currency {
	return currency.MustNewWith(id, numeric, scale.Auto, currency.DomainISO, currency.KindCommodity)
}

// Currencies returns the bundled currency definitions.
func Currencies() []currency.Currency {
	return []currency.Currency{
		fiat("AED", 784, 2),
		fiat("AUD", 36, 2),
		fiat("BHD", 48, 3),
		fiat("BRL", 986, 2),
		fiat("CAD", 124, 2),
		fiat("CHF", 756, 2),
		fiat("CLP", 152, 0),
		fiat("CNY", 156, 2),
		fiat("CZK", 203, 2),
		fiat("DKK", 208, 2),
		fiat("EUR", 978, 2),
		fiat("GBP", 826, 2),
		fiat("HKD", 344, 2),
		fiat("HUF", 348, 2),
		fiat("IDR", 360, 2),
		fiat("ILS", 376, 2),
		fiat("INR", 356, 2),
		fiat("ISK", 352, 0),
		fiat("JPY", 392, 0),
		fiat("KRW", 410, 0),
		fiat("KWD", 414, 3),
		fiat("MXN", 484, 2),
		fiat("MYR", 458, 2),
		fiat("NOK", 578, 2),
		fiat("NZD", 554, 2),
		fiat("OMR", 512, 3),
		fiat("PHP", 608, 2),
		fiat("PLN", 985, 2),
		fiat("RON", 946, 2),
		fiat("SAR", 682, 2),
		fiat("SEK", 752, 2),
		fiat("SGD", 702, 2),
		fiat("THB", 764, 2),
		fiat("TND", 788, 3),
		fiat("TRY", 949, 2),
		fiat("TWD", 901, 2),
		fiat("USD", 840, 2),
		fiat("VND", 704, 0),
		fiat("ZAR", 710, 2),
		commodity("XAG", 961),
		commodity("XAU", 959),
		commodity("XPD", 964),
		commodity("XPT", 962),
	}
}

// Countries returns the bundled country-to-currency assignments.
func Countries() map[string]string {
	return map[string]string{
		"AE": "AED",
		"AT": "EUR",
		"AU": "AUD",
		"BE": "EUR",
		"BH": "BHD",
		"BR": "BRL",
		"CA": "CAD",
		"CH": "CHF",
		"CL": "CLP",
		"CN": "CNY",
		"CZ": "CZK",
		"DE": "EUR",
		"DK": "DKK",
		"ES": "EUR",
		"FI": "EUR",
		"FR": "EUR",
		"GB": "GBP",
		"HK": "HKD",
		"HU": "HUF",
		"ID": "IDR",
		"IE": "EUR",
		"IL": "ILS",
		"IN": "INR",
		"IS": "ISK",
		"IT": "EUR",
		"JP": "JPY",
		"KR": "KRW",
		"KW": "KWD",
		"MX": "MXN",
		"MY": "MYR",
		"NL": "EUR",
		"NO": "NOK",
		"NZ": "NZD",
		"OM": "OMR",
		"PH": "PHP",
		"PL": "PLN",
		"PT": "EUR",
		"RO": "RON",
		"SA": "SAR",
		"SE": "SEK",
		"SG": "SGD",
		"TH": "THB",
		"TN": "TND",
		"TR": "TRY",
		"TW": "TWD",
		"US": "USD",
		"VN": "VND",
		"ZA": "ZAR",
	}
}

// Seed returns the bundled data as a registry seed.
func Seed() currency.Seed {
	return currency.Seed{
		Currencies: Currencies(),
		Countries:  Countries(),
		Version:    Version,
	}
}

var (
	registryOnce sync.Once
	registry     *currency.Registry
)

// Registry returns a shared registry built from the bundled seed. The
// registry is immutable; callers derive their own variants through its
// mutators.
func Registry() *currency.Registry {
	registryOnce.Do(func() {
		r, err := currency.FromSeed(Seed())
		if err != nil {
			panic(err)
		}

		registry = r
	})

	return registry
}
