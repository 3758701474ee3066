package iso_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomseed-io/bankster-sub000/currency"
	"github.com/randomseed-io/bankster-sub000/iso"
	"github.com/randomseed-io/bankster-sub000/scale"
)

func TestCurrencies_WellFormed(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	numerics := map[int64]struct{}{}

	for _, c := range iso.Currencies() {
		require.NoError(t, c.Validate(), "currency %s", c.ID)
		assert.Equal(t, currency.DomainISO, c.Domain, "currency %s", c.ID)
		assert.True(t, c.HasNumeric(), "currency %s", c.ID)

		_, dup := seen[c.ID]
		assert.False(t, dup, "duplicate id %s", c.ID)
		seen[c.ID] = struct{}{}

		_, dup = numerics[c.Numeric]
		assert.False(t, dup, "duplicate numeric %d", c.Numeric)
		numerics[c.Numeric] = struct{}{}
	}
}

func TestCountries_ReferenceKnownCurrencies(t *testing.T) {
	t.Parallel()

	ids := map[string]struct{}{}
	for _, c := range iso.Currencies() {
		ids[c.ID] = struct{}{}
	}

	for country, code := range iso.Countries() {
		assert.Len(t, country, 2, "country code %q", country)
		assert.Contains(t, ids, code, "country %s references unknown currency", country)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := iso.Registry()
	assert.Same(t, reg, iso.Registry(), "shared instance")
	assert.Equal(t, iso.Version, reg.Version())

	eur, err := reg.Get("EUR")
	require.NoError(t, err)
	assert.Equal(t, int64(978), eur.Numeric)
	assert.Equal(t, int32(2), eur.Scale)
	assert.Equal(t, currency.KindFiat, eur.Kind)

	jpy, err := reg.Get(392)
	require.NoError(t, err)
	assert.Equal(t, "JPY", jpy.ID)
	assert.Equal(t, int32(0), jpy.Scale)

	gold, err := reg.Get("XAU")
	require.NoError(t, err)
	assert.Equal(t, scale.Auto, gold.Scale)
	assert.Equal(t, currency.KindCommodity, gold.Kind)

	de, ok := reg.CurrencyOfCountry("DE")
	require.True(t, ok)
	assert.Equal(t, "EUR", de.ID)

	countries := reg.CountriesOf("EUR")
	assert.Contains(t, countries, "DE")
	assert.Contains(t, countries, "FR")
}

func TestRegistry_DerivedVariantLeavesSharedUntouched(t *testing.T) {
	t.Parallel()

	base := iso.Registry()

	token := currency.MustNewWith("crypto/TOK", currency.NoNumeric, 8, "", currency.KindCrypto)
	derived, err := base.Register(currency.Registration{Currency: token})
	require.NoError(t, err)

	assert.True(t, derived.Defined("crypto/TOK"))
	assert.False(t, base.Defined("crypto/TOK"))
	assert.Equal(t, base.Len()+1, derived.Len())
}
