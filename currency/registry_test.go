package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/scale"
)

func register(t *testing.T, r *Registry, c Currency) *Registry {
	t.Helper()

	next, err := r.Register(Registration{Currency: c})
	require.NoError(t, err)

	return next
}

func ids(currencies []Currency) []string {
	out := make([]string, len(currencies))
	for i, c := range currencies {
		out[i] = c.ID
	}

	return out
}

// ---------------------------------------------------------------------------
// Register / Unregister
// ---------------------------------------------------------------------------

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	c, ok := r.ByID("EUR")
	require.True(t, ok)
	assert.Equal(t, int64(978), c.Numeric)

	canonical, ok := r.ByNumeric(978)
	require.True(t, ok)
	assert.Equal(t, "EUR", canonical.ID)

	assert.Equal(t, []string{"EUR"}, ids(r.CodeBucket("EUR")))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	_, err := r.Register(Registration{Currency: MustNew("EUR", 978, 2)})
	assertCode(t, err, bankster.ErrorAlreadyExists)

	replaced, err := r.Register(Registration{Currency: MustNewWith("EUR", 978, 3, "", ""), Replace: true})
	require.NoError(t, err)

	c, ok := replaced.ByID("EUR")
	require.True(t, ok)
	assert.Equal(t, int32(3), c.Scale)
}

func TestRegistry_RegisterIsPure(t *testing.T) {
	t.Parallel()

	empty := NewRegistry()
	full := register(t, empty, MustNew("EUR", 978, 2))

	assert.Equal(t, 0, empty.Len(), "mutators never touch the receiver")
	assert.Equal(t, 1, full.Len())
}

func TestRegistry_UnregisterRemovesEverywhere(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	next, err := r.Register(Registration{
		Currency:  MustNew("EUR", 978, 2),
		Countries: []string{"DE", "FR"},
		Localized: map[string]map[string]string{"en": {"name": "Euro"}},
	})
	require.NoError(t, err)

	next, err = next.AddTraits("EUR", "major")
	require.NoError(t, err)

	gone, err := next.Unregister("EUR")
	require.NoError(t, err)

	_, ok := gone.ByID("EUR")
	assert.False(t, ok)
	_, ok = gone.ByNumeric(978)
	assert.False(t, ok)
	assert.Empty(t, gone.NumericBucket(978), "no empty buckets persist")
	assert.Empty(t, gone.CodeBucket("EUR"))
	assert.Empty(t, gone.CountriesOf("EUR"))
	assert.Nil(t, gone.LocalizedOf("EUR", "en"))
	assert.Empty(t, gone.TraitsOf("EUR"))

	_, ok = gone.CurrencyOfCountry("DE")
	assert.False(t, ok)
}

func TestRegistry_UnregisterUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Unregister("XXX")
	assertCode(t, err, bankster.ErrorNotFound)

	_, err = NewRegistry().Unregister(3.14)
	assertCode(t, err, bankster.ErrorMalformedInput)
}

// ---------------------------------------------------------------------------
// Buckets, weights, and canonical promotion
// ---------------------------------------------------------------------------

func TestRegistry_NumericBucketOrdering(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("AAA", 999, 2).WithWeight(10))
	r = register(t, r, MustNew("BBB", 999, 2))

	canonical, ok := r.ByNumeric(999)
	require.True(t, ok)
	assert.Equal(t, "BBB", canonical.ID, "lowest weight wins")

	assert.Equal(t, []string{"BBB", "AAA"}, ids(r.NumericBucket(999)))
}

func TestRegistry_WeightTieBreaksByID(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("ZZZ", 999, 2).WithWeight(5))
	r = register(t, r, MustNew("AAA", 999, 2).WithWeight(5))

	canonical, ok := r.ByNumeric(999)
	require.True(t, ok)
	assert.Equal(t, "AAA", canonical.ID)

	// Stable across rebuilds of the bucket.
	r, err := r.SetWeight("ZZZ", 5)
	require.NoError(t, err)

	canonical, ok = r.ByNumeric(999)
	require.True(t, ok)
	assert.Equal(t, "AAA", canonical.ID)
}

func TestRegistry_UnregisterPromotesNextMember(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("AAA", 999, 2))
	r = register(t, r, MustNew("BBB", 999, 2).WithWeight(5))
	r = register(t, r, MustNew("CCC", 999, 2).WithWeight(9))

	canonical, _ := r.ByNumeric(999)
	require.Equal(t, "AAA", canonical.ID)

	r, err := r.Unregister("AAA")
	require.NoError(t, err)

	canonical, ok := r.ByNumeric(999)
	require.True(t, ok)
	assert.Equal(t, "BBB", canonical.ID, "next-lowest weight is promoted")

	r, err = r.Unregister("BBB")
	require.NoError(t, err)

	r, err = r.Unregister("CCC")
	require.NoError(t, err)

	assert.Empty(t, r.NumericBucket(999), "last removal deletes the bucket key")
}

func TestRegistry_SetWeightReordersBuckets(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("AAA", 999, 2))
	r = register(t, r, MustNew("BBB", 999, 2))

	canonical, _ := r.ByNumeric(999)
	require.Equal(t, "AAA", canonical.ID)

	r, err := r.SetWeight("AAA", 20)
	require.NoError(t, err)

	canonical, _ = r.ByNumeric(999)
	assert.Equal(t, "BBB", canonical.ID)

	w, ok := r.WeightOf("AAA")
	require.True(t, ok)
	assert.Equal(t, 20, w)

	r, err = r.ClearWeight("AAA")
	require.NoError(t, err)

	_, ok = r.WeightOf("AAA")
	assert.False(t, ok, "absence means weight zero")

	canonical, _ = r.ByNumeric(999)
	assert.Equal(t, "AAA", canonical.ID, "cleared weight falls back to zero and id order")
}

func TestRegistry_SetWeightUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().SetWeight("XXX", 1)
	assertCode(t, err, bankster.ErrorNotFound)

	_, err = NewRegistry().ClearWeight("XXX")
	assertCode(t, err, bankster.ErrorNotFound)
}

func TestRegistry_EffectiveWeight(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	adHoc := MustNew("PLN", 985, 2).WithWeight(7)

	assert.Equal(t, 0, r.EffectiveWeight(MustNew("EUR", 978, 2)), "registered without explicit weight")
	assert.Equal(t, 7, r.EffectiveWeight(adHoc), "ad-hoc hint applies when unregistered")

	r, err := r.SetWeight("EUR", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.EffectiveWeight(MustNew("EUR", 978, 2).WithWeight(9)), "side-table wins over the hint")
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestRegistry_UpdatePreservesTraits(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	r, err := r.AddTraits("EUR", "major", "reserve")
	require.NoError(t, err)

	r, err = r.Update(Registration{Currency: MustNewWith("EUR", 978, 4, "", "")})
	require.NoError(t, err)

	c, ok := r.ByID("EUR")
	require.True(t, ok)
	assert.Equal(t, int32(4), c.Scale)
	assert.Equal(t, []string{"major", "reserve"}, r.TraitsOf("EUR"))
}

func TestRegistry_UpdateUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Update(Registration{Currency: MustNew("EUR", 978, 2)})
	assertCode(t, err, bankster.ErrorNotFound)
}

// ---------------------------------------------------------------------------
// Countries, localized data, traits
// ---------------------------------------------------------------------------

func TestRegistry_CountriesAreExclusive(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))
	r = register(t, r, MustNew("HRK", 191, 2))

	r, err := r.AddCountries("HRK", "HR")
	require.NoError(t, err)

	r, err = r.AddCountries("EUR", "hr")
	require.NoError(t, err)

	owner, ok := r.CurrencyOfCountry("HR")
	require.True(t, ok)
	assert.Equal(t, "EUR", owner.ID, "a country has exactly one currency")
	assert.Empty(t, r.CountriesOf("HRK"))

	r = r.RemoveCountries("HR")
	_, ok = r.CurrencyOfCountry("HR")
	assert.False(t, ok)
	assert.Empty(t, r.CountriesOf("EUR"))
}

func TestRegistry_Localized(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	r, err := r.SetLocalized("EUR", "pl", map[string]string{"name": "euro", "symbol": "€"})
	require.NoError(t, err)

	props := r.LocalizedOf("EUR", "pl")
	assert.Equal(t, "euro", props["name"])
	assert.Nil(t, r.LocalizedOf("EUR", "de"))

	r, err = r.RemoveLocalized("EUR", "pl")
	require.NoError(t, err)
	assert.Nil(t, r.LocalizedOf("EUR", "pl"))
}

func TestRegistry_Traits(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	r, err := r.AddTraits("EUR", "major")
	require.NoError(t, err)
	assert.True(t, r.HasTrait("EUR", "major"))

	r, err = r.RemoveTraits("EUR", "major")
	require.NoError(t, err)
	assert.False(t, r.HasTrait("EUR", "major"))
	assert.Empty(t, r.TraitsOf("EUR"))

	_, err = r.AddTraits("XXX", "minor")
	assertCode(t, err, bankster.ErrorNotFound)
}

func TestRegistry_TraitHierarchy(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNew("EUR", 978, 2))

	r, err := r.DeriveIn(AxisTraits, "reserve", "important")
	require.NoError(t, err)

	r, err = r.AddTraits("EUR", "reserve")
	require.NoError(t, err)

	assert.True(t, r.HasTrait("EUR", "reserve"))
	assert.True(t, r.HasTrait("EUR", "important"), "hierarchy makes the ancestor trait apply")
	assert.False(t, r.HasTrait("EUR", "exotic"))
}

func TestRegistry_KindAndDomainHierarchies(t *testing.T) {
	t.Parallel()

	r := register(t, NewRegistry(), MustNewWith("crypto/ETH", NoNumeric, scale.Auto, "", KindDecentralized))

	r, err := r.DeriveIn(AxisKind, KindDecentralized, KindCrypto)
	require.NoError(t, err)

	c, _ := r.ByID("crypto/ETH")
	assert.True(t, r.Kindred(c, KindDecentralized))
	assert.True(t, r.Kindred(c, KindCrypto))
	assert.False(t, r.Kindred(c, KindFiat))

	assert.True(t, r.InDomain(c, "CRYPTO"))
	assert.Equal(t, []string{KindCrypto}, r.AncestorsIn(AxisKind, KindDecentralized))
}

// ---------------------------------------------------------------------------
// Seeds, version, ext
// ---------------------------------------------------------------------------

func TestFromSeed(t *testing.T) {
	t.Parallel()

	r, err := FromSeed(Seed{
		Currencies: []Currency{
			MustNew("EUR", 978, 2),
			MustNew("USD", 840, 2),
		},
		Countries: map[string]string{"DE": "EUR", "US": "USD"},
		Localized: map[string]map[string]map[string]string{
			"EUR": {"en": {"name": "Euro"}},
		},
		Traits:  map[string][]string{"EUR": {"major"}},
		Weights: map[string]int{"USD": -1},
		Hierarchies: map[string][]Derivation{
			AxisTraits: {{Child: "major", Parent: "reserve"}},
		},
		Version: "seed-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "seed-1", r.Version())

	owner, ok := r.CurrencyOfCountry("DE")
	require.True(t, ok)
	assert.Equal(t, "EUR", owner.ID)

	assert.Equal(t, "Euro", r.LocalizedOf("EUR", "en")["name"])
	assert.True(t, r.HasTrait("EUR", "major"))
	assert.True(t, r.HasTrait("EUR", "reserve"), "seeded hierarchy edge applies")

	w, ok := r.WeightOf("USD")
	require.True(t, ok)
	assert.Equal(t, -1, w)
}

func TestRegistry_VersionAndExt(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.NotEmpty(t, r.Version(), "fresh registries get a generated provenance tag")

	tagged := r.WithVersion("v7").WithExt("source", "unit-test")
	assert.Equal(t, "v7", tagged.Version())

	v, ok := tagged.Ext("source")
	require.True(t, ok)
	assert.Equal(t, "unit-test", v)

	_, ok = r.Ext("source")
	assert.False(t, ok)
}
