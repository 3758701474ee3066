package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/scale"
)

// ---------------------------------------------------------------------------
// Add / Sub
// ---------------------------------------------------------------------------

func TestAdd(t *testing.T) {
	t.Parallel()

	m1 := eurM(t, "10.00")
	m2 := eurM(t, "2.50")
	m3 := eurM(t, "0.25")

	sum, err := Add(m1, m2, m3)
	require.NoError(t, err)
	assert.Equal(t, "EUR 12.75", sum.String())

	// Commutativity.
	reversed, err := Add(m3, m2, m1)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(reversed.Amount()))

	// Single operand is the identity.
	same, err := Add(m1)
	require.NoError(t, err)
	assert.True(t, same.Amount().Equal(m1.Amount()))
}

func TestAdd_NoOperandsIsCurrencylessZero(t *testing.T) {
	t.Parallel()

	zero, err := Add()
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.True(t, zero.Currency().IsZero())
	assert.Equal(t, "0", zero.String())
}

func TestAdd_Mismatch(t *testing.T) {
	t.Parallel()

	m1 := eurM(t, "10.00")
	m2 := MustNew(usd, dec(t, "10.00"))

	_, err := Add(m1, m2)
	assertMismatch(t, err, eur, usd)
}

func TestSub(t *testing.T) {
	t.Parallel()

	m1 := eurM(t, "10.00")
	m2 := eurM(t, "2.50")

	diff, err := Sub(m1, m2)
	require.NoError(t, err)
	assert.Equal(t, "EUR 7.50", diff.String())

	// sub(add(m1, m2), m2) == m1.
	sum, err := Add(m1, m2)
	require.NoError(t, err)
	back, err := Sub(sum, m2)
	require.NoError(t, err)
	assert.True(t, back.Amount().Equal(m1.Amount()))

	// Single operand negates.
	neg, err := Sub(m1)
	require.NoError(t, err)
	assert.Equal(t, "EUR -10.00", neg.String())

	_, err = Sub()
	assertCode(t, err, bankster.ErrorMalformedInput)

	_, err = Sub(m1, MustNew(usd, dec(t, "1")))
	assertMismatch(t, err, eur, usd)
}

// ---------------------------------------------------------------------------
// Mul / Div / Rem
// ---------------------------------------------------------------------------

func TestMul(t *testing.T) {
	t.Parallel()

	m := eurM(t, "10.00")

	tripled, err := Mul(m, dec(t, "3"))
	require.NoError(t, err)
	assert.Equal(t, "EUR 30.00", tripled.String())

	// Inexact product needs an explicit mode.
	_, err = Mul(m, dec(t, "0.0001"))
	assertCode(t, err, bankster.ErrorInexactRounding)

	rounded, err := Mul(m, dec(t, "0.0001"), scale.HalfUp)
	require.NoError(t, err)
	assert.Equal(t, "EUR 0.00", rounded.String())

	wide, err := MulScaled(m, dec(t, "0.0001"), 4)
	require.NoError(t, err)
	assert.Equal(t, "EUR 0.0010", wide.String())
}

func TestDiv(t *testing.T) {
	t.Parallel()

	m := eurM(t, "10.00")

	half, err := Div(m, dec(t, "2"))
	require.NoError(t, err)
	assert.Equal(t, "EUR 5.00", half.String())

	_, err = Div(m, dec(t, "3"))
	assertCode(t, err, bankster.ErrorInexactRounding)

	third, err := Div(m, dec(t, "3"), scale.HalfEven)
	require.NoError(t, err)
	assert.Equal(t, "EUR 3.33", third.String())

	fine, err := DivScaled(m, dec(t, "8"), 3)
	require.NoError(t, err)
	assert.Equal(t, "EUR 1.250", fine.String())

	_, err = Div(m, decimal.Zero)
	assertCode(t, err, bankster.ErrorDivisionByZero)
}

func TestDivMoney_ReturnsPlainDecimal(t *testing.T) {
	t.Parallel()

	m1 := eurM(t, "10.00")
	m2 := eurM(t, "2.50")

	ratio, err := DivMoney(m1, m2)
	require.NoError(t, err)
	assert.True(t, ratio.Equal(dec(t, "4")))

	_, err = DivMoney(m1, Zero(eur))
	assertCode(t, err, bankster.ErrorDivisionByZero)

	_, err = DivMoney(m1, MustNew(usd, dec(t, "2.50")))
	assertMismatch(t, err, eur, usd)
}

func TestRem(t *testing.T) {
	t.Parallel()

	m := eurM(t, "10.00")

	r, err := Rem(m, dec(t, "3"))
	require.NoError(t, err)
	assert.Equal(t, "EUR 1.00", r.String())

	_, err = Rem(m, decimal.Zero)
	assertCode(t, err, bankster.ErrorDivisionByZero)

	rm, err := RemMoney(m, eurM(t, "3.00"))
	require.NoError(t, err)
	assert.True(t, rm.Equal(dec(t, "1")))

	_, err = RemMoney(m, MustNew(usd, dec(t, "3")))
	assertMismatch(t, err, eur, usd)
}

// ---------------------------------------------------------------------------
// Round / RoundTo / Convert
// ---------------------------------------------------------------------------

func TestRound(t *testing.T) {
	t.Parallel()

	m := eurM(t, "10.00")

	// Identity at the amount's own scale, even without a rounding mode.
	same, err := Round(m, 2)
	require.NoError(t, err)
	assert.True(t, same.Amount().Equal(m.Amount()))

	coarse, err := Round(m, 0)
	require.NoError(t, err)
	assert.Equal(t, "EUR 10", coarse.String())

	_, err = Round(eurM(t, "10.05"), 1)
	assertCode(t, err, bankster.ErrorInexactRounding)

	up, err := Round(eurM(t, "10.05"), 1, scale.Ceiling)
	require.NoError(t, err)
	assert.Equal(t, "EUR 10.1", up.String())

	// Round is idempotent once the target scale is reached.
	again, err := Round(up, 1, scale.Ceiling)
	require.NoError(t, err)
	assert.True(t, again.Amount().Equal(up.Amount()))
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	m := eurM(t, "10.12")
	nickel := eurM(t, "0.05")

	rounded, err := RoundTo(m, nickel, scale.HalfUp)
	require.NoError(t, err)
	assert.Equal(t, "EUR 10.10", rounded.String())

	// Zero interval is the identity.
	same, err := RoundTo(m, Zero(eur))
	require.NoError(t, err)
	assert.True(t, same.Amount().Equal(m.Amount()))

	_, err = RoundTo(m, MustNew(usd, dec(t, "0.05")), scale.HalfUp)
	assertMismatch(t, err, eur, usd)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	m := eurM(t, "10.00")

	converted, err := Convert(m, jpy, dec(t, "161.2"), scale.HalfEven)
	require.NoError(t, err)
	assert.Equal(t, "JPY 1612", converted.String())

	_, err = Convert(m, jpy, dec(t, "161.25"))
	assertCode(t, err, bankster.ErrorInexactRounding)
}

func TestDefaultRoundingApplies(t *testing.T) {
	prev := scale.DefaultRounding()
	scale.SetDefaultRounding(scale.HalfUp)
	defer scale.SetDefaultRounding(prev)

	third, err := Div(eurM(t, "10.00"), dec(t, "3"))
	require.NoError(t, err)
	assert.Equal(t, "EUR 3.33", third.String())
}
