package money

import (
	"github.com/shopspring/decimal"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/currency"
	"github.com/randomseed-io/bankster-sub000/scale"
)

// Add sums monies of the same currency. With a single operand it is the
// identity; with none it returns a currencyless zero, the Go rendering of a
// plain decimal zero.
func Add(ms ...Money) (Money, error) {
	if len(ms) == 0 {
		return Money{amount: decimal.Zero}, nil
	}

	first := ms[0]
	sum := first.amount

	for _, m := range ms[1:] {
		if !first.cur.Compatible(m.cur) {
			return Money{}, mismatch(first.cur, m.cur)
		}

		sum = sum.Add(m.amount)
	}

	return Money{cur: first.cur, amount: sum}, nil
}

// Sub subtracts monies of the same currency from the first operand. A single
// operand negates.
func Sub(ms ...Money) (Money, error) {
	if len(ms) == 0 {
		return Money{}, bankster.NewError(bankster.ErrorMalformedInput, "operands", "sub requires at least one operand")
	}

	first := ms[0]
	if len(ms) == 1 {
		return first.Neg(), nil
	}

	diff := first.amount

	for _, m := range ms[1:] {
		if !first.cur.Compatible(m.cur) {
			return Money{}, mismatch(first.cur, m.cur)
		}

		diff = diff.Sub(m.amount)
	}

	return Money{cur: first.cur, amount: diff}, nil
}

// Mul multiplies a money by a plain number and rescales the result to the
// currency's scale using the effective rounding mode. Multiplying two monies
// has no meaningful unit and is not provided.
func Mul(m Money, n decimal.Decimal, rounding ...scale.RoundingMode) (Money, error) {
	product, err := scale.Apply(m.amount.Mul(n), m.cur.Scale, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: product}, nil
}

// MulScaled multiplies a money by a plain number and rescales the result to
// an explicit target scale instead of the currency's.
func MulScaled(m Money, n decimal.Decimal, target int32, rounding ...scale.RoundingMode) (Money, error) {
	product, err := scale.Apply(m.amount.Mul(n), target, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: product}, nil
}

// Div divides a money by a plain number and rescales the result to the
// currency's scale. A zero divisor fails with a division-by-zero error.
func Div(m Money, n decimal.Decimal, rounding ...scale.RoundingMode) (Money, error) {
	if n.IsZero() {
		return Money{}, bankster.NewError(bankster.ErrorDivisionByZero, "divisor", "division by zero")
	}

	quotient, err := scale.Apply(m.amount.Div(n), m.cur.Scale, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: quotient}, nil
}

// DivScaled divides a money by a plain number and rescales the result to an
// explicit target scale.
func DivScaled(m Money, n decimal.Decimal, target int32, rounding ...scale.RoundingMode) (Money, error) {
	if n.IsZero() {
		return Money{}, bankster.NewError(bankster.ErrorDivisionByZero, "divisor", "division by zero")
	}

	quotient, err := scale.Apply(m.amount.Div(n), target, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: quotient}, nil
}

// DivMoney divides a money by a money of the same currency, yielding a plain
// decimal ratio, not a Money.
func DivMoney(m, divisor Money) (decimal.Decimal, error) {
	if !m.cur.Compatible(divisor.cur) {
		return decimal.Zero, mismatch(m.cur, divisor.cur)
	}

	if divisor.amount.IsZero() {
		return decimal.Zero, bankster.NewError(bankster.ErrorDivisionByZero, "divisor", "division by zero")
	}

	return m.amount.Div(divisor.amount), nil
}

// Rem returns the remainder of dividing a money by a plain number, rescaled
// to the currency's scale.
func Rem(m Money, n decimal.Decimal, rounding ...scale.RoundingMode) (Money, error) {
	if n.IsZero() {
		return Money{}, bankster.NewError(bankster.ErrorDivisionByZero, "divisor", "division by zero")
	}

	remainder, err := scale.Apply(m.amount.Mod(n), m.cur.Scale, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: remainder}, nil
}

// RemMoney returns the remainder of dividing a money by a money of the same
// currency as a plain decimal.
func RemMoney(m, divisor Money) (decimal.Decimal, error) {
	if !m.cur.Compatible(divisor.cur) {
		return decimal.Zero, mismatch(m.cur, divisor.cur)
	}

	if divisor.amount.IsZero() {
		return decimal.Zero, bankster.NewError(bankster.ErrorDivisionByZero, "divisor", "division by zero")
	}

	return m.amount.Mod(divisor.amount), nil
}

// Round rescales the money's amount to the given number of fractional
// digits. It is the identity when the amount already has that scale and
// fails with an inexact-rounding error when rounding is disallowed but
// required.
func Round(m Money, target int32, rounding ...scale.RoundingMode) (Money, error) {
	if target != scale.Auto && scale.Of(m.amount) == target {
		return m, nil
	}

	rounded, err := scale.Apply(m.amount, target, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: rounded}, nil
}

// RoundTo rounds the money's amount to the nearest multiple of the
// interval's amount. The interval must share the money's currency; a zero
// interval is the identity.
func RoundTo(m Money, interval Money, rounding ...scale.RoundingMode) (Money, error) {
	if interval.amount.IsZero() {
		return m, nil
	}

	if !m.cur.Compatible(interval.cur) {
		return Money{}, mismatch(m.cur, interval.cur)
	}

	steps, err := scale.Apply(m.amount.Div(interval.amount), 0, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	rounded, err := scale.Apply(steps.Mul(interval.amount), m.cur.Scale, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: m.cur, amount: rounded}, nil
}

// Convert produces a money in the target currency whose amount is the
// original amount multiplied by rate, scaled to the target currency's scale.
// Conversion is a pure scale and amount substitution, not a rate service.
func Convert(m Money, target currency.Currency, rate decimal.Decimal, rounding ...scale.RoundingMode) (Money, error) {
	if err := target.Validate(); err != nil {
		return Money{}, err
	}

	converted, err := scale.Apply(m.amount.Mul(rate), target.Scale, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: target, amount: converted}, nil
}
