package money

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/currency"
	"github.com/randomseed-io/bankster-sub000/scale"
)

// Money is an immutable pair of a currency and an exact decimal amount.
// The amount is normalized to the currency's scale at construction; an
// auto-scaled currency preserves the amount's natural precision.
type Money struct {
	cur    currency.Currency
	amount decimal.Decimal
}

// MismatchError reports an operation across incompatible currencies. It
// carries both operands and matches bankster.ErrorCurrencyMismatch through
// errors.As via Unwrap.
type MismatchError struct {
	Left  currency.Currency
	Right currency.Currency
}

// Error returns the formatted mismatch message.
func (e MismatchError) Error() string {
	return fmt.Sprintf("%s: incompatible currencies %s and %s",
		bankster.ErrorCurrencyMismatch, e.Left, e.Right)
}

// Unwrap exposes the underlying domain error for code matching.
func (e MismatchError) Unwrap() error {
	return bankster.Errorf(
		bankster.ErrorCurrencyMismatch,
		"currency",
		"incompatible currencies %s and %s", e.Left, e.Right,
	)
}

func mismatch(left, right currency.Currency) error {
	return MismatchError{Left: left, Right: right}
}

// New creates a Money of the given currency, normalizing amount to the
// currency's scale. An inexact normalization uses the supplied rounding
// mode, falling back to the process default.
func New(c currency.Currency, amount decimal.Decimal, rounding ...scale.RoundingMode) (Money, error) {
	if err := c.Validate(); err != nil {
		return Money{}, err
	}

	normalized, err := scale.Apply(amount, c.Scale, scale.ResolveRounding(rounding...))
	if err != nil {
		return Money{}, err
	}

	return Money{cur: c, amount: normalized}, nil
}

// MustNew is New, panicking on error. Intended for tests and constants.
func MustNew(c currency.Currency, amount decimal.Decimal, rounding ...scale.RoundingMode) Money {
	m, err := New(c, amount, rounding...)
	if err != nil {
		panic(err)
	}

	return m
}

// FromString creates a Money from a decimal string amount.
func FromString(c currency.Currency, amount string, rounding ...scale.RoundingMode) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, bankster.Errorf(bankster.ErrorMalformedInput, "amount", "cannot parse amount %q: %v", amount, err)
	}

	return New(c, d, rounding...)
}

// FromInt creates a Money from an integer amount of major units.
func FromInt(c currency.Currency, amount int64, rounding ...scale.RoundingMode) (Money, error) {
	return New(c, decimal.NewFromInt(amount), rounding...)
}

// Zero returns the zero amount of a currency.
func Zero(c currency.Currency) Money {
	m, err := New(c, decimal.Zero)
	if err != nil {
		return Money{cur: c, amount: decimal.Zero}
	}

	return m
}

// Of creates a Money resolving the currency input through the registry in
// effect for ctx (context override or process default). Unresolvable
// currencies are an error: construction requires an authoritative currency.
func Of(ctx context.Context, input any, amount decimal.Decimal, rounding ...scale.RoundingMode) (Money, error) {
	c, err := currency.Current(ctx).Get(input)
	if err != nil {
		return Money{}, err
	}

	return New(c, amount, rounding...)
}

// OfString is Of with a decimal string amount.
func OfString(ctx context.Context, input any, amount string, rounding ...scale.RoundingMode) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, bankster.Errorf(bankster.ErrorMalformedInput, "amount", "cannot parse amount %q: %v", amount, err)
	}

	return Of(ctx, input, d, rounding...)
}

// Currency returns the money's currency.
func (m Money) Currency() currency.Currency {
	return m.cur
}

// Amount returns the money's exact decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Rescaled reports whether the amount carries more fractional digits than
// the currency's nominal scale. It reports nothing determinate for
// auto-scaled currencies and returns false for them.
func (m Money) Rescaled() bool {
	if m.cur.IsAutoScaled() {
		return false
	}

	return scale.Of(m.amount) > m.cur.Scale
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Neg returns the money with its amount negated.
func (m Money) Neg() Money {
	return Money{cur: m.cur, amount: m.amount.Neg()}
}

// Abs returns the money with a non-negative amount.
func (m Money) Abs() Money {
	return Money{cur: m.cur, amount: m.amount.Abs()}
}

func (m Money) String() string {
	// StringFixed at the amount's own scale keeps trailing zeros that
	// decimal.String would trim.
	rendered := m.amount.StringFixed(scale.Of(m.amount))

	if m.cur.IsZero() {
		return rendered
	}

	return m.cur.ID + " " + rendered
}

// Formatter renders a currency and amount as a locale-specific display
// string. The core is agnostic to its implementation; see the format
// package for one built on golang.org/x/text.
type Formatter interface {
	Format(c currency.Currency, amount decimal.Decimal) string
}

// Format renders the money through an injected formatter.
func (m Money) Format(f Formatter) string {
	if f == nil {
		return m.String()
	}

	return f.Format(m.cur, m.amount)
}

type moneyJSON struct {
	Currency currency.Currency `json:"currency"`
	Amount   decimal.Decimal   `json:"amount"`
}

// MarshalJSON renders the money as a currency object plus amount string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Currency: m.cur, Amount: m.amount})
}

// UnmarshalJSON parses a money object, re-normalizing the amount to the
// currency's scale.
func (m *Money) UnmarshalJSON(data []byte) error {
	var in moneyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	parsed, err := New(in.Currency, in.Amount)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
