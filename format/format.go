// Package format renders monetary amounts as locale-specific display
// strings. It is the injected formatter collaborator of the money package,
// built on golang.org/x/text.
package format

import (
	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/randomseed-io/bankster-sub000/currency"
	"github.com/randomseed-io/bankster-sub000/money"
)

// Printer formats currency amounts for one locale.
type Printer struct {
	printer *message.Printer
}

// Compile-time assertion: *Printer implements money.Formatter.
var _ money.Formatter = (*Printer)(nil)

// New creates a printer for the given language tag.
func New(tag language.Tag) *Printer {
	return &Printer{printer: message.NewPrinter(tag)}
}

// Format renders the amount with the currency's locale-specific symbol when
// the currency is a known ISO unit, falling back to "ID amount" otherwise.
// Output is for display only; the exact amount stays in the Money value.
func (p *Printer) Format(c currency.Currency, amount decimal.Decimal) string {
	if !c.IsISO() {
		return fallback(c, amount)
	}

	unit, err := xcurrency.ParseISO(c.Code())
	if err != nil {
		return fallback(c, amount)
	}

	value, _ := amount.Float64()

	return p.printer.Sprintf("%v", xcurrency.Symbol(unit.Amount(value)))
}

func fallback(c currency.Currency, amount decimal.Decimal) string {
	if c.ID == "" {
		return amount.String()
	}

	return c.ID + " " + amount.String()
}
