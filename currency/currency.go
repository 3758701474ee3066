package currency

import (
	"encoding/json"
	"strings"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/scale"
)

// NoNumeric is the sentinel numeric code for currencies without one.
const NoNumeric int64 = -1

// DomainISO is the domain tag of ISO-4217 currencies.
const DomainISO = "ISO-4217"

// Well-known currency kinds.
const (
	KindFiat          = "FIAT"
	KindFiduciary     = "FIDUCIARY"
	KindCombank       = "COMBANK"
	KindCommodity     = "COMMODITY"
	KindCrypto        = "CRYPTO"
	KindDecentralized = "DECENTRALIZED"
	KindExperimental  = "EXPERIMENTAL"
)

// Currency is an immutable description of one monetary unit.
//
// Weight is a registry tie-breaker hint and is not part of identity: Equal
// ignores it, and a registry's weight side-table overrides it once the
// currency is registered.
type Currency struct {
	ID      string
	Numeric int64
	Scale   int32
	Domain  string
	Kind    string
	Weight  int
}

// New creates a currency with the given identifier, numeric code, and scale,
// inferring the domain from the identifier's namespace or, for simple
// identifiers with a numeric code, from ISO-4217.
func New(id string, numeric int64, sc int32) (Currency, error) {
	return NewWith(id, numeric, sc, "", "")
}

// NewWith creates a currency with an explicit domain and kind. An empty
// domain triggers inference per New.
func NewWith(id string, numeric int64, sc int32, domain, kind string) (Currency, error) {
	c := Currency{
		ID:      strings.TrimSpace(id),
		Numeric: numeric,
		Scale:   sc,
		Domain:  strings.ToUpper(strings.TrimSpace(domain)),
		Kind:    strings.ToUpper(strings.TrimSpace(kind)),
	}

	if c.Domain == "" {
		c.Domain = inferDomain(c.ID, c.Numeric)
	}

	if err := c.Validate(); err != nil {
		return Currency{}, err
	}

	return c, nil
}

// MustNew is New, panicking on an invalid definition. Intended for seed data
// and tests.
func MustNew(id string, numeric int64, sc int32) Currency {
	c, err := New(id, numeric, sc)
	if err != nil {
		panic(err)
	}

	return c
}

// MustNewWith is NewWith, panicking on an invalid definition.
func MustNewWith(id string, numeric int64, sc int32, domain, kind string) Currency {
	c, err := NewWith(id, numeric, sc, domain, kind)
	if err != nil {
		panic(err)
	}

	return c
}

func inferDomain(id string, numeric int64) string {
	if ns := namespaceOf(id); ns != "" {
		return strings.ToUpper(ns)
	}

	if numeric != NoNumeric && numeric > 0 {
		return DomainISO
	}

	return ""
}

func namespaceOf(id string) string {
	if i := strings.IndexByte(id, '/'); i >= 0 {
		return id[:i]
	}

	return ""
}

func codeOf(id string) string {
	if i := strings.IndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}

	return id
}

// Validate checks the currency's structural constraints.
func (c Currency) Validate() error {
	if c.ID == "" {
		return bankster.NewError(bankster.ErrorInvalidCurrency, "id", "identifier is required")
	}

	if c.Code() == "" {
		return bankster.NewError(bankster.ErrorInvalidCurrency, "id", "identifier has an empty code part")
	}

	if c.Numeric != NoNumeric && c.Numeric <= 0 {
		return bankster.Errorf(bankster.ErrorInvalidCurrency, "numeric", "numeric code must be positive, got %d", c.Numeric)
	}

	if !scale.Valid(c.Scale) {
		return bankster.Errorf(bankster.ErrorInvalidCurrency, "scale", "scale must be non-negative or auto, got %d", c.Scale)
	}

	if c.Domain == DomainISO && c.IsNamespaced() {
		return bankster.Errorf(
			bankster.ErrorInvalidCurrency,
			"domain",
			"ISO-4217 currency %q must use a simple identifier", c.ID,
		)
	}

	return nil
}

// Namespace returns the namespace part of the identifier, or the empty
// string for simple identifiers.
func (c Currency) Namespace() string {
	return namespaceOf(c.ID)
}

// Code returns the unnamespaced code part of the identifier.
func (c Currency) Code() string {
	return codeOf(c.ID)
}

// IsNamespaced reports whether the identifier carries a namespace.
func (c Currency) IsNamespaced() bool {
	return namespaceOf(c.ID) != ""
}

// IsISO reports whether the currency belongs to the ISO-4217 domain.
func (c Currency) IsISO() bool {
	return c.Domain == DomainISO
}

// IsAutoScaled reports whether the currency has no forced scale.
func (c Currency) IsAutoScaled() bool {
	return c.Scale == scale.Auto
}

// HasNumeric reports whether the currency carries a numeric code.
func (c Currency) HasNumeric() bool {
	return c.Numeric != NoNumeric
}

// WithWeight returns a copy of the currency carrying the given weight hint.
func (c Currency) WithWeight(weight int) Currency {
	c.Weight = weight
	return c
}

// Equal reports whether two currencies describe the same monetary unit.
// Weight is excluded: it is registry metadata, not identity.
func (c Currency) Equal(other Currency) bool {
	return c.ID == other.ID &&
		c.Numeric == other.Numeric &&
		c.Scale == other.Scale &&
		c.Domain == other.Domain &&
		c.Kind == other.Kind
}

// Compatible reports whether currencies may participate in the same
// arithmetic operation: identical id, scale, domain, and kind.
func (c Currency) Compatible(other Currency) bool {
	return c.ID == other.ID &&
		c.Scale == other.Scale &&
		c.Domain == other.Domain &&
		c.Kind == other.Kind
}

// IsZero reports whether the currency is the zero value.
func (c Currency) IsZero() bool {
	return c == Currency{}
}

func (c Currency) String() string {
	return c.ID
}

type currencyJSON struct {
	ID      string `json:"id"`
	Numeric *int64 `json:"numeric,omitempty"`
	Scale   *int32 `json:"scale,omitempty"`
	Domain  string `json:"domain,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Weight  int    `json:"weight,omitempty"`
}

// MarshalJSON renders the currency as a flat object, omitting sentinel
// numeric and scale values.
func (c Currency) MarshalJSON() ([]byte, error) {
	out := currencyJSON{ID: c.ID, Domain: c.Domain, Kind: c.Kind, Weight: c.Weight}

	if c.Numeric != NoNumeric {
		out.Numeric = &c.Numeric
	}

	if c.Scale != scale.Auto {
		out.Scale = &c.Scale
	}

	return json.Marshal(out)
}

// UnmarshalJSON parses a currency object, applying the same inference and
// validation as NewWith.
func (c *Currency) UnmarshalJSON(data []byte) error {
	var in currencyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	numeric := NoNumeric
	if in.Numeric != nil {
		numeric = *in.Numeric
	}

	sc := scale.Auto
	if in.Scale != nil {
		sc = *in.Scale
	}

	parsed, err := NewWith(in.ID, numeric, sc, in.Domain, in.Kind)
	if err != nil {
		return err
	}

	*c = parsed.WithWeight(in.Weight)

	return nil
}
