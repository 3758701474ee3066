package currency

import (
	"strconv"
	"strings"

	xcurrency "golang.org/x/text/currency"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/log"
)

// Spec is the structural resolution input: a bag of hints, any subset of
// which may be set. String fields are absent when empty; numeric fields are
// absent when nil. A resolved candidate contradicting any present hint makes
// the match fail softly.
type Spec struct {
	ID      string
	Code    string
	Numeric *int64
	Scale   *int32
	Domain  string
	Kind    string
	Weight  *int
}

// Ref is the closed set of resolution input variants. Values are produced by
// AsRef; external packages cannot add variants.
type Ref interface {
	isRef()
}

type currencyRef struct{ c Currency }
type idRef struct{ id string }
type numericRef struct{ code int64 }
type unitRef struct{ unit xcurrency.Unit }
type specRef struct{ spec Spec }

func (currencyRef) isRef() {}
func (idRef) isRef()       {}
func (numericRef) isRef()  {}
func (unitRef) isRef()     {}
func (specRef) isRef()     {}

// AsRef converts a heterogeneous input into a resolution variant. Supported
// shapes: Currency (value or pointer), identifier or textual/numeric code
// strings, integer numeric codes, platform currency units
// (golang.org/x/text/currency.Unit), and Spec hint bags. Anything else fails
// with a malformed-input error.
func AsRef(input any) (Ref, error) {
	switch v := input.(type) {
	case Ref:
		return v, nil
	case Currency:
		return currencyRef{c: v}, nil
	case *Currency:
		if v == nil {
			return nil, bankster.NewError(bankster.ErrorMalformedInput, "input", "nil currency")
		}

		return currencyRef{c: *v}, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, bankster.NewError(bankster.ErrorMalformedInput, "input", "empty identifier")
		}

		if numeric, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return numericRef{code: numeric}, nil
		}

		return idRef{id: trimmed}, nil
	case int:
		return numericRef{code: int64(v)}, nil
	case int32:
		return numericRef{code: int64(v)}, nil
	case int64:
		return numericRef{code: v}, nil
	case xcurrency.Unit:
		return unitRef{unit: v}, nil
	case Spec:
		return specRef{spec: v}, nil
	case *Spec:
		if v == nil {
			return nil, bankster.NewError(bankster.ErrorMalformedInput, "input", "nil spec")
		}

		return specRef{spec: *v}, nil
	default:
		return nil, bankster.Errorf(bankster.ErrorMalformedInput, "input", "unsupported resolution input %T", input)
	}
}

// Definitive reports whether the input alone carries enough structural
// information to be treated as the currency itself, requiring no registry.
// Currencies always qualify; a Spec qualifies with an identifier, a domain,
// and a numeric or scale hint.
func Definitive(input any) bool {
	ref, err := AsRef(input)
	if err != nil {
		return false
	}

	switch v := ref.(type) {
	case currencyRef:
		return true
	case specRef:
		return v.spec.ID != "" && v.spec.Domain != "" && (v.spec.Numeric != nil || v.spec.Scale != nil)
	default:
		return false
	}
}

// Resolve turns an input into a canonical currency. The boolean is false
// when nothing matches; the error is non-nil only for structurally malformed
// input, never for "not found".
func (r *Registry) Resolve(input any) (Currency, bool, error) {
	ref, err := AsRef(input)
	if err != nil {
		return Currency{}, false, err
	}

	switch v := ref.(type) {
	case currencyRef:
		return v.c, true, nil
	case idRef:
		c, ok := r.resolveID(v.id)
		return c, ok, nil
	case numericRef:
		c, ok := r.resolveNumeric(v.code)
		return c, ok, nil
	case unitRef:
		c, ok := r.resolveISOCode(v.unit.String())
		return c, ok, nil
	case specRef:
		return r.resolveSpec(v.spec)
	default:
		return Currency{}, false, bankster.Errorf(bankster.ErrorMalformedInput, "input", "unsupported resolution variant %T", ref)
	}
}

// ResolveAll returns every currency that could plausibly match the input,
// ordered as the underlying buckets are. It returns nil, not an empty slice,
// when nothing matches.
func (r *Registry) ResolveAll(input any) ([]Currency, error) {
	ref, err := AsRef(input)
	if err != nil {
		return nil, err
	}

	switch v := ref.(type) {
	case currencyRef:
		return []Currency{v.c}, nil
	case idRef:
		return r.resolveAllID(v.id), nil
	case numericRef:
		return r.NumericBucket(v.code), nil
	case unitRef:
		return r.resolveAllISOCode(v.unit.String()), nil
	case specRef:
		return r.resolveAllSpec(v.spec)
	default:
		return nil, bankster.Errorf(bankster.ErrorMalformedInput, "input", "unsupported resolution variant %T", ref)
	}
}

// Get is the strict lookup: it fails with a not-found error when the input
// does not resolve to a currency.
func (r *Registry) Get(input any) (Currency, error) {
	c, ok, err := r.Resolve(input)
	if err != nil {
		return Currency{}, err
	}

	if !ok {
		return Currency{}, bankster.Errorf(bankster.ErrorNotFound, "input", "cannot resolve %v to a currency", input)
	}

	return c, nil
}

// Defined reports whether the input resolves to a currency registered here.
func (r *Registry) Defined(input any) bool {
	c, ok, err := r.Resolve(input)
	if err != nil || !ok {
		return false
	}

	_, registered := r.byID[c.ID]

	return registered
}

// Present reports whether the input resolves to a currency registered here
// with an equal value. For Currency inputs this detects stale or ad-hoc
// instances that shadow a different registered definition.
func (r *Registry) Present(input any) bool {
	c, ok, err := r.Resolve(input)
	if err != nil || !ok {
		return false
	}

	registered, exists := r.byID[c.ID]

	return exists && registered.Equal(c)
}

// IDOf returns the canonical identifier the input resolves to.
func (r *Registry) IDOf(input any) (string, bool) {
	c, ok, err := r.Resolve(input)
	if err != nil || !ok {
		return "", false
	}

	return c.ID, true
}

// ---------------------------------------------------------------------------
// Per-variant resolution
// ---------------------------------------------------------------------------

func (r *Registry) resolveID(id string) (Currency, bool) {
	ns := namespaceOf(id)

	// An ISO namespace tag selects ISO currencies regardless of letter case.
	if ns != "" && strings.EqualFold(ns, DomainISO) {
		return r.resolveISOCode(codeOf(id))
	}

	if c, ok := r.byID[id]; ok {
		return c, ok
	}

	if ns != "" {
		return Currency{}, false
	}

	// A bare code may resolve to a namespaced currency when that is the
	// lowest-weight currency registered under the code.
	if bucket := r.codeBuckets[id]; len(bucket) > 0 {
		return bucket[0], true
	}

	return Currency{}, false
}

func (r *Registry) resolveAllID(id string) []Currency {
	ns := namespaceOf(id)

	if ns != "" && strings.EqualFold(ns, DomainISO) {
		return r.resolveAllISOCode(codeOf(id))
	}

	if ns != "" {
		if c, ok := r.byID[id]; ok {
			return []Currency{c}
		}

		return nil
	}

	if bucket := r.codeBuckets[id]; len(bucket) > 0 {
		return cloneSlice(bucket)
	}

	return nil
}

func (r *Registry) resolveISOCode(code string) (Currency, bool) {
	code = strings.ToUpper(code)

	if c, ok := r.byID[code]; ok && c.IsISO() {
		return c, true
	}

	for _, c := range r.codeBuckets[code] {
		if c.IsISO() {
			return c, true
		}
	}

	return Currency{}, false
}

func (r *Registry) resolveAllISOCode(code string) []Currency {
	code = strings.ToUpper(code)

	var out []Currency

	for _, c := range r.codeBuckets[code] {
		if c.IsISO() {
			out = append(out, c)
		}
	}

	return out
}

func (r *Registry) resolveNumeric(numeric int64) (Currency, bool) {
	if c, ok := r.byNumeric[numeric]; ok {
		return c, true
	}

	// The canonical numeric index and its bucket are maintained together;
	// a populated bucket without a canonical entry is a detectable
	// inconsistency. Fall back to the bucket and warn instead of failing.
	if bucket := r.numericBuckets[numeric]; len(bucket) > 0 {
		warn("numeric index inconsistency: canonical entry missing, falling back to bucket",
			log.Int64("numeric", numeric),
			log.String("fallback", bucket[0].ID),
			log.String("registry", r.version),
		)

		return bucket[0], true
	}

	return Currency{}, false
}

func (r *Registry) resolveSpec(spec Spec) (Currency, bool, error) {
	c, ok, err := r.resolveSpecBase(spec)
	if err != nil || !ok {
		return Currency{}, false, err
	}

	if !r.specMatches(spec, c) {
		return Currency{}, false, nil
	}

	return c, true, nil
}

func (r *Registry) resolveAllSpec(spec Spec) ([]Currency, error) {
	candidates, err := r.resolveAllSpecBase(spec)
	if err != nil {
		return nil, err
	}

	var out []Currency

	for _, c := range candidates {
		if r.specMatches(spec, c) {
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *Registry) resolveSpecBase(spec Spec) (Currency, bool, error) {
	switch {
	case spec.ID != "":
		c, ok := r.resolveID(spec.ID)
		return c, ok, nil
	case spec.Code != "":
		c, ok := r.resolveID(spec.Code)
		return c, ok, nil
	case spec.Numeric != nil:
		c, ok := r.resolveNumeric(*spec.Numeric)
		return c, ok, nil
	default:
		return Currency{}, false, bankster.NewError(
			bankster.ErrorMalformedInput,
			"spec",
			"spec needs an id, code, or numeric hint to resolve",
		)
	}
}

func (r *Registry) resolveAllSpecBase(spec Spec) ([]Currency, error) {
	switch {
	case spec.ID != "":
		return r.resolveAllID(spec.ID), nil
	case spec.Code != "":
		return r.resolveAllID(spec.Code), nil
	case spec.Numeric != nil:
		return r.NumericBucket(*spec.Numeric), nil
	default:
		return nil, bankster.NewError(
			bankster.ErrorMalformedInput,
			"spec",
			"spec needs an id, code, or numeric hint to resolve",
		)
	}
}

// specMatches verifies that no present hint contradicts the resolved
// currency's properties. Contradictions fail the match; they never throw.
func (r *Registry) specMatches(spec Spec, c Currency) bool {
	if spec.ID != "" && spec.ID != c.ID && !isoAlias(spec.ID, c) {
		return false
	}

	if spec.Code != "" && spec.Code != c.Code() {
		return false
	}

	if spec.Numeric != nil && *spec.Numeric != c.Numeric {
		return false
	}

	if spec.Scale != nil && *spec.Scale != c.Scale {
		return false
	}

	if spec.Domain != "" && !strings.EqualFold(spec.Domain, c.Domain) {
		return false
	}

	if spec.Kind != "" && !strings.EqualFold(spec.Kind, c.Kind) {
		return false
	}

	if spec.Weight != nil && *spec.Weight != r.EffectiveWeight(c) {
		return false
	}

	return true
}

// isoAlias reports whether a hint identifier of the form "iso-4217/XXX"
// names the same ISO currency as c, honoring the case-insensitive namespace
// rule used during resolution.
func isoAlias(id string, c Currency) bool {
	ns := namespaceOf(id)
	if ns == "" || !strings.EqualFold(ns, DomainISO) {
		return false
	}

	return c.IsISO() && strings.EqualFold(codeOf(id), c.ID)
}
