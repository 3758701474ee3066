package currency

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/hierarchy"
)

// Hierarchy axes pre-seeded in every registry.
const (
	AxisDomain = "domain"
	AxisKind   = "kind"
	AxisTraits = "traits"
)

// Registry is an immutable, multiply-indexed store of currencies. All
// mutators return a new Registry; an installed Registry never changes, so
// concurrent readers always see a complete snapshot.
type Registry struct {
	byID              map[string]Currency
	byNumeric         map[int64]Currency
	numericBuckets    map[int64][]Currency
	codeBuckets       map[string][]Currency
	countryCurrency   map[string]Currency
	currencyCountries map[string]map[string]struct{}
	localized         map[string]map[string]map[string]string
	traits            map[string]map[string]struct{}
	weights           map[string]int
	hierarchies       map[string]*hierarchy.Graph
	ext               map[string]any
	version           string
}

// NewRegistry returns an empty registry with a generated version tag and the
// standard hierarchy axes.
func NewRegistry() *Registry {
	return &Registry{
		byID:              map[string]Currency{},
		byNumeric:         map[int64]Currency{},
		numericBuckets:    map[int64][]Currency{},
		codeBuckets:       map[string][]Currency{},
		countryCurrency:   map[string]Currency{},
		currencyCountries: map[string]map[string]struct{}{},
		localized:         map[string]map[string]map[string]string{},
		traits:            map[string]map[string]struct{}{},
		weights:           map[string]int{},
		hierarchies: map[string]*hierarchy.Graph{
			AxisDomain: hierarchy.New(),
			AxisKind:   hierarchy.New(),
			AxisTraits: hierarchy.New(),
		},
		ext:     map[string]any{},
		version: uuid.NewString(),
	}
}

// Seed is the registry-shaped structure supplied by an external loader.
type Seed struct {
	Currencies  []Currency
	Countries   map[string]string // country id -> currency id
	Localized   map[string]map[string]map[string]string
	Traits      map[string][]string
	Weights     map[string]int
	Hierarchies map[string][]Derivation // axis -> is-a edges
	Version     string
}

// Derivation is one "child is-a parent" edge of a seeded hierarchy axis.
type Derivation struct {
	Child  string
	Parent string
}

// FromSeed builds a registry from an externally supplied seed structure.
func FromSeed(seed Seed) (*Registry, error) {
	r := NewRegistry()

	if seed.Version != "" {
		r = r.WithVersion(seed.Version)
	}

	for _, c := range seed.Currencies {
		if w, ok := seed.Weights[c.ID]; ok {
			c = c.WithWeight(w)
		}

		next, err := r.Register(Registration{Currency: c})
		if err != nil {
			return nil, err
		}

		r = next
	}

	currencyCountries := map[string][]string{}
	for country, id := range seed.Countries {
		currencyCountries[id] = append(currencyCountries[id], country)
	}

	for id, countries := range currencyCountries {
		next, err := r.AddCountries(id, countries...)
		if err != nil {
			return nil, err
		}

		r = next
	}

	for id, locales := range seed.Localized {
		for locale, props := range locales {
			next, err := r.SetLocalized(id, locale, props)
			if err != nil {
				return nil, err
			}

			r = next
		}
	}

	for id, traits := range seed.Traits {
		next, err := r.AddTraits(id, traits...)
		if err != nil {
			return nil, err
		}

		r = next
	}

	for axis, edges := range seed.Hierarchies {
		for _, edge := range edges {
			next, err := r.DeriveIn(axis, edge.Child, edge.Parent)
			if err != nil {
				return nil, err
			}

			r = next
		}
	}

	return r, nil
}

// Registration bundles the inputs of a Register or Update call.
type Registration struct {
	Currency  Currency
	Countries []string
	Localized map[string]map[string]string
	Replace   bool
}

// Register adds a currency and its side-table entries. It fails with an
// already-exists error unless Replace is set, in which case every index is
// recomputed consistently.
func (r *Registry) Register(reg Registration) (*Registry, error) {
	c := reg.Currency
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, exists := r.byID[c.ID]; exists {
		if !reg.Replace {
			return nil, bankster.Errorf(bankster.ErrorAlreadyExists, "id", "currency %q is already registered", c.ID)
		}

		prev, err := r.Unregister(c.ID)
		if err != nil {
			return nil, err
		}

		r = prev
	}

	next := r.clone()
	next.byID = cloneMap(r.byID)
	next.byID[c.ID] = c

	if c.Weight != 0 {
		next.weights = cloneMap(r.weights)
		next.weights[c.ID] = c.Weight
	}

	next.reindex(c.Numeric, c.Code())

	out := next
	if len(reg.Countries) > 0 {
		withCountries, err := out.AddCountries(c.ID, reg.Countries...)
		if err != nil {
			return nil, err
		}

		out = withCountries
	}

	for locale, props := range reg.Localized {
		withLocalized, err := out.SetLocalized(c.ID, locale, props)
		if err != nil {
			return nil, err
		}

		out = withLocalized
	}

	return out, nil
}

// Update replaces an existing entry's currency value in place, restoring any
// traits already attached to the identifier. It fails with not-found when
// the identifier is absent.
func (r *Registry) Update(reg Registration) (*Registry, error) {
	id := reg.Currency.ID
	if _, exists := r.byID[id]; !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	traits := r.TraitsOf(id)
	reg.Replace = true

	next, err := r.Register(reg)
	if err != nil {
		return nil, err
	}

	// Trait restoration is deliberate: Register drops side-table entries of
	// the replaced identifier.
	if len(traits) > 0 {
		next, err = next.AddTraits(id, traits...)
		if err != nil {
			return nil, err
		}
	}

	return next, nil
}

// Unregister removes a currency from every index, promoting the next
// canonical bucket member where needed. It accepts a Currency or an
// identifier string and fails with not-found for unknown identifiers.
func (r *Registry) Unregister(input any) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	c, exists := r.byID[id]
	if !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	next := r.clone()

	next.byID = cloneMap(r.byID)
	delete(next.byID, id)

	if _, ok := r.weights[id]; ok {
		next.weights = cloneMap(r.weights)
		delete(next.weights, id)
	}

	if countries, ok := r.currencyCountries[id]; ok {
		next.currencyCountries = cloneMap(r.currencyCountries)
		delete(next.currencyCountries, id)

		next.countryCurrency = cloneMap(r.countryCurrency)
		for country := range countries {
			delete(next.countryCurrency, country)
		}
	}

	if _, ok := r.localized[id]; ok {
		next.localized = cloneMap(r.localized)
		delete(next.localized, id)
	}

	if _, ok := r.traits[id]; ok {
		next.traits = cloneMap(r.traits)
		delete(next.traits, id)
	}

	next.reindex(c.Numeric, c.Code())

	return next, nil
}

// SetWeight records an explicit weight for a registered currency and
// re-sorts the affected buckets.
func (r *Registry) SetWeight(input any, weight int) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	c, exists := r.byID[id]
	if !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	next := r.clone()
	next.weights = cloneMap(r.weights)
	next.weights[id] = weight
	next.reindex(c.Numeric, c.Code())

	return next, nil
}

// ClearWeight removes the explicit weight of a registered currency, making
// its effective weight zero again.
func (r *Registry) ClearWeight(input any) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	c, exists := r.byID[id]
	if !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	next := r.clone()
	next.weights = cloneMap(r.weights)
	delete(next.weights, id)
	next.reindex(c.Numeric, c.Code())

	return next, nil
}

// AddCountries assigns countries to a registered currency. A country has
// exactly one currency: an assignment steals the country from any previous
// owner.
func (r *Registry) AddCountries(input any, countries ...string) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	c, exists := r.byID[id]
	if !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	if len(countries) == 0 {
		return r, nil
	}

	next := r.clone()
	next.countryCurrency = cloneMap(r.countryCurrency)
	next.currencyCountries = cloneMap(r.currencyCountries)

	owned := cloneSet(next.currencyCountries[id])

	for _, country := range countries {
		country = strings.ToUpper(strings.TrimSpace(country))
		if country == "" {
			continue
		}

		if prev, ok := next.countryCurrency[country]; ok && prev.ID != id {
			stolen := cloneSet(next.currencyCountries[prev.ID])
			delete(stolen, country)

			if len(stolen) == 0 {
				delete(next.currencyCountries, prev.ID)
			} else {
				next.currencyCountries[prev.ID] = stolen
			}
		}

		next.countryCurrency[country] = c
		owned[country] = struct{}{}
	}

	if len(owned) > 0 {
		next.currencyCountries[id] = owned
	}

	return next, nil
}

// RemoveCountries detaches countries from whichever currency owns them.
// Unassigned countries are ignored.
func (r *Registry) RemoveCountries(countries ...string) *Registry {
	next := r.clone()
	next.countryCurrency = cloneMap(r.countryCurrency)
	next.currencyCountries = cloneMap(r.currencyCountries)

	for _, country := range countries {
		country = strings.ToUpper(strings.TrimSpace(country))

		owner, ok := next.countryCurrency[country]
		if !ok {
			continue
		}

		delete(next.countryCurrency, country)

		owned := cloneSet(next.currencyCountries[owner.ID])
		delete(owned, country)

		if len(owned) == 0 {
			delete(next.currencyCountries, owner.ID)
		} else {
			next.currencyCountries[owner.ID] = owned
		}
	}

	return next
}

// SetLocalized stores display metadata for a currency under a locale tag.
func (r *Registry) SetLocalized(input any, locale string, props map[string]string) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	if _, exists := r.byID[id]; !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	next := r.clone()
	next.localized = cloneMap(r.localized)

	locales := cloneMap(next.localized[id])
	locales[locale] = cloneMap(props)
	next.localized[id] = locales

	return next, nil
}

// RemoveLocalized drops the display metadata of a currency for one locale.
func (r *Registry) RemoveLocalized(input any, locale string) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	locales, ok := r.localized[id]
	if !ok {
		return r, nil
	}

	if _, ok := locales[locale]; !ok {
		return r, nil
	}

	next := r.clone()
	next.localized = cloneMap(r.localized)

	remaining := cloneMap(locales)
	delete(remaining, locale)

	if len(remaining) == 0 {
		delete(next.localized, id)
	} else {
		next.localized[id] = remaining
	}

	return next, nil
}

// AddTraits attaches classification tags to a registered currency.
func (r *Registry) AddTraits(input any, traits ...string) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	if _, exists := r.byID[id]; !exists {
		return nil, bankster.Errorf(bankster.ErrorNotFound, "id", "currency %q is not registered", id)
	}

	if len(traits) == 0 {
		return r, nil
	}

	next := r.clone()
	next.traits = cloneMap(r.traits)

	set := cloneSet(next.traits[id])
	for _, trait := range traits {
		set[trait] = struct{}{}
	}

	next.traits[id] = set

	return next, nil
}

// RemoveTraits detaches classification tags from a currency. Unknown tags
// are ignored; removing the last tag drops the side-table entry.
func (r *Registry) RemoveTraits(input any, traits ...string) (*Registry, error) {
	id, err := idOfInput(input)
	if err != nil {
		return nil, err
	}

	set, ok := r.traits[id]
	if !ok {
		return r, nil
	}

	next := r.clone()
	next.traits = cloneMap(r.traits)

	remaining := cloneSet(set)
	for _, trait := range traits {
		delete(remaining, trait)
	}

	if len(remaining) == 0 {
		delete(next.traits, id)
	} else {
		next.traits[id] = remaining
	}

	return next, nil
}

// DeriveIn extends the named hierarchy axis with "child is-a parent",
// creating the axis when absent.
func (r *Registry) DeriveIn(axis, child, parent string) (*Registry, error) {
	graph := r.hierarchies[axis]
	if graph == nil {
		graph = hierarchy.New()
	}

	derived, err := graph.Derive(child, parent)
	if err != nil {
		return nil, err
	}

	next := r.clone()
	next.hierarchies = cloneMap(r.hierarchies)
	next.hierarchies[axis] = derived

	return next, nil
}

// UnderiveIn removes a direct is-a edge from the named hierarchy axis.
func (r *Registry) UnderiveIn(axis, child, parent string) *Registry {
	graph, ok := r.hierarchies[axis]
	if !ok {
		return r
	}

	next := r.clone()
	next.hierarchies = cloneMap(r.hierarchies)
	next.hierarchies[axis] = graph.Underive(child, parent)

	return next
}

// WithExt returns a registry with a free-form extension entry set.
func (r *Registry) WithExt(key string, value any) *Registry {
	next := r.clone()
	next.ext = cloneMap(r.ext)
	next.ext[key] = value

	return next
}

// WithVersion returns a registry tagged with the given provenance version.
func (r *Registry) WithVersion(version string) *Registry {
	next := r.clone()
	next.version = version

	return next
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ByID returns a registered currency by its full identifier.
func (r *Registry) ByID(id string) (Currency, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// ByNumeric returns the canonical currency for a numeric code.
func (r *Registry) ByNumeric(numeric int64) (Currency, bool) {
	c, ok := r.byNumeric[numeric]
	return c, ok
}

// NumericBucket returns every currency sharing a numeric code, ordered by
// effective weight ascending with identifier order breaking ties.
func (r *Registry) NumericBucket(numeric int64) []Currency {
	return cloneSlice(r.numericBuckets[numeric])
}

// CodeBucket returns every currency sharing an unnamespaced code across
// namespaces, in the same order as NumericBucket.
func (r *Registry) CodeBucket(code string) []Currency {
	return cloneSlice(r.codeBuckets[code])
}

// Currencies returns every registered currency in identifier order.
func (r *Registry) Currencies() []Currency {
	out := make([]Currency, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Len returns the number of registered currencies.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Version returns the registry's provenance tag.
func (r *Registry) Version() string {
	return r.version
}

// Ext returns a free-form extension entry.
func (r *Registry) Ext(key string) (any, bool) {
	v, ok := r.ext[key]
	return v, ok
}

// CurrencyOfCountry returns the currency assigned to a country.
func (r *Registry) CurrencyOfCountry(country string) (Currency, bool) {
	c, ok := r.countryCurrency[strings.ToUpper(strings.TrimSpace(country))]
	return c, ok
}

// CountriesOf returns the countries assigned to a currency, in lexical order.
func (r *Registry) CountriesOf(input any) []string {
	id, err := idOfInput(input)
	if err != nil {
		return nil
	}

	set, ok := r.currencyCountries[id]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(set))
	for country := range set {
		out = append(out, country)
	}

	sort.Strings(out)

	return out
}

// LocalizedOf returns the display metadata of a currency for one locale.
func (r *Registry) LocalizedOf(input any, locale string) map[string]string {
	id, err := idOfInput(input)
	if err != nil {
		return nil
	}

	locales, ok := r.localized[id]
	if !ok {
		return nil
	}

	props, ok := locales[locale]
	if !ok {
		return nil
	}

	return cloneMap(props)
}

// TraitsOf returns the classification tags of a currency in lexical order.
func (r *Registry) TraitsOf(input any) []string {
	id, err := idOfInput(input)
	if err != nil {
		return nil
	}

	set, ok := r.traits[id]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(set))
	for trait := range set {
		out = append(out, trait)
	}

	sort.Strings(out)

	return out
}

// HasTrait reports whether a currency carries a tag, directly or through the
// traits hierarchy axis.
func (r *Registry) HasTrait(input any, trait string) bool {
	id, err := idOfInput(input)
	if err != nil {
		return false
	}

	set, ok := r.traits[id]
	if !ok {
		return false
	}

	if _, ok := set[trait]; ok {
		return true
	}

	graph := r.hierarchies[AxisTraits]
	for direct := range set {
		if graph.IsA(direct, trait) {
			return true
		}
	}

	return false
}

// IsAIn reports whether ancestor is reachable from node on a hierarchy axis.
func (r *Registry) IsAIn(axis, node, ancestor string) bool {
	return r.hierarchies[axis].IsA(node, ancestor)
}

// AncestorsIn returns every ancestor of node on a hierarchy axis.
func (r *Registry) AncestorsIn(axis, node string) []string {
	return r.hierarchies[axis].Ancestors(node)
}

// Kindred reports whether a currency's kind equals kind or derives from it
// on the kind hierarchy axis.
func (r *Registry) Kindred(c Currency, kind string) bool {
	if c.Kind == kind {
		return true
	}

	return r.IsAIn(AxisKind, c.Kind, kind)
}

// InDomain reports whether a currency's domain equals domain or derives from
// it on the domain hierarchy axis.
func (r *Registry) InDomain(c Currency, domain string) bool {
	if c.Domain == domain {
		return true
	}

	return r.IsAIn(AxisDomain, c.Domain, domain)
}

// WeightOf returns the explicitly set weight of a currency. Absence means
// the effective weight is zero.
func (r *Registry) WeightOf(input any) (int, bool) {
	id, err := idOfInput(input)
	if err != nil {
		return 0, false
	}

	w, ok := r.weights[id]

	return w, ok
}

// EffectiveWeight returns the weight used for bucket ordering: the explicit
// side-table entry when present, zero for any other registered currency, and
// the currency's own hint for ad-hoc (unregistered) currencies.
func (r *Registry) EffectiveWeight(c Currency) int {
	if w, ok := r.weights[c.ID]; ok {
		return w
	}

	if _, registered := r.byID[c.ID]; registered {
		return 0
	}

	return c.Weight
}

// ---------------------------------------------------------------------------
// Index maintenance
// ---------------------------------------------------------------------------

// reindex rebuilds the numeric and code buckets touched by a mutation and
// repairs the canonical pointers. Empty buckets are deleted, never stored.
func (r *Registry) reindex(numeric int64, code string) {
	if numeric != NoNumeric {
		bucket := r.collect(func(c Currency) bool { return c.Numeric == numeric })

		r.numericBuckets = cloneMap(r.numericBuckets)
		r.byNumeric = cloneMap(r.byNumeric)

		if len(bucket) == 0 {
			delete(r.numericBuckets, numeric)
			delete(r.byNumeric, numeric)
		} else {
			r.sortBucket(bucket)
			r.numericBuckets[numeric] = bucket
			r.byNumeric[numeric] = bucket[0]
		}
	}

	if code != "" {
		bucket := r.collect(func(c Currency) bool { return c.Code() == code })

		r.codeBuckets = cloneMap(r.codeBuckets)

		if len(bucket) == 0 {
			delete(r.codeBuckets, code)
		} else {
			r.sortBucket(bucket)
			r.codeBuckets[code] = bucket
		}
	}
}

func (r *Registry) collect(match func(Currency) bool) []Currency {
	var out []Currency

	for _, c := range r.byID {
		if match(c) {
			out = append(out, c)
		}
	}

	return out
}

// sortBucket orders a bucket by effective weight ascending. Weight ties
// break by identifier lexical order, keeping canonical selection stable
// across rebuilds.
func (r *Registry) sortBucket(bucket []Currency) {
	sort.SliceStable(bucket, func(i, j int) bool {
		wi, wj := r.EffectiveWeight(bucket[i]), r.EffectiveWeight(bucket[j])
		if wi != wj {
			return wi < wj
		}

		return bucket[i].ID < bucket[j].ID
	})
}

func (r *Registry) clone() *Registry {
	next := *r
	return &next
}

func idOfInput(input any) (string, error) {
	switch v := input.(type) {
	case Currency:
		return v.ID, nil
	case *Currency:
		if v == nil {
			return "", bankster.NewError(bankster.ErrorMalformedInput, "id", "nil currency")
		}

		return v.ID, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return "", bankster.NewError(bankster.ErrorMalformedInput, "id", "empty identifier")
		}

		return v, nil
	default:
		return "", bankster.Errorf(bankster.ErrorMalformedInput, "id", "unsupported identifier input %T", input)
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}

	return out
}

func cloneSet[K comparable](s map[K]struct{}) map[K]struct{} {
	out := make(map[K]struct{}, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}

	return out
}

func cloneSlice(s []Currency) []Currency {
	if len(s) == 0 {
		return nil
	}

	out := make([]Currency, len(s))
	copy(out, s)

	return out
}
