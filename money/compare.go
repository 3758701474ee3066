package money

// Strict comparisons require fully compatible currencies (identical id,
// scale, domain, and kind). The amount-only family tolerates trailing-zero
// scale differences but still rejects genuinely different currencies.

// Compare orders two monies of the same currency: -1, 0, or 1.
func Compare(a, b Money) (int, error) {
	if !a.cur.Compatible(b.cur) {
		return 0, mismatch(a.cur, b.cur)
	}

	return a.amount.Cmp(b.amount), nil
}

// Eq reports whether two monies of the same currency have equal amounts.
func Eq(a, b Money) (bool, error) {
	cmp, err := Compare(a, b)
	return cmp == 0, err
}

// Gt reports whether a is greater than b.
func Gt(a, b Money) (bool, error) {
	cmp, err := Compare(a, b)
	return cmp > 0, err
}

// Ge reports whether a is greater than or equal to b.
func Ge(a, b Money) (bool, error) {
	cmp, err := Compare(a, b)
	return cmp >= 0, err
}

// Lt reports whether a is less than b.
func Lt(a, b Money) (bool, error) {
	cmp, err := Compare(a, b)
	return cmp < 0, err
}

// Le reports whether a is less than or equal to b.
func Le(a, b Money) (bool, error) {
	cmp, err := Compare(a, b)
	return cmp <= 0, err
}

// Min returns the smaller of two monies of the same currency.
func Min(a, b Money) (Money, error) {
	cmp, err := Compare(a, b)
	if err != nil {
		return Money{}, err
	}

	if cmp <= 0 {
		return a, nil
	}

	return b, nil
}

// Max returns the larger of two monies of the same currency.
func Max(a, b Money) (Money, error) {
	cmp, err := Compare(a, b)
	if err != nil {
		return Money{}, err
	}

	if cmp >= 0 {
		return a, nil
	}

	return b, nil
}

// sameUnit checks the amount-only compatibility: identity fields excluding
// weight and excluding scale, so the same currency at different nominal
// scales still compares.
func sameUnit(a, b Money) bool {
	return a.cur.ID == b.cur.ID &&
		a.cur.Domain == b.cur.Domain &&
		a.cur.Kind == b.cur.Kind
}

// CompareAmounts orders the magnitudes of two monies regardless of scale
// differences. Genuinely different currencies are still an error.
func CompareAmounts(a, b Money) (int, error) {
	if !sameUnit(a, b) {
		return 0, mismatch(a.cur, b.cur)
	}

	return a.amount.Cmp(b.amount), nil
}

// EqAm reports whether two monies of the same unit have numerically equal
// amounts, ignoring trailing-zero scale differences.
func EqAm(a, b Money) (bool, error) {
	cmp, err := CompareAmounts(a, b)
	return cmp == 0, err
}
