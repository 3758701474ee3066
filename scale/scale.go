package scale

import (
	"github.com/shopspring/decimal"

	bankster "github.com/randomseed-io/bankster-sub000"
)

// Auto is the sentinel scale meaning "no forced scale": a value keeps
// whatever fractional precision it already has until an explicit rescale.
const Auto int32 = -1

// Valid reports whether s is a usable scale (non-negative or Auto).
func Valid(s int32) bool {
	return s >= 0 || s == Auto
}

// Of returns the number of fractional digits in the representation of d.
// A decimal with a positive exponent (for example 5e3) has scale 0.
func Of(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}

	return 0
}

// IsExact reports whether d can be represented at the target scale without
// losing information. A target of Auto is always exact.
func IsExact(d decimal.Decimal, target int32) bool {
	if target == Auto {
		return true
	}

	return d.Equal(d.Truncate(target))
}

// Apply normalizes d to target fractional digits using the given rounding
// mode. It is the identity for a target of Auto. When the rescale is exact
// no rounding mode is consulted; when it is not, Unnecessary (the zero mode)
// fails with an inexact-rounding error.
func Apply(d decimal.Decimal, target int32, mode RoundingMode) (decimal.Decimal, error) {
	if target == Auto {
		return d, nil
	}

	if target < 0 {
		return decimal.Zero, bankster.Errorf(bankster.ErrorMalformedInput, "scale", "negative scale %d", target)
	}

	if IsExact(d, target) {
		// Round only forces the representation here; no digits are dropped.
		return d.Round(target), nil
	}

	return round(d, target, mode)
}

func round(d decimal.Decimal, target int32, mode RoundingMode) (decimal.Decimal, error) {
	switch mode {
	case Unnecessary:
		return decimal.Zero, bankster.Errorf(
			bankster.ErrorInexactRounding,
			"scale",
			"rounding to %d places would lose precision of %s", target, d,
		)
	case HalfUp:
		return d.Round(target), nil
	case HalfEven:
		return d.RoundBank(target), nil
	case HalfDown:
		return roundHalfDown(d, target), nil
	case Ceiling:
		return d.RoundCeil(target), nil
	case Floor:
		return d.RoundFloor(target), nil
	case Up:
		return d.RoundUp(target), nil
	case Down:
		return d.RoundDown(target), nil
	default:
		return decimal.Zero, bankster.Errorf(bankster.ErrorMalformedInput, "rounding", "unsupported rounding mode %d", mode)
	}
}

// roundHalfDown rounds half-way values toward zero and everything else to
// the nearest neighbor.
func roundHalfDown(d decimal.Decimal, target int32) decimal.Decimal {
	truncated := d.Truncate(target)
	remainder := d.Sub(truncated).Abs()
	half := decimal.New(5, -target-1)

	if remainder.Equal(half) {
		return truncated.Round(target)
	}

	return d.Round(target)
}
