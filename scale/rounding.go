package scale

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// RoundingMode selects the strategy used when a forced rescale must drop
// fractional digits.
//
// The zero value is Unnecessary: rescale only when exact, otherwise fail.
// This makes "no mode configured" equivalent to round-only-if-exact.
type RoundingMode uint8

const (
	// Unnecessary asserts that no rounding is needed; inexact rescales fail.
	Unnecessary RoundingMode = iota
	// HalfUp rounds half-way values away from zero.
	HalfUp
	// HalfDown rounds half-way values toward zero.
	HalfDown
	// HalfEven rounds half-way values to the nearest even neighbor.
	HalfEven
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Floor rounds toward negative infinity.
	Floor
	// Up rounds away from zero.
	Up
	// Down rounds toward zero.
	Down
)

// String returns the string representation of a rounding mode.
func (mode RoundingMode) String() string {
	switch mode {
	case Unnecessary:
		return "unnecessary"
	case HalfUp:
		return "half-up"
	case HalfDown:
		return "half-down"
	case HalfEven:
		return "half-even"
	case Ceiling:
		return "ceiling"
	case Floor:
		return "floor"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseRoundingMode takes a string mode name and returns a RoundingMode constant.
func ParseRoundingMode(name string) (RoundingMode, error) {
	switch strings.ToLower(name) {
	case "unnecessary":
		return Unnecessary, nil
	case "half-up", "half_up":
		return HalfUp, nil
	case "half-down", "half_down":
		return HalfDown, nil
	case "half-even", "half_even":
		return HalfEven, nil
	case "ceiling":
		return Ceiling, nil
	case "floor":
		return Floor, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}

	var mode RoundingMode

	return mode, fmt.Errorf("not a valid RoundingMode: %q", name)
}

// defaultRounding holds the process-wide rounding mode, replaced wholesale.
var defaultRounding atomic.Uint32

// DefaultRounding returns the process-wide rounding mode.
func DefaultRounding() RoundingMode {
	return RoundingMode(defaultRounding.Load())
}

// SetDefaultRounding replaces the process-wide rounding mode and returns the
// previous one.
func SetDefaultRounding(mode RoundingMode) RoundingMode {
	return RoundingMode(defaultRounding.Swap(uint32(mode)))
}

type roundingContextKey struct{}

// ContextWithRounding returns a context carrying a rounding mode override.
// Nested overrides compose: the innermost one wins for its dynamic extent.
func ContextWithRounding(ctx context.Context, mode RoundingMode) context.Context {
	return context.WithValue(ctx, roundingContextKey{}, mode)
}

// RoundingFromContext extracts the rounding mode override from ctx.
func RoundingFromContext(ctx context.Context) (RoundingMode, bool) {
	if ctx == nil {
		return Unnecessary, false
	}

	mode, ok := ctx.Value(roundingContextKey{}).(RoundingMode)

	return mode, ok
}

// ResolveRounding picks the effective rounding mode: the first explicit
// argument wins, otherwise the process-wide default applies.
func ResolveRounding(explicit ...RoundingMode) RoundingMode {
	if len(explicit) > 0 {
		return explicit[0]
	}

	return DefaultRounding()
}

// ResolveRoundingContext picks the effective rounding mode with a context
// override in between: explicit argument, then context, then the
// process-wide default.
func ResolveRoundingContext(ctx context.Context, explicit ...RoundingMode) RoundingMode {
	if len(explicit) > 0 {
		return explicit[0]
	}

	if mode, ok := RoundingFromContext(ctx); ok {
		return mode
	}

	return DefaultRounding()
}
