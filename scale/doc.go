// Package scale provides decimal scale normalization and rounding-mode
// resolution for monetary amounts.
//
// Core flow:
//   - Apply normalizes a decimal to a target number of fractional digits.
//   - ResolveRounding picks the effective rounding mode from explicit
//     arguments, context, or the process-wide default.
//
// A scale of Auto means "no forced scale": Apply leaves auto-scaled values
// untouched and never rounds them.
package scale
