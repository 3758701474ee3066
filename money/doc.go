// Package money provides immutable monetary amounts paired with a currency
// and scale-aware exact arithmetic over them.
//
// Core flow:
//   - New/Of construct a Money, normalizing the amount to the currency's
//     scale (auto-scaled currencies keep their natural precision).
//   - Add/Sub/Mul/Div/Rem and friends validate currency compatibility and
//     delegate scale decisions to the scale package.
//   - Allocate/Distribute split an amount into parts that sum exactly to it.
//
// Operations never cross currency boundaries silently: incompatible operands
// fail with a currency-mismatch error carrying both currencies.
package money
