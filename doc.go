// Package bankster provides shared primitives for the currency and money
// subpackages.
//
// The package defines the structured domain error type used across the
// library. Domain logic lives in subpackages:
//
//   - scale: decimal scale normalization and rounding-mode resolution
//   - currency: the Currency value type, the immutable Registry, and the
//     resolution protocol
//   - money: exact monetary amounts and scale-aware arithmetic
//   - iso: bundled ISO-4217 seed data
//   - format: locale-aware display formatting
//
// This package is intentionally dependency-light; integrations such as the
// zap logging backend live in subpackages.
package bankster
