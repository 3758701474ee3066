// Package currency provides the Currency value type, the immutable indexed
// Registry, and the resolution protocol that turns heterogeneous inputs into
// canonical currencies.
//
// Core flow:
//   - New/NewWith build validated Currency values with domain inference.
//   - Registry mutators (Register, Update, Unregister, SetWeight, ...) are
//     pure: each returns a new Registry and never mutates the receiver.
//   - Resolve/ResolveAll dispatch over a closed set of input shapes and
//     consult the registry's canonical and bucket indices.
//
// A process-wide default registry can be installed with SetDefault and
// overridden for a call chain with ContextWithRegistry; concurrent readers
// always observe complete, internally consistent snapshots.
package currency
