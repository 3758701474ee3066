package currency

import (
	"context"
	"sync/atomic"
)

// defaultRegistry is the process-wide registry slot. It is replaced
// wholesale, never mutated in place, so readers always see a complete
// snapshot.
var defaultRegistry atomic.Pointer[Registry]

// Default returns the process-wide registry, or an empty one when none has
// been installed.
func Default() *Registry {
	if r := defaultRegistry.Load(); r != nil {
		return r
	}

	return NewRegistry()
}

// SetDefault installs a registry as the process-wide default and returns the
// previously installed one, or nil.
func SetDefault(r *Registry) *Registry {
	return defaultRegistry.Swap(r)
}

type registryContextKey struct{}

// ContextWithRegistry returns a context carrying a registry override for the
// dynamic extent of a call chain. Nested overrides compose: the innermost
// wins, and none leaks past its scope.
func ContextWithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, r)
}

// FromContext extracts the registry override from ctx.
func FromContext(ctx context.Context) (*Registry, bool) {
	if ctx == nil {
		return nil, false
	}

	r, ok := ctx.Value(registryContextKey{}).(*Registry)
	if !ok || r == nil {
		return nil, false
	}

	return r, true
}

// Current returns the registry in effect for ctx: the context override when
// present, otherwise the process-wide default.
func Current(ctx context.Context) *Registry {
	if r, ok := FromContext(ctx); ok {
		return r
	}

	return Default()
}
