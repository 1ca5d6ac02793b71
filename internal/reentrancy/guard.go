// Package reentrancy implements the per-call reentrancy guard that prevents
// a Provider from being re-entered while it is already executing on the
// current resolve call chain.
//
// Go has no thread-local storage, and a resolve call chain is not bound to a
// single goroutine in general (a Provider may fan work out), so the guard is
// carried explicitly through context.Context rather than keyed off a
// goroutine ID. This mirrors the "prefer context passing" guidance for
// languages that support it — the invariant becomes visible at every call
// site instead of hiding in goroutine-local state.
package reentrancy

import (
	"context"
	"sync"
)

type guardKey struct{}

// guardState is the mutable set of active providers for one top-level
// Resolve call. It is installed into the context once, at the top of the
// call, and shared by value-copying the context down through nested calls —
// every nested Resolve sees (and mutates) the same set. A provider may fan
// out across goroutines while still sharing one call chain, so the set is
// guarded by a mutex rather than assumed single-goroutine.
type guardState struct {
	mu     sync.Mutex
	active map[any]struct{}
}

// WithGuard installs a fresh, empty guard set into ctx. Call this once at
// the top of a top-level Resolve; nested resolves triggered by a Provider
// reuse the context they were handed and must NOT call WithGuard again.
func WithGuard(ctx context.Context) context.Context {
	return context.WithValue(ctx, guardKey{}, &guardState{active: make(map[any]struct{})})
}

// HasGuard reports whether ctx already carries a guard set, i.e. whether a
// Resolve call is already in progress on this call chain.
func HasGuard(ctx context.Context) bool {
	_, ok := ctx.Value(guardKey{}).(*guardState)
	return ok
}

// IsActive reports whether id (the resolver passes a provider's registry
// index) is currently executing somewhere up this call chain.
func IsActive(ctx context.Context, id any) bool {
	st, ok := ctx.Value(guardKey{}).(*guardState)
	if !ok {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	_, active := st.active[id]
	return active
}

// Activate idempotently marks id as executing. It is always paired with a
// deferred Deactivate at the call site, on every exit path.
func Activate(ctx context.Context, id any) {
	st, ok := ctx.Value(guardKey{}).(*guardState)
	if !ok {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.active[id] = struct{}{}
}

// Deactivate unmarks id. Safe to call even if id was never activated.
func Deactivate(ctx context.Context, id any) {
	st, ok := ctx.Value(guardKey{}).(*guardState)
	if !ok {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.active, id)
}

// Empty reports whether no provider is currently marked active. Used by
// tests to assert the top-level-return invariant: the guard set is empty on
// every exit from a top-level Resolve, success or failure.
func Empty(ctx context.Context) bool {
	st, ok := ctx.Value(guardKey{}).(*guardState)
	if !ok {
		return true
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.active) == 0
}
