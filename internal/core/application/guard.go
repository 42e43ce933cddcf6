package application

import (
	"context"
	"sync"
)

type guardKey struct{}

// CallGuard is the execution-scoped lock shared by every mutating entry
// point of the daemon. Distinct top-level calls are serialized by the mutex;
// a nested re-entry from within an in-flight call, which can only come
// through an adapter calling back into the service with the call's context,
// is rejected instead of deadlocking. Re-entry detection relies on that
// context: a callback made with a fresh context not derived from the
// in-flight call is indistinguishable from a new top-level call and blocks
// on the mutex until the current call returns.
type CallGuard struct {
	mtx sync.Mutex
}

// NewCallGuard returns a fresh guard to be shared among services.
func NewCallGuard() *CallGuard {
	return &CallGuard{}
}

// Enter acquires the guard and returns a derived context that marks the
// call as in flight. Entering again with a context derived from an
// in-flight call fails with ErrReentrantCall.
func (g *CallGuard) Enter(ctx context.Context) (context.Context, error) {
	if ctx.Value(guardKey{}) != nil {
		return nil, ErrReentrantCall
	}
	g.mtx.Lock()
	return context.WithValue(ctx, guardKey{}, struct{}{}), nil
}

// Exit releases the guard. It must be deferred on every exit path.
func (g *CallGuard) Exit() {
	g.mtx.Unlock()
}
