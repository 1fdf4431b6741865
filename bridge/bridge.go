// Package bridge adapts context-aware tool handlers for invocation from
// synchronous interpreter code.
//
// Tool handlers are written against context.Context and may block on
// network or subprocess work, while the code interpreter drives them from a
// plain synchronous call stack. The bridge dispatches each invocation onto
// its own single-use worker goroutine and parks the caller until the result
// is available, so a handler can be called safely both with no ambient
// execution context and from inside an already-running engine call.
package bridge

import (
	"context"
)

// Func is the asynchronous callable shape the bridge wraps. It matches
// tool.Handler.
type Func func(ctx context.Context, args map[string]any) (any, error)

type outcome struct {
	value    any
	err      error
	panicked any
}

// SyncCtx returns a synchronous adapter for fn bound to a caller-supplied
// context. Each invocation runs fn on a fresh worker goroutine; the caller
// blocks until the worker finishes or ctx is done. Once dispatched the
// worker is not cancelled beyond ctx propagation; a hung handler keeps its
// goroutine until it returns.
//
// Errors from fn propagate unchanged. A panic inside fn is re-raised on the
// calling goroutine. The adapter holds no shared state and may be invoked
// repeatedly and concurrently.
func SyncCtx(fn Func) func(ctx context.Context, args map[string]any) (any, error) {
	return func(ctx context.Context, args map[string]any) (any, error) {
		if ctx == nil {
			ctx = context.Background()
		}
		ch := make(chan outcome, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					ch <- outcome{panicked: r}
				}
			}()
			v, err := fn(ctx, args)
			ch <- outcome{value: v, err: err}
		}()

		select {
		case out := <-ch:
			if out.panicked != nil {
				panic(out.panicked)
			}
			return out.value, out.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Sync returns a synchronous adapter for fn that needs no context from its
// caller; each invocation runs against context.Background.
func Sync(fn Func) func(args map[string]any) (any, error) {
	bound := SyncCtx(fn)
	return func(args map[string]any) (any, error) {
		return bound(context.Background(), args)
	}
}
