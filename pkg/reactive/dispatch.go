package reactive

import (
	"context"
	"fmt"
)

// Dispatch queues fn to run on the runtime goroutine. It is safe to call
// from any goroutine; fn runs on the next RunPending, Run or Settle.
func (rt *Runtime) Dispatch(fn func()) {
	rt.queueMu.Lock()
	rt.queue = append(rt.queue, fn)
	rt.queueMu.Unlock()

	select {
	case rt.wake <- struct{}{}:
	default:
	}
}

// Go runs work on a new goroutine and dispatches the continuation it returns
// back onto the runtime goroutine. A nil continuation is allowed. Work is
// counted as in flight until its continuation has been applied.
//
// Example:
//
//	rt.Go(scope.Context(), func(ctx context.Context) func() {
//	    user, err := api.FetchUser(ctx, id)
//	    return func() { setUser.Set(reactive.Try(user, err)) }
//	})
func (rt *Runtime) Go(ctx context.Context, work func(ctx context.Context) func()) {
	rt.inflight.Add(1)
	go func() {
		var cont func()
		defer func() {
			if r := recover(); r != nil {
				rt.log.Error("async work panicked", "panic", fmt.Sprint(r))
				cont = nil
			}
			rt.Dispatch(func() {
				defer rt.inflight.Add(-1)
				if cont != nil {
					cont()
				}
			})
		}()
		cont = work(ctx)
	}()
}

// InFlight returns the number of Go calls whose continuation has not run.
func (rt *Runtime) InFlight() int64 {
	return rt.inflight.Load()
}

// RunPending applies every queued continuation, including ones queued while
// running, and returns how many ran.
func (rt *Runtime) RunPending() int {
	ran := 0
	for {
		rt.queueMu.Lock()
		queue := rt.queue
		rt.queue = nil
		rt.queueMu.Unlock()

		if len(queue) == 0 {
			return ran
		}
		for _, fn := range queue {
			fn()
			ran++
		}
	}
}

// Run applies continuations as they arrive until ctx is done.
func (rt *Runtime) Run(ctx context.Context) error {
	for {
		rt.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rt.wake:
		}
	}
}

// Settle applies continuations until no async work is in flight.
func (rt *Runtime) Settle(ctx context.Context) error {
	for {
		rt.RunPending()
		if rt.inflight.Load() == 0 {
			rt.queueMu.Lock()
			empty := len(rt.queue) == 0
			rt.queueMu.Unlock()
			if empty {
				return nil
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rt.wake:
		}
	}
}
