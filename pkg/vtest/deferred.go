package vtest

import (
	"context"
	"testing"
	"time"
)

// Deferred is a future resolved by the test.
type Deferred[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// NewDeferred creates an unresolved future.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolve completes the future with v. Only the first Resolve or Reject
// has an effect.
func (d *Deferred[T]) Resolve(v T) {
	d.settle(v, nil)
}

// Reject completes the future with err.
func (d *Deferred[T]) Reject(err error) {
	var zero T
	d.settle(zero, err)
}

func (d *Deferred[T]) settle(v T, err error) {
	select {
	case <-d.done:
		return
	default:
	}
	d.value, d.err = v, err
	close(d.done)
}

// Wait blocks until the future is resolved or ctx is done.
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Call is one invocation of a Loader's function.
type Call[S, T any] struct {
	*Deferred[T]
	Input S
}

// Loader produces load functions whose calls block until the test resolves
// them. It fits both resource loaders and action mutators.
type Loader[S, T any] struct {
	calls chan *Call[S, T]
}

// NewLoader creates a Loader.
func NewLoader[S, T any]() *Loader[S, T] {
	return &Loader[S, T]{calls: make(chan *Call[S, T], 64)}
}

// Func returns the load function to hand to the code under test.
func (l *Loader[S, T]) Func() func(context.Context, S) (T, error) {
	return func(ctx context.Context, in S) (T, error) {
		c := &Call[S, T]{Deferred: NewDeferred[T](), Input: in}
		l.calls <- c
		return c.Wait(ctx)
	}
}

// Next returns the next call made through Func, failing the test if none
// arrives within SettleTimeout.
func (l *Loader[S, T]) Next(t testing.TB) *Call[S, T] {
	t.Helper()
	select {
	case c := <-l.calls:
		return c
	case <-time.After(SettleTimeout):
		t.Fatalf("no loader call within %v", SettleTimeout)
		return nil
	}
}

// Pending returns how many calls have been made but not yet taken by Next.
func (l *Loader[S, T]) Pending() int {
	return len(l.calls)
}
