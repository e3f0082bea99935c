package vtest

import (
	"context"
	"testing"
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// SettleTimeout bounds how long Settle waits for async work.
var SettleTimeout = 5 * time.Second

// Fixture is a runtime with a root child scope that is disposed when the
// test ends.
type Fixture struct {
	t     testing.TB
	RT    *reactive.Runtime
	Scope *reactive.Scope
}

// New creates a fixture.
//
// Example:
//
//	f := vtest.New(t, reactive.WithMaxIterations(10))
func New(t testing.TB, opts ...reactive.Option) *Fixture {
	t.Helper()
	rt := reactive.New(opts...)
	scope := rt.Root().Child()
	t.Cleanup(scope.Dispose)
	return &Fixture{t: t, RT: rt, Scope: scope}
}

// Settle applies async continuations until nothing is in flight, failing
// the test after SettleTimeout.
func (f *Fixture) Settle() {
	f.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), SettleTimeout)
	defer cancel()
	if err := f.RT.Settle(ctx); err != nil {
		f.t.Fatalf("settle: %v (in flight: %d)", err, f.RT.InFlight())
	}
}

// SettleUntil applies async continuations until cond holds, failing the
// test after SettleTimeout. Use it when some work is deliberately left
// blocked and Settle would wait for it.
//
// Example:
//
//	second.Resolve("two")
//	f.SettleUntil(func() bool { return !res.Loading() })
func (f *Fixture) SettleUntil(cond func() bool) {
	f.t.Helper()
	deadline := time.Now().Add(SettleTimeout)
	for {
		f.RT.RunPending()
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			f.t.Fatalf("condition not met within %v (in flight: %d)", SettleTimeout, f.RT.InFlight())
		}
		time.Sleep(time.Millisecond)
	}
}

// Drain applies every continuation queued so far without waiting for work
// still running.
func (f *Fixture) Drain() int {
	return f.RT.RunPending()
}

// ExpectValue asserts that r currently yields want. Call it outside effects
// so the read records no dependency.
//
// Example:
//
//	vtest.ExpectValue(t, double, 4)
func ExpectValue[T comparable](t testing.TB, r reactive.Reader[T], want T) {
	t.Helper()
	if got := r.Get(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// ExpectNoError fails the test immediately if err is not nil.
func ExpectNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ExpectRuns asserts a side-channel run counter.
//
// Example:
//
//	vtest.ExpectRuns(t, "effect", runs, 2)
func ExpectRuns(t testing.TB, what string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("expected %s to run %d times, ran %d", what, want, got)
	}
}
