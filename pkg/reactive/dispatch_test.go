package reactive

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGoAppliesContinuationOnSettle(t *testing.T) {
	rt := New()
	scope := rt.Root()
	user, setUser := NewSignal(scope, Result[string]{})

	rt.Go(scope.Context(), func(ctx context.Context) func() {
		name := "alice"
		return func() { setUser.Set(Ok(name)) }
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Settle(ctx); err != nil {
		t.Fatalf("Settle: %v", err)
	}

	if got := user.Get(); !got.IsOk() || got.Value != "alice" {
		t.Errorf("user = %+v, want alice", got)
	}
	if rt.InFlight() != 0 {
		t.Errorf("InFlight = %d, want 0", rt.InFlight())
	}
}

func TestGoRecoversPanic(t *testing.T) {
	rt := New()
	rt.Go(context.Background(), func(ctx context.Context) func() {
		panic("boom")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Settle(ctx); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if rt.InFlight() != 0 {
		t.Errorf("InFlight = %d, want 0", rt.InFlight())
	}
}

func TestDispatchRunPending(t *testing.T) {
	rt := New()

	var order []int
	rt.Dispatch(func() {
		order = append(order, 1)
		rt.Dispatch(func() { order = append(order, 3) })
	})
	rt.Dispatch(func() { order = append(order, 2) })

	if n := rt.RunPending(); n != 3 {
		t.Errorf("RunPending() = %d, want 3", n)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
	if n := rt.RunPending(); n != 0 {
		t.Errorf("RunPending() on empty queue = %d", n)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	rt := New()
	ctx, cancel := context.WithCancel(context.Background())

	ran := make(chan struct{})
	rt.Dispatch(func() {
		close(ran)
		cancel()
	})

	err := rt.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	select {
	case <-ran:
	default:
		t.Error("queued function did not run")
	}
}

func TestSettleTimesOut(t *testing.T) {
	rt := New()
	release := make(chan struct{})
	defer close(release)

	rt.Go(context.Background(), func(ctx context.Context) func() {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := rt.Settle(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Settle() = %v, want DeadlineExceeded", err)
	}
}
