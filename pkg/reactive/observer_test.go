package reactive

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestObserverReceivesEvents(t *testing.T) {
	var kinds []EventKind
	rt := New(WithObserver(ObserverFunc(func(e Event) {
		kinds = append(kinds, e.Kind)
	})))
	scope := rt.Root().Child()
	count, setCount := NewSignal(scope, 0)
	CreateEffect(scope, func() Cleanup {
		_ = count.Get()
		return nil
	})

	kinds = nil
	setCount.Set(1)
	scope.Dispose()

	want := []EventKind{EventEffectRun, EventFlush, EventScopeDispose}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestCycleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var cycles int
	rt := New(
		WithMaxIterations(3),
		WithLogger(logger),
		WithObserver(ObserverFunc(func(e Event) {
			if e.Kind == EventCycle {
				cycles++
			}
		})),
	)
	scope := rt.Root()
	count, setCount := NewSignal(scope, 0)
	CreateEffect(scope, func() Cleanup {
		setCount.Set(count.Get() + 1)
		return nil
	})

	if cycles != 1 {
		t.Errorf("cycles = %d, want 1", cycles)
	}
	if !strings.Contains(buf.String(), "propagation cycle") {
		t.Errorf("log missing cycle warning: %s", buf.String())
	}
}

func TestEventKindString(t *testing.T) {
	if EventListReconcile.String() != "list_reconcile" {
		t.Errorf("String() = %q", EventListReconcile.String())
	}
	if EventKind(0).String() != "unknown" {
		t.Errorf("zero kind String() = %q", EventKind(0).String())
	}
}
