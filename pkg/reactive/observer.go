package reactive

import "time"

// EventKind identifies a runtime event.
type EventKind uint8

const (
	EventFlush EventKind = iota + 1
	EventEffectRun
	EventCycle
	EventScopeDispose
	EventResourceLoad
	EventResourceDiscard
	EventActionDispatch
	EventActionComplete
	EventListReconcile
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlush:
		return "flush"
	case EventEffectRun:
		return "effect_run"
	case EventCycle:
		return "cycle"
	case EventScopeDispose:
		return "scope_dispose"
	case EventResourceLoad:
		return "resource_load"
	case EventResourceDiscard:
		return "resource_discard"
	case EventActionDispatch:
		return "action_dispatch"
	case EventActionComplete:
		return "action_complete"
	case EventListReconcile:
		return "list_reconcile"
	default:
		return "unknown"
	}
}

// Event describes something the runtime (or a feature built on it) did.
// Fields that do not apply to a kind are left zero.
type Event struct {
	Kind       EventKind
	Node       NodeID
	Scope      uint64
	Passes     int
	Effects    int
	Generation uint64
	Label      string
	Start      time.Time
	End        time.Time
	Err        error
}

// Duration returns End - Start.
func (e Event) Duration() time.Duration {
	if e.Start.IsZero() || e.End.IsZero() {
		return 0
	}
	return e.End.Sub(e.Start)
}

// Observer receives runtime events. Observe is called on the runtime
// goroutine and must not call back into the runtime.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) { f(e) }

// Emit delivers e to every registered observer.
func (rt *Runtime) Emit(e Event) {
	for _, o := range rt.cfg.observers {
		o.Observe(e)
	}
}
