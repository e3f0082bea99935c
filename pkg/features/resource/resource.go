package resource

import (
	"context"
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// State represents the current state of a resource.
type State int

const (
	Idle    State = iota // Created, no load started yet
	Loading              // A load is in flight
	Loaded               // The current generation succeeded
	Errored              // The current generation failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Snapshot is the observable state of a resource. Value holds the payload
// of the last completed load, which stays visible while a newer load is
// in flight.
type Snapshot[T any] struct {
	State      State
	Generation uint64
	Value      reactive.Result[T]
	HasValue   bool
}

// Resource manages a value loaded asynchronously from a source.
type Resource[S, T any] struct {
	rt     *reactive.Runtime
	scope  *reactive.Scope
	source reactive.Reader[S]
	loader func(context.Context, S) (T, error)
	opts   options

	snap    reactive.Signal[Snapshot[T]]
	setSnap reactive.Setter[Snapshot[T]]
	effect  reactive.Effect

	// gen is the generation of the newest load; completions carrying any
	// other generation are discarded.
	gen uint64

	suspense  *Suspense
	suspended bool

	onSuccess func(T)
	onError   func(error)
}

// New creates a resource in scope that loads whenever source changes. The
// first load starts immediately. If a Suspense was provided above scope the
// resource registers with it.
//
// New panics with the structured runtime error if scope is disposed or the
// first read of source fails.
func New[S, T any](scope *reactive.Scope, source reactive.Reader[S], loader func(context.Context, S) (T, error), opts ...Option) *Resource[S, T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	snap, setSnap := reactive.NewSignal(scope, Snapshot[T]{})
	r := &Resource[S, T]{
		rt:      scope.Runtime(),
		scope:   scope,
		source:  source,
		loader:  loader,
		opts:    o,
		snap:    snap,
		setSnap: setSnap,
	}
	if s, ok := reactive.Use[*Suspense](scope); ok {
		r.suspense = s
	}
	scope.OnCleanup(r.release)

	effect, err := reactive.CreateEffect(scope, func() reactive.Cleanup {
		if err := r.start(source.Get()); err != nil {
			panic(err)
		}
		return nil
	})
	if err != nil {
		panic(err)
	}
	r.effect = effect
	return r
}

// Once creates a resource with a constant source: it loads exactly once.
//
// Example:
//
//	config := resource.Once(scope, func(ctx context.Context) (Config, error) {
//	    return fetchConfig(ctx)
//	})
func Once[T any](scope *reactive.Scope, loader func(context.Context) (T, error), opts ...Option) *Resource[struct{}, T] {
	return New(scope, reactive.Const(struct{}{}), func(ctx context.Context, _ struct{}) (T, error) {
		return loader(ctx)
	}, opts...)
}

// start begins a load of src as a new generation.
func (r *Resource[S, T]) start(src S) error {
	r.gen++
	gen := r.gen

	prev := r.snap.Peek()
	var serr error
	err := r.rt.Batch(func() {
		serr = r.setSnap.Set(Snapshot[T]{
			State:      Loading,
			Generation: gen,
			Value:      prev.Value,
			HasValue:   prev.HasValue,
		})
		r.suspend()
	})
	if serr != nil {
		err = serr
	}

	started := time.Now()
	r.rt.Go(r.scope.Context(), func(ctx context.Context) func() {
		v, err := r.load(ctx, src)
		return func() { r.complete(gen, started, v, err) }
	})
	return err
}

// load runs the loader on the worker goroutine, retrying as configured.
func (r *Resource[S, T]) load(ctx context.Context, src S) (T, error) {
	for attempt := 0; ; attempt++ {
		v, err := r.loader(ctx, src)
		if err == nil || attempt >= r.opts.retryCount || ctx.Err() != nil {
			return v, err
		}
		select {
		case <-ctx.Done():
			return v, err
		case <-time.After(r.opts.retryDelay):
		}
	}
}

// complete applies a finished load on the runtime goroutine.
func (r *Resource[S, T]) complete(gen uint64, started time.Time, v T, err error) {
	if r.scope.IsDisposed() {
		return
	}

	ev := reactive.Event{
		Kind:       reactive.EventResourceLoad,
		Node:       r.snap.ID(),
		Scope:      r.scope.ID(),
		Generation: gen,
		Label:      r.opts.label,
		Start:      started,
		End:        time.Now(),
		Err:        err,
	}
	if gen != r.gen {
		r.rt.Logger().Debug("discarding stale resource load",
			"resource", r.opts.label,
			"generation", gen,
			"current", r.gen)
		ev.Kind = reactive.EventResourceDiscard
		r.rt.Emit(ev)
		return
	}
	r.rt.Emit(ev)

	next := Snapshot[T]{State: Loaded, Generation: gen, Value: reactive.Ok(v), HasValue: true}
	if err != nil {
		next.State = Errored
		next.Value = reactive.Fail[T](reactive.LoaderError(err))
	}

	// The value lands before the suspense count drops so nothing renders
	// children without it.
	var serr error
	if berr := r.rt.Batch(func() {
		serr = r.setSnap.Set(next)
		r.resume()
	}); serr == nil {
		serr = berr
	}
	if serr != nil {
		r.rt.Logger().Error("applying resource load",
			"resource", r.opts.label,
			"generation", gen,
			"error", serr)
	}

	if err != nil {
		if r.onError != nil {
			r.onError(next.Value.Err)
		}
	} else if r.onSuccess != nil {
		r.onSuccess(v)
	}
}

func (r *Resource[S, T]) suspend() {
	if r.suspense == nil || r.suspended {
		return
	}
	r.suspended = true
	r.suspense.add(1)
}

func (r *Resource[S, T]) resume() {
	if !r.suspended {
		return
	}
	r.suspended = false
	r.suspense.add(-1)
}

func (r *Resource[S, T]) release() {
	r.resume()
}

// Read returns the payload of the last completed load. ok is false while no
// load has completed yet. The read is tracked.
func (r *Resource[S, T]) Read() (result reactive.Result[T], ok bool) {
	s := r.snap.Get()
	return s.Value, s.HasValue
}

// Loading reports whether the newest load is still in flight.
func (r *Resource[S, T]) Loading() bool {
	return r.snap.Get().State == Loading
}

// State returns the current state.
func (r *Resource[S, T]) State() State {
	return r.snap.Get().State
}

// Generation returns the generation of the newest load.
func (r *Resource[S, T]) Generation() uint64 {
	return r.snap.Get().Generation
}

// Snapshot returns the full observable state.
func (r *Resource[S, T]) Snapshot() Snapshot[T] {
	return r.snap.Get()
}

// Refetch starts a new load of the current source value, superseding any
// load in flight.
func (r *Resource[S, T]) Refetch() error {
	if r.scope.IsDisposed() {
		_, err := r.snap.Read()
		return err
	}
	var src S
	r.rt.Untracked(func() { src = r.source.Get() })
	return r.start(src)
}

// Disposed reports whether the owning scope has been disposed.
func (r *Resource[S, T]) Disposed() bool {
	return r.scope.IsDisposed()
}
