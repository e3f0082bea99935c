package action

import (
	"context"
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Snapshot is the observable state of an action.
type Snapshot[I, T any] struct {
	// Input is the argument of the most recent dispatch.
	Input    I
	HasInput bool

	// Pending is true while any dispatch is outstanding.
	Pending bool

	// Value is the outcome of the most recently completed dispatch.
	Value    reactive.Result[T]
	HasValue bool

	// Version counts completed dispatches.
	Version uint64
}

// Action is an explicitly dispatched async mutation.
type Action[I, T any] struct {
	rt      *reactive.Runtime
	scope   *reactive.Scope
	mutator func(context.Context, I) (T, error)
	opts    options

	snap    reactive.Signal[Snapshot[I, T]]
	setSnap reactive.Setter[Snapshot[I, T]]

	dispatched  uint64
	outstanding int

	onStart   func(I)
	onSuccess func(T)
	onError   func(error)
}

// New creates an action in scope. It panics with ErrUseAfterDispose if
// scope is disposed.
func New[I, T any](scope *reactive.Scope, mutator func(context.Context, I) (T, error), opts ...Option) *Action[I, T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	snap, setSnap := reactive.NewSignal(scope, Snapshot[I, T]{})
	return &Action[I, T]{
		rt:      scope.Runtime(),
		scope:   scope,
		mutator: mutator,
		opts:    o,
		snap:    snap,
		setSnap: setSnap,
	}
}

// Dispatch records input, marks the action pending and starts the mutator
// on a worker goroutine. The mutator context is cancelled when the scope is
// disposed; earlier dispatches are never cancelled or discarded.
func (a *Action[I, T]) Dispatch(input I) error {
	if a.scope.IsDisposed() {
		_, err := a.snap.Read()
		return err
	}

	a.dispatched++
	a.outstanding++
	seq := a.dispatched

	if a.onStart != nil {
		a.onStart(input)
	}
	a.rt.Emit(reactive.Event{
		Kind:       reactive.EventActionDispatch,
		Node:       a.snap.ID(),
		Scope:      a.scope.ID(),
		Generation: seq,
		Label:      a.opts.label,
		Start:      time.Now(),
	})

	err := a.setSnap.Update(func(s *Snapshot[I, T]) {
		s.Input = input
		s.HasInput = true
		s.Pending = true
	})

	started := time.Now()
	a.rt.Go(a.scope.Context(), func(ctx context.Context) func() {
		v, err := a.mutator(ctx, input)
		return func() { a.complete(seq, started, v, err) }
	})
	return err
}

func (a *Action[I, T]) complete(seq uint64, started time.Time, v T, err error) {
	if a.scope.IsDisposed() {
		return
	}
	a.outstanding--

	a.rt.Emit(reactive.Event{
		Kind:       reactive.EventActionComplete,
		Node:       a.snap.ID(),
		Scope:      a.scope.ID(),
		Generation: seq,
		Label:      a.opts.label,
		Start:      started,
		End:        time.Now(),
		Err:        err,
	})

	value := reactive.Ok(v)
	if err != nil {
		value = reactive.Fail[T](reactive.MutatorError(err))
	}

	uerr := a.setSnap.Update(func(s *Snapshot[I, T]) {
		s.Pending = a.outstanding > 0
		s.Value = value
		s.HasValue = true
		s.Version++
	})
	if uerr != nil {
		a.rt.Logger().Error("applying action result",
			"action", a.opts.label,
			"dispatch", seq,
			"error", uerr)
	}

	if err != nil {
		if a.onError != nil {
			a.onError(value.Err)
		}
	} else if a.onSuccess != nil {
		a.onSuccess(v)
	}
}

// Input returns the argument of the most recent dispatch. The read is
// tracked.
func (a *Action[I, T]) Input() (I, bool) {
	s := a.snap.Get()
	return s.Input, s.HasInput
}

// Pending reports whether any dispatch is outstanding.
func (a *Action[I, T]) Pending() bool {
	return a.snap.Get().Pending
}

// Value returns the outcome of the most recently completed dispatch.
func (a *Action[I, T]) Value() (reactive.Result[T], bool) {
	s := a.snap.Get()
	return s.Value, s.HasValue
}

// Version returns the number of completed dispatches.
func (a *Action[I, T]) Version() uint64 {
	return a.snap.Get().Version
}

// Snapshot returns the full observable state.
func (a *Action[I, T]) Snapshot() Snapshot[I, T] {
	return a.snap.Get()
}
