// Package boundary collects the recoverable errors of the values beneath a
// subtree so a single fallback can render them in place of the children.
//
// Example:
//
//	value, setValue := reactive.NewSignal(scope, reactive.Ok(0))
//	b := boundary.New(scope)
//	boundary.WatchResult(b, scope, value)
//
//	reactive.CreateEffect(scope, func() reactive.Cleanup {
//	    out := boundary.Render(b,
//	        func() string { return "You entered " + reactive.FormatInt(value.Get()) },
//	        func(errs []error) string { return fmt.Sprintf("%d errors", len(errs)) },
//	    )
//	    render(out)
//	    return nil
//	})
package boundary

import (
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Boundary is a set of error sources. Reading it is tracked like any other
// reactive read, so an effect rendering through a boundary re-runs when a
// watched value changes or a source goes away.
type Boundary struct {
	scope   *reactive.Scope
	sources []*source
	rev     reactive.Signal[uint64]
	setRev  reactive.Setter[uint64]
}

type source struct {
	errFn func() error
}

// New creates a boundary and provides it to scope so descendants can
// register with the nearest one through From.
func New(scope *reactive.Scope) *Boundary {
	rev, setRev := reactive.NewSignal(scope, uint64(0))
	b := &Boundary{scope: scope, rev: rev, setRev: setRev}
	reactive.Provide(scope, b)
	return b
}

// From returns the nearest boundary provided on scope or an ancestor.
func From(scope *reactive.Scope) (*Boundary, bool) {
	return reactive.Use[*Boundary](scope)
}

// Watch registers fn as an error source owned by owner. fn is called on
// every Errors call and should read reactive values so the caller is
// subscribed to them. The source is dropped when owner is disposed.
func (b *Boundary) Watch(owner *reactive.Scope, fn func() error) {
	src := &source{errFn: fn}
	b.sources = append(b.sources, src)
	owner.OnCleanup(func() { b.remove(src) })
}

// WatchResult registers a reader of Result values owned by owner as an
// error source.
func WatchResult[T any](b *Boundary, owner *reactive.Scope, r reactive.Reader[reactive.Result[T]]) {
	b.Watch(owner, func() error {
		return r.Get().Err
	})
}

func (b *Boundary) remove(src *source) {
	for i, s := range b.sources {
		if s == src {
			b.sources = append(b.sources[:i], b.sources[i+1:]...)
			break
		}
	}
	if b.scope.IsDisposed() {
		return
	}
	if err := b.setRev.Update(func(v *uint64) { *v++ }); err != nil {
		b.scope.Runtime().Logger().Error("dropping boundary source", "error", err)
	}
}

// Errors returns the errors of all sources that are currently failing, in
// registration order. Fatal runtime errors are not collected: they panic so
// that they reach the caller.
func (b *Boundary) Errors() []error {
	if !b.scope.IsDisposed() {
		_ = b.rev.Get()
	}
	var errs []error
	for _, src := range b.sources {
		err := src.errFn()
		if err == nil {
			continue
		}
		if reactive.IsFatal(err) {
			panic(err)
		}
		errs = append(errs, err)
	}
	return errs
}

// HasErrors reports whether any source is failing.
func (b *Boundary) HasErrors() bool {
	return len(b.Errors()) > 0
}

// Len returns the number of registered sources.
func (b *Boundary) Len() int {
	return len(b.sources)
}

// Render returns children() when no source is failing, otherwise
// fallback(errors).
func Render[V any](b *Boundary, children func() V, fallback func([]error) V) V {
	if errs := b.Errors(); len(errs) > 0 {
		return fallback(errs)
	}
	return children()
}
