package reactive

import (
	"time"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// Cleanup is returned by effects. It runs before the effect re-runs and when
// the effect is disposed.
type Cleanup func()

// Effect is the handle of a registered effect.
type Effect struct {
	rt *Runtime
	id NodeID
}

// CreateEffect registers fn in scope and runs it immediately. fn re-runs
// whenever a signal or memo it read on its previous run is written, and
// never otherwise. The error reports a propagation cycle or a fatal error
// raised by the first run.
//
// Example:
//
//	reactive.CreateEffect(scope, func() reactive.Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { fmt.Println("Cleanup") }
//	})
func CreateEffect(scope *Scope, fn func() Cleanup) (Effect, error) {
	scope.mustBeLive("CreateEffect")
	rt := scope.rt
	id, n := rt.alloc(kindEffect, scope)
	n.effect = fn

	e := Effect{rt: rt, id: id}
	return e, rt.runNow(id, n)
}

// Watch runs deps on every change but calls cb only from the second run on.
//
// Example:
//
//	reactive.Watch(scope,
//	    func() { _ = count.Get() },
//	    func() { fmt.Println("Updated!") },
//	)
func Watch(scope *Scope, deps func(), cb func()) (Effect, error) {
	first := true
	return CreateEffect(scope, func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		scope.rt.Untracked(cb)
		return nil
	})
}

// ID returns the arena id of the effect.
func (e Effect) ID() NodeID {
	return e.id
}

// Dispose runs the effect's cleanup and removes it from the graph.
func (e Effect) Dispose() {
	e.rt.disposeNode(e.id)
}

// Disposed reports whether the effect has been disposed.
func (e Effect) Disposed() bool {
	_, ok := e.rt.lookup(e.id)
	return !ok
}

// runNow runs a freshly created effect. Inside a flush or batch it runs
// directly and its writes join the active propagation; otherwise it starts a
// flush of its own.
func (rt *Runtime) runNow(id NodeID, n *node) error {
	if rt.flushing || rt.batchDepth > 0 {
		prev := rt.flushing
		rt.flushing = true
		defer func() { rt.flushing = prev }()
		return rt.runEffect(id, n)
	}
	rt.schedule(id, n)
	return rt.flush()
}

// runEffect clears the effect's edges, runs it with itself on the tracking
// stack and stores the cleanup it returns. A panic carrying a structured
// runtime error is turned into the returned error.
func (rt *Runtime) runEffect(id NodeID, n *node) (err error) {
	n.dirty = false

	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil
		cleanup()
	}
	rt.unlinkDeps(id, n)

	start := time.Now()
	rt.push(id)
	defer func() {
		rt.pop()
		if r := recover(); r != nil {
			re, ok := r.(*rerrors.Error)
			if !ok {
				panic(r)
			}
			err = re
		}
		rt.stats.EffectRuns++
		rt.Emit(Event{Kind: EventEffectRun, Node: id, Start: start, End: time.Now(), Err: err})
	}()

	cleanup := n.effect()
	if n.alive && n.gen == id.Gen {
		n.cleanup = cleanup
	} else if cleanup != nil {
		cleanup()
	}
	return nil
}
