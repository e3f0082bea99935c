package reactive

import (
	"fmt"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// Memo is a cached derived computation. It never recomputes on write: a
// write to one of its dependencies only invalidates the cache, and the next
// read recomputes it, recording fresh dependency edges.
type Memo[T any] struct {
	rt *Runtime
	id NodeID
}

// NewMemo wraps compute in scope. compute is not run until the first read.
func NewMemo[T any](scope *Scope, compute func() T) Memo[T] {
	scope.mustBeLive("NewMemo")
	rt := scope.rt
	id, n := rt.alloc(kindMemo, scope)
	n.compute = func() any { return compute() }
	return Memo[T]{rt: rt, id: id}
}

// Read returns the memo's value, recomputing it if invalid, and records a
// dependency if a reader is running.
func (m Memo[T]) Read() (T, error) {
	var zero T
	n, err := m.rt.mustLookup("memo", m.id)
	if err != nil {
		return zero, err
	}

	if !n.valid {
		if err := m.rt.recompute(m.id, n); err != nil {
			return zero, err
		}
		// The computation may have disposed the memo's own scope.
		if n, err = m.rt.mustLookup("memo", m.id); err != nil {
			return zero, err
		}
	}

	m.rt.track(m.id, n)
	return as[T](n.value), nil
}

// Get is Read that panics with the structured error on failure.
func (m Memo[T]) Get() T {
	v, err := m.Read()
	if err != nil {
		panic(err)
	}
	return v
}

// Peek returns the memo's value without subscribing. It still recomputes an
// invalid cache.
func (m Memo[T]) Peek() T {
	var v T
	m.rt.Untracked(func() { v = m.Get() })
	return v
}

// Valid reports whether the cached value is current.
func (m Memo[T]) Valid() bool {
	n, ok := m.rt.lookup(m.id)
	return ok && n.valid
}

// ID returns the arena id of the memo.
func (m Memo[T]) ID() NodeID {
	return m.id
}

// recompute runs the memo computation with the memo on the tracking stack.
// Writes made by the computation are queued and flushed afterwards.
func (rt *Runtime) recompute(id NodeID, n *node) (err error) {
	if n.computing {
		return propagationCycle(fmt.Sprintf("memo %s read itself while computing", id))
	}
	n.computing = true
	rt.unlinkDeps(id, n)

	prevFlushing := rt.flushing
	rt.flushing = true
	rt.push(id)

	func() {
		defer func() {
			rt.pop()
			rt.flushing = prevFlushing
			n.computing = false
			if r := recover(); r != nil {
				re, ok := r.(*rerrors.Error)
				if !ok {
					panic(r)
				}
				err = re
			}
		}()

		v := n.compute()
		if n.alive && n.gen == id.Gen {
			n.value = v
			n.valid = true
			n.version++
		}
	}()
	if err != nil {
		return err
	}

	if !prevFlushing && rt.batchDepth == 0 {
		return rt.flush()
	}
	return nil
}
