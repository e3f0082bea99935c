package reactive

import (
	"context"
	"fmt"
	"time"
)

// Scope is a lifetime boundary. It owns the nodes created in it and its
// child scopes; disposing it disposes all of them together.
//
// Scopes form a hierarchy mirroring the consumer's UI tree. Values provided
// on a scope are visible to every descendant (see Provide and Use).
type Scope struct {
	rt     *Runtime
	id     uint64
	parent *Scope

	children []*Scope
	nodes    []NodeID
	cleanups []func()
	values   map[any]any

	ctx    context.Context
	cancel context.CancelFunc

	disposed bool
}

func newScope(rt *Runtime, parent *Scope) *Scope {
	rt.scopeSeq++
	parentCtx := rt.cfg.ctx
	if parent != nil {
		parentCtx = parent.ctx
	}
	ctx, cancel := context.WithCancel(parentCtx)

	s := &Scope{
		rt:     rt,
		id:     rt.scopeSeq,
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
	}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

// Child creates a scope owned by s. It panics with ErrUseAfterDispose if s
// is disposed.
func (s *Scope) Child() *Scope {
	s.mustBeLive("Child")
	return newScope(s.rt, s)
}

// Runtime returns the runtime the scope belongs to.
func (s *Scope) Runtime() *Runtime {
	return s.rt
}

// ID returns the unique identifier of the scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Context returns a context cancelled when the scope is disposed.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// IsDisposed reports whether the scope has been disposed.
func (s *Scope) IsDisposed() bool {
	return s.disposed
}

// Len returns the number of live nodes owned directly by the scope.
func (s *Scope) Len() int {
	live := 0
	for _, id := range s.nodes {
		if _, ok := s.rt.lookup(id); ok {
			live++
		}
	}
	return live
}

// OnCleanup registers fn to run when the scope is disposed. On an already
// disposed scope fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

func (s *Scope) own(id NodeID) {
	s.nodes = append(s.nodes, id)
}

func (s *Scope) mustBeLive(op string) {
	if s.disposed {
		panic(useAfterDispose("scope", NodeID{}).WithDetail(fmt.Sprintf("%s on disposed scope %d", op, s.id)))
	}
}

// Dispose disposes child scopes (last created first), then the scope's own
// nodes in reverse creation order, then runs cleanups in reverse order and
// cancels the scope context. Disposing twice is a no-op.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	start := time.Now()

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	children := s.children
	s.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	nodes := s.nodes
	s.nodes = nil
	for i := len(nodes) - 1; i >= 0; i-- {
		s.rt.disposeNode(nodes[i])
	}

	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	s.cancel()
	s.values = nil

	s.rt.log.Debug("scope disposed", "scope", s.id, "nodes", len(nodes))
	s.rt.Emit(Event{Kind: EventScopeDispose, Scope: s.id, Effects: len(nodes), Start: start, End: time.Now()})
}

func (s *Scope) removeChild(child *Scope) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}
