package reactive

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

type nodeKind uint8

const (
	kindSignal nodeKind = iota + 1
	kindMemo
	kindEffect
)

func (k nodeKind) String() string {
	switch k {
	case kindSignal:
		return "signal"
	case kindMemo:
		return "memo"
	case kindEffect:
		return "effect"
	default:
		return "node"
	}
}

// node is one arena slot. Slots are reused after disposal with a bumped gen.
type node struct {
	gen   uint32
	alive bool
	kind  nodeKind

	// seq is the registration order, used to order effect flushes.
	seq   uint64
	scope *Scope

	value   any
	version uint64

	// subs are the readers that read this node on their last execution.
	subs []NodeID

	// deps are the nodes this reader read on its last execution.
	deps []NodeID

	effect    func() Cleanup
	cleanup   Cleanup
	dirty     bool
	compute   func() any
	valid     bool
	computing bool
}

// Runtime is the signal store and effect scheduler. It is not safe for
// concurrent use; see Dispatch for handing work back from other goroutines.
type Runtime struct {
	cfg config
	log *slog.Logger

	nodes []*node
	free  []uint32
	seq   uint64

	// stack holds the readers currently executing. A zero NodeID frame
	// suspends tracking (Untracked).
	stack []NodeID

	// pending holds dirty effects waiting for the next flush pass.
	pending    []NodeID
	flushing   bool
	batchDepth int

	root     *Scope
	scopeSeq uint64

	queueMu  sync.Mutex
	queue    []func()
	wake     chan struct{}
	inflight atomic.Int64

	stats Stats
}

// Stats is a snapshot of runtime counters.
type Stats struct {
	Signals    int    `json:"signals"`
	Memos      int    `json:"memos"`
	Effects    int    `json:"effects"`
	Flushes    uint64 `json:"flushes"`
	Passes     uint64 `json:"passes"`
	EffectRuns uint64 `json:"effect_runs"`
	Cycles     uint64 `json:"cycles"`
	InFlight   int64  `json:"in_flight"`
}

// New creates a Runtime with a fresh root scope.
func New(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := &Runtime{
		cfg:  cfg,
		log:  cfg.logger.With("component", "reactive"),
		wake: make(chan struct{}, 1),
	}
	rt.root = newScope(rt, nil)
	return rt
}

// Root returns the root scope.
func (rt *Runtime) Root() *Scope {
	return rt.root
}

// MaxIterations returns the configured flush pass bound.
func (rt *Runtime) MaxIterations() int {
	return rt.cfg.maxIterations
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.log
}

// Context returns the parent context configured with WithContext.
func (rt *Runtime) Context() context.Context {
	return rt.cfg.ctx
}

// Stats returns a snapshot of runtime counters.
func (rt *Runtime) Stats() Stats {
	s := rt.stats
	for _, n := range rt.nodes {
		if !n.alive {
			continue
		}
		switch n.kind {
		case kindSignal:
			s.Signals++
		case kindMemo:
			s.Memos++
		case kindEffect:
			s.Effects++
		}
	}
	s.InFlight = rt.inflight.Load()
	return s
}

// alloc reserves a slot and returns its id. The caller fills in the node.
func (rt *Runtime) alloc(kind nodeKind, scope *Scope) (NodeID, *node) {
	var idx uint32
	var n *node
	if k := len(rt.free); k > 0 {
		idx = rt.free[k-1]
		rt.free = rt.free[:k-1]
		n = rt.nodes[idx]
	} else {
		idx = uint32(len(rt.nodes))
		n = &node{gen: 1}
		rt.nodes = append(rt.nodes, n)
	}

	rt.seq++
	n.alive = true
	n.kind = kind
	n.seq = rt.seq
	n.scope = scope

	id := NodeID{Index: idx, Gen: n.gen}
	scope.own(id)
	return id, n
}

// lookup resolves a handle, failing if the slot was disposed or reused.
func (rt *Runtime) lookup(id NodeID) (*node, bool) {
	if id.IsZero() || int(id.Index) >= len(rt.nodes) {
		return nil, false
	}
	n := rt.nodes[id.Index]
	if !n.alive || n.gen != id.Gen {
		return nil, false
	}
	return n, true
}

func (rt *Runtime) mustLookup(what string, id NodeID) (*node, error) {
	n, ok := rt.lookup(id)
	if !ok {
		return nil, useAfterDispose(what, id)
	}
	return n, nil
}

// unlinkDeps removes id from the subscriber lists of everything it read.
func (rt *Runtime) unlinkDeps(id NodeID, n *node) {
	for _, dep := range n.deps {
		if dn, ok := rt.lookup(dep); ok {
			dn.subs = removeID(dn.subs, id)
		}
	}
	n.deps = n.deps[:0]
}

// disposeNode releases a slot and removes all of its edges.
func (rt *Runtime) disposeNode(id NodeID) {
	n, ok := rt.lookup(id)
	if !ok {
		return
	}

	if n.cleanup != nil {
		cleanup := n.cleanup
		n.cleanup = nil
		cleanup()
	}

	rt.unlinkDeps(id, n)
	for _, sub := range n.subs {
		if sn, ok := rt.lookup(sub); ok {
			sn.deps = removeID(sn.deps, id)
		}
	}

	*n = node{gen: n.gen + 1}
	rt.free = append(rt.free, id.Index)
}
