package reactive

import (
	"fmt"
	"slices"
	"time"
)

// write applies mutate to a signal, bumps its version, marks every
// dependent dirty and flushes unless a flush or batch is already active.
func (rt *Runtime) write(what string, id NodeID, mutate func(n *node)) error {
	n, err := rt.mustLookup(what, id)
	if err != nil {
		return err
	}

	mutate(n)
	n.version++
	rt.markSubscribers(n, make(map[NodeID]struct{}))

	if rt.flushing || rt.batchDepth > 0 {
		return nil
	}
	return rt.flush()
}

// markSubscribers walks the transitive subscriber set of n. Memos are only
// invalidated; effects are queued for the flush.
func (rt *Runtime) markSubscribers(n *node, seen map[NodeID]struct{}) {
	subs := slices.Clone(n.subs)
	for _, id := range subs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		sn, ok := rt.lookup(id)
		if !ok {
			continue
		}
		switch sn.kind {
		case kindMemo:
			sn.valid = false
			rt.markSubscribers(sn, seen)
		case kindEffect:
			rt.schedule(id, sn)
		}
	}
}

func (rt *Runtime) schedule(id NodeID, n *node) {
	if n.dirty {
		return
	}
	n.dirty = true
	rt.pending = append(rt.pending, id)
}

func (rt *Runtime) clearPending() {
	for _, id := range rt.pending {
		if n, ok := rt.lookup(id); ok {
			n.dirty = false
		}
	}
	rt.pending = nil
}

// flush runs dirty effects pass by pass until none remain. Each pass runs in
// registration order; effects dirtied after they ran in a pass wait for the
// next one.
func (rt *Runtime) flush() (err error) {
	if len(rt.pending) == 0 {
		return nil
	}

	rt.flushing = true
	start := time.Now()
	passes, runs := 0, 0

	defer func() {
		rt.flushing = false
		rt.stats.Flushes++
		rt.stats.Passes += uint64(passes)
		rt.Emit(Event{
			Kind:    EventFlush,
			Passes:  passes,
			Effects: runs,
			Start:   start,
			End:     time.Now(),
			Err:     err,
		})
	}()

	type entry struct {
		id  NodeID
		seq uint64
	}

	for len(rt.pending) > 0 {
		if passes >= rt.cfg.maxIterations {
			remaining := len(rt.pending)
			rt.clearPending()
			rt.stats.Cycles++
			rt.log.Warn("propagation cycle",
				"passes", passes,
				"pending", remaining,
				"max_iterations", rt.cfg.maxIterations)
			cerr := propagationCycle(fmt.Sprintf(
				"%d effects still dirty after %d passes", remaining, passes))
			rt.Emit(Event{Kind: EventCycle, Passes: passes, Effects: remaining, Err: cerr})
			return cerr
		}
		passes++

		batch := make([]entry, 0, len(rt.pending))
		for _, id := range rt.pending {
			if n, ok := rt.lookup(id); ok {
				batch = append(batch, entry{id: id, seq: n.seq})
			}
		}
		rt.pending = nil
		slices.SortFunc(batch, func(a, b entry) int {
			switch {
			case a.seq < b.seq:
				return -1
			case a.seq > b.seq:
				return 1
			default:
				return 0
			}
		})

		for i, e := range batch {
			n, ok := rt.lookup(e.id)
			if !ok || !n.dirty {
				continue
			}
			runs++
			if err := rt.runEffect(e.id, n); err != nil {
				// Unrun effects must be schedulable by the next write.
				for _, rest := range batch[i+1:] {
					if rn, ok := rt.lookup(rest.id); ok {
						rn.dirty = false
					}
				}
				rt.clearPending()
				return err
			}
		}
	}
	return nil
}

// Batch groups writes so that dependents flush once, when the outermost
// batch returns.
//
// Example:
//
//	rt.Batch(func() {
//	    setFirst.Set("John")
//	    setLast.Set("Doe")
//	})
func (rt *Runtime) Batch(fn func()) error {
	rt.batchDepth++
	done := false
	defer func() {
		if !done {
			rt.batchDepth--
		}
	}()

	fn()

	done = true
	rt.batchDepth--
	if rt.batchDepth > 0 || rt.flushing {
		return nil
	}
	return rt.flush()
}
