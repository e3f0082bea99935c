package reactive

// currentReader returns the reader on top of the tracking stack, or the zero
// id when nothing is tracking.
func (rt *Runtime) currentReader() NodeID {
	if len(rt.stack) == 0 {
		return NodeID{}
	}
	return rt.stack[len(rt.stack)-1]
}

func (rt *Runtime) push(id NodeID) {
	rt.stack = append(rt.stack, id)
}

func (rt *Runtime) pop() {
	rt.stack = rt.stack[:len(rt.stack)-1]
}

// track records an edge from the current reader to src.
func (rt *Runtime) track(src NodeID, sn *node) {
	reader := rt.currentReader()
	if reader.IsZero() || reader == src {
		return
	}
	rn, ok := rt.lookup(reader)
	if !ok {
		return
	}
	if !containsID(rn.deps, src) {
		rn.deps = append(rn.deps, src)
	}
	if !containsID(sn.subs, reader) {
		sn.subs = append(sn.subs, reader)
	}
}

// Untracked runs fn without recording dependency edges for the reads it
// performs.
//
// Example:
//
//	rt.Untracked(func() {
//	    // Reading count here won't subscribe the running effect
//	    fmt.Println(count.Get())
//	})
func (rt *Runtime) Untracked(fn func()) {
	rt.push(NodeID{})
	defer rt.pop()
	fn()
}

// Tracking reports whether a reader is currently recording dependencies.
func (rt *Runtime) Tracking() bool {
	return !rt.currentReader().IsZero()
}
