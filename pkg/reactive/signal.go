package reactive

// Reader is anything whose value can be read with dependency tracking.
// It is implemented by Signal, Memo and ReaderFunc.
type Reader[T any] interface {
	Get() T
}

// ReaderFunc adapts a closure over other readers into a Reader. Calling Get
// simply calls the function, so every read inside it is tracked by whoever
// is running.
type ReaderFunc[T any] func() T

// Get implements Reader.
func (f ReaderFunc[T]) Get() T { return f() }

// Const returns a Reader that always yields v and tracks nothing.
func Const[T any](v T) Reader[T] {
	return ReaderFunc[T](func() T { return v })
}

// Signal is the read capability of a reactive value cell. It is a small
// value type and may be copied freely.
type Signal[T any] struct {
	rt *Runtime
	id NodeID
}

// Setter is the write capability of a reactive value cell.
type Setter[T any] struct {
	rt *Runtime
	id NodeID
}

// NewSignal allocates a cell in scope and returns decoupled read and write
// handles over it. It panics with ErrUseAfterDispose if scope is disposed.
func NewSignal[T any](scope *Scope, initial T) (Signal[T], Setter[T]) {
	scope.mustBeLive("NewSignal")
	rt := scope.rt
	id, n := rt.alloc(kindSignal, scope)
	n.value = initial
	return Signal[T]{rt: rt, id: id}, Setter[T]{rt: rt, id: id}
}

// as converts a stored value back to T, yielding the zero value for a nil
// interface.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// Read returns the current value, recording a dependency if a reader is
// running.
func (s Signal[T]) Read() (T, error) {
	n, err := s.rt.mustLookup("signal", s.id)
	if err != nil {
		var zero T
		return zero, err
	}
	s.rt.track(s.id, n)
	return as[T](n.value), nil
}

// Get is Read for callers that treat use-after-dispose as fatal: it panics
// with the structured error. Inside an effect the panic is recovered and
// returned from the write that triggered the flush.
func (s Signal[T]) Get() T {
	v, err := s.Read()
	if err != nil {
		panic(err)
	}
	return v
}

// Peek returns the current value without subscribing.
func (s Signal[T]) Peek() T {
	n, err := s.rt.mustLookup("signal", s.id)
	if err != nil {
		panic(err)
	}
	return as[T](n.value)
}

// With calls fn with the current value, tracking the read.
func (s Signal[T]) With(fn func(T)) {
	fn(s.Get())
}

// Version returns how many times the cell has been written.
func (s Signal[T]) Version() uint64 {
	n, ok := s.rt.lookup(s.id)
	if !ok {
		return 0
	}
	return n.version
}

// ID returns the arena id of the cell.
func (s Signal[T]) ID() NodeID {
	return s.id
}

// Disposed reports whether the cell has been disposed.
func (s Signal[T]) Disposed() bool {
	_, ok := s.rt.lookup(s.id)
	return !ok
}

// Set replaces the value and propagates. Writing an equal value still
// propagates.
func (w Setter[T]) Set(v T) error {
	return w.rt.write("signal", w.id, func(n *node) {
		n.value = v
	})
}

// Update mutates the value in place and propagates.
func (w Setter[T]) Update(fn func(*T)) error {
	return w.rt.write("signal", w.id, func(n *node) {
		v := as[T](n.value)
		fn(&v)
		n.value = v
	})
}

// ID returns the arena id of the cell.
func (w Setter[T]) ID() NodeID {
	return w.id
}

// Reader returns the read capability over the same cell.
func (w Setter[T]) Reader() Signal[T] {
	return Signal[T]{rt: w.rt, id: w.id}
}
