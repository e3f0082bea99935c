package resource

import "github.com/vango-dev/reactor/pkg/reactive"

// Suspense counts the resources beneath it that are loading.
//
// Example:
//
//	s := resource.NewSuspense(scope)
//	name := resource.New(scope.Child(), id, fetchName)
//	text := resource.Render(s,
//	    func() string { r, _ := name.Read(); return r.Value },
//	    func() string { return "Loading..." },
//	)
type Suspense struct {
	count    reactive.Signal[int]
	setCount reactive.Setter[int]
}

// NewSuspense creates a Suspense and provides it to scope, so resources
// created in scope or its descendants register with it.
func NewSuspense(scope *reactive.Scope) *Suspense {
	count, setCount := reactive.NewSignal(scope, 0)
	s := &Suspense{count: count, setCount: setCount}
	reactive.Provide(scope, s)
	return s
}

// Pending reports whether any registered resource is loading. The read is
// tracked.
func (s *Suspense) Pending() bool {
	return s.count.Get() > 0
}

// Count returns the number of registered resources currently loading.
func (s *Suspense) Count() int {
	return s.count.Get()
}

func (s *Suspense) add(delta int) {
	if s.count.Disposed() {
		return
	}
	_ = s.setCount.Update(func(n *int) { *n += delta })
}

// Render returns fallback() while s is pending and children() otherwise.
func Render[V any](s *Suspense, children, fallback func() V) V {
	if s.Pending() {
		return fallback()
	}
	return children()
}
