package keyed

import (
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
)

type entry[T, V any] struct {
	scope   *reactive.Scope
	item    reactive.Signal[T]
	setItem reactive.Setter[T]
	view    V
}

// List keeps one view per key across updates of an ordered collection.
type List[K comparable, T, V any] struct {
	rt    *reactive.Runtime
	scope *reactive.Scope
	key   func(T) K
	view  func(*reactive.Scope, T) V
	label string

	keys    []K
	entries map[K]*entry[T, V]
	updates uint64
}

// NewList creates a list whose entries live in child scopes of scope.
// view is called at most once per key while the key stays in the list.
func NewList[K comparable, T, V any](scope *reactive.Scope, key func(T) K, view func(*reactive.Scope, T) V) *List[K, T, V] {
	return &List[K, T, V]{
		rt:      scope.Runtime(),
		scope:   scope,
		key:     key,
		view:    view,
		entries: make(map[K]*entry[T, V]),
	}
}

// Label names the list in runtime events.
func (l *List[K, T, V]) Label(name string) *List[K, T, V] {
	l.label = name
	return l
}

// Update reconciles the list with items. Entries of vanished keys have
// their scopes disposed, new keys are built, and persisted entries keep
// their view; their item signal (see ItemOf) receives the new item. View
// construction does not subscribe a running effect.
func (l *List[K, T, V]) Update(items []T) (Report[K], error) {
	start := time.Now()
	next := make([]K, len(items))
	for i, it := range items {
		next[i] = l.key(it)
	}

	ops, err := Diff(l.keys, next)
	if err != nil {
		return Report[K]{}, err
	}
	report := Report[K]{Ops: ops}

	for _, op := range ops {
		switch op.Kind {
		case OpRemove:
			if e, ok := l.entries[op.Key]; ok {
				e.scope.Dispose()
				delete(l.entries, op.Key)
			}
			report.Destroyed = append(report.Destroyed, op.Key)
		case OpMove:
			report.Moved = append(report.Moved, op.Key)
		}
	}

	var werr error
	for i, k := range next {
		if e, ok := l.entries[k]; ok {
			if err := e.setItem.Set(items[i]); err != nil && werr == nil {
				werr = err
			}
			continue
		}
		l.entries[k] = l.build(items[i])
		report.Constructed = append(report.Constructed, k)
	}
	l.keys = next
	l.updates++

	l.rt.Emit(reactive.Event{
		Kind:       reactive.EventListReconcile,
		Scope:      l.scope.ID(),
		Generation: l.updates,
		Effects:    len(ops),
		Label:      l.label,
		Start:      start,
		End:        time.Now(),
	})
	return report, werr
}

func (l *List[K, T, V]) build(item T) *entry[T, V] {
	child := l.scope.Child()
	sig, set := reactive.NewSignal(child, item)
	reactive.Provide(child, sig)

	e := &entry[T, V]{scope: child, item: sig, setItem: set}
	l.rt.Untracked(func() { e.view = l.view(child, item) })
	return e
}

// Keys returns the keys in current order.
func (l *List[K, T, V]) Keys() []K {
	return append([]K(nil), l.keys...)
}

// Views returns the views in current order.
func (l *List[K, T, V]) Views() []V {
	views := make([]V, len(l.keys))
	for i, k := range l.keys {
		views[i] = l.entries[k].view
	}
	return views
}

// View returns the view of key k.
func (l *List[K, T, V]) View(k K) (V, bool) {
	e, ok := l.entries[k]
	if !ok {
		var zero V
		return zero, false
	}
	return e.view, true
}

// Len returns the number of entries.
func (l *List[K, T, V]) Len() int {
	return len(l.keys)
}

// Clear removes every entry.
func (l *List[K, T, V]) Clear() (Report[K], error) {
	return l.Update(nil)
}

// ItemOf returns the item signal of the entry owning scope. Views use it to
// react to new items arriving for their key.
func ItemOf[T any](scope *reactive.Scope) (reactive.Signal[T], bool) {
	return reactive.Use[reactive.Signal[T]](scope)
}

// For drives a list from a reactive collection: whenever each changes the
// list is updated and apply is called, untracked, with the report and the
// views in order. A duplicate key surfaces as the error of the write that
// triggered the update.
//
// Example:
//
//	keyed.For(scope, counters,
//	    func(c Counter) int { return c.ID },
//	    func(s *reactive.Scope, c Counter) string { return c.Label },
//	    func(r keyed.Report[int], views []string) { render(views) },
//	)
func For[K comparable, T, V any](
	scope *reactive.Scope,
	each reactive.Reader[[]T],
	key func(T) K,
	view func(*reactive.Scope, T) V,
	apply func(Report[K], []V),
) (*List[K, T, V], error) {
	l := NewList(scope, key, view)
	_, err := reactive.CreateEffect(scope, func() reactive.Cleanup {
		items := each.Get()
		report, err := l.Update(items)
		if err != nil {
			panic(err)
		}
		if apply != nil {
			l.rt.Untracked(func() { apply(report, l.Views()) })
		}
		return nil
	})
	return l, err
}
