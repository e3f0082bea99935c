package reactive

import (
	"fmt"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// typeKey keys context values by their static type.
type typeKey[T any] struct{}

// SetValue stores a value on this scope under key.
func (s *Scope) SetValue(key, value any) {
	if s.values == nil {
		s.values = make(map[any]any)
	}
	s.values[key] = value
}

// Value looks key up on this scope, then on each ancestor in turn.
func (s *Scope) Value(key any) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Provide makes v available to scope and all of its descendants, keyed by
// the type T. A nearer Provide of the same type shadows a farther one.
//
// Example:
//
//	reactive.Provide(app, setToggled)
//	// ... deep in the tree:
//	set, _ := reactive.Use[reactive.Setter[bool]](button)
func Provide[T any](scope *Scope, v T) {
	scope.SetValue(typeKey[T]{}, v)
}

// Use returns the nearest value of type T provided on scope or an ancestor.
func Use[T any](scope *Scope) (T, bool) {
	v, ok := scope.Value(typeKey[T]{})
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// MustUse is Use that panics with ErrContextNotFound when nothing provides T.
func MustUse[T any](scope *Scope) T {
	v, ok := Use[T](scope)
	if !ok {
		var zero T
		panic(rerrors.New("R005").
			WithDetail(fmt.Sprintf("no %T provided above scope %d", zero, scope.id)).
			Wrap(ErrContextNotFound))
	}
	return v
}
