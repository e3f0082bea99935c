package reactive

import (
	"errors"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// ErrUseAfterDispose is reported when a handle is used after the node it
// refers to (or the scope that owns it) has been disposed. It always
// indicates a lifecycle bug.
var ErrUseAfterDispose = errors.New("reactive: use after dispose")

// ErrPropagationCycle is reported when a write keeps scheduling effects past
// the configured iteration bound, or when a memo reads itself.
var ErrPropagationCycle = errors.New("reactive: propagation cycle")

// ErrLoader marks errors returned by a resource loader.
var ErrLoader = errors.New("reactive: loader error")

// ErrMutator marks errors returned by an action mutator.
var ErrMutator = errors.New("reactive: mutator error")

// ErrContextNotFound is reported by MustUse when no scope provides a value.
var ErrContextNotFound = errors.New("reactive: context value not found")

// Error is the structured error type returned by the runtime.
type Error = rerrors.Error

func useAfterDispose(what string, id NodeID) *Error {
	return rerrors.New("R001").
		WithDetailf("%s %s is disposed", what, id).
		Wrap(ErrUseAfterDispose)
}

func propagationCycle(detail string) *Error {
	return rerrors.New("R002").WithDetail(detail).Wrap(ErrPropagationCycle)
}

// LoaderError wraps err as a recoverable loader failure. errors.Is matches
// both ErrLoader and err.
func LoaderError(err error) error {
	if err == nil {
		return nil
	}
	return rerrors.New("R003").Wrap(errors.Join(ErrLoader, err))
}

// MutatorError wraps err as a recoverable mutator failure. errors.Is matches
// both ErrMutator and err.
func MutatorError(err error) error {
	if err == nil {
		return nil
	}
	return rerrors.New("R004").Wrap(errors.Join(ErrMutator, err))
}

// IsFatal reports whether err is one of the lifecycle or propagation errors
// that must reach the caller instead of being rendered.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUseAfterDispose) || errors.Is(err, ErrPropagationCycle)
}
