package reactive

import (
	"fmt"
	"strconv"
)

// Result is a value-or-error pair stored in signals and carried by resource
// and action state. The runtime treats a Result holding an error like any
// other value change.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful Result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail returns a failed Result.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Try builds a Result from a (value, error) return pair.
func Try[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{Err: err}
	}
	return Result[T]{Value: v}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

// Unwrap returns the value and error.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// String renders the value, or nothing for a failed result.
func (r Result[T]) String() string {
	if r.Err != nil {
		return ""
	}
	return fmt.Sprint(r.Value)
}

// ParseInt parses user input into a Result, never panicking on bad input.
func ParseInt(s string) Result[int] {
	return Try(strconv.Atoi(s))
}

// FormatInt formats a parsed integer back to text; a failed result formats
// as the empty string.
func FormatInt(r Result[int]) string {
	if r.Err != nil {
		return ""
	}
	return strconv.Itoa(r.Value)
}
