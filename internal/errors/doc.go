// Package errors provides the coded, structured errors raised by the reactor
// runtime.
//
// Each error carries a code (e.g. "R001") that maps to a short message, a
// longer explanation and a category. The code is stable and safe to match on
// in logs; programmatic matching should use errors.Is against the sentinel
// stored in Wrapped.
//
// # Categories
//
//   - lifecycle: a handle was used after its scope was disposed
//   - propagation: write-causes-write loops and self-reading memos
//   - async: loader and mutator failures carried in Resource/Action state
//   - context: missing values in the scope environment
//   - config: invalid configuration files
//
// # Usage
//
//	err := errors.New("R001").
//	    WithDetail("signal 4#2 read after scope disposal").
//	    Wrap(reactive.ErrUseAfterDispose)
//
//	fmt.Println(err.Format())
package errors
