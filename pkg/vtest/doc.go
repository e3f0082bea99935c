// Package vtest provides testing helpers for code built on the reactive
// runtime.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    f := vtest.New(t)
//	    count, setCount := reactive.NewSignal(f.Scope, 0)
//	    setCount.Set(3)
//	    vtest.ExpectValue(t, count, 3)
//	}
//
// The fixture's scope is disposed when the test ends.
//
// # Controlling Async Work
//
// Resource loaders and action mutators normally run on goroutines and
// complete whenever the underlying work finishes. A Loader hands every call
// to the test as a Call that stays blocked until the test resolves it, so
// completion order can be chosen explicitly:
//
//	loads := vtest.NewLoader[int, string]()
//	res := resource.New(f.Scope, id, loads.Func())
//
//	first := loads.Next(t)
//	setID.Set(2)
//	second := loads.Next(t)
//
//	second.Resolve("two")
//	f.Settle()
//	first.Resolve("one") // stale, discarded
//	f.Settle()
package vtest
