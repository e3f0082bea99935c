// Package reactive provides the fine-grained reactive runtime of reactor.
//
// A Runtime owns an arena of reactive nodes: signals (value cells), memos
// (lazily cached derivations) and effects (side-effecting computations).
// Reading a signal or memo while an effect or memo is executing records a
// dependency edge; writing a signal marks every dependent dirty and flushes
// the dirty effects synchronously, in registration order, before the write
// returns.
//
// # Core Types
//
// Signal[T] and Setter[T] are the read and write capabilities of a cell:
//
//	count, setCount := reactive.NewSignal(scope, 0)
//	value := count.Get()      // tracked read
//	setCount.Set(5)           // write, then propagate
//	setCount.Update(func(n *int) { *n++ })
//
// Memo[T] is a cached derived computation, recomputed on the first read
// after one of its dependencies changes:
//
//	doubled := reactive.NewMemo(scope, func() int { return count.Get() * 2 })
//
// Effects re-run exactly when a dependency they read on their last run is
// written:
//
//	reactive.CreateEffect(scope, func() reactive.Cleanup {
//	    log.Println("count is", count.Get())
//	    return nil
//	})
//
// # Scopes
//
// Every node is created inside a Scope. Disposing a scope disposes all of
// its nodes and child scopes and removes their dependency edges, so a
// disposed node never fires again. Handles are arena indices tagged with a
// generation; using one after disposal fails with ErrUseAfterDispose.
//
// # Threading
//
// The runtime is single-threaded: all reactive calls happen on the goroutine
// that drives it. Asynchronous work runs on its own goroutine via Go and hands
// its continuation back with Dispatch; the driving goroutine applies queued
// continuations with RunPending, Run or Settle.
package reactive
