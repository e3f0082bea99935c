// Package keyed reconciles ordered, keyed collections.
//
// Diff computes the operations that turn one key sequence into another:
// Remove for keys that disappeared, Insert for new keys and Move for
// persisted keys that must change position. Persisted keys are never
// rebuilt, and the set of moved keys is minimal: keys forming the longest
// run that is already in relative order stay where they are.
//
// List builds on Diff to keep per-key state alive across updates. Each
// entry is built once, inside its own child scope, and that scope is
// disposed when the key leaves the collection.
//
//	todos := keyed.NewList(scope,
//	    func(t Todo) int { return t.ID },
//	    func(s *reactive.Scope, t Todo) *Row { return newRow(s, t) },
//	)
//	report, err := todos.Update(items)
//
// Keys must be unique within one update and stable across updates. Using
// the position of an item as its key defeats reuse: any reorder makes every
// entry look new.
package keyed
