package keyed

import "fmt"

// OpKind is the type of a reconciliation operation.
type OpKind uint8

const (
	OpInsert OpKind = 0x01 // Construct an entry for a new key
	OpRemove OpKind = 0x02 // Tear down the entry of a vanished key
	OpMove   OpKind = 0x03 // Reposition a persisted entry
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Op is a single reconciliation operation.
type Op[K comparable] struct {
	Kind OpKind
	Key  K
	From int // Index in the previous sequence, -1 for Insert
	To   int // Index in the next sequence, -1 for Remove
}

// String renders the operation for logs and test failures.
func (o Op[K]) String() string {
	switch o.Kind {
	case OpInsert:
		return fmt.Sprintf("Insert(%v @%d)", o.Key, o.To)
	case OpRemove:
		return fmt.Sprintf("Remove(%v @%d)", o.Key, o.From)
	case OpMove:
		return fmt.Sprintf("Move(%v %d->%d)", o.Key, o.From, o.To)
	default:
		return fmt.Sprintf("Unknown(%v)", o.Key)
	}
}

// Report summarizes one List update.
type Report[K comparable] struct {
	Ops         []Op[K]
	Constructed []K
	Destroyed   []K
	Moved       []K
}

// Empty reports whether the update changed nothing.
func (r Report[K]) Empty() bool {
	return len(r.Ops) == 0
}
