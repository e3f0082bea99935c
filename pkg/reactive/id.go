package reactive

import "fmt"

// NodeID identifies a node in the runtime arena. Index is the slot and Gen
// the slot generation at allocation time; the zero NodeID is never valid.
type NodeID struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether the id is the zero value.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

// String returns the id as "index#gen".
func (id NodeID) String() string {
	return fmt.Sprintf("%d#%d", id.Index, id.Gen)
}

func containsID(ids []NodeID, id NodeID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// removeID removes id by swapping with the last element (order doesn't matter).
func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, existing := range ids {
		if existing == id {
			ids[i] = ids[len(ids)-1]
			return ids[:len(ids)-1]
		}
	}
	return ids
}
