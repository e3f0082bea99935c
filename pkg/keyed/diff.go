package keyed

import (
	"errors"
	"sort"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// ErrDuplicateKey is reported when a key occurs twice in one sequence.
var ErrDuplicateKey = errors.New("keyed: duplicate key")

// Diff returns the operations turning prev into next: Remove ops in
// previous order, then Insert and Move ops in next order. Keys present in
// both sequences whose relative order is preserved produce no op.
func Diff[K comparable](prev, next []K) ([]Op[K], error) {
	prevIdx, err := indexKeys(prev, "previous")
	if err != nil {
		return nil, err
	}
	nextIdx, err := indexKeys(next, "next")
	if err != nil {
		return nil, err
	}

	var ops []Op[K]
	for i, k := range prev {
		if _, ok := nextIdx[k]; !ok {
			ops = append(ops, Op[K]{Kind: OpRemove, Key: k, From: i, To: -1})
		}
	}

	// src[i] is the previous index of next[i], or -1 for a new key.
	src := make([]int, len(next))
	for i, k := range next {
		if j, ok := prevIdx[k]; ok {
			src[i] = j
		} else {
			src[i] = -1
		}
	}

	stay := longestIncreasing(src)
	for i, k := range next {
		switch {
		case src[i] < 0:
			ops = append(ops, Op[K]{Kind: OpInsert, Key: k, From: -1, To: i})
		case !stay[i]:
			ops = append(ops, Op[K]{Kind: OpMove, Key: k, From: src[i], To: i})
		}
	}
	return ops, nil
}

// Apply replays ops on prev. Removed and moved keys are taken out first;
// inserted and moved keys are then placed at their target index in op
// order. Apply(prev, Diff(prev, next)) equals next.
func Apply[K comparable](prev []K, ops []Op[K]) []K {
	out := make(map[K]bool, len(ops))
	for _, op := range ops {
		if op.Kind == OpRemove || op.Kind == OpMove {
			out[op.Key] = true
		}
	}

	seq := make([]K, 0, len(prev))
	for _, k := range prev {
		if !out[k] {
			seq = append(seq, k)
		}
	}

	for _, op := range ops {
		if op.Kind == OpRemove {
			continue
		}
		at := op.To
		if at > len(seq) {
			at = len(seq)
		}
		seq = append(seq, op.Key)
		copy(seq[at+1:], seq[at:])
		seq[at] = op.Key
	}
	return seq
}

func indexKeys[K comparable](keys []K, which string) (map[K]int, error) {
	idx := make(map[K]int, len(keys))
	for i, k := range keys {
		if j, dup := idx[k]; dup {
			return nil, rerrors.New("R006").
				WithDetailf("key %v at %s positions %d and %d", k, which, j, i).
				Wrap(ErrDuplicateKey)
		}
		idx[k] = i
	}
	return idx, nil
}

// longestIncreasing marks the positions of one longest strictly increasing
// subsequence of seq, ignoring negative entries.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	prev := make([]int, len(seq))
	var tails []int // tails[l] is the position ending the best run of length l+1

	for i, v := range seq {
		prev[i] = -1
		if v < 0 {
			continue
		}
		l := sort.Search(len(tails), func(j int) bool { return seq[tails[j]] >= v })
		if l > 0 {
			prev[i] = tails[l-1]
		}
		if l == len(tails) {
			tails = append(tails, i)
		} else {
			tails[l] = i
		}
	}

	if len(tails) == 0 {
		return keep
	}
	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}
