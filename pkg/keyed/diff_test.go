package keyed

import (
	"errors"
	"slices"
	"testing"
)

func count[K comparable](ops []Op[K], kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func TestDiffReorderOnlyMoves(t *testing.T) {
	prev := []int{1, 2, 3}
	next := []int{3, 1, 2}

	ops, err := Diff(prev, next)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if count(ops, OpInsert) != 0 || count(ops, OpRemove) != 0 {
		t.Errorf("ops = %v, want no constructions or destructions", ops)
	}
	if len(ops) != 1 || ops[0] != (Op[int]{Kind: OpMove, Key: 3, From: 2, To: 0}) {
		t.Errorf("ops = %v, want a single move of key 3", ops)
	}
	if got := Apply(prev, ops); !slices.Equal(got, next) {
		t.Errorf("Apply = %v, want %v", got, next)
	}
}

func TestDiffReplace(t *testing.T) {
	prev := []int{1, 2}
	next := []int{1, 3}

	ops, err := Diff(prev, next)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	want := []Op[int]{
		{Kind: OpRemove, Key: 2, From: 1, To: -1},
		{Kind: OpInsert, Key: 3, From: -1, To: 1},
	}
	if !slices.Equal(ops, want) {
		t.Errorf("ops = %v, want %v", ops, want)
	}
}

func TestDiffDuplicateKey(t *testing.T) {
	if _, err := Diff([]string{"a"}, []string{"b", "b"}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
	if _, err := Diff([]string{"a", "a"}, nil); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestDiffApply(t *testing.T) {
	tests := []struct {
		name  string
		prev  []string
		next  []string
		moves int
	}{
		{"empty", nil, nil, 0},
		{"fill", nil, []string{"a", "b"}, 0},
		{"clear", []string{"a", "b"}, nil, 0},
		{"same", []string{"a", "b", "c"}, []string{"a", "b", "c"}, 0},
		{"reverse", []string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}, 3},
		{"swap ends", []string{"a", "b", "c", "d"}, []string{"d", "b", "c", "a"}, 2},
		{"rotate left", []string{"a", "b", "c"}, []string{"b", "c", "a"}, 1},
		{"moved before insert", []string{"m", "a", "b"}, []string{"a", "n", "b", "m"}, 1},
		{"mixed", []string{"a", "b", "c", "d", "e"}, []string{"e", "x", "b", "a", "y", "d"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := Diff(tt.prev, tt.next)
			if err != nil {
				t.Fatalf("Diff: %v", err)
			}
			if got := count(ops, OpMove); got != tt.moves {
				t.Errorf("moves = %d, want %d (ops %v)", got, tt.moves, ops)
			}
			got := Apply(tt.prev, ops)
			if len(got) != len(tt.next) || (len(got) > 0 && !slices.Equal(got, tt.next)) {
				t.Errorf("Apply = %v, want %v", got, tt.next)
			}
		})
	}
}

func TestOpString(t *testing.T) {
	op := Op[int]{Kind: OpMove, Key: 3, From: 2, To: 0}
	if op.String() != "Move(3 2->0)" {
		t.Errorf("String() = %q", op.String())
	}
	if OpKind(0).String() != "Unknown" {
		t.Errorf("zero kind = %q", OpKind(0).String())
	}
}
