package keyed

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vtest"
)

type item struct {
	id   int
	name string
}

func itemKey(it item) int { return it.id }

func TestListBuildsOncePerKey(t *testing.T) {
	f := vtest.New(t)
	builds := map[int]int{}
	l := NewList(f.Scope, itemKey, func(s *reactive.Scope, it item) string {
		builds[it.id]++
		return it.name
	})

	a, b, c := item{1, "a"}, item{2, "b"}, item{3, "c"}

	report, err := l.Update([]item{a, b, c})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(report.Constructed) != 3 {
		t.Errorf("constructed = %v", report.Constructed)
	}

	report, err = l.Update([]item{c, a, b})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(report.Constructed) != 0 || len(report.Destroyed) != 0 {
		t.Errorf("reorder rebuilt entries: %+v", report)
	}
	if len(report.Moved) == 0 {
		t.Error("reorder reported no moves")
	}
	if got := l.Views(); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("Views() = %v", got)
	}
	for id, n := range builds {
		if n != 1 {
			t.Errorf("key %d built %d times", id, n)
		}
	}

	report, _ = l.Update([]item{c, a, {4, "d"}})
	if !slices.Equal(report.Destroyed, []int{2}) || !slices.Equal(report.Constructed, []int{4}) {
		t.Errorf("report = %+v, want key 2 destroyed and key 4 constructed", report)
	}
}

func TestListRemovedEntryScopeDisposed(t *testing.T) {
	f := vtest.New(t)
	tick, setTick := reactive.NewSignal(f.Scope, 0)
	runs := map[int]int{}

	l := NewList(f.Scope, itemKey, func(s *reactive.Scope, it item) int {
		reactive.CreateEffect(s, func() reactive.Cleanup {
			_ = tick.Get()
			runs[it.id]++
			return nil
		})
		return it.id
	})

	l.Update([]item{{1, "a"}, {2, "b"}})
	l.Update([]item{{1, "a"}})
	setTick.Set(1)

	if runs[1] != 2 {
		t.Errorf("kept entry effect runs = %d, want 2", runs[1])
	}
	if runs[2] != 1 {
		t.Errorf("removed entry effect ran after disposal: runs = %d", runs[2])
	}
}

func TestListReinsertedKeyIsNew(t *testing.T) {
	f := vtest.New(t)
	builds := 0
	l := NewList(f.Scope, itemKey, func(s *reactive.Scope, it item) int {
		builds++
		return builds
	})

	l.Update([]item{{1, "a"}})
	l.Update(nil)
	l.Update([]item{{1, "a"}})

	if v, _ := l.View(1); v != 2 {
		t.Errorf("view = %d, want a fresh build", v)
	}
}

func TestListItemSignal(t *testing.T) {
	f := vtest.New(t)
	var labels []string
	l := NewList(f.Scope, itemKey, func(s *reactive.Scope, it item) int {
		sig, ok := ItemOf[item](s)
		if !ok {
			t.Fatal("item signal not provided on the entry scope")
		}
		reactive.CreateEffect(s, func() reactive.Cleanup {
			labels = append(labels, sig.Get().name)
			return nil
		})
		return it.id
	})

	l.Update([]item{{1, "draft"}})
	l.Update([]item{{1, "final"}})

	if !slices.Equal(labels, []string{"draft", "final"}) {
		t.Errorf("labels = %v", labels)
	}
}

func TestListDuplicateKeyLeavesListUnchanged(t *testing.T) {
	f := vtest.New(t)
	l := NewList(f.Scope, itemKey, func(s *reactive.Scope, it item) string { return it.name })
	l.Update([]item{{1, "a"}})

	_, err := l.Update([]item{{2, "b"}, {2, "c"}})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
	if !slices.Equal(l.Keys(), []int{1}) {
		t.Errorf("keys = %v, want [1]", l.Keys())
	}
}

func TestForDynamicList(t *testing.T) {
	f := vtest.New(t)
	counters, setCounters := reactive.NewSignal(f.Scope, []item{{0, "c0"}, {1, "c1"}})

	var last []string
	var reports []Report[int]
	l, err := For(f.Scope, counters, itemKey,
		func(s *reactive.Scope, it item) string { return it.name },
		func(r Report[int], views []string) {
			reports = append(reports, r)
			last = views
		},
	)
	if err != nil {
		t.Fatalf("For: %v", err)
	}

	nextID := 2
	add := func() {
		setCounters.Update(func(cs *[]item) {
			*cs = append(slices.Clone(*cs), item{nextID, fmt.Sprintf("c%d", nextID)})
			nextID++
		})
	}
	remove := func(id int) {
		setCounters.Update(func(cs *[]item) {
			*cs = slices.DeleteFunc(slices.Clone(*cs), func(it item) bool { return it.id == id })
		})
	}

	add()
	remove(0)

	if !slices.Equal(last, []string{"c1", "c2"}) {
		t.Errorf("views = %v", last)
	}
	if len(reports) != 3 {
		t.Fatalf("reports = %d, want 3", len(reports))
	}
	if !slices.Equal(reports[1].Constructed, []int{2}) || !slices.Equal(reports[2].Destroyed, []int{0}) {
		t.Errorf("reports = %+v", reports)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d", l.Len())
	}

	err = setCounters.Set([]item{{5, "x"}, {5, "y"}})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate key write = %v, want ErrDuplicateKey", err)
	}
}

func TestListEmitsReconcileEvent(t *testing.T) {
	var events []reactive.Event
	f := vtest.New(t, reactive.WithObserver(reactive.ObserverFunc(func(e reactive.Event) {
		if e.Kind == reactive.EventListReconcile {
			events = append(events, e)
		}
	})))
	l := NewList(f.Scope, itemKey, func(s *reactive.Scope, it item) int { return it.id }).Label("todos")
	l.Update([]item{{1, "a"}, {2, "b"}})

	if len(events) != 1 || events[0].Label != "todos" || events[0].Effects != 2 {
		t.Errorf("events = %+v", events)
	}
}
