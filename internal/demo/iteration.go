package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/vango-dev/reactor/pkg/keyed"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// StaticItems renders a fixed list of values once.
func StaticItems[T any](values []T) string {
	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "<li>%v</li>", v)
	}
	return b.String()
}

// StaticList is a fixed number of counters whose values change but whose
// rows never do.
type StaticList struct {
	counts  []reactive.Signal[int]
	setters []reactive.Setter[int]
}

// NewStaticList creates counters 1..length.
func NewStaticList(scope *reactive.Scope, length int) *StaticList {
	l := &StaticList{}
	for i := 1; i <= length; i++ {
		c, set := reactive.NewSignal(scope, i)
		l.counts = append(l.counts, c)
		l.setters = append(l.setters, set)
	}
	return l
}

// Click increments counter i.
func (l *StaticList) Click(i int) error {
	return l.setters[i].Update(func(n *int) { *n++ })
}

func (l *StaticList) View() string {
	parts := make([]string, len(l.counts))
	for i, c := range l.counts {
		parts[i] = fmt.Sprint(c.Get())
	}
	return strings.Join(parts, " ")
}

// CounterRow is one row of a DynamicList.
type CounterRow struct {
	ID    int
	Count reactive.Signal[int]
	set   reactive.Setter[int]
}

// DynamicList is a list of counters that can be added and removed. Rows are
// reconciled by ID, so a surviving row keeps its view and its count.
type DynamicList struct {
	scope       *reactive.Scope
	counters    reactive.Signal[[]CounterRow]
	setCounters reactive.Setter[[]CounterRow]
	list        *keyed.List[int, CounterRow, reactive.Reader[string]]
	nextID      int
	built       int
	last        keyed.Report[int]
}

// NewDynamicList creates initial counters with IDs 0..initial-1 and values
// 1..initial.
func NewDynamicList(scope *reactive.Scope, initial int) (*DynamicList, error) {
	d := &DynamicList{scope: scope}
	rows := make([]CounterRow, 0, initial)
	for ; d.nextID < initial; d.nextID++ {
		rows = append(rows, d.newRow())
	}
	d.counters, d.setCounters = reactive.NewSignal(scope, rows)

	list, err := keyed.For(scope, d.counters,
		func(r CounterRow) int { return r.ID },
		func(_ *reactive.Scope, r CounterRow) reactive.Reader[string] {
			d.built++
			return reactive.ReaderFunc[string](func() string {
				return fmt.Sprintf("%d:%d", r.ID, r.Count.Get())
			})
		},
		func(r keyed.Report[int], _ []reactive.Reader[string]) { d.last = r },
	)
	if err != nil {
		return nil, err
	}
	d.list = list.Label("counters")
	return d, nil
}

func (d *DynamicList) newRow() CounterRow {
	c, set := reactive.NewSignal(d.scope, d.nextID+1)
	return CounterRow{ID: d.nextID, Count: c, set: set}
}

// Add appends a counter and returns its ID.
func (d *DynamicList) Add() (int, error) {
	row := d.newRow()
	d.nextID++
	err := d.setCounters.Update(func(rows *[]CounterRow) {
		*rows = append(*rows, row)
	})
	return row.ID, err
}

// Remove drops the counter with id.
func (d *DynamicList) Remove(id int) error {
	return d.setCounters.Update(func(rows *[]CounterRow) {
		kept := (*rows)[:0:0]
		for _, r := range *rows {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		*rows = kept
	})
}

// Increment bumps the count of counter id.
func (d *DynamicList) Increment(id int) error {
	for _, r := range d.counters.Peek() {
		if r.ID == id {
			return r.set.Update(func(n *int) { *n++ })
		}
	}
	return fmt.Errorf("no counter %d", id)
}

// Built returns how many row views have been constructed.
func (d *DynamicList) Built() int { return d.built }

// LastReport returns the operations of the most recent reconcile.
func (d *DynamicList) LastReport() keyed.Report[int] { return d.last }

// Keys returns the row IDs in display order.
func (d *DynamicList) Keys() []int { return d.list.Keys() }

func (d *DynamicList) View() string {
	_ = d.counters.Get()
	views := d.list.Views()
	parts := make([]string, len(views))
	for i, v := range views {
		parts[i] = v.Get()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func init() {
	register(Demo{
		Name:        "iteration",
		Description: "Static items, a static list and a keyed dynamic list",
		Run: func(ctx context.Context, env *Env) error {
			fmt.Fprintf(env.Out, "[static] %s\n", StaticItems([]int{1, 2, 3, 4, 5}))

			s := NewStaticList(env.Scope, 5)
			if err := env.Mount("static list", s.View); err != nil {
				return err
			}
			env.Step("click counter 2")
			if err := s.Click(2); err != nil {
				return err
			}

			d, err := NewDynamicList(env.Scope, 5)
			if err != nil {
				return err
			}
			if err := env.Mount("dynamic list", d.View); err != nil {
				return err
			}
			env.Step("add counter")
			id, err := d.Add()
			if err != nil {
				return err
			}
			env.Step("increment counter %d", id)
			if err := d.Increment(id); err != nil {
				return err
			}
			env.Step("remove counter 1")
			if err := d.Remove(1); err != nil {
				return err
			}
			env.logger().Debug("dynamic list", "built", d.Built(), "last", d.LastReport().Ops)
			return nil
		},
	})
}
