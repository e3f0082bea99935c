package demo

import (
	"context"
	"strings"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// OddEven renders "Odd" or "Even" for each of a fixed set of values.
type OddEven struct {
	values  []reactive.Signal[int]
	setters []reactive.Setter[int]
}

// NewOddEven creates n values 0..n-1.
func NewOddEven(scope *reactive.Scope, n int) *OddEven {
	o := &OddEven{}
	for i := 0; i < n; i++ {
		v, set := reactive.NewSignal(scope, i)
		o.values = append(o.values, v)
		o.setters = append(o.setters, set)
	}
	return o
}

// Label is the branch shown for value i.
func (o *OddEven) Label(i int) string {
	if o.values[i].Get()&1 == 1 {
		return "Odd"
	}
	return "Even"
}

// Bump increments value i, flipping its branch.
func (o *OddEven) Bump(i int) error {
	return o.setters[i].Update(func(v *int) { *v++ })
}

func (o *OddEven) View() string {
	labels := make([]string, len(o.values))
	for i := range o.values {
		labels[i] = o.Label(i)
	}
	return strings.Join(labels, " ")
}

func init() {
	register(Demo{
		Name:        "controlflow",
		Description: "Odd/even branches over ten values",
		Run: func(ctx context.Context, env *Env) error {
			o := NewOddEven(env.Scope, 10)
			if err := env.Mount("paragraphs", o.View); err != nil {
				return err
			}
			env.Step("bump value 0")
			return o.Bump(0)
		},
	})
}
