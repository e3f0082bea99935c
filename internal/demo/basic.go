package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Counter is a value with clear, decrement and increment buttons and two
// progress bars, one for the value and one for its double.
type Counter struct {
	value    reactive.Signal[int]
	setValue reactive.Setter[int]
	double   reactive.Reader[int]
	max      int
}

// NewCounter creates a counter starting at initial.
func NewCounter(scope *reactive.Scope, initial int) *Counter {
	value, setValue := reactive.NewSignal(scope, initial)
	return &Counter{
		value:    value,
		setValue: setValue,
		double:   reactive.ReaderFunc[int](func() int { return value.Get() * 2 }),
		max:      100,
	}
}

func (c *Counter) Clear() error     { return c.setValue.Set(0) }
func (c *Counter) Decrement() error { return c.setValue.Update(func(v *int) { *v-- }) }
func (c *Counter) Increment() error { return c.setValue.Update(func(v *int) { *v++ }) }

// Value returns the current value.
func (c *Counter) Value() reactive.Reader[int] { return c.value }

// Double returns a derived reader of twice the value.
func (c *Counter) Double() reactive.Reader[int] { return c.double }

// Odd reports whether the value is odd; the row is drawn red when it is.
func (c *Counter) Odd() bool {
	return c.value.Get()%2 != 0
}

func (c *Counter) View() string {
	class := ""
	if c.Odd() {
		class = " (red)"
	}
	return fmt.Sprintf("Value: %d%s %s %s", c.value.Get(), class,
		progress(c.value.Get(), c.max), progress(c.double.Get(), c.max))
}

// progress draws a ten-cell bar for value out of max.
func progress(value, max int) string {
	filled := value * 10 / max
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}

// Position is a box whose offset and colour follow two coordinates.
type Position struct {
	rt         *reactive.Runtime
	x, y       reactive.Signal[int]
	setX, setY reactive.Setter[int]
}

// NewPosition creates a box at the origin.
func NewPosition(scope *reactive.Scope) *Position {
	x, setX := reactive.NewSignal(scope, 0)
	y, setY := reactive.NewSignal(scope, 0)
	return &Position{rt: scope.Runtime(), x: x, y: y, setX: setX, setY: setY}
}

// Move shifts the box by dx and dy inside one batch, so views see both
// coordinates change together.
func (p *Position) Move(dx, dy int) error {
	return p.rt.Batch(func() {
		p.setX.Update(func(v *int) { *v += dx })
		p.setY.Update(func(v *int) { *v += dy })
	})
}

func (p *Position) View() string {
	x, y := p.x.Get(), p.y.Get()
	return fmt.Sprintf("left:%dpx top:%dpx background:rgb(%d, %d, 100)", x+200, y+200, x, y)
}

func init() {
	register(Demo{
		Name:        "counter",
		Description: "A counter with derived progress bars and a moving box",
		Run: func(ctx context.Context, env *Env) error {
			c := NewCounter(env.Scope, 0)
			if err := env.Mount("counter", c.View); err != nil {
				return err
			}
			for _, step := range []struct {
				name string
				fn   func() error
			}{
				{"+1", c.Increment},
				{"+1", c.Increment},
				{"-1", c.Decrement},
				{"Clear", c.Clear},
			} {
				env.Step("click %s", step.name)
				if err := step.fn(); err != nil {
					return err
				}
			}

			p := NewPosition(env.Scope)
			if err := env.Mount("box", p.View); err != nil {
				return err
			}
			env.Step("move +x +y")
			return p.Move(50, 50)
		},
	})
}
