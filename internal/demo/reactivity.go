package demo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Parity derives an "odd"/"even" label from a count typed into a text box.
// Unparseable input counts as zero.
type Parity struct {
	count    reactive.Signal[int]
	setCount reactive.Setter[int]
	double   reactive.Reader[int]
	odd      reactive.Memo[bool]
	text     reactive.Reader[string]
	logged   []string
}

// NewParity creates the component and an effect that logs every text change.
func NewParity(scope *reactive.Scope) (*Parity, error) {
	count, setCount := reactive.NewSignal(scope, 0)
	p := &Parity{
		count:    count,
		setCount: setCount,
		double:   reactive.ReaderFunc[int](func() int { return count.Get() * 2 }),
		odd:      reactive.NewMemo(scope, func() bool { return count.Get()&1 == 1 }),
	}
	p.text = reactive.ReaderFunc[string](func() string {
		if p.odd.Get() {
			return "odd"
		}
		return "even"
	})

	_, err := reactive.CreateEffect(scope, func() reactive.Cleanup {
		p.logged = append(p.logged, p.text.Get())
		return nil
	})
	return p, err
}

// Input sets the count from text.
func (p *Parity) Input(text string) error {
	n, err := strconv.Atoi(text)
	if err != nil {
		n = 0
	}
	return p.setCount.Set(n)
}

// Double is twice the count.
func (p *Parity) Double() reactive.Reader[int] { return p.double }

// Logged returns every text the logging effect saw, in order.
func (p *Parity) Logged() []string { return p.logged }

func (p *Parity) View() string {
	return fmt.Sprintf("Value is: %d and %s", p.count.Get(), p.text.Get())
}

// ClickCounter is a button labelled with how often it was clicked.
type ClickCounter struct {
	value    reactive.Signal[int]
	setValue reactive.Setter[int]
}

func NewClickCounter(scope *reactive.Scope) *ClickCounter {
	value, setValue := reactive.NewSignal(scope, 0)
	return &ClickCounter{value: value, setValue: setValue}
}

func (c *ClickCounter) Click() error {
	return c.setValue.Update(func(v *int) { *v++ })
}

func (c *ClickCounter) View() string {
	return fmt.Sprintf("<button>%d</button>", c.value.Get())
}

func init() {
	register(Demo{
		Name:        "reactivity",
		Description: "Derived functions, memos and a logging effect",
		Run: func(ctx context.Context, env *Env) error {
			p, err := NewParity(env.Scope)
			if err != nil {
				return err
			}
			if err := env.Mount("parity", p.View); err != nil {
				return err
			}
			for _, in := range []string{"3", "4", "x"} {
				env.Step("type %q", in)
				if err := p.Input(in); err != nil {
					return err
				}
			}
			env.logger().Debug("parity log", "texts", p.Logged())

			c := NewClickCounter(env.Scope)
			if err := env.Mount("simple", c.View); err != nil {
				return err
			}
			env.Step("click")
			return c.Click()
		},
	})
}
