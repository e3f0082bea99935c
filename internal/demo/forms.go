package demo

import (
	"context"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// ControlledInput mirrors a text box into a signal and a paragraph.
type ControlledInput struct {
	name    reactive.Signal[string]
	setName reactive.Setter[string]
}

func NewControlledInput(scope *reactive.Scope) *ControlledInput {
	name, setName := reactive.NewSignal(scope, "Controlled")
	return &ControlledInput{name: name, setName: setName}
}

// Input handles an input event carrying the box's new value.
func (c *ControlledInput) Input(value string) error {
	return c.setName.Set(value)
}

// Value is what the box displays.
func (c *ControlledInput) Value() string {
	return c.name.Get()
}

func (c *ControlledInput) View() string {
	return "Name is: " + c.name.Get()
}

func init() {
	register(Demo{
		Name:        "forms",
		Description: "A controlled text input",
		Run: func(ctx context.Context, env *Env) error {
			c := NewControlledInput(env.Scope)
			if err := env.Mount("input", c.View); err != nil {
				return err
			}
			for _, v := range []string{"Controlled!", "Reactor"} {
				env.Step("type %q", v)
				if err := c.Input(v); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
