package demo

import (
	"context"
	"strings"

	"github.com/vango-dev/reactor/pkg/features/boundary"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// NumericInput holds the parse result of a number box. Without a boundary
// a failed parse simply renders as nothing.
type NumericInput struct {
	value    reactive.Signal[reactive.Result[int]]
	setValue reactive.Setter[reactive.Result[int]]
}

func NewNumericInput(scope *reactive.Scope) *NumericInput {
	value, setValue := reactive.NewSignal(scope, reactive.Ok(0))
	return &NumericInput{value: value, setValue: setValue}
}

// Input parses text and stores the result.
func (n *NumericInput) Input(text string) error {
	return n.setValue.Set(reactive.ParseInt(text))
}

// Value returns the stored parse result.
func (n *NumericInput) Value() reactive.Reader[reactive.Result[int]] { return n.value }

func (n *NumericInput) View() string {
	return "You entered " + reactive.FormatInt(n.value.Get())
}

// GuardedInput is a NumericInput rendered inside an error boundary that
// lists the parse errors in place of the value.
type GuardedInput struct {
	*NumericInput
	boundary *boundary.Boundary
}

func NewGuardedInput(scope *reactive.Scope) *GuardedInput {
	child := scope.Child()
	b := boundary.New(child)
	in := NewNumericInput(child)
	boundary.WatchResult[int](b, child, in.value)
	return &GuardedInput{NumericInput: in, boundary: b}
}

// Errors returns the errors the boundary currently holds.
func (g *GuardedInput) Errors() []error { return g.boundary.Errors() }

func (g *GuardedInput) View() string {
	return boundary.Render(g.boundary,
		g.NumericInput.View,
		func(errs []error) string {
			msgs := make([]string, len(errs))
			for i, err := range errs {
				msgs[i] = err.Error()
			}
			return "Not a number! Errors: " + strings.Join(msgs, "; ")
		},
	)
}

func init() {
	register(Demo{
		Name:        "errors",
		Description: "Numeric input with and without an error boundary",
		Run: func(ctx context.Context, env *Env) error {
			plain := NewNumericInput(env.Scope)
			guarded := NewGuardedInput(env.Scope)
			if err := env.Mount("plain", plain.View); err != nil {
				return err
			}
			if err := env.Mount("boundary", guarded.View); err != nil {
				return err
			}
			for _, in := range []string{"42", "abc", "7"} {
				env.Step("type %q", in)
				if err := plain.Input(in); err != nil {
					return err
				}
				if err := guarded.Input(in); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
