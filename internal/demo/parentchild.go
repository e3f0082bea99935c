package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Toggle flips a boolean through a setter handed down by the parent.
type Toggle struct {
	setter reactive.Setter[bool]
}

func NewToggle(setter reactive.Setter[bool]) *Toggle {
	return &Toggle{setter: setter}
}

func (t *Toggle) Click() error {
	return t.setter.Update(func(v *bool) { *v = !*v })
}

// CallbackButton invokes whatever the parent gave it on click.
type CallbackButton struct {
	onClick func() error
}

func NewCallbackButton(onClick func() error) *CallbackButton {
	return &CallbackButton{onClick: onClick}
}

func (b *CallbackButton) Click() error {
	return b.onClick()
}

// SmallcapsSetter is the context value a deeply nested button looks up.
type SmallcapsSetter struct {
	reactive.Setter[bool]
}

// ContextButton finds its setter in the scope chain instead of being handed
// it. It panics if no ancestor provides one.
type ContextButton struct {
	setter reactive.Setter[bool]
}

func NewContextButton(scope *reactive.Scope) *ContextButton {
	s := reactive.MustUse[SmallcapsSetter](scope)
	return &ContextButton{setter: s.Setter}
}

func (b *ContextButton) Click() error {
	return b.setter.Update(func(v *bool) { *v = !*v })
}

// Book is a paragraph styled by four flags, each toggled through a
// different way of passing state from parent to child.
type Book struct {
	red, right, italics, smallcaps reactive.Signal[bool]

	ButtonA *Toggle
	ButtonB *CallbackButton
	ButtonC *CallbackButton
	ButtonD *ContextButton
}

func NewBook(scope *reactive.Scope) *Book {
	red, setRed := reactive.NewSignal(scope, false)
	right, setRight := reactive.NewSignal(scope, false)
	italics, setItalics := reactive.NewSignal(scope, false)
	smallcaps, setSmallcaps := reactive.NewSignal(scope, false)
	reactive.Provide(scope, SmallcapsSetter{setSmallcaps})

	flip := func(s reactive.Setter[bool]) func() error {
		return func() error { return s.Update(func(v *bool) { *v = !*v }) }
	}

	// layout -> content -> button
	content := scope.Child().Child()

	return &Book{
		red:       red,
		right:     right,
		italics:   italics,
		smallcaps: smallcaps,
		ButtonA:   NewToggle(setRed),
		ButtonB:   NewCallbackButton(flip(setRight)),
		ButtonC:   NewCallbackButton(flip(setItalics)),
		ButtonD:   NewContextButton(content),
	}
}

func (b *Book) View() string {
	classes := ""
	for _, c := range []struct {
		name string
		on   reactive.Signal[bool]
	}{
		{"red", b.red}, {"right", b.right}, {"italics", b.italics}, {"smallcaps", b.smallcaps},
	} {
		if c.on.Get() {
			classes += " " + c.name
		}
	}
	return fmt.Sprintf("<p class=%q>Lorem ipsum sit dolor amet.</p>", strings.TrimSpace(classes))
}

func init() {
	register(Demo{
		Name:        "parentchild",
		Description: "Setters, callbacks and context passed to children",
		Run: func(ctx context.Context, env *Env) error {
			b := NewBook(env.Scope)
			if err := env.Mount("book", b.View); err != nil {
				return err
			}
			for _, step := range []struct {
				name  string
				click func() error
			}{
				{"Toggle Red (setter)", b.ButtonA.Click},
				{"Toggle Right (callback)", b.ButtonB.Click},
				{"Toggle Italics (listener)", b.ButtonC.Click},
				{"Toggle Small Caps (context)", b.ButtonD.Click},
			} {
				env.Step("click %s", step.name)
				if err := step.click(); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
