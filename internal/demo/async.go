package demo

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/reactor/pkg/features/action"
	"github.com/vango-dev/reactor/pkg/features/resource"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// AsyncData loads count*10 every time count changes, next to a resource
// that loads once.
type AsyncData struct {
	count    reactive.Signal[int]
	setCount reactive.Setter[int]
	data     *resource.Resource[int, int]
	stable   *resource.Resource[struct{}, int]

	stableLoads atomic.Int32
}

func NewAsyncData(scope *reactive.Scope, delay time.Duration) *AsyncData {
	count, setCount := reactive.NewSignal(scope, 0)
	a := &AsyncData{count: count, setCount: setCount}

	load := func(ctx context.Context, value int) (int, error) {
		if err := sleep(ctx, delay); err != nil {
			return 0, err
		}
		return value * 10, nil
	}
	a.data = resource.New(scope, count, load, resource.WithLabel("async_value"))
	a.stable = resource.Once(scope, func(ctx context.Context) (int, error) {
		a.stableLoads.Add(1)
		return load(ctx, 1)
	}, resource.WithLabel("stable"))
	return a
}

// Click bumps count, which refetches the async value.
func (a *AsyncData) Click() error {
	return a.setCount.Update(func(n *int) { *n++ })
}

// StableLoads returns how many times the load-once resource ran its loader.
func (a *AsyncData) StableLoads() int { return int(a.stableLoads.Load()) }

// Data exposes the count-driven resource.
func (a *AsyncData) Data() *resource.Resource[int, int] { return a.data }

// Result renders the latest loaded value.
func (a *AsyncData) Result() string {
	r, ok := a.data.Read()
	if !ok {
		return "Loading..."
	}
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return fmt.Sprintf("Server returned %d", r.Value)
}

func (a *AsyncData) View() string {
	stable := "Loading..."
	if r, ok := a.stable.Read(); ok {
		stable = r.String()
	}
	status := "Idle."
	if a.data.Loading() {
		status = "Loading..."
	}
	return fmt.Sprintf("stable: %s | count: %d | async_value: %s | %s",
		stable, a.count.Get(), a.Result(), status)
}

// ShoutingName upper-cases a name on a simulated server, rendering a
// fallback under Suspense while the call is in flight.
type ShoutingName struct {
	name     reactive.Signal[string]
	setName  reactive.Setter[string]
	data     *resource.Resource[string, string]
	suspense *resource.Suspense
}

func NewShoutingName(scope *reactive.Scope, delay time.Duration) *ShoutingName {
	name, setName := reactive.NewSignal(scope, "Bill")
	boundary := scope.Child()
	s := resource.NewSuspense(boundary)
	data := resource.New(boundary, name, func(ctx context.Context, n string) (string, error) {
		if err := sleep(ctx, delay); err != nil {
			return "", err
		}
		return strings.ToUpper(n), nil
	}, resource.WithLabel("shouting_name"))
	return &ShoutingName{name: name, setName: setName, data: data, suspense: s}
}

// Input sets the name.
func (s *ShoutingName) Input(name string) error {
	return s.setName.Set(name)
}

func (s *ShoutingName) Suspense() *resource.Suspense { return s.suspense }

func (s *ShoutingName) View() string {
	body := resource.Render(s.suspense,
		func() string {
			r, _ := s.data.Read()
			return "Your shouting name is " + r.String()
		},
		func() string { return "Loading..." },
	)
	return fmt.Sprintf("name: %s | %s", s.name.Get(), body)
}

// TodoForm submits todo text to a simulated server that assigns an ID.
type TodoForm struct {
	add *action.Action[string, uuid.UUID]
}

func NewTodoForm(scope *reactive.Scope, delay time.Duration) *TodoForm {
	add := action.New(scope, func(ctx context.Context, text string) (uuid.UUID, error) {
		if err := sleep(ctx, delay); err != nil {
			return uuid.Nil, err
		}
		return uuid.New(), nil
	}, action.WithLabel("add_todo"))
	return &TodoForm{add: add}
}

// Submit dispatches text.
func (f *TodoForm) Submit(text string) error {
	return f.add.Dispatch(text)
}

// Action exposes the underlying action.
func (f *TodoForm) Action() *action.Action[string, uuid.UUID] { return f.add }

func (f *TodoForm) View() string {
	s := f.add.Snapshot()
	var b strings.Builder
	if s.Pending {
		b.WriteString("Loading... | ")
	}
	submitted := "None"
	if s.HasInput {
		submitted = fmt.Sprintf("Some(%q)", s.Input)
	}
	id := "None"
	if s.HasValue {
		id = fmt.Sprintf("Some(%s)", s.Value)
	}
	fmt.Fprintf(&b, "Submitted: %s | Pending: %t | Todo ID: %s", submitted, s.Pending, id)
	return b.String()
}

func init() {
	register(Demo{
		Name:        "resources",
		Description: "A resource keyed by a counter and a load-once resource",
		Run: func(ctx context.Context, env *Env) error {
			a := NewAsyncData(env.Scope, env.Delay)
			if err := env.Mount("resources", a.View); err != nil {
				return err
			}
			if err := env.Settle(ctx); err != nil {
				return err
			}
			for i := 0; i < 2; i++ {
				env.Step("click")
				if err := a.Click(); err != nil {
					return err
				}
				if err := env.Settle(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	})
	register(Demo{
		Name:        "suspense",
		Description: "A name upper-cased server side behind a Suspense fallback",
		Run: func(ctx context.Context, env *Env) error {
			s := NewShoutingName(env.Scope, env.Delay)
			if err := env.Mount("suspense", s.View); err != nil {
				return err
			}
			if err := env.Settle(ctx); err != nil {
				return err
			}
			env.Step("type %q", "Ada")
			if err := s.Input("Ada"); err != nil {
				return err
			}
			return env.Settle(ctx)
		},
	})
	register(Demo{
		Name:        "actions",
		Description: "An action that adds a todo and returns its ID",
		Run: func(ctx context.Context, env *Env) error {
			f := NewTodoForm(env.Scope, env.Delay)
			if err := env.Mount("actions", f.View); err != nil {
				return err
			}
			env.Step("submit %q", "buy milk")
			if err := f.Submit("buy milk"); err != nil {
				return err
			}
			return env.Settle(ctx)
		},
	})
}
