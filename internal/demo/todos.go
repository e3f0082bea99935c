package demo

import (
	"context"
	"fmt"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Todo is one task.
type Todo struct {
	Completed bool
}

// Todos is a task list.
type Todos []Todo

// NewTodos builds a list from completion flags.
func NewTodos(completed ...bool) Todos {
	t := make(Todos, len(completed))
	for i, c := range completed {
		t[i] = Todo{Completed: c}
	}
	return t
}

// NumRemaining counts the tasks not yet completed.
func (t Todos) NumRemaining() int {
	n := 0
	for _, todo := range t {
		if !todo.Completed {
			n++
		}
	}
	return n
}

// TodoApp appends finished or unfinished tasks and shows how many remain.
type TodoApp struct {
	todos     reactive.Signal[Todos]
	setTodos  reactive.Setter[Todos]
	remaining reactive.Memo[int]
}

// NewTodoApp starts with one unfinished task.
func NewTodoApp(scope *reactive.Scope) *TodoApp {
	todos, setTodos := reactive.NewSignal(scope, NewTodos(false))
	return &TodoApp{
		todos:    todos,
		setTodos: setTodos,
		remaining: reactive.NewMemo(scope, func() int {
			var n int
			todos.With(func(t Todos) { n = t.NumRemaining() })
			return n
		}),
	}
}

// Add appends a task.
func (a *TodoApp) Add(completed bool) error {
	return a.setTodos.Update(func(t *Todos) {
		*t = append(append(Todos(nil), (*t)...), Todo{Completed: completed})
	})
}

// Remaining is the number of unfinished tasks.
func (a *TodoApp) Remaining() reactive.Reader[int] { return a.remaining }

func (a *TodoApp) View() string {
	return fmt.Sprintf("Tasks remaining: %d of %d", a.remaining.Get(), len(a.todos.Get()))
}

func init() {
	register(Demo{
		Name:        "todos",
		Description: "A todo counter backed by a memo",
		Run: func(ctx context.Context, env *Env) error {
			a := NewTodoApp(env.Scope)
			if err := env.Mount("todos", a.View); err != nil {
				return err
			}
			for _, done := range []bool{true, false, true} {
				env.Step("add completed=%t", done)
				if err := a.Add(done); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
