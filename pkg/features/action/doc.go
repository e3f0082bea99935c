// Package action wraps an async mutation behind an explicit Dispatch call.
//
// Unlike a resource, an action never runs on its own: only Dispatch starts
// work. Each dispatch is independent and none is discarded, so the value an
// action exposes belongs to whichever dispatch completed most recently,
// which is not necessarily the one dispatched last.
//
// Example:
//
//	addTodo := action.New(scope, func(ctx context.Context, title string) (uuid.UUID, error) {
//	    return api.AddTodo(ctx, title)
//	})
//
//	addTodo.Dispatch("buy milk")
//	// later, on the runtime goroutine:
//	if r, ok := addTodo.Value(); ok && r.Err == nil {
//	    fmt.Println("created", r.Value)
//	}
package action
