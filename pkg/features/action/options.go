package action

type options struct {
	label string
}

// Option configures an Action.
type Option func(*options)

// WithLabel names the action in logs and runtime events.
func WithLabel(name string) Option {
	return func(o *options) {
		o.label = name
	}
}

// OnStart registers a callback run when a dispatch starts.
func (a *Action[I, T]) OnStart(fn func(I)) *Action[I, T] {
	a.onStart = fn
	return a
}

// OnSuccess registers a callback run on the runtime goroutine when a
// dispatch succeeds.
func (a *Action[I, T]) OnSuccess(fn func(T)) *Action[I, T] {
	a.onSuccess = fn
	return a
}

// OnError registers a callback run on the runtime goroutine when a dispatch
// fails.
func (a *Action[I, T]) OnError(fn func(error)) *Action[I, T] {
	a.onError = fn
	return a
}
