package resource

import "time"

type options struct {
	label      string
	retryCount int
	retryDelay time.Duration
}

// Option configures a Resource.
type Option func(*options)

// WithLabel names the resource in logs and runtime events.
func WithLabel(name string) Option {
	return func(o *options) {
		o.label = name
	}
}

// RetryOnError retries a failing load up to count more times, waiting
// delay between attempts. Retries stop early when the scope is disposed.
func RetryOnError(count int, delay time.Duration) Option {
	return func(o *options) {
		if count > 0 {
			o.retryCount = count
		}
		o.retryDelay = delay
	}
}

// OnSuccess registers a callback run on the runtime goroutine when a
// current load succeeds.
func (r *Resource[S, T]) OnSuccess(fn func(T)) *Resource[S, T] {
	r.onSuccess = fn
	return r
}

// OnError registers a callback run on the runtime goroutine when a current
// load fails.
func (r *Resource[S, T]) OnError(fn func(error)) *Resource[S, T] {
	r.onError = fn
	return r
}
