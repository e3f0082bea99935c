// Package observe turns runtime events into telemetry.
//
// Each constructor returns a reactive.Observer to pass to reactive.New:
//
//	rt := reactive.New(
//	    reactive.WithObserver(observe.Prometheus(observe.WithNamespace("myapp"))),
//	    reactive.WithObserver(observe.OpenTelemetry()),
//	    reactive.WithObserver(observe.Log(logger)),
//	)
//
// Observers are called on the runtime goroutine and must not call back
// into the runtime.
package observe
