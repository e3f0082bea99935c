package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/vango-dev/reactor/internal/demo"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// demoRunner runs a demo in a fresh scope, disposing the previous run's
// scope first. run must be called on the runtime goroutine.
type demoRunner struct {
	demo   demo.Demo
	rt     *reactive.Runtime
	out    io.Writer
	logger *slog.Logger
	delay  time.Duration
	scope  *reactive.Scope
	runs   int
}

func (r *demoRunner) run(ctx context.Context) {
	if r.scope != nil {
		r.scope.Dispose()
	}
	r.scope = r.rt.Root().Child()
	r.runs++

	err := r.demo.Run(ctx, &demo.Env{
		Scope:  r.scope,
		Out:    r.out,
		Logger: r.logger,
		Delay:  r.delay,
	})
	if err != nil && ctx.Err() == nil {
		r.logger.Error("demo failed", "demo", r.demo.Name, "run", r.runs, "error", err)
	}
}

// repeat dispatches a run every interval until ctx is done.
func (r *demoRunner) repeat(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.rt.Dispatch(func() { r.run(ctx) })
		}
	}
}
