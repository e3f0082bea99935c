package reactive

import (
	"context"
	"log/slog"
)

// DefaultMaxIterations is the default bound on flush passes triggered by a
// single write before ErrPropagationCycle is reported.
const DefaultMaxIterations = 100

type config struct {
	maxIterations int
	logger        *slog.Logger
	observers     []Observer
	ctx           context.Context
}

func defaultConfig() config {
	return config{
		maxIterations: DefaultMaxIterations,
		logger:        slog.Default(),
		ctx:           context.Background(),
	}
}

// Option configures a Runtime.
type Option func(*config)

// WithMaxIterations sets how many flush passes a single write may trigger.
// Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithLogger sets the logger used for runtime diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an observer for runtime events. It may be passed
// more than once.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithContext sets the parent context of all scope contexts and async work.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}
