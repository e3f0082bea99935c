package observe

import (
	"context"
	"log/slog"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// LogObserver writes runtime events to a structured logger.
type LogObserver struct {
	log   *slog.Logger
	level slog.Level
}

// Log creates an observer logging every event at Debug level, and failed
// events at Warn.
func Log(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{log: logger.With("component", "observe"), level: slog.LevelDebug}
}

// Observe implements reactive.Observer.
func (o *LogObserver) Observe(e reactive.Event) {
	level := o.level
	if e.Err != nil {
		level = slog.LevelWarn
	}
	if !o.log.Enabled(context.Background(), level) {
		return
	}

	attrs := []any{"event", e.Kind.String()}
	if !e.Node.IsZero() {
		attrs = append(attrs, "node", e.Node.String())
	}
	if e.Label != "" {
		attrs = append(attrs, "label", e.Label)
	}
	if e.Generation != 0 {
		attrs = append(attrs, "generation", e.Generation)
	}
	if e.Kind == reactive.EventFlush {
		attrs = append(attrs, "passes", e.Passes, "effects", e.Effects)
	}
	if d := e.Duration(); d > 0 {
		attrs = append(attrs, "duration", d)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}
	o.log.Log(context.Background(), level, "reactive event", attrs...)
}
