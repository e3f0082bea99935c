package observe

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/reactor/pkg/reactive"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	o := Log(logger)

	o.Observe(reactive.Event{Kind: reactive.EventFlush, Passes: 1})
	if buf.Len() != 0 {
		t.Errorf("debug event logged at warn level: %s", buf.String())
	}

	o.Observe(reactive.Event{Kind: reactive.EventResourceLoad, Label: "user", Err: errors.New("boom")})
	out := buf.String()
	for _, want := range []string{"level=WARN", "event=resource_load", "label=user", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
