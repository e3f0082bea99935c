package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	rerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/loader"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Demo is a named, scripted run of one or more components.
type Demo struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// Env is what a demo runs against.
type Env struct {
	Scope  *reactive.Scope
	Out    io.Writer
	Logger *slog.Logger

	// Delay simulates latency in loaders and mutators.
	Delay time.Duration

	// Objects backs the "objects" demo, optionally through Cache. Keys
	// lists the objects to load.
	Objects *loader.S3
	Cache   *loader.Cache
	Keys    []string
}

// Mount prints name and view() now and again every time a value view read
// changes.
func (e *Env) Mount(name string, view func() string) error {
	_, err := reactive.CreateEffect(e.Scope, func() reactive.Cleanup {
		fmt.Fprintf(e.Out, "[%s] %s\n", name, view())
		return nil
	})
	return err
}

// Step prints a line describing the interaction about to happen.
func (e *Env) Step(format string, args ...any) {
	fmt.Fprintf(e.Out, "> "+format+"\n", args...)
}

// Settle waits for async work started by the demo to finish.
func (e *Env) Settle(ctx context.Context) error {
	return e.Scope.Runtime().Settle(ctx)
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var registry = map[string]Demo{}

func register(d Demo) {
	if _, dup := registry[d.Name]; dup {
		panic("demo: duplicate name " + d.Name)
	}
	registry[d.Name] = d
}

// All returns every demo sorted by name.
func All() []Demo {
	out := make([]Demo, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, error) {
	d, ok := registry[name]
	if !ok {
		return Demo{}, rerrors.New("X001").WithDetailf("No demo named %q.", name)
	}
	return d, nil
}
