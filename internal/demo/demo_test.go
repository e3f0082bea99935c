package demo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	rerrors "github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/vtest"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{
		"counter", "reactivity", "iteration", "forms", "controlflow", "errors",
		"parentchild", "todos", "resources", "suspense", "actions", "objects",
	} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}

	_, err := Lookup("nope")
	var rerr *rerrors.Error
	if !errors.As(err, &rerr) || rerr.Code != "X001" {
		t.Errorf("Lookup(nope) err = %v, want X001", err)
	}
}

func TestAllSorted(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("All() not sorted at %d: %s >= %s", i, all[i-1].Name, all[i].Name)
		}
	}
}

// TestDemosRun runs every scripted demo that needs no external service.
func TestDemosRun(t *testing.T) {
	for _, d := range All() {
		if d.Name == "objects" {
			continue
		}
		t.Run(d.Name, func(t *testing.T) {
			f := vtest.New(t)
			var out bytes.Buffer
			env := &Env{Scope: f.Scope, Out: &out}

			if err := d.Run(context.Background(), env); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if out.Len() == 0 {
				t.Errorf("demo printed nothing")
			}
		})
	}
}

func TestMountReprintsOnChange(t *testing.T) {
	f := vtest.New(t)
	var out bytes.Buffer
	env := &Env{Scope: f.Scope, Out: &out}

	c := NewCounter(f.Scope, 0)
	if err := env.Mount("c", c.View); err != nil {
		t.Fatal(err)
	}
	c.Increment()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2", lines)
	}
	if !strings.HasPrefix(lines[1], "[c] Value: 1 (red)") {
		t.Errorf("second line = %q", lines[1])
	}
}
