package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("output = %q, want %q", out, version)
	}
}

func TestDemoList(t *testing.T) {
	out, err := execute(t, "demo", "--list")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"counter", "iteration", "resources", "actions"} {
		if !strings.Contains(out, name) {
			t.Errorf("list missing %q:\n%s", name, out)
		}
	}
}

func TestDemoRun(t *testing.T) {
	out, err := execute(t, "demo", "iteration", "--delay=0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "> remove counter 1") || !strings.Contains(out, "[dynamic list]") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDemoUnknown(t *testing.T) {
	_, err := execute(t, "demo", "nope")
	var rerr *rerrors.Error
	if !errors.As(err, &rerr) || rerr.Code != "X001" {
		t.Errorf("err = %v, want X001", err)
	}
}

func TestDemoUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactor.yaml")
	if err := os.WriteFile(path, []byte("max_iterations: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// 0 is replaced by the default, so the file is valid.
	if _, err := execute(t, "--config", path, "demo", "counter"); err != nil {
		t.Fatalf("demo with config: %v", err)
	}

	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "--config", path, "demo", "counter")
	var rerr *rerrors.Error
	if !errors.As(err, &rerr) || rerr.Code != "C001" {
		t.Errorf("err = %v, want C001", err)
	}
}
