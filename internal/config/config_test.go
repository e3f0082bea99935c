package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", cfg.MaxIterations, DefaultMaxIterations)
	}
	if cfg.Inspector.Addr != DefaultInspectorAddr {
		t.Errorf("Inspector.Addr = %q, want %q", cfg.Inspector.Addr, DefaultInspectorAddr)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	if _, err := Load(tmpDir); err == nil || !strings.Contains(err.Error(), "C003") {
		t.Errorf("Expected C003 error for missing config, got %v", err)
	}

	configJSON := `{
  "max_iterations": 10,
  "log_level": "debug",
  "inspector": {
    "addr": "0.0.0.0:9000"
  },
  "s3": {
    "bucket": "pages",
    "prefix": "content/"
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, "reactor.json"), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.MaxIterations != 10 {
		t.Errorf("MaxIterations = %d, want 10", cfg.MaxIterations)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.Inspector.Addr != "0.0.0.0:9000" {
		t.Errorf("Inspector.Addr = %q", cfg.Inspector.Addr)
	}
	if cfg.Inspector.EventBuffer != DefaultEventBuffer {
		t.Errorf("Inspector.EventBuffer = %d, want default", cfg.Inspector.EventBuffer)
	}
	if cfg.S3.Bucket != "pages" || cfg.S3.Prefix != "content/" {
		t.Errorf("S3 = %+v", cfg.S3)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should keep its default")
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `max_iterations: 25
log_level: warn
metrics:
  enabled: false
  namespace: myapp
`
	if err := os.WriteFile(filepath.Join(tmpDir, "reactor.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MaxIterations != 25 || cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.Namespace != "myapp" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"bad json", "reactor.json", "not valid json", "C002"},
		{"bad yaml", "reactor.yaml", "max_iterations: [", "C002"},
		{"bad level", "reactor.json", `{"log_level": "loud"}`, "C001"},
		{"bad iterations", "reactor.json", `{"max_iterations": -1}`, "C001"},
		{"bad addr", "reactor.json", `{"inspector": {"addr": "nope"}}`, "C001"},
		{"prefix without bucket", "reactor.yaml", "s3:\n  prefix: x/\n", "C001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.code) {
				t.Errorf("Expected %s error, got: %v", tt.code, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"reactor.json", "reactor.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := New()
			cfg.MaxIterations = 7
			cfg.S3.Bucket = "b"
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q", cfg.Path())
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if loaded.MaxIterations != 7 || loaded.S3.Bucket != "b" {
				t.Errorf("loaded = %+v", loaded)
			}
		})
	}

	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"REACTOR_MAX_ITERATIONS": "12",
		"REACTOR_LOG_LEVEL":      "error",
		"REACTOR_S3_BUCKET":      "env-bucket",
	}
	cfg := New()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.MaxIterations != 12 || cfg.LogLevel != "error" || cfg.S3.Bucket != "env-bucket" {
		t.Errorf("cfg = %+v", cfg)
	}

	env["REACTOR_MAX_ITERATIONS"] = "many"
	if err := New().ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Error("expected an error for a non-numeric override")
	}
}

func TestRedisConfig(t *testing.T) {
	cfg := New()
	if err := cfg.ApplyEnv(func(k string) string {
		if k == "REACTOR_REDIS_ADDR" {
			return "cache:6379"
		}
		return ""
	}); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}

	cfg.Redis.TTLSeconds = 90
	if cfg.Redis.TTL() != 90*time.Second {
		t.Errorf("TTL = %v", cfg.Redis.TTL())
	}

	cfg.Redis.Addr = "no-port"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "C001") {
		t.Errorf("expected C001 for a bad redis.addr, got %v", err)
	}

	cfg.Redis.Addr = ""
	cfg.Redis.TTLSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a negative ttl")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "reactor.yml"), []byte("log_level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists reported the wrong directories")
	}
}
