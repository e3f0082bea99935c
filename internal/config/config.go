package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reactor/internal/errors"
)

const (
	// DefaultMaxIterations is the default flush pass bound.
	DefaultMaxIterations = 100

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultInspectorAddr is the default inspector listen address.
	DefaultInspectorAddr = "localhost:7070"

	// DefaultEventBuffer is the default number of recent events kept by the
	// inspector.
	DefaultEventBuffer = 256

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "reactor"
)

// FileNames are the configuration file names looked up by Load, in order.
var FileNames = []string{"reactor.json", "reactor.yaml", "reactor.yml"}

// Config represents the complete reactor configuration.
type Config struct {
	// MaxIterations bounds the flush passes a single write may trigger.
	MaxIterations int `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Inspector configures the devtools HTTP server.
	Inspector InspectorConfig `json:"inspector,omitempty" yaml:"inspector,omitempty"`

	// Metrics configures the Prometheus observer.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// S3 configures the object loader.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`

	// Redis configures the object cache.
	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	// Addr is the host:port to listen on.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// EventBuffer is how many recent events are kept for new clients.
	EventBuffer int `json:"event_buffer,omitempty" yaml:"event_buffer,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled registers the Prometheus observer and serves /metrics.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// S3Config contains object loader settings.
type S3Config struct {
	Bucket  string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	Prefix  string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	MaxSize int64  `json:"max_size,omitempty" yaml:"max_size,omitempty"`
}

// RedisConfig contains object cache settings. The cache is off when Addr
// is empty.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`

	// TTLSeconds is how long cached objects live (0 = forever).
	TTLSeconds int `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty"`
}

// TTL returns the cache expiry.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		MaxIterations: DefaultMaxIterations,
		LogLevel:      DefaultLogLevel,
		Inspector: InspectorConfig{
			Addr:        DefaultInspectorAddr,
			EventBuffer: DefaultEventBuffer,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory, trying each of
// FileNames in turn.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C003").
		WithDetail("No reactor.json or reactor.yaml found in " + dir)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C003").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("C002").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C002").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is well formed")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in the format
// implied by its extension.
func (c *Config) SaveTo(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
	if c.Inspector.EventBuffer == 0 {
		c.Inspector.EventBuffer = DefaultEventBuffer
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// ApplyEnv overrides fields from REACTOR_* environment variables read
// through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("REACTOR_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("C001").
				WithDetail("REACTOR_MAX_ITERATIONS must be an integer, got " + strconv.Quote(v))
		}
		c.MaxIterations = n
	}
	if v := getenv("REACTOR_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("REACTOR_INSPECTOR_ADDR"); v != "" {
		c.Inspector.Addr = v
	}
	if v := getenv("REACTOR_S3_BUCKET"); v != "" {
		c.S3.Bucket = v
	}
	if v := getenv("REACTOR_S3_REGION"); v != "" {
		c.S3.Region = v
	}
	if v := getenv("REACTOR_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	return c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxIterations < 1 {
		return errors.New("C001").
			WithDetail("max_iterations must be at least 1")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("C001").
			WithDetail("log_level must be one of debug, info, warn, error; got " + strconv.Quote(c.LogLevel))
	}
	if _, _, err := net.SplitHostPort(c.Inspector.Addr); err != nil {
		return errors.New("C001").
			WithDetail("inspector.addr must be host:port: " + err.Error())
	}
	if c.Inspector.EventBuffer < 0 {
		return errors.New("C001").
			WithDetail("inspector.event_buffer must not be negative")
	}
	if c.S3.Bucket == "" && (c.S3.Prefix != "" || c.S3.Region != "") {
		return errors.New("C001").
			WithDetail("s3.prefix and s3.region require s3.bucket")
	}
	if c.Redis.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Redis.Addr); err != nil {
			return errors.New("C001").
				WithDetail("redis.addr must be host:port: " + err.Error())
		}
	}
	if c.Redis.DB < 0 || c.Redis.TTLSeconds < 0 {
		return errors.New("C001").
			WithDetail("redis.db and redis.ttl_seconds must not be negative")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("C003").
				WithDetail("No reactor config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest ancestor holding a config file. When none
// exists the defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return New(), nil
	}

	return Load(root)
}
