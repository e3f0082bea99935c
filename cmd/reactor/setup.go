package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/vango-dev/reactor/internal/config"
	"github.com/vango-dev/reactor/pkg/loader"
	"github.com/vango-dev/reactor/pkg/observe"
	"github.com/vango-dev/reactor/pkg/reactive"
)

type globalFlags struct {
	configPath string
	logLevel   string
}

// loadConfig reads the config file named by --config, or the nearest one
// above the working directory, then applies REACTOR_* variables and flag
// overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level slog.Leveler, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// watchLogLevel follows log_level in the config file at path until ctx is
// done. Reload failures are logged and the current level is kept.
func watchLogLevel(ctx context.Context, path string, level *slog.LevelVar, logger *slog.Logger) error {
	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	go w.Run(ctx, func(next *config.Config) {
		if err := next.ApplyEnv(os.Getenv); err != nil {
			logger.Warn("config reload rejected", "path", path, "error", err)
			return
		}
		if next.SlogLevel() != level.Level() {
			level.Set(next.SlogLevel())
			logger.Info("log level changed", "level", next.LogLevel)
		}
	}, func(err error) {
		logger.Warn("config reload failed", "path", path, "error", err)
	})
	return nil
}

// newRuntime builds a runtime from cfg. Events are logged at debug level
// and passed to any extra observers.
func newRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger, observers ...reactive.Observer) *reactive.Runtime {
	opts := []reactive.Option{
		reactive.WithContext(ctx),
		reactive.WithMaxIterations(cfg.MaxIterations),
		reactive.WithLogger(logger),
		reactive.WithObserver(observe.Log(logger)),
	}
	for _, o := range observers {
		opts = append(opts, reactive.WithObserver(o))
	}
	return reactive.New(opts...)
}

// newObjectStore returns the configured S3 loader, or nil when no bucket
// is set.
func newObjectStore(ctx context.Context, cfg *config.Config) (*loader.S3, error) {
	if cfg.S3.Bucket == "" {
		return nil, nil
	}
	store, err := loader.NewS3FromConfig(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix)
	if err != nil {
		return nil, err
	}
	if cfg.S3.MaxSize > 0 {
		store.WithMaxSize(cfg.S3.MaxSize)
	}
	return store, nil
}

// newObjectCache returns the Redis cache for object loads, or nil when
// redis.addr is unset.
func newObjectCache(cfg *config.Config) *loader.Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return loader.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "reactor:objects:", cfg.Redis.TTL())
}
