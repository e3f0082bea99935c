package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/demo"
	"github.com/vango-dev/reactor/internal/devtools"
	"github.com/vango-dev/reactor/pkg/observe"
	"github.com/vango-dev/reactor/pkg/reactive"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr     string
		demoName string
		every    time.Duration
		delay    time.Duration
		trace    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the runtime inspector",
		Long: `Start a runtime and serve the inspector.

The inspector exposes runtime counters on /stats, a websocket
event feed on /events and Prometheus metrics on /metrics.
Use --demo to drive the runtime with one of the bundled demos.

Examples:
  reactor serve
  reactor serve --addr=127.0.0.1:9000
  reactor serve --demo=iteration --every=2s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, addr, demoName, every, delay, trace)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from inspector.addr)")
	cmd.Flags().StringVarP(&demoName, "demo", "d", "", "Demo to run against the runtime")
	cmd.Flags().DurationVar(&every, "every", 0, "Re-run the demo at this interval")
	cmd.Flags().DurationVar(&delay, "delay", 200*time.Millisecond, "Simulated latency for loaders and mutators")
	cmd.Flags().BoolVar(&trace, "trace", false, "Emit OpenTelemetry spans through the global tracer provider")

	return cmd
}

func runServe(cmd *cobra.Command, flags *globalFlags, addr, demoName string, every, delay time.Duration, trace bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Inspector.Addr = addr
	}

	var d demo.Demo
	if demoName != "" {
		if d, err = demo.Lookup(demoName); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var level slog.LevelVar
	level.Set(cfg.SlogLevel())
	logger := newLogger(&level, cmd.ErrOrStderr())
	if cfg.Path() != "" && flags.logLevel == "" {
		if err := watchLogLevel(ctx, cfg.Path(), &level, logger); err != nil {
			logger.Warn("not watching config", "error", err)
		}
	}
	hub := devtools.NewHub(cfg.Inspector.EventBuffer)
	observers := []reactive.Observer{hub}

	registry := prometheus.NewRegistry()
	var inspectorOpts []devtools.Option
	if cfg.Metrics.Enabled {
		registry.MustRegister(collectors.NewGoCollector())
		observers = append(observers, observe.Prometheus(
			observe.WithNamespace(cfg.Metrics.Namespace),
			observe.WithRegistry(registry),
		))
		inspectorOpts = append(inspectorOpts, devtools.WithGatherer(registry))
	}
	if trace {
		observers = append(observers, observe.OpenTelemetry(observe.WithParentContext(ctx)))
	}

	rt := newRuntime(ctx, cfg, logger, observers...)
	inspector := devtools.NewInspector(rt, hub, append(inspectorOpts, devtools.WithLogger(logger))...)

	// The runtime loop stops when the server does, so a failed listen
	// does not leave the command hanging.
	runCtx, stopRuntime := context.WithCancel(ctx)
	defer stopRuntime()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- inspector.ListenAndServe(ctx, cfg.Inspector.Addr)
		stopRuntime()
	}()

	printBanner()
	info("inspector  http://%s", cfg.Inspector.Addr)
	info("events     ws://%s/events", cfg.Inspector.Addr)
	if cfg.Metrics.Enabled {
		info("metrics    http://%s/metrics", cfg.Inspector.Addr)
	}
	fmt.Println()

	if d.Run != nil {
		runner := &demoRunner{demo: d, rt: rt, out: cmd.OutOrStdout(), logger: logger, delay: delay}
		runner.run(ctx)
		if every > 0 {
			go runner.repeat(ctx, every)
		}
	}

	rt.Run(runCtx)
	return <-serveErr
}
