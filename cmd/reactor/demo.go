package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/demo"
)

func demoCmd(flags *globalFlags) *cobra.Command {
	var (
		list  bool
		delay time.Duration
		keys  []string
	)

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Run a bundled demo",
		Long: `Run one of the bundled demos and print every view update.

Each demo drives a small component through a scripted set of
interactions. Lines starting with ">" are interactions; lines in
brackets are views re-rendered by an effect.

Examples:
  reactor demo --list
  reactor demo counter
  reactor demo resources --delay=500ms
  reactor demo objects --key=readme.md --key=notes.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				return listDemos(cmd)
			}
			return runDemo(cmd, flags, args[0], delay, keys)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available demos")
	cmd.Flags().DurationVar(&delay, "delay", 200*time.Millisecond, "Simulated latency for loaders and mutators")
	cmd.Flags().StringSliceVar(&keys, "key", nil, "Object keys for the objects demo")

	return cmd
}

func listDemos(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, d := range demo.All() {
		fmt.Fprintf(w, "  %s\t%s\n", d.Name, d.Description)
	}
	return w.Flush()
}

func runDemo(cmd *cobra.Command, flags *globalFlags, name string, delay time.Duration, keys []string) error {
	d, err := demo.Lookup(name)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg.SlogLevel(), cmd.ErrOrStderr())
	rt := newRuntime(ctx, cfg, logger)
	scope := rt.Root().Child()
	defer scope.Dispose()

	env := &demo.Env{
		Scope:  scope,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
		Delay:  delay,
		Keys:   keys,
	}
	if d.Name == "objects" {
		if env.Objects, err = newObjectStore(ctx, cfg); err != nil {
			return err
		}
		env.Cache = newObjectCache(cfg)
	}

	start := time.Now()
	if err := d.Run(ctx, env); err != nil {
		return err
	}
	stats := rt.Stats()
	success("%s finished in %s (%d flushes, %d effect runs)",
		d.Name, time.Since(start).Round(time.Millisecond), stats.Flushes, stats.EffectRuns)
	return nil
}
