package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rerrors "github.com/vango-dev/reactor/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┌─┐┌┬┐┌─┐┬─┐
  ├┬┘├┤ ├─┤│   │ │ │├┬┘
  ┴└─└─┘┴ ┴└─┘ ┴ └─┘┴└─
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var rerr *rerrors.Error
		if errors.As(err, &rerr) {
			fmt.Fprint(os.Stderr, rerr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "reactor",
		Short: "A fine-grained reactive runtime for Go",
		Long: `Reactor propagates state changes through signals, memos and effects.

This tool runs the bundled demos and serves a live inspector:

  • Demos of signals, keyed lists, resources and actions
  • Runtime stats and a websocket event feed
  • Prometheus metrics and OpenTelemetry spans`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: reactor.json or reactor.yaml in the project)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log_level (debug, info, warn, error)")

	rootCmd.AddCommand(
		demoCmd(&flags),
		serveCmd(&flags),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
