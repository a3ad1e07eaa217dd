package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"atmos-ca/internal/logging"
)

type rootOptions struct {
	logLevel  string
	logFormat string
	stderr    io.Writer
}

func (o *rootOptions) logger() *slog.Logger {
	return logging.New(o.logLevel, o.logFormat, o.stderr)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stderr: stderr}
	root := &cobra.Command{
		Use:           "atmos",
		Short:         "Headless station atmosphere simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text, json or auto")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newSpeciesCmd())
	root.AddCommand(newProbeCmd())
	root.AddCommand(newSweepCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
