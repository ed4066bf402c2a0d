package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avitko/dicrector/pkg/errutil"
)

// newServeCmd builds the "serve" subcommand: it starts the observability
// server (metrics + health probes) and processes lines from stdin until
// interrupted, the same correction loop as "correct" but long-running and
// instrumented for production use.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the corrector as a long-lived process with metrics and health checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
	return cmd
}

func runServe(cmd *cobra.Command) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var errCh <-chan error
	if d.cfg.Observability.Enabled {
		errCh, err = d.obsServer.Start()
		if err != nil {
			return fmt.Errorf("starting observability server: %w", err)
		}
		d.logger.Info("observability server listening", "addr", d.obsServer.Addr())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for scanner.Scan() {
			corrected, err := d.corrector.Execute(ctx, scanner.Text())
			if err != nil {
				errutil.LogError(d.logger, "correcting line", err)
				continue
			}
			_, _ = fmt.Fprintln(out, corrected)
		}
	}()

	select {
	case <-sigCh:
		d.logger.Info("shutting down")
	case <-done:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("observability server error: %w", err)
		}
	}

	if d.cfg.Observability.Enabled {
		if err := d.obsServer.Stop(ctx); err != nil {
			return fmt.Errorf("stopping observability server: %w", err)
		}
	}

	return nil
}
