package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// correctConfig holds the flags for the correct subcommand.
type correctConfig struct {
	inputPath string
}

// newCorrectCmd builds the "correct" subcommand: it reads lines from a file
// (or stdin when none is given) and writes each corrected line to stdout.
func newCorrectCmd() *cobra.Command {
	cfg := &correctConfig{}

	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Rewrite lines of text through the configured dictionaries",
		Long:  `Reads lines from --input (or stdin) and writes each corrected line to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCorrect(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.inputPath, "input", "", "input file path (default: stdin)")

	return cmd
}

func runCorrect(cmd *cobra.Command, cfg *correctConfig) error {
	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if cfg.inputPath != "" {
		f, err := os.Open(cfg.inputPath)
		if err != nil {
			return fmt.Errorf("opening input file %q: %w", cfg.inputPath, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	ctx := cmd.Context()
	scanner := bufio.NewScanner(in)
	out := cmd.OutOrStdout()
	for scanner.Scan() {
		corrected, err := d.corrector.Execute(ctx, scanner.Text())
		if err != nil {
			return fmt.Errorf("correcting line: %w", err)
		}
		if _, err := fmt.Fprintln(out, corrected); err != nil {
			return fmt.Errorf("writing corrected line: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}
