package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/cli"
	"github.com/nathoo/tink/tui"
)

type playOptions struct {
	plain  bool
	script string
	trace  bool
}

func playCmd(flags *sessionFlags) *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start an interactive weaving session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Use the line-oriented interface instead of the TUI")
	cmd.Flags().StringVar(&opts.script, "script", "", "Replay commands from a file (implies --plain)")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print engine events after each command")
	return cmd
}

func runPlay(cmd *cobra.Command, flags *sessionFlags, opts playOptions) error {
	s, err := openSession(cmd, flags)
	if err != nil {
		return err
	}
	defer s.Close()

	// Script mode: read commands from the file and echo them.
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		fmt.Printf("tink %s, %s loom, seed %d\n\n", version, s.engine.State.Tier, s.engine.State.RNGSeed)
		c := cli.New(s.engine)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run()
		return nil
	}

	if opts.plain || !isTerminal() {
		fmt.Printf("tink %s, %s loom, seed %d\n\n", version, s.engine.State.Tier, s.engine.State.RNGSeed)
		c := cli.New(s.engine)
		c.Trace = opts.trace
		c.Run()
		return nil
	}

	return tui.Run(s.engine)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
