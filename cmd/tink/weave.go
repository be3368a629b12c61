package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/report"
	"github.com/nathoo/tink/engine/resolve"
	"github.com/nathoo/tink/types"
)

func weaveCmd(flags *sessionFlags) *cobra.Command {
	var asJSON bool
	var times int
	cmd := &cobra.Command{
		Use:   "weave [thread[@q,r]...]",
		Short: "Weave once without a session and print the result",
		Long: "Places the named threads from the library in order, or draws a full\n" +
			"loom at random when none are named, then weaves and prints the crossings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()
			return runWeave(cmd.OutOrStdout(), s.engine, args, times, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the weave as JSON")
	cmd.Flags().IntVar(&times, "times", 1, "Number of weaves to run in sequence")
	return cmd
}

func runWeave(out io.Writer, e *engine.Engine, specs []string, times int, asJSON bool) error {
	if times < 1 {
		return fmt.Errorf("--times must be at least 1, got %d", times)
	}

	var exports []report.ExportData
	for i := 0; i < times; i++ {
		if err := fillLoom(e, specs); err != nil {
			return err
		}
		evts, err := e.Weave()
		if err != nil {
			return err
		}

		if asJSON {
			exports = append(exports, report.Build(e.State.Last, e.State))
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		for _, line := range report.Weave(e.State.Last) {
			fmt.Fprintln(out, line)
		}
		for _, ev := range evts {
			if ev.Type == "projection_unlocked" {
				fmt.Fprintf(out, "[A new projection opens: %s.]\n", ev.Data["name"])
			}
		}
	}

	if !asJSON {
		return nil
	}
	var data []byte
	var err error
	if len(exports) == 1 {
		data, err = json.MarshalIndent(exports[0], "", "  ")
	} else {
		data, err = json.MarshalIndent(exports, "", "  ")
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// fillLoom places each "name" or "name@q,r" spec from the library, or
// draws and auto-places a full loom when specs is empty.
func fillLoom(e *engine.Engine, specs []string) error {
	if len(specs) == 0 {
		e.Draw(loom.Size(e.State.Tier))
		e.AutoPlace()
		return nil
	}

	for _, spec := range specs {
		name, at, _ := strings.Cut(spec, "@")
		resolved, err := resolve.Thread(e.Defs.Threads, name)
		if err != nil {
			return err
		}
		var pos *types.Coord
		if at != "" {
			c, err := loom.ParseCoord(at)
			if err != nil {
				return err
			}
			pos = &c
		}
		for _, t := range e.Defs.Threads {
			if t.Name == resolved {
				e.State.Hand = []types.Thread{t}
				break
			}
		}
		if _, err := e.Place(resolved, pos); err != nil {
			return err
		}
	}
	return nil
}
