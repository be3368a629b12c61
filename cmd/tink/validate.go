package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/loader"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dir>",
		Short: "Check a content pack for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func runValidate(out io.Writer, dir string) error {
	defs, warnings, err := loader.LoadWithWarnings(dir)

	var ve *loader.ValidationError
	if err != nil && !errors.As(err, &ve) {
		return err
	}
	var errs []string
	if ve != nil {
		errs = ve.Errors
		if len(warnings) == 0 {
			warnings = ve.Warnings
		}
	}

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintf(out, "No issues found (%d archetypes, %d threads, %d epics).\n",
			len(defs.Archetypes), len(defs.Threads), len(defs.Epics))
		return nil
	}

	if len(errs) > 0 {
		fmt.Fprintf(out, "Errors (%d):\n", len(errs))
		printIssues(out, errs)
	}
	if len(warnings) > 0 {
		if len(errs) > 0 {
			fmt.Fprintln(out, "")
		}
		fmt.Fprintf(out, "Warnings (%d):\n", len(warnings))
		printIssues(out, warnings)
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []string) {
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
}
