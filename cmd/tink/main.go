// Tink weaves threads on a hex loom and reads the crossings as stories.
// Usage: tink [play] [--plain] [--script <file>] [--trace] [--tier <tier>] [--pack <dir>]
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	flags := &sessionFlags{}
	root := &cobra.Command{
		Use:          "tink",
		Short:        "Weave threads on a hex loom and watch archetypes and epics emerge",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags, playOptions{})
		},
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	flags.register(root)

	root.AddCommand(playCmd(flags))
	root.AddCommand(weaveCmd(flags))
	root.AddCommand(catalogCmd(flags))
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd(flags))
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
