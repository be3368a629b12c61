package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/engine/archetype"
	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/report"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
)

func catalogCmd(flags *sessionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List archetypes, epics, threads, projections or tiers",
	}
	cmd.AddCommand(catalogArchetypesCmd(flags))
	cmd.AddCommand(catalogEpicsCmd(flags))
	cmd.AddCommand(catalogThreadsCmd(flags))
	cmd.AddCommand(&cobra.Command{
		Use:   "projections",
		Short: "List the ways a history can be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listProjections(cmd.OutOrStdout())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "tiers",
		Short: "List loom sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listTiers(cmd.OutOrStdout())
			return nil
		},
	})
	return cmd
}

func catalogDefs(cmd *cobra.Command, flags *sessionFlags) (*state.Defs, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	return loadDefs(cfg.Pack)
}

func catalogArchetypesCmd(flags *sessionFlags) *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "archetypes",
		Short: "List archetypes, rarest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := catalogDefs(cmd, flags)
			if err != nil {
				return err
			}
			listArchetypes(cmd.OutOrStdout(), defs.Archetypes, tier)
			return nil
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "", "Archetype tier to filter")
	return cmd
}

func catalogEpicsCmd(flags *sessionFlags) *cobra.Command {
	var projection string
	cmd := &cobra.Command{
		Use:   "epics",
		Short: "List epics and their beats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := catalogDefs(cmd, flags)
			if err != nil {
				return err
			}
			return listEpics(cmd.OutOrStdout(), defs.Epics, projection)
		},
	}
	cmd.Flags().StringVar(&projection, "projection", "", "Projection id to filter")
	return cmd
}

func catalogThreadsCmd(flags *sessionFlags) *cobra.Command {
	var rarity string
	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List the thread library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := catalogDefs(cmd, flags)
			if err != nil {
				return err
			}
			listThreads(cmd.OutOrStdout(), defs.Threads, rarity)
			return nil
		},
	}
	cmd.Flags().StringVar(&rarity, "rarity", "", "Rarity to filter")
	return cmd
}

func listArchetypes(out io.Writer, defs []types.ArchetypeDef, tier string) {
	var shown []types.ArchetypeDef
	for _, d := range defs {
		if tier == "" || strings.EqualFold(d.Tier, tier) {
			shown = append(shown, d)
		}
	}
	if len(shown) == 0 {
		fmt.Fprintln(out, "No archetypes found.")
		return
	}
	sort.SliceStable(shown, func(i, j int) bool {
		return archetype.TierRank(shown[i].Tier) < archetype.TierRank(shown[j].Tier)
	})
	for _, d := range shown {
		fmt.Fprintf(out, "%s %s (%s): %s\n", report.Stars(d.Tier), d.Name, d.Tier,
			strings.Join(report.Requirements(d.Required), ", "))
	}
}

func listEpics(out io.Writer, epics []types.EpicDef, projection string) error {
	if projection != "" {
		if _, ok := epic.ByID(epic.Projections(), projection); !ok {
			return fmt.Errorf("unknown projection %q", projection)
		}
	}
	n := 0
	for _, e := range epics {
		if projection != "" && e.Projection != projection {
			continue
		}
		n++
		fmt.Fprintf(out, "%s [%s]\n", e.Name, e.Projection)
		for i, b := range e.Beats {
			fmt.Fprintf(out, "  %d. %s\n", i+1, b.Label)
		}
	}
	if n == 0 {
		fmt.Fprintln(out, "No epics found.")
	}
	return nil
}

func listThreads(out io.Writer, threads []types.Thread, rarity string) {
	n := 0
	for _, t := range threads {
		if rarity != "" && !strings.EqualFold(t.Rarity, rarity) {
			continue
		}
		n++
		fmt.Fprintf(out, "%s (%s) %s\n", t.Name, t.Rarity, report.Nature(t.Nature))
	}
	if n == 0 {
		fmt.Fprintln(out, "No threads found.")
	}
}

func listProjections(out io.Writer) {
	for _, p := range epic.Projections() {
		unlock := "open"
		if !p.Unlocked {
			unlock = fmt.Sprintf("opens after %d weaves", p.UnlocksAt)
		}
		fmt.Fprintf(out, "%s (%s), %s: %s\n", p.Name, p.ID, unlock, p.Description)
	}
}

func listTiers(out io.Writer) {
	for _, t := range loom.Tiers() {
		fmt.Fprintf(out, "%s: %d cells\n", t, loom.Size(t))
	}
}
