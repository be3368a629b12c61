package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Archetypes: []types.ArchetypeDef{
			{
				Name: "Aurora",
				Tier: "uncommon",
				Required: []types.Requirement{
					{Kind: types.RequireTrait, Trait: "bright", Value: true},
					{Kind: types.RequireTrait, Trait: "cold", Value: true},
				},
			},
			{
				Name:     "Maelstrom",
				Tier:     "mythic",
				Required: []types.Requirement{{Kind: types.RequireMinConflicts, Count: 2}},
			},
		},
		Threads: []types.Thread{
			{Name: "Lantern", Rarity: "common", Nature: types.Nature{"bright": true}},
			{Name: "Frost", Rarity: "common", Nature: types.Nature{"cold": true}},
			{Name: "Tide", Rarity: "rare", Nature: types.Nature{"liquid": true}},
		},
	}
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(testDefs(), engine.Options{Tier: types.TierTriad, Seed: 3})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tink.yaml")
	if err := os.WriteFile(path, []byte("tier: grand\nseed: 42\nhand_size: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := &sessionFlags{}
	cmd := &cobra.Command{Use: "tink"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"--config", path, "--tier", "triad", "--unlock", "heroic"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Tier != "triad" || cfg.Seed != 42 || cfg.HandSize != 7 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Unlock) != 1 || cfg.Unlock[0] != "heroic" {
		t.Errorf("unlock = %v", cfg.Unlock)
	}
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	flags := &sessionFlags{}
	cmd := &cobra.Command{Use: "tink"}
	flags.register(cmd)
	path := filepath.Join(t.TempDir(), "missing.yaml")
	if err := cmd.ParseFlags([]string{"--config", path, "--tier", "vast"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if _, err := loadConfig(cmd, flags); err == nil {
		t.Error("expected an error for an unknown tier")
	}
}

func TestLoadDefs(t *testing.T) {
	defs, err := loadDefs("")
	if err != nil {
		t.Fatalf("loadDefs: %v", err)
	}
	if len(defs.Threads) != 30 {
		t.Errorf("built-in threads = %d", len(defs.Threads))
	}

	defs, err = loadDefs("../../loader/testdata/pack")
	if err != nil {
		t.Fatalf("loadDefs(pack): %v", err)
	}
	if len(defs.Threads) != 32 {
		t.Errorf("merged threads = %d", len(defs.Threads))
	}

	if _, err := loadDefs("../../loader/testdata/invalid"); err == nil {
		t.Error("expected an error for an invalid pack")
	}
}

func TestRunWeave_Named(t *testing.T) {
	var out bytes.Buffer
	e := newTestEngine(t)
	if err := runWeave(&out, e, []string{"lantern", "Frost@1,0"}, 1, false); err != nil {
		t.Fatalf("runWeave: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Weave 1 (triad)", "Lantern (0,0) × Frost (1,0)", "Aurora"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in:\n%s", want, text)
		}
	}
}

func TestRunWeave_RandomJSON(t *testing.T) {
	var out bytes.Buffer
	e := newTestEngine(t)
	if err := runWeave(&out, e, nil, 2, true); err != nil {
		t.Fatalf("runWeave: %v", err)
	}
	var weaves []map[string]any
	if err := json.Unmarshal(out.Bytes(), &weaves); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out.String())
	}
	if len(weaves) != 2 {
		t.Errorf("weaves = %d", len(weaves))
	}
	if e.State.Weaves != 2 {
		t.Errorf("engine weaves = %d", e.State.Weaves)
	}
}

func TestRunWeave_Errors(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		times int
	}{
		{"zero times", nil, 0},
		{"unknown thread", []string{"Anvil", "Frost"}, 1},
		{"bad coordinate", []string{"Lantern@x", "Frost"}, 1},
		{"single thread", []string{"Lantern"}, 1},
		{"same cell", []string{"Lantern@0,0", "Frost@0,0"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := runWeave(&out, newTestEngine(t), tt.specs, tt.times, false); err == nil {
				t.Errorf("expected an error, got:\n%s", out.String())
			}
		})
	}
}

func TestRunValidate(t *testing.T) {
	var out bytes.Buffer
	if err := runValidate(&out, "../../loader/testdata/pack"); err != nil {
		t.Fatalf("runValidate: %v", err)
	}
	if got := out.String(); got != "No issues found (2 archetypes, 3 threads, 2 epics).\n" {
		t.Errorf("output = %q", got)
	}

	out.Reset()
	err := runValidate(&out, "../../loader/testdata/invalid")
	if err == nil || err.Error() != "validation found errors" {
		t.Fatalf("err = %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Errors (6):") || !strings.Contains(text, "Warnings (3):") {
		t.Errorf("unexpected output:\n%s", text)
	}

	if err := runValidate(&out, "../../loader/testdata/nope"); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestListArchetypes(t *testing.T) {
	var out bytes.Buffer
	listArchetypes(&out, testDefs().Archetypes, "")
	want := "★★★ Maelstrom (mythic): conflicts>=2\n★☆☆ Aurora (uncommon): bright, cold\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}

	out.Reset()
	listArchetypes(&out, testDefs().Archetypes, "legendary")
	if out.String() != "No archetypes found.\n" {
		t.Errorf("filtered output = %q", out.String())
	}
}

func TestListThreads(t *testing.T) {
	var out bytes.Buffer
	listThreads(&out, testDefs().Threads, "RARE")
	if out.String() != "Tide (rare) liquid=true\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestListEpics(t *testing.T) {
	epics := []types.EpicDef{
		{Name: "Dawn", Projection: "tapestry", Beats: []types.Beat{{Label: "spark"}, {Label: "light"}}},
		{Name: "Long Road", Projection: "heroic", Beats: []types.Beat{{Label: "call"}}},
	}
	var out bytes.Buffer
	if err := listEpics(&out, epics, "tapestry"); err != nil {
		t.Fatalf("listEpics: %v", err)
	}
	if out.String() != "Dawn [tapestry]\n  1. spark\n  2. light\n" {
		t.Errorf("output = %q", out.String())
	}
	if err := listEpics(&out, epics, "comedy"); err == nil {
		t.Error("expected an error for an unknown projection")
	}
}

func TestListTiersAndProjections(t *testing.T) {
	var out bytes.Buffer
	listTiers(&out)
	if !strings.HasPrefix(out.String(), "triad: 3 cells\nhex: 7 cells\n") {
		t.Errorf("tiers = %q", out.String())
	}

	out.Reset()
	listProjections(&out)
	if !strings.Contains(out.String(), "The Tapestry (tapestry), open") {
		t.Errorf("projections = %q", out.String())
	}
	if !strings.Contains(out.String(), "opens after 5 weaves") {
		t.Errorf("projections = %q", out.String())
	}
}
