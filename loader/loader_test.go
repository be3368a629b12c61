package loader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
)

func TestLoad_Pack(t *testing.T) {
	defs, warnings, err := LoadWithWarnings("testdata/pack")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(defs.Archetypes) != 2 || len(defs.Threads) != 3 || len(defs.Epics) != 2 {
		t.Fatalf("pack = %d archetypes, %d threads, %d epics",
			len(defs.Archetypes), len(defs.Threads), len(defs.Epics))
	}

	// Archetypes.
	wisp := defs.Archetypes[0]
	if wisp.Name != "Will-o'-Wisp" || wisp.Tier != "uncommon" {
		t.Errorf("wisp = %+v", wisp)
	}
	if !reflect.DeepEqual(wisp.Cascade, types.Nature{"eerie": true}) {
		t.Errorf("wisp cascade = %v", wisp.Cascade)
	}
	bog := defs.Archetypes[1]
	wantReqs := []types.Requirement{
		{Kind: types.RequireMinConflicts, Count: 1},
		{Kind: types.RequireTrait, Trait: "green", Value: true},
		{Kind: types.RequireTrait, Trait: "temperature", Value: "cold"},
	}
	if !reflect.DeepEqual(bog.Required, wantReqs) {
		t.Errorf("bog requires = %+v\nwant %+v", bog.Required, wantReqs)
	}
	if bog.Cascade["weight"] != 2 {
		t.Errorf("bog cascade weight = %#v, want int 2", bog.Cascade["weight"])
	}

	// Threads.
	moss := defs.Threads[0]
	if !reflect.DeepEqual(moss.Nature, types.Nature{"green": true, "growth": 2}) {
		t.Errorf("moss nature = %v", moss.Nature)
	}
	if defs.Threads[1].Rarity != "uncommon" || defs.Threads[2].Nature["spark"] != 0.5 {
		t.Errorf("threads = %+v", defs.Threads)
	}

	// Epics (files load in name order, so epics.lua precedes threads.lua).
	marsh := defs.Epics[0]
	if marsh.Projection != "tapestry" || len(marsh.Beats) != 2 {
		t.Fatalf("marsh = %+v", marsh)
	}
	if marsh.Beats[0].Label != "kindling" || !marsh.Beats[0].Requires.HasArchetype {
		t.Errorf("kindling = %+v", marsh.Beats[0])
	}
	answer := marsh.Beats[1]
	if answer.Requires.Stability != types.Resonance || answer.Requires.Traits["eerie"] != true {
		t.Errorf("answer requires = %+v", answer.Requires)
	}
	if answer.Mood == nil || answer.Mood.Tone != "crystalline" || answer.Mood.Intensity == nil || *answer.Mood.Intensity != 0.5 {
		t.Errorf("answer mood = %+v", answer.Mood)
	}
	road := defs.Epics[1]
	if road.Projection != "heroic" || road.Beats[0].Requires.HeroStage != "call" || road.Beats[1].Requires.CascadeDepth != 1 {
		t.Errorf("road = %+v", road)
	}
}

func TestLoad_MergeOverBuiltins(t *testing.T) {
	pack, err := Load("testdata/pack")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defs := state.Merge(state.Default(), pack)

	if len(defs.Threads) != 32 {
		t.Errorf("threads = %d, want 30 built-in + 2 new", len(defs.Threads))
	}
	if defs.Threads[0].Name != "Ember" || defs.Threads[0].Rarity != "rare" {
		t.Errorf("Ember not overridden in place: %+v", defs.Threads[0])
	}
	if len(defs.Archetypes) != 24 || len(defs.Epics) != 14 {
		t.Errorf("archetypes = %d, epics = %d", len(defs.Archetypes), len(defs.Epics))
	}
}

func TestLoad_Invalid(t *testing.T) {
	_, warnings, err := LoadWithWarnings("testdata/invalid")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if len(ve.Errors) != 6 {
		t.Errorf("errors = %d:\n  %s", len(ve.Errors), strings.Join(ve.Errors, "\n  "))
	}
	if len(warnings) != 3 || len(ve.Warnings) != 3 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestLoad_Sandboxed(t *testing.T) {
	_, err := Load("testdata/sandbox")
	if err == nil {
		t.Fatal("expected error: io is not available to packs")
	}
	if !strings.Contains(err.Error(), "escape.lua") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestLoad_NoLuaFiles(t *testing.T) {
	_, err := Load("testdata/empty")
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load("testdata/nope"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoad_CompileError(t *testing.T) {
	dir := t.TempDir()
	src := `Epic "Loose" { "not a beat" }`
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "not a Beat") {
		t.Errorf("err = %v", err)
	}
}
