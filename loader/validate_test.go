package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
)

// validDefs returns a minimal valid pack for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Archetypes: []types.ArchetypeDef{
			{
				Name:     "Bog Light",
				Tier:     "uncommon",
				Required: []types.Requirement{{Kind: types.RequireTrait, Trait: "bright", Value: true}},
			},
		},
		Threads: []types.Thread{
			{Name: "Moss", Rarity: "common", Nature: types.Nature{"green": true}},
		},
		Epics: []types.EpicDef{
			{
				Name:       "Glow",
				Projection: "tapestry",
				Beats:      []types.Beat{{Label: "light", Requires: types.Requires{HasArchetype: true}}},
			},
		},
	}
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got %v", substr, msgs)
}

func mustFail(t *testing.T, defs *state.Defs) *ValidationError {
	t.Helper()
	_, err := validate(defs)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve
}

func TestValidate_ValidDefs(t *testing.T) {
	warnings, err := validate(validDefs())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestValidate_EmptyPack(t *testing.T) {
	if _, err := validate(&state.Defs{}); err != nil {
		t.Errorf("empty pack should validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *state.Defs)
		want   string
	}{
		{"unknown archetype tier", func(d *state.Defs) { d.Archetypes[0].Tier = "epic" }, "unknown tier"},
		{"empty archetype name", func(d *state.Defs) { d.Archetypes[0].Name = " " }, "empty name"},
		{"requirement without trait", func(d *state.Defs) {
			d.Archetypes[0].Required = append(d.Archetypes[0].Required, types.Requirement{Kind: types.RequireTrait})
		}, "without a trait"},
		{"thread without nature", func(d *state.Defs) { d.Threads[0].Nature = nil }, "at least one trait"},
		{"duplicate thread", func(d *state.Defs) {
			d.Threads = append(d.Threads, types.Thread{Name: "MOSS", Nature: types.Nature{"x": true}, Rarity: "common"})
		}, "duplicate thread"},
		{"unknown projection", func(d *state.Defs) { d.Epics[0].Projection = "farce" }, "unknown projection"},
		{"no beats", func(d *state.Defs) { d.Epics[0].Beats = nil }, "no beats"},
		{"unknown stability", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.Stability = "calm" }, "unknown stability"},
		{"unknown beat tier", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.ArchetypeTier = "gold" }, "unknown tier"},
		{"unknown hero stage", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.HeroStage = "nap" }, "unknown hero_stage"},
		{"unknown arc", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.DramaticArc = "flat" }, "unknown arc"},
		{"unknown symmetry", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.Symmetry = "third" }, "unknown symmetry"},
		{"negative count", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.CascadeDepth = -1 }, "negative count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefs()
			tt.mutate(d)
			ve := mustFail(t, d)
			assertContains(t, ve.Errors, tt.want)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *state.Defs)
		want   string
	}{
		{"archetype without requirements", func(d *state.Defs) { d.Archetypes[0].Required = nil }, "can never match"},
		{"unknown rarity", func(d *state.Defs) { d.Threads[0].Rarity = "mythic" }, "unknown rarity"},
		{"hero stage outside heroic", func(d *state.Defs) { d.Epics[0].Beats[0].Requires.HeroStage = "call" }, "hero_stage is only set"},
		{"intensity out of range", func(d *state.Defs) {
			v := 1.5
			d.Epics[0].Beats[0].Mood = &types.Mood{Intensity: &v}
		}, "outside [0, 1]"},
		{"empty beat", func(d *state.Defs) { d.Epics[0].Beats[0].Requires = types.Requires{} }, "matches any moment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefs()
			tt.mutate(d)
			warnings, err := validate(d)
			if err != nil {
				t.Fatalf("warnings should not fail validation: %v", err)
			}
			assertContains(t, warnings, tt.want)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []string{"a", "b"}}
	if !strings.Contains(ve.Error(), "2 error(s)") {
		t.Errorf("Error() = %q", ve.Error())
	}
}
