package report

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/types"
)

func sampleCrossing() types.Crossing {
	return types.Crossing{
		ThreadA: types.Placement{Thread: types.Thread{Name: "Lantern"}, Position: types.Coord{}},
		ThreadB: types.Placement{Thread: types.Thread{Name: "Frost"}, Position: types.Coord{Q: 1}},
		Unification: types.Unification{
			Unified: map[string]any{
				"bright": true,
				"heat":   types.Conflict{From: [2]any{3, -2}},
			},
			Stability:  types.Tension,
			Conflicts:  []string{"heat"},
			Resonances: []string{"bright"},
		},
		Archetype: types.MatchResult{
			Match: &types.ArchetypeMatch{Name: "Aurora", Tier: "rare", Flavor: "Cold fire."},
			Score: &types.Score{Matched: 2, Total: 3, Ratio: 2.0 / 3},
			NearMisses: []types.NearMiss{
				{Name: "Sunrise", Matched: 1, Total: 2, MissingTraits: []string{"warm"}},
			},
		},
		CascadeApplied: []types.CascadeInjection{{Trait: "luminous", To: types.Coord{Q: 1}}},
		CascadeDepth:   1,
	}
}

func TestStars(t *testing.T) {
	tests := map[string]string{
		"legendary": "★★★★",
		"mythic":    "★★★",
		"rare":      "★★☆",
		"uncommon":  "★☆☆",
		"common":    "☆☆☆",
		"unheard":   "☆☆☆",
	}
	for tier, want := range tests {
		if got := Stars(tier); got != want {
			t.Errorf("Stars(%q) = %q, want %q", tier, got, want)
		}
	}
}

func TestStabilityLabel(t *testing.T) {
	if got := StabilityLabel(types.Paradox); got != "☣ PARADOX" {
		t.Errorf("paradox label = %q", got)
	}
	if got := StabilityLabel("drift"); got != "DRIFT" {
		t.Errorf("unknown label = %q", got)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{true, "true"},
		{3, "3"},
		{0.25, "0.25"},
		{"calm", "calm"},
		{types.Conflict{From: [2]any{"calm", 2.5}}, "⚡(calm|2.5)"},
	}
	for _, tt := range tests {
		if got := Value(tt.in); got != tt.want {
			t.Errorf("Value(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNature_Sorted(t *testing.T) {
	got := Nature(map[string]any{"wet": true, "heat": 2, "bright": false})
	if got != "bright=false, heat=2, wet=true" {
		t.Errorf("Nature = %q", got)
	}
}

func TestRequirements(t *testing.T) {
	got := Requirements([]types.Requirement{
		{Kind: types.RequireTrait, Trait: "bright", Value: true},
		{Kind: types.RequireTrait, Trait: "mood", Value: "calm"},
		{Kind: types.RequireTrait, Trait: "heat", Value: 3},
		{Kind: types.RequireMinConflicts, Count: 2},
	})
	want := []string{"bright", "mood=calm", "heat=3", "conflicts>=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Requirements = %v, want %v", got, want)
	}
}

func TestLayout(t *testing.T) {
	if Layout(nil) != nil {
		t.Error("empty layout should be nil")
	}

	l, err := loom.New(types.TierTriad, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Place(types.Thread{Name: "Moss", Nature: types.Nature{"green": true}}, types.Coord{}); err != nil {
		t.Fatal(err)
	}
	if err := l.Place(types.Thread{Name: "Extraordinary Willow", Nature: types.Nature{"tall": true}}, types.Coord{R: 1}); err != nil {
		t.Fatal(err)
	}

	got := Layout(l.Positions())
	want := []string{
		"Moss" + strings.Repeat(" ", 8) + "·",
		strings.Repeat(" ", 6) + "Extraordin…",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Layout =\n%q\nwant\n%q", got, want)
	}
}

func TestCrossing(t *testing.T) {
	got := Crossing(1, sampleCrossing())
	want := []string{
		"[1] Lantern (0,0) × Frost (1,0)",
		"    ⚡ TENSION  resonates: bright  conflicts: heat",
		"    → bright=true, heat=⚡(3|-2)",
		"    ★★☆ Aurora (rare) 67%",
		"      \"Cold fire.\"",
		"    near: Sunrise 1/2, missing warm",
		"    ↯ cascade: luminous → (1,0) (depth 1)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Crossing =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestCrossing_NoArchetype(t *testing.T) {
	c := types.Crossing{
		ThreadA:     types.Placement{Thread: types.Thread{Name: "Moss"}},
		ThreadB:     types.Placement{Thread: types.Thread{Name: "Fern"}, Position: types.Coord{R: 1}},
		Unification: types.Unification{Unified: map[string]any{"green": true}, Stability: types.Harmony},
	}
	got := Crossing(2, c)
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if got[1] != "    ≡ HARMONY" {
		t.Errorf("stability line = %q", got[1])
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(nil); got[0] != "No crossings. Place threads side by side." {
		t.Errorf("empty summary = %q", got)
	}

	plain := types.Crossing{Unification: types.Unification{Stability: types.Harmony}}
	got := Summary([]types.Crossing{sampleCrossing(), plain})
	want := []string{
		"2 crossings: harmony 1, resonance 0, tension 1, paradox 0",
		"Emerged (1): Aurora",
		"Cascades touched 1 crossings, deepest 1.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summary = %q\nwant %q", got, want)
	}

	got = Summary([]types.Crossing{plain})
	if got[1] != "Nothing emerged." {
		t.Errorf("no archetype line = %q", got[1])
	}
}

func TestEpics(t *testing.T) {
	if got := Epics(types.RunResult{}); !reflect.DeepEqual(got, []string{"No epic took shape."}) {
		t.Errorf("empty run = %q", got)
	}

	tapestry := types.ProjectionDef{ID: "tapestry", Name: "Tapestry"}
	run := types.RunResult{
		Results: []types.ProjectedResult{
			{
				EpicResult: types.EpicResult{
					Epic:     types.EpicDef{Name: "Dawn", OnComplete: "Light finds its echo."},
					Complete: true, CompletedBeats: 2, TotalBeats: 2,
				},
				Projection:  tapestry,
				GoldenCount: 1,
			},
			{
				EpicResult: types.EpicResult{
					Epic:     types.EpicDef{Name: "Dusk", OnPartial: "Almost."},
					NearMiss: true, CompletedBeats: 1, TotalBeats: 3,
				},
				Projection: tapestry,
			},
			{
				EpicResult: types.EpicResult{Epic: types.EpicDef{Name: "Silent"}, TotalBeats: 2},
				Projection: tapestry,
			},
		},
		GoldenMoments: 1,
	}
	want := []string{
		"✦ Dawn [Tapestry] complete",
		"  Light finds its echo.",
		"  1 golden moment",
		"◇ Dusk [Tapestry] 1/3 beats",
		"  Almost.",
		"Golden moments: 1",
	}
	if got := Epics(run); !reflect.DeepEqual(got, want) {
		t.Errorf("Epics = %q\nwant %q", got, want)
	}
}

func TestWeave_Header(t *testing.T) {
	w := &types.Weave{Number: 3, Tier: types.TierHex, Crossings: []types.Crossing{sampleCrossing()}}
	got := Weave(w)
	if got[0] != "── Weave 3 (hex) ──" {
		t.Errorf("header = %q", got[0])
	}
	if got[1] != "[1] Lantern (0,0) × Frost (1,0)" {
		t.Errorf("first crossing line = %q", got[1])
	}
	if got[len(got)-1] != "No epic took shape." {
		t.Errorf("last line = %q", got[len(got)-1])
	}
}
