package unify

import (
	"reflect"
	"testing"

	"github.com/nathoo/tink/types"
)

func TestUnify_Stability(t *testing.T) {
	tests := []struct {
		name string
		a, b types.Nature
		want types.Stability
	}{
		{
			name: "disjoint natures",
			a:    types.Nature{"bright": true, "hot": true},
			b:    types.Nature{"liquid": true, "organic": true},
			want: types.Harmony,
		},
		{
			name: "both empty",
			a:    types.Nature{},
			b:    types.Nature{},
			want: types.Harmony,
		},
		{
			name: "one empty",
			a:    types.Nature{},
			b:    types.Nature{"bright": true},
			want: types.Harmony,
		},
		{
			name: "shared keys agree",
			a:    types.Nature{"bright": true, "emotional": true, "hot": true},
			b:    types.Nature{"bright": true, "emotional": true, "liquid": true},
			want: types.Resonance,
		},
		{
			name: "one of two shared keys conflicts",
			a:    types.Nature{"hot": true, "cold": true},
			b:    types.Nature{"hot": false, "cold": true},
			want: types.Tension,
		},
		{
			name: "single shared key conflicts",
			a:    types.Nature{"element": "fire"},
			b:    types.Nature{"element": "water"},
			want: types.Tension,
		},
		{
			name: "all shared keys conflict",
			a:    types.Nature{"bright": true, "hot": true, "organic": true},
			b:    types.Nature{"bright": false, "hot": false, "organic": false},
			want: types.Paradox,
		},
		{
			name: "two of three shared keys conflict",
			a:    types.Nature{"bright": true, "hot": true, "vast": true, "quiet": true},
			b:    types.Nature{"bright": false, "hot": false, "vast": true, "liquid": true},
			want: types.Paradox,
		},
		{
			name: "two of four shared keys conflict",
			a:    types.Nature{"a": true, "b": true, "c": true, "d": true},
			b:    types.Nature{"a": false, "b": false, "c": true, "d": true},
			want: types.Tension,
		},
		{
			name: "mixed kinds conflict",
			a:    types.Nature{"charge": 1},
			b:    types.Nature{"charge": "1"},
			want: types.Tension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unify(tt.a, tt.b)
			if got.Stability != tt.want {
				t.Errorf("Stability = %q, want %q", got.Stability, tt.want)
			}
		})
	}
}

func TestUnify_Harmony(t *testing.T) {
	r := Unify(types.Nature{"bright": true, "hot": true}, types.Nature{"liquid": true, "organic": true})
	if len(r.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %v", r.Conflicts)
	}
	if len(r.Resonances) != 0 {
		t.Errorf("expected no resonances, got %v", r.Resonances)
	}
	if len(r.Unified) != 4 {
		t.Errorf("expected 4 unified traits, got %d", len(r.Unified))
	}
}

func TestUnify_IdenticalNaturesResonate(t *testing.T) {
	n := types.Nature{"volatile": true, "bright": true, "power": 2}
	r := Unify(n, n)
	if r.Stability != types.Resonance {
		t.Fatalf("Stability = %q, want resonance", r.Stability)
	}
	want := []string{"bright", "power", "volatile"}
	if !reflect.DeepEqual(r.Resonances, want) {
		t.Errorf("Resonances = %v, want %v", r.Resonances, want)
	}
}

func TestUnify_TensionMarksConflict(t *testing.T) {
	r := Unify(
		types.Nature{"bright": true, "volatile": true, "organic": true},
		types.Nature{"bright": false, "volatile": true, "mechanical": true},
	)
	if r.Stability != types.Tension {
		t.Fatalf("Stability = %q, want tension", r.Stability)
	}
	if !reflect.DeepEqual(r.Conflicts, []string{"bright"}) {
		t.Errorf("Conflicts = %v, want [bright]", r.Conflicts)
	}
	if !reflect.DeepEqual(r.Resonances, []string{"volatile"}) {
		t.Errorf("Resonances = %v, want [volatile]", r.Resonances)
	}
	c, ok := r.Unified["bright"].(types.Conflict)
	if !ok {
		t.Fatalf("bright = %#v, want a Conflict", r.Unified["bright"])
	}
	if c.From != [2]any{true, false} {
		t.Errorf("Conflict.From = %v, want [true false]", c.From)
	}
}

func TestUnify_Paradox(t *testing.T) {
	r := Unify(
		types.Nature{"bright": true, "hot": true, "organic": true},
		types.Nature{"bright": false, "hot": false, "organic": false},
	)
	if r.Stability != types.Paradox {
		t.Fatalf("Stability = %q, want paradox", r.Stability)
	}
	if len(r.Conflicts) != 3 {
		t.Errorf("expected 3 conflicts, got %d", len(r.Conflicts))
	}
	if len(r.Resonances) != 0 {
		t.Errorf("expected no resonances, got %v", r.Resonances)
	}
}

func TestUnify_Numbers(t *testing.T) {
	t.Run("same sign sums", func(t *testing.T) {
		r := Unify(types.Nature{"power": 3}, types.Nature{"power": 5})
		if r.Unified["power"] != 8 {
			t.Errorf("power = %v, want 8", r.Unified["power"])
		}
		if r.Stability != types.Resonance {
			t.Errorf("Stability = %q, want resonance", r.Stability)
		}
		if len(r.Resonances) != 0 {
			t.Errorf("a sum is not a resonance, got %v", r.Resonances)
		}
	})

	t.Run("zero sums", func(t *testing.T) {
		r := Unify(types.Nature{"heat": 0}, types.Nature{"heat": -4})
		if r.Unified["heat"] != -4 {
			t.Errorf("heat = %v, want -4", r.Unified["heat"])
		}
	})

	t.Run("negatives sum", func(t *testing.T) {
		r := Unify(types.Nature{"heat": -1}, types.Nature{"heat": -2})
		if r.Unified["heat"] != -3 {
			t.Errorf("heat = %v, want -3", r.Unified["heat"])
		}
	})

	t.Run("mixed numeric kinds sum to float", func(t *testing.T) {
		r := Unify(types.Nature{"power": 1}, types.Nature{"power": 0.5})
		if r.Unified["power"] != 1.5 {
			t.Errorf("power = %v, want 1.5", r.Unified["power"])
		}
	})

	t.Run("int and float of same value resonate", func(t *testing.T) {
		r := Unify(types.Nature{"power": 2}, types.Nature{"power": 2.0})
		if !reflect.DeepEqual(r.Resonances, []string{"power"}) {
			t.Errorf("Resonances = %v, want [power]", r.Resonances)
		}
	})

	t.Run("opposite signs conflict", func(t *testing.T) {
		r := Unify(types.Nature{"charge": 5}, types.Nature{"charge": -3})
		if _, ok := r.Unified["charge"].(types.Conflict); !ok {
			t.Errorf("charge = %#v, want a Conflict", r.Unified["charge"])
		}
		if r.Stability != types.Tension {
			t.Errorf("Stability = %q, want tension", r.Stability)
		}
	})
}

func TestUnify_DoesNotMutateInputs(t *testing.T) {
	a := types.Nature{"hot": true}
	b := types.Nature{"hot": false, "cold": true}
	Unify(a, b)
	if len(a) != 1 || len(b) != 2 || b["hot"] != false {
		t.Errorf("inputs were modified: a=%v b=%v", a, b)
	}
}

func TestFlatten(t *testing.T) {
	f := Flatten(map[string]any{
		"bright": true,
		"hot":    types.Conflict{From: [2]any{true, false}},
		"level":  5,
	})
	if f["bright"] != true {
		t.Errorf("bright = %v, want true", f["bright"])
	}
	if f["hot"] != Conflicted {
		t.Errorf("hot = %v, want %q", f["hot"], Conflicted)
	}
	if f["level"] != 5 {
		t.Errorf("level = %v, want 5", f["level"])
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := types.Nature{"cold": false, "vast": true}
	got := Merge(base, types.Nature{"cold": true})
	if got["cold"] != true || got["vast"] != true {
		t.Errorf("Merge = %v", got)
	}
	if base["cold"] != false {
		t.Error("base was modified")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{true, true, true},
		{true, false, false},
		{"fire", "fire", true},
		{"fire", "water", false},
		{3, 3.0, true},
		{int64(4), 4, true},
		{1, true, false},
		{"1", 1, false},
		{nil, nil, false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
