// Package unify merges two natures into a classified Unification.
package unify

import (
	"sort"

	"github.com/nathoo/tink/types"
)

// Conflicted is the flattened form of a conflict marker.
const Conflicted = "conflicted"

// Unify merges a and b. Keys are visited in sorted order, so Conflicts and
// Resonances come out sorted by trait name.
func Unify(a, b types.Nature) types.Unification {
	unified := make(map[string]any, len(a)+len(b))
	conflicts := []string{}
	resonances := []string{}
	shared := 0

	for _, key := range unionKeys(a, b) {
		va, inA := a[key]
		vb, inB := b[key]

		if !inA || !inB {
			// Only in one: passes through.
			if inA {
				unified[key] = va
			} else {
				unified[key] = vb
			}
			continue
		}

		shared++
		switch {
		case Equal(va, vb):
			unified[key] = va
			resonances = append(resonances, key)

		case IsNumber(va) && IsNumber(vb):
			if sameSignOrZero(va, vb) {
				unified[key] = Add(va, vb)
			} else {
				unified[key] = types.Conflict{From: [2]any{va, vb}}
				conflicts = append(conflicts, key)
			}

		default:
			unified[key] = types.Conflict{From: [2]any{va, vb}}
			conflicts = append(conflicts, key)
		}
	}

	return types.Unification{
		Unified:    unified,
		Stability:  classify(shared, len(conflicts)),
		Conflicts:  conflicts,
		Resonances: resonances,
	}
}

// classify maps shared-key and conflict counts to a stability.
// A lone contradiction is tension; paradox needs at least two conflicts
// that are also a strict majority of the shared keys.
func classify(shared, conflicts int) types.Stability {
	switch {
	case shared == 0:
		return types.Harmony
	case conflicts == 0:
		return types.Resonance
	case conflicts >= 2 && float64(conflicts)/float64(shared) > 0.5:
		return types.Paradox
	default:
		return types.Tension
	}
}

// Flatten rewrites conflict markers to the literal "conflicted" and passes
// every other value through.
func Flatten(unified map[string]any) types.Nature {
	flat := make(types.Nature, len(unified))
	for k, v := range unified {
		if _, ok := v.(types.Conflict); ok {
			flat[k] = Conflicted
			continue
		}
		flat[k] = v
	}
	return flat
}

// Merge returns a copy of base with overlay applied on top; overlay wins
// on key collisions. Neither input is modified.
func Merge(base, overlay types.Nature) types.Nature {
	out := make(types.Nature, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Keys returns the keys of n in sorted order.
func Keys(n map[string]any) []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionKeys(a, b types.Nature) []string {
	seen := make(map[string]bool, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range b {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
