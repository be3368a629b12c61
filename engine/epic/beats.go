// Package epic scores a weaving history against ordered beat templates,
// optionally after a projection has added narrative fields to it.
package epic

import (
	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

// check is one specified condition of a beat.
type check func(m types.Moment) bool

// checks expands the specified conditions of r. Each trait counts as its
// own condition. Zero-valued fields are not specified.
func checks(r types.Requires) []check {
	var cs []check

	if r.Stability != "" {
		cs = append(cs, func(m types.Moment) bool { return m.Stability == r.Stability })
	}
	for _, k := range unify.Keys(r.Traits) {
		want := r.Traits[k]
		cs = append(cs, func(m types.Moment) bool {
			got, ok := m.Traits[k]
			return ok && unify.Equal(got, want)
		})
	}
	if r.HasArchetype {
		cs = append(cs, func(m types.Moment) bool { return m.Archetype != nil })
	}
	if r.ArchetypeTier != "" {
		cs = append(cs, func(m types.Moment) bool {
			return m.Archetype != nil && m.Archetype.Tier == r.ArchetypeTier
		})
	}
	if r.CascadeDepth > 0 {
		cs = append(cs, func(m types.Moment) bool { return m.CascadeDepth >= r.CascadeDepth })
	}
	if r.HasNearMiss {
		cs = append(cs, func(m types.Moment) bool { return len(m.NearMisses) > 0 })
	}
	if r.MinConflicts > 0 {
		cs = append(cs, func(m types.Moment) bool { return ConflictCount(m) >= r.MinConflicts })
	}

	// Projection fields are empty until the projection has run.
	if r.HeroStage != "" {
		cs = append(cs, func(m types.Moment) bool { return m.HeroStage == r.HeroStage })
	}
	if r.DramaticArc != "" {
		cs = append(cs, func(m types.Moment) bool { return m.DramaticArc == r.DramaticArc })
	}
	if r.Symmetry != "" {
		cs = append(cs, func(m types.Moment) bool { return m.Symmetry == r.Symmetry })
	}
	return cs
}

// BeatMatches reports whether m satisfies every condition of b. A beat with
// no conditions always matches.
func BeatMatches(b types.Beat, m types.Moment) bool {
	for _, c := range checks(b.Requires) {
		if !c(m) {
			return false
		}
	}
	return true
}

// BeatPartialScore is the fraction of b's conditions that m satisfies, or 1
// when b has none.
func BeatPartialScore(b types.Beat, m types.Moment) float64 {
	cs := checks(b.Requires)
	if len(cs) == 0 {
		return 1
	}
	matched := 0
	for _, c := range cs {
		if c(m) {
			matched++
		}
	}
	return float64(matched) / float64(len(cs))
}

// ConflictCount counts the traits of m flattened to "conflicted".
func ConflictCount(m types.Moment) int {
	n := 0
	for _, v := range m.Traits {
		if s, ok := v.(string); ok && s == unify.Conflicted {
			n++
		}
	}
	return n
}
