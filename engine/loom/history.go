package loom

import (
	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

// History converts crossings into the moment records read by epics.
func History(crossings []types.Crossing) []types.Moment {
	out := make([]types.Moment, 0, len(crossings))
	for _, c := range crossings {
		out = append(out, Moment(c))
	}
	return out
}

// Moment derives a single history entry from a crossing.
func Moment(c types.Crossing) types.Moment {
	return types.Moment{
		Stability:    c.Unification.Stability,
		Traits:       unify.Flatten(c.Unification.Unified),
		Archetype:    c.Archetype.Match,
		CascadeDepth: c.CascadeDepth,
		NearMisses:   c.Archetype.NearMisses,
	}
}
