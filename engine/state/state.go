// Package state holds the catalogs a session plays with and the helpers
// that read and update the mutable session state.
package state

import (
	"strings"

	"github.com/nathoo/tink/engine/archetype"
	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/thread"
	"github.com/nathoo/tink/types"
)

// Defs holds the immutable catalogs: built-in content, optionally merged
// with a content pack.
type Defs struct {
	Archetypes []types.ArchetypeDef
	Threads    []types.Thread
	Epics      []types.EpicDef
}

// Default returns the built-in catalogs.
func Default() *Defs {
	return &Defs{
		Archetypes: archetype.Catalog(),
		Threads:    thread.All(),
		Epics:      epic.Catalog(),
	}
}

// Merge layers pack over base. An entry whose name already exists replaces
// it in place; new names are appended in pack order. Neither input is
// modified.
func Merge(base, pack *Defs) *Defs {
	if pack == nil {
		return base
	}
	return &Defs{
		Archetypes: mergeNamed(base.Archetypes, pack.Archetypes, func(a types.ArchetypeDef) string { return a.Name }),
		Threads:    mergeNamed(base.Threads, pack.Threads, func(t types.Thread) string { return t.Name }),
		Epics:      mergeNamed(base.Epics, pack.Epics, func(e types.EpicDef) string { return e.Name }),
	}
}

func mergeNamed[T any](base, overlay []T, name func(T) string) []T {
	out := make([]T, len(base), len(base)+len(overlay))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, v := range out {
		index[strings.ToLower(name(v))] = i
	}
	for _, v := range overlay {
		key := strings.ToLower(name(v))
		if i, ok := index[key]; ok {
			out[i] = v
			continue
		}
		index[key] = len(out)
		out = append(out, v)
	}
	return out
}

// NewState creates a fresh session state. Only projections unlocked from
// the start are marked.
func NewState(tier types.Tier, seed int64, projections []epic.Projection) *types.State {
	unlocked := make(map[string]bool, len(projections))
	for _, p := range projections {
		if p.Unlocked {
			unlocked[p.ID] = true
		}
	}
	return &types.State{
		Tier:       tier,
		Hand:       []types.Thread{},
		Unlocked:   unlocked,
		RNGSeed:    seed,
		CommandLog: []string{},
	}
}

// IsUnlocked reports whether a projection is unlocked.
func IsUnlocked(s *types.State, id string) bool {
	return s.Unlocked[id]
}

// ApplyUnlocks returns projections with the session's unlock state
// applied. The input is not modified.
func ApplyUnlocks(s *types.State, projections []epic.Projection) []epic.Projection {
	out := make([]epic.Projection, len(projections))
	for i, p := range projections {
		p.Unlocked = s.Unlocked[p.ID]
		out[i] = p
	}
	return out
}

// Unlock marks every projection whose threshold the weave count has
// reached. It returns the newly unlocked ones.
func Unlock(s *types.State, projections []epic.Projection) []epic.Projection {
	var fresh []epic.Projection
	for _, p := range projections {
		if s.Unlocked[p.ID] || s.Weaves < p.UnlocksAt {
			continue
		}
		s.Unlocked[p.ID] = true
		fresh = append(fresh, p)
	}
	return fresh
}

// InHand reports whether a thread with this exact name is in the hand.
func InHand(s *types.State, name string) bool {
	for _, t := range s.Hand {
		if t.Name == name {
			return true
		}
	}
	return false
}

// RemoveFromHand removes the first thread with this name and returns it.
func RemoveFromHand(s *types.State, name string) (types.Thread, bool) {
	for i, t := range s.Hand {
		if t.Name == name {
			s.Hand = append(s.Hand[:i], s.Hand[i+1:]...)
			return t, true
		}
	}
	return types.Thread{}, false
}
