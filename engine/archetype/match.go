// Package archetype scores unifications against a catalog of patterns.
package archetype

import (
	"sort"

	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

const (
	candidateRatio = 0.5
	maxNearMisses  = 3
)

// tierRank orders tiers for tie-breaking. Rarer sorts first.
var tierRank = map[string]int{
	"legendary": -1,
	"mythic":    0,
	"rare":      1,
	"uncommon":  2,
	"common":    3,
}

// TierRank returns the tie-break rank of a tier. Unknown tiers rank last.
func TierRank(tier string) int {
	if r, ok := tierRank[tier]; ok {
		return r
	}
	return 4
}

type scored struct {
	def *types.ArchetypeDef
	types.Score
}

// Match scores u against every entry of catalog and returns the best fit,
// the candidates that reached half their requirements, and up to three
// near-misses.
func Match(u types.Unification, catalog []types.ArchetypeDef) types.MatchResult {
	flat := unify.Flatten(u.Unified)

	// Filter: keep entries that satisfy at least half their requirements.
	var candidates []scored
	for i := range catalog {
		s := ScoreMatch(flat, len(u.Conflicts), catalog[i])
		if s.Ratio >= candidateRatio {
			candidates = append(candidates, scored{def: &catalog[i], Score: s})
		}
	}

	// Rank: weighted score (desc) → tier rarity → catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score.Score != candidates[j].Score.Score {
			return candidates[i].Score.Score > candidates[j].Score.Score
		}
		return TierRank(candidates[i].def.Tier) < TierRank(candidates[j].def.Tier)
	})

	result := types.MatchResult{
		Candidates: make([]types.Candidate, 0, len(candidates)),
		NearMisses: []types.NearMiss{},
	}
	for _, c := range candidates {
		result.Candidates = append(result.Candidates, types.Candidate{
			Name:  c.def.Name,
			Tier:  c.def.Tier,
			Score: c.Score,
		})
	}
	if len(candidates) == 0 {
		return result
	}

	best := candidates[0]
	cascade := best.def.Cascade
	if cascade == nil {
		cascade = types.Nature{}
	}
	result.Match = &types.ArchetypeMatch{
		Name:    best.def.Name,
		Tier:    best.def.Tier,
		Flavor:  best.def.Flavor,
		Cascade: cascade,
	}
	score := best.Score
	result.Score = &score

	for _, c := range candidates[1:] {
		if len(result.NearMisses) == maxNearMisses {
			break
		}
		if c.Ratio >= 1 {
			continue
		}
		result.NearMisses = append(result.NearMisses, types.NearMiss{
			Name:          c.def.Name,
			Tier:          c.def.Tier,
			Matched:       c.Matched,
			Total:         c.Total,
			Ratio:         c.Ratio,
			MissingTraits: MissingTraits(flat, *c.def),
		})
	}
	return result
}

// MatchDefault matches u against the built-in catalog.
func MatchDefault(u types.Unification) types.MatchResult {
	return Match(u, builtin)
}

// ScoreMatch tallies def's requirements against flattened traits and a
// conflict count. Score rewards larger fully-satisfied requirement sets:
// 3/3 scores 3.3 and beats both 2/2 (2.2) and 3/5 (3.18).
func ScoreMatch(flat types.Nature, conflicts int, def types.ArchetypeDef) types.Score {
	var s types.Score
	for _, req := range def.Required {
		s.Total++
		if satisfied(req, flat, conflicts) {
			s.Matched++
		}
	}
	if s.Total > 0 {
		s.Ratio = float64(s.Matched) / float64(s.Total)
	}
	s.Score = float64(s.Matched) * (1 + s.Ratio*0.1)
	return s
}

// MissingTraits lists the trait requirements of def that flat does not
// satisfy, in requirement order. Min-conflict requirements are never listed.
func MissingTraits(flat types.Nature, def types.ArchetypeDef) []string {
	missing := []string{}
	for _, req := range def.Required {
		if req.Kind != types.RequireTrait {
			continue
		}
		if !satisfied(req, flat, 0) {
			missing = append(missing, req.Trait)
		}
	}
	return missing
}

func satisfied(req types.Requirement, flat types.Nature, conflicts int) bool {
	switch req.Kind {
	case types.RequireMinConflicts:
		return conflicts >= req.Count
	case types.RequireTrait:
		v, ok := flat[req.Trait]
		return ok && unify.Equal(v, req.Value)
	default:
		return false
	}
}
