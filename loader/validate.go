package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/tink/engine/archetype"
	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/engine/thread"
	"github.com/nathoo/tink/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validStabilities = map[types.Stability]bool{
	types.Harmony:   true,
	types.Resonance: true,
	types.Tension:   true,
	types.Paradox:   true,
}

var validRarities = map[string]bool{
	thread.Common:   true,
	thread.Uncommon: true,
	thread.Rare:     true,
}

var validStages = map[string]bool{
	epic.StageCall: true, epic.StageTrials: true, epic.StageOrdeal: true, epic.StageReturn: true,
}

var validArcs = map[string]bool{
	epic.ArcRising: true, epic.ArcFalling: true, epic.ArcDenouement: true,
}

var validSymmetries = map[string]bool{
	epic.SymmetryFirst: true, epic.SymmetryEcho: true,
}

// projectionFields names the projection each beat field depends on.
var projectionFields = []struct {
	projection string
	field      string
	set        func(types.Requires) bool
}{
	{epic.ProjectionHeroic, "hero_stage", func(r types.Requires) bool { return r.HeroStage != "" }},
	{epic.ProjectionTragedy, "arc", func(r types.Requires) bool { return r.DramaticArc != "" }},
	{epic.ProjectionReflection, "symmetry", func(r types.Requires) bool { return r.Symmetry != "" }},
}

// validate checks a compiled pack for consistency. Warnings are returned
// in both cases; the error is a *ValidationError when anything is wrong.
func validate(defs *state.Defs) ([]string, error) {
	ve := &ValidationError{}

	seen := map[string]bool{}
	for _, a := range defs.Archetypes {
		validateName(ve, "archetype", a.Name, seen)
		if !knownTier(a.Tier) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"archetype %q has unknown tier %q", a.Name, a.Tier))
		}
		if len(a.Required) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"archetype %q has no requirements and can never match", a.Name))
		}
		for _, r := range a.Required {
			if r.Kind == types.RequireTrait && r.Trait == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"archetype %q has a requirement without a trait", a.Name))
			}
		}
	}

	seen = map[string]bool{}
	for _, t := range defs.Threads {
		validateName(ve, "thread", t.Name, seen)
		if len(t.Nature) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"thread %q needs at least one trait", t.Name))
		}
		if !validRarities[t.Rarity] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"thread %q has unknown rarity %q and draws with weight %d", t.Name, t.Rarity, thread.Weight(t.Rarity)))
		}
	}

	projections := map[string]bool{}
	for _, p := range epic.Projections() {
		projections[p.ID] = true
	}
	seen = map[string]bool{}
	for _, e := range defs.Epics {
		validateName(ve, "epic", e.Name, seen)
		if !projections[e.Projection] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"epic %q uses unknown projection %q", e.Name, e.Projection))
		}
		if len(e.Beats) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("epic %q has no beats", e.Name))
		}
		for _, b := range e.Beats {
			validateBeat(ve, e, b)
		}
	}

	if len(ve.Errors) > 0 {
		return ve.Warnings, ve
	}
	return ve.Warnings, nil
}

func validateName(ve *ValidationError, kind, name string, seen map[string]bool) {
	if strings.TrimSpace(name) == "" {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s with an empty name", kind))
		return
	}
	key := strings.ToLower(name)
	if seen[key] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate %s %q", kind, name))
	}
	seen[key] = true
}

func validateBeat(ve *ValidationError, e types.EpicDef, b types.Beat) {
	r := b.Requires
	where := fmt.Sprintf("epic %q beat %q", e.Name, b.Label)

	if r.Stability != "" && !validStabilities[r.Stability] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown stability %q", where, r.Stability))
	}
	if r.ArchetypeTier != "" && !knownTier(r.ArchetypeTier) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown tier %q", where, r.ArchetypeTier))
	}
	if r.HeroStage != "" && !validStages[r.HeroStage] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown hero_stage %q", where, r.HeroStage))
	}
	if r.DramaticArc != "" && !validArcs[r.DramaticArc] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown arc %q", where, r.DramaticArc))
	}
	if r.Symmetry != "" && !validSymmetries[r.Symmetry] {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown symmetry %q", where, r.Symmetry))
	}
	if r.CascadeDepth < 0 || r.MinConflicts < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s: negative count", where))
	}

	// Projection fields never appear under another projection.
	for _, pf := range projectionFields {
		if pf.set(r) && e.Projection != pf.projection {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s: %s is only set under the %s projection", where, pf.field, pf.projection))
		}
	}

	if m := b.Mood; m != nil && m.Intensity != nil && (*m.Intensity < 0 || *m.Intensity > 1) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"%s: mood intensity %g is outside [0, 1]", where, *m.Intensity))
	}
	if isEmptyRequires(r) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s: no conditions, matches any moment", where))
	}
}

func knownTier(tier string) bool {
	return archetype.TierRank(tier) < archetype.TierRank("")
}

func isEmptyRequires(r types.Requires) bool {
	return r.Stability == "" && len(r.Traits) == 0 && !r.HasArchetype &&
		r.ArchetypeTier == "" && r.CascadeDepth == 0 && !r.HasNearMiss &&
		r.MinConflicts == 0 && r.HeroStage == "" && r.DramaticArc == "" && r.Symmetry == ""
}
