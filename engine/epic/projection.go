package epic

import (
	"strings"

	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

// Projection ids.
const (
	ProjectionTapestry   = "tapestry"
	ProjectionHeroic     = "heroic"
	ProjectionTragedy    = "tragedy"
	ProjectionReflection = "reflection"
)

// Hero stages.
const (
	StageCall   = "call"
	StageTrials = "trials"
	StageOrdeal = "ordeal"
	StageReturn = "return"
)

// Dramatic arcs.
const (
	ArcRising     = "rising"
	ArcFalling    = "falling"
	ArcDenouement = "denouement"
)

// Symmetry marks.
const (
	SymmetryFirst = "first"
	SymmetryEcho  = "echo"
)

// Transform is a pure history-to-history function.
type Transform func(history []types.Moment) []types.Moment

// Projection is a history view with its presentation metadata.
type Projection struct {
	types.ProjectionDef
	Transform Transform
}

// Projections returns a fresh copy of the projection catalog. Only the
// tapestry starts unlocked.
func Projections() []Projection {
	return []Projection{
		{
			ProjectionDef: types.ProjectionDef{
				Name:        "The Tapestry",
				ID:          ProjectionTapestry,
				Description: "The weave as it is -- threads, crossings, and what emerges.",
				Unlocked:    true,
				UnlocksAt:   0,
				Palette:     types.Palette{BaseHue: "#888888", DefaultIntensity: 0.5},
			},
			Transform: Identity,
		},
		{
			ProjectionDef: types.ProjectionDef{
				Name:        "Heroic Journey",
				ID:          ProjectionHeroic,
				Description: "See your weaving as a hero's journey -- call, trials, ordeal, return.",
				UnlocksAt:   5,
				Palette:     types.Palette{BaseHue: "#cc8800", DefaultIntensity: 0.6},
			},
			Transform: Heroic,
		},
		{
			ProjectionDef: types.ProjectionDef{
				Name:        "Tragedy",
				ID:          ProjectionTragedy,
				Description: "The arc bends toward sorrow -- or transcendence.",
				UnlocksAt:   10,
				Palette:     types.Palette{BaseHue: "#660033", DefaultIntensity: 0.4},
			},
			Transform: Tragedy,
		},
		{
			ProjectionDef: types.ProjectionDef{
				Name:        "Reflection",
				ID:          ProjectionReflection,
				Description: "Patterns repeat. The loom remembers.",
				UnlocksAt:   15,
				Palette:     types.Palette{BaseHue: "#336699", DefaultIntensity: 0.5},
			},
			Transform: Reflection,
		},
	}
}

// Identity returns history itself.
func Identity(history []types.Moment) []types.Moment {
	return history
}

// Heroic splits the history into quarters: call, trials, ordeal, return.
// A moment exactly on a quarter mark belongs to the later stage.
func Heroic(history []types.Moment) []types.Moment {
	out := make([]types.Moment, len(history))
	n := float64(len(history))
	for i, m := range history {
		x := float64(i)
		switch {
		case x < n*0.25:
			m.HeroStage = StageCall
		case x < n*0.5:
			m.HeroStage = StageTrials
		case x < n*0.75:
			m.HeroStage = StageOrdeal
		default:
			m.HeroStage = StageReturn
		}
		out[i] = m
	}
	return out
}

var severity = map[types.Stability]int{
	types.Harmony:   0,
	types.Resonance: 1,
	types.Tension:   2,
	types.Paradox:   3,
}

// Tragedy marks moments rising while severity keeps up with its running
// peak, and falling afterwards. Falling moments past 70% of the history
// are the denouement.
func Tragedy(history []types.Moment) []types.Moment {
	out := make([]types.Moment, len(history))
	n := float64(len(history))
	peak := 0
	for i, m := range history {
		sev := severity[m.Stability]
		switch {
		case sev >= peak:
			peak = sev
			m.DramaticArc = ArcRising
		case float64(i) > n*0.7:
			m.DramaticArc = ArcDenouement
		default:
			m.DramaticArc = ArcFalling
		}
		out[i] = m
	}
	return out
}

// Reflection counts repeats of each trait-name set. The first occurrence is
// "first", later ones are "echo".
func Reflection(history []types.Moment) []types.Moment {
	out := make([]types.Moment, len(history))
	seen := make(map[string]int)
	for i, m := range history {
		key := strings.Join(unify.Keys(m.Traits), ",")
		seen[key]++
		m.EchoCount = seen[key]
		if m.EchoCount > 1 {
			m.Symmetry = SymmetryEcho
		} else {
			m.Symmetry = SymmetryFirst
		}
		out[i] = m
	}
	return out
}
