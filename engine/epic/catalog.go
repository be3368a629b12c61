package epic

import "github.com/nathoo/tink/types"

func intensity(v float64) *float64 { return &v }

// Moods used by the built-in epics, one per stability.
var (
	moodWarm        = &types.Mood{Tone: "warm", Hue: "#44aa88", Intensity: intensity(0.3)}
	moodCrystalline = &types.Mood{Tone: "crystalline", Hue: "#4488ff", Intensity: intensity(0.5)}
	moodDissonant   = &types.Mood{Tone: "dissonant", Hue: "#ff6600", Intensity: intensity(0.7)}
	moodDark        = &types.Mood{Tone: "dark", Hue: "#aa00ff", Intensity: intensity(0.9)}
)

var testEpics = []types.EpicDef{
	{
		Name:       "Test Spark",
		Tier:       "common",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "Beat 1",
				Requires:  types.Requires{Stability: types.Tension},
				OnMatch:   "Tension found.",
				OnPartial: "Not tense enough.",
			},
			{
				Label:     "Beat 2",
				Requires:  types.Requires{HasArchetype: true},
				OnMatch:   "Archetype emerged.",
				OnPartial: "Nothing emerged.",
			},
		},
		OnComplete: "Test complete.",
		OnPartial:  "Test incomplete.",
	},
	{
		Name:       "Test Echo",
		Tier:       "uncommon",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "First Resonance",
				Requires:  types.Requires{Stability: types.Resonance},
				OnMatch:   "The threads sing together.",
				OnPartial: "Silence.",
			},
			{
				Label:     "Trait Alignment",
				Requires:  types.Requires{Traits: types.Nature{"bright": true, "hot": true}},
				OnMatch:   "Light and heat converge.",
				OnPartial: "The traits scatter.",
			},
			{
				Label:     "Cascade Arrival",
				Requires:  types.Requires{CascadeDepth: 1},
				OnMatch:   "The cascade ripples outward.",
				OnPartial: "Nothing cascades.",
			},
		},
		OnComplete: "The echo reverberates through the tapestry.",
		OnPartial:  "The echo fades before completing.",
	},
	{
		Name:       "Test Paradox Walk",
		Tier:       "rare",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "The Contradiction",
				Requires:  types.Requires{Stability: types.Paradox, MinConflicts: 2},
				OnMatch:   "Impossibility takes root.",
				OnPartial: "Not enough contradiction.",
			},
			{
				Label:     "The Emergence",
				Requires:  types.Requires{HasArchetype: true, ArchetypeTier: "mythic"},
				OnMatch:   "From paradox, myth emerges.",
				OnPartial: "The paradox collapses.",
			},
		},
		OnComplete: "The walk through paradox is complete.",
		OnPartial:  "The path remains unfinished.",
	},
}

var builtin = []types.EpicDef{
	// Tapestry.
	{
		Name:       "The Forge of Contradiction",
		Tier:       "mythic",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "The Spark That Bites",
				Requires:  types.Requires{Stability: types.Tension, Traits: types.Nature{"volatile": true}},
				Mood:      moodDissonant,
				OnMatch:   "Something burns at the edges of coherence. The volatile thread pulls against its own nature, and the loom shudders with potential.",
				OnPartial: "The threads strain, but the contradiction lacks teeth.",
			},
			{
				Label:     "The Deepening",
				Requires:  types.Requires{CascadeDepth: 2},
				OnMatch:   "The fracture propagates. What began as a single contradiction now echoes through layer after layer, each cascade carrying the wound deeper into the weave.",
				OnPartial: "The ripples fade before reaching sufficient depth.",
			},
			{
				Label:     "The Impossible Bloom",
				Requires:  types.Requires{Stability: types.Paradox, HasArchetype: true},
				Mood:      moodDark,
				OnMatch:   "From the heart of impossibility, something crystallizes. A form that should not exist takes shape in the space between contradictions, and the loom accepts what logic cannot.",
				OnPartial: "The paradox swirls but refuses to coalesce into form.",
			},
		},
		OnComplete: "The forge burns with paradox-light. What was broken is reforged into something the loom has never seen -- a pattern born of its own impossibility.",
		OnPartial:  "The contradictions gather but the forge remains cold, waiting for the final catalyst.",
	},
	{
		Name:       "The Quiet Descent",
		Tier:       "rare",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "The Stillness Before",
				Requires:  types.Requires{Stability: types.Harmony},
				Mood:      moodWarm,
				OnMatch:   "Everything is gentle. The threads lie flat and easy, whispering of simple things. It feels like the beginning of something ordinary.",
				OnPartial: "The loom stirs, not yet settled.",
			},
			{
				Label:     "The Second Calm",
				Requires:  types.Requires{Stability: types.Harmony},
				OnMatch:   "Again, harmony. But this time there is a tremor beneath the surface -- the kind of peace that comes from not looking too closely at the cracks.",
				OnPartial: "The weave refuses its second rest.",
			},
			{
				Label:     "The Root",
				Requires:  types.Requires{Traits: types.Nature{"organic": true}},
				OnMatch:   "Something living threads itself through the calm. It grows without permission, patient and slow, drawing nourishment from the stillness.",
				OnPartial: "The weave remains inert, refusing the organic.",
			},
			{
				Label:     "The Unraveling",
				Requires:  types.Requires{Stability: types.Paradox},
				Mood:      moodDark,
				OnMatch:   "The quiet shatters. What grew in the stillness was not peace but pressure, and now the roots crack the foundation open. The descent was always here, waiting.",
				OnPartial: "The paradox lingers at the threshold but does not cross.",
			},
		},
		OnComplete: "The loom remembers silence differently now. What seemed like tranquility was a slow, beautiful fall -- and at the bottom, something ancient stirs.",
		OnPartial:  "The descent halts mid-step, suspended between peace and collapse.",
	},
	{
		Name:       "Combustion Engine",
		Tier:       "uncommon",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "First Ignition",
				Requires:  types.Requires{Traits: types.Nature{"volatile": true}},
				Mood:      moodDissonant,
				OnMatch:   "A volatile thread enters the weave and the air changes. Something is going to burn.",
				OnPartial: "The weave remains inert, refusing the spark.",
			},
			{
				Label:     "Second Ignition",
				Requires:  types.Requires{Traits: types.Nature{"volatile": true}},
				OnMatch:   "Again volatile. The repetition is not redundancy -- it is fuel. Each volatile thread feeds the next, building toward something inevitable.",
				OnPartial: "The second spark fails to catch.",
			},
			{
				Label:     "The Cascade",
				Requires:  types.Requires{CascadeDepth: 1},
				Mood:      moodDissonant,
				OnMatch:   "Ignition. The accumulated volatility finally catches and the cascade tears through the weave, transforming everything it touches.",
				OnPartial: "The fuel is present but the spark never reaches the tinder.",
			},
		},
		OnComplete: "The engine turns over. Volatile upon volatile upon cascade -- a machine made of instability, somehow running true.",
		OnPartial:  "The engine sputters, lacking sufficient fuel for combustion.",
	},
	{
		Name:       "Roots and Canopy",
		Tier:       "rare",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "The Seed",
				Requires:  types.Requires{Traits: types.Nature{"organic": true}},
				Mood:      moodWarm,
				OnMatch:   "Something organic takes root in the weave. It is small and patient, a seed that knows only one direction: upward.",
				OnPartial: "The soil is barren. Nothing organic takes hold.",
			},
			{
				Label:     "The Growth",
				Requires:  types.Requires{CascadeDepth: 1, Traits: types.Nature{"organic": true}},
				OnMatch:   "The organic thread cascades, branching outward like roots seeking water. Life begets life, each new growth feeding the next.",
				OnPartial: "Growth stalls -- the roots cannot find purchase deep enough.",
			},
			{
				Label:     "The Crown",
				Requires:  types.Requires{HasArchetype: true},
				Mood:      moodCrystalline,
				OnMatch:   "An archetype emerges from the canopy -- the tree has grown tall enough to bear fruit. What began as a single seed now casts its shadow across the entire weave.",
				OnPartial: "The tree grows but bears no fruit. The canopy remains empty.",
			},
		},
		OnComplete: "From root to crown, the tree stands complete. Organic persistence, cascading growth, and emergent form -- the oldest story in the weave.",
		OnPartial:  "The tree grows crooked, reaching toward a canopy it cannot yet touch.",
	},
	{
		Name:       "Storm and Stillness",
		Tier:       "mythic",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "The Calm",
				Requires:  types.Requires{Stability: types.Harmony},
				Mood:      moodWarm,
				OnMatch:   "Perfect harmony. The threads lie still, each one exactly where it belongs. The loom holds its breath.",
				OnPartial: "The stillness is imperfect, tainted by distant vibrations.",
			},
			{
				Label:     "The Storm",
				Requires:  types.Requires{Stability: types.Paradox},
				Mood:      moodDark,
				OnMatch:   "The paradox arrives like weather. Everything that was still is now in motion, every calm thread screaming with contradiction. The loom bends under the weight of impossibility.",
				OnPartial: "Thunder rumbles but the storm does not break.",
			},
			{
				Label:     "The Eye",
				Requires:  types.Requires{HasArchetype: true},
				Mood:      moodCrystalline,
				OnMatch:   "In the eye of the paradox-storm, an archetype crystallizes. Not despite the chaos but because of it -- a form that can only exist in the space between calm and catastrophe.",
				OnPartial: "The storm rages but nothing takes form within it.",
			},
		},
		OnComplete: "The storm passes. The stillness returns. But now the loom carries a shape that was forged in the space between them -- a myth written in weather.",
		OnPartial:  "The storm and stillness circle each other, never quite meeting.",
	},
	{
		Name:       "The Weaver's Doubt",
		Tier:       "uncommon",
		Projection: ProjectionTapestry,
		Beats: []types.Beat{
			{
				Label:     "The First Hesitation",
				Requires:  types.Requires{HasNearMiss: true},
				Mood:      moodWarm,
				OnMatch:   "A near-miss. Something almost formed but didn't -- and in that gap, a question: what if I had woven differently?",
				OnPartial: "The weave proceeds without doubt. Every thread finds its place.",
			},
			{
				Label:     "The Second Hesitation",
				Requires:  types.Requires{HasNearMiss: true},
				OnMatch:   "Another near-miss. The pattern of doubt deepens. Each almost-archetype is a ghost of a choice not taken, a thread not pulled.",
				OnPartial: "Confidence holds. The second hesitation does not come.",
			},
			{
				Label:     "The Commitment",
				Requires:  types.Requires{HasArchetype: true},
				Mood:      moodCrystalline,
				OnMatch:   "After two hesitations, the third crossing finally resolves. The archetype that emerges carries the weight of every doubt -- and is stronger for it.",
				OnPartial: "The doubt continues. No archetype emerges to answer it.",
			},
		},
		OnComplete: "The weaver's hands shake, but the pattern holds. Doubt was not weakness -- it was the loom testing the thread before committing to the shape.",
		OnPartial:  "The doubt lingers, neither resolved nor released.",
	},

	// Heroic journey.
	{
		Name:       "The Reluctant Hero",
		Tier:       "uncommon",
		Projection: ProjectionHeroic,
		Beats: []types.Beat{
			{
				Label:     "The Ordinary World",
				Requires:  types.Requires{HeroStage: StageCall, Stability: types.Harmony},
				Mood:      moodWarm,
				OnMatch:   "The call comes in a moment of peace. The weave is harmonious, the threads settled -- and that is precisely why the disruption feels so unwelcome.",
				OnPartial: "The call has not yet arrived, or the world is already too turbulent to hear it.",
			},
			{
				Label:     "The Trial by Fire",
				Requires:  types.Requires{HeroStage: StageTrials, Stability: types.Tension},
				Mood:      moodDissonant,
				OnMatch:   "Tension mounts with each trial. The threads strain against each other and the weaver must choose which to sacrifice and which to save.",
				OnPartial: "The trials have not yet begun, or they lack sufficient tension.",
			},
			{
				Label:     "The Breaking Point",
				Requires:  types.Requires{HeroStage: StageOrdeal, Stability: types.Paradox},
				Mood:      moodDark,
				OnMatch:   "The ordeal arrives as paradox -- an impossible choice, a thread that must be both cut and kept. The hero breaks, and in breaking, discovers what was always underneath.",
				OnPartial: "The ordeal approaches but the paradox does not fully manifest.",
			},
		},
		OnComplete: "The reluctant hero completes the journey not through courage but through necessity. Each stage demanded more than the last, and each time the weave answered with exactly enough.",
		OnPartial:  "The hero hesitates at the threshold, the journey incomplete.",
	},
	{
		Name:       "The Mirror's Edge",
		Tier:       "rare",
		Projection: ProjectionHeroic,
		Beats: []types.Beat{
			{
				Label:     "The Reflected Call",
				Requires:  types.Requires{HeroStage: StageCall, HasArchetype: true},
				Mood:      moodCrystalline,
				OnMatch:   "The call arrives not as a summons but as a reflection. An archetype forms in the weave, and the hero sees themselves in its facets -- distorted, clarified, made strange.",
				OnPartial: "The mirror is dark. No archetype forms to show the hero their reflection.",
			},
			{
				Label:     "The Crystal Trials",
				Requires:  types.Requires{HeroStage: StageTrials, Stability: types.Resonance},
				Mood:      moodCrystalline,
				OnMatch:   "The trials resonate. Each challenge echoes the one before it, each solution reflecting a deeper truth. The hero learns not by conquering but by recognizing.",
				OnPartial: "The trials lack resonance -- each feels disconnected from the last.",
			},
			{
				Label:     "The Final Reflection",
				Requires:  types.Requires{HeroStage: StageReturn, HasArchetype: true},
				Mood:      moodCrystalline,
				OnMatch:   "The hero returns bearing a second archetype -- a mirror image of the first. Together they form a complete picture: who the hero was, and who the hero has become.",
				OnPartial: "The return brings no new archetype. The mirror remains one-sided.",
			},
		},
		OnComplete: "Two archetypes, one journey. The mirror's edge is the line between who you were and who you are, and the hero walks it with perfect, crystalline balance.",
		OnPartial:  "The mirror cracks before the reflection is complete.",
	},
	{
		Name:       "The Cartographer's Lie",
		Tier:       "mythic",
		Projection: ProjectionHeroic,
		Beats: []types.Beat{
			{
				Label:     "The Map",
				Requires:  types.Requires{HeroStage: StageCall, HasArchetype: true},
				Mood:      moodWarm,
				OnMatch:   "The journey begins with a map -- an archetype that promises the shape of things to come. But every map is a simplification, and every simplification is a kind of lie.",
				OnPartial: "No archetype emerges to chart the course ahead.",
			},
			{
				Label:     "The Territory",
				Requires:  types.Requires{HeroStage: StageTrials, HasArchetype: true},
				OnMatch:   "A second archetype forms during the trials, one that contradicts the first. The territory is not the map. The hero must choose: trust the chart, or trust their eyes.",
				OnPartial: "The trials proceed without a second archetype to challenge the map.",
			},
			{
				Label:     "The Revision",
				Requires:  types.Requires{HeroStage: StageOrdeal, HasArchetype: true},
				Mood:      moodDark,
				OnMatch:   "The ordeal produces a third archetype. Three contradictory truths, three maps of the same terrain. The hero realizes the lie was not in the map but in believing any single map could be enough.",
				OnPartial: "The ordeal rages but produces no new form to challenge the existing maps.",
			},
			{
				Label:     "The New Cartography",
				Requires:  types.Requires{HeroStage: StageReturn, HasArchetype: true},
				Mood:      moodCrystalline,
				OnMatch:   "The hero returns not with a better map but with the wisdom that maps are tools, not truths. A fourth archetype crystallizes -- not a destination but a way of seeing.",
				OnPartial: "The return bears no final archetype. The cartography remains unfinished.",
			},
		},
		OnComplete: "Four archetypes, four maps, one journey. The cartographer's lie was the belief that the territory could be captured. The truth is that every crossing draws the map anew.",
		OnPartial:  "The cartographer's work is incomplete. Some territories remain uncharted.",
	},

	// Tragedy.
	{
		Name:       "Paradox Garden",
		Tier:       "uncommon",
		Projection: ProjectionTragedy,
		Beats: []types.Beat{
			{
				Label:     "The First Seed of Impossibility",
				Requires:  types.Requires{DramaticArc: ArcRising, Stability: types.Paradox},
				Mood:      moodDark,
				OnMatch:   "A paradox blooms while the arc still climbs. Something impossible takes root in fertile ground -- growing upward even as logic demands it fall.",
				OnPartial: "The soil accepts no contradiction. The paradox cannot take root.",
			},
			{
				Label:     "The Second Bloom",
				Requires:  types.Requires{DramaticArc: ArcRising, Stability: types.Paradox},
				OnMatch:   "A second paradox, still rising. The garden grows denser, each impossibility feeding the next. The beauty is undeniable, even as the foundations crack.",
				OnPartial: "The second bloom withers before opening.",
			},
			{
				Label:     "The Wilting",
				Requires:  types.Requires{DramaticArc: ArcFalling},
				Mood:      moodDissonant,
				OnMatch:   "The arc turns downward and the garden follows. Every impossible bloom that climbed so fiercely now bends under its own weight. The tragedy is not the falling -- it is that they grew at all.",
				OnPartial: "The fall has not yet come. The garden persists against its nature.",
			},
		},
		OnComplete: "The paradox garden lies still. Every flower that defied logic has returned to the earth, and the soil is richer for having held impossibilities.",
		OnPartial:  "The garden grows unevenly, some blooms still reaching while others have already fallen.",
	},
	{
		Name:       "The Severed Chord",
		Tier:       "rare",
		Projection: ProjectionTragedy,
		Beats: []types.Beat{
			{
				Label:     "The First Note",
				Requires:  types.Requires{Stability: types.Resonance},
				Mood:      moodCrystalline,
				OnMatch:   "Resonance. The threads vibrate in sympathy, producing a note so pure it seems to have always existed. The chord begins.",
				OnPartial: "The threads do not sing. Silence holds.",
			},
			{
				Label:     "The Sustain",
				Requires:  types.Requires{Stability: types.Resonance},
				OnMatch:   "The resonance holds. Note upon note, the chord builds -- layered, complex, trembling with harmonic beauty. It cannot last. Nothing this perfect ever does.",
				OnPartial: "The sustain falters. The resonance cannot maintain itself.",
			},
			{
				Label:     "The Severance",
				Requires:  types.Requires{Stability: types.Resonance, DramaticArc: ArcFalling},
				Mood:      moodDissonant,
				OnMatch:   "The chord is cut mid-note. The resonance continues even as the arc falls -- a beautiful sound in a collapsing world. The severance is not the end of the music but its transformation into something unbearably bittersweet.",
				OnPartial: "The chord fades naturally. There is no severance, only silence.",
			},
		},
		OnComplete: "The severed chord reverberates in the empty space. Three resonances, each building on the last, cut short by the arc's descent. What remains is not silence but the memory of sound.",
		OnPartial:  "The chord plays on, not yet severed, not yet complete.",
	},
	{
		Name:       "Inheritance",
		Tier:       "mythic",
		Projection: ProjectionTragedy,
		Beats: []types.Beat{
			{
				Label:     "The Bequest",
				Requires:  types.Requires{HasArchetype: true},
				Mood:      moodWarm,
				OnMatch:   "An archetype crystallizes -- the first inheritance. It carries with it the weight of everything that came before, a legacy encoded in pattern and possibility.",
				OnPartial: "No archetype forms. There is nothing yet to inherit.",
			},
			{
				Label:     "The Burden",
				Requires:  types.Requires{HasArchetype: true, DramaticArc: ArcRising},
				OnMatch:   "A second archetype emerges while the arc still climbs. Two inheritances now, each demanding attention, each pulling the weave in a different direction. The burden doubles.",
				OnPartial: "The arc rises but bears no second inheritance.",
			},
			{
				Label:     "The Reckoning",
				Requires:  types.Requires{DramaticArc: ArcDenouement, HasArchetype: true},
				Mood:      moodDark,
				OnMatch:   "In the denouement, a final archetype emerges -- shaped by everything that came before, carrying the weight of both inheritances. The reckoning is not judgment but acknowledgment: this is what was passed down, and this is what it became.",
				OnPartial: "The denouement arrives but the final inheritance does not crystallize.",
			},
		},
		OnComplete: "Three archetypes, three inheritances. What was given, what was carried, and what was made of both. The tragedy is not loss but the impossible weight of what persists.",
		OnPartial:  "The inheritance passes incompletely. Some legacies remain unclaimed.",
	},
}

// Catalog returns a copy of the built-in epics.
func Catalog() []types.EpicDef {
	out := make([]types.EpicDef, len(builtin))
	copy(out, builtin)
	return out
}

// TestEpics returns the small starter set used to check the evaluator.
func TestEpics() []types.EpicDef {
	out := make([]types.EpicDef, len(testEpics))
	copy(out, testEpics)
	return out
}
