package archetype

import "github.com/nathoo/tink/types"

// has builds one trait-equality requirement per name, each requiring true.
func has(traits ...string) []types.Requirement {
	reqs := make([]types.Requirement, 0, len(traits))
	for _, t := range traits {
		reqs = append(reqs, types.Requirement{Kind: types.RequireTrait, Trait: t, Value: true})
	}
	return reqs
}

// minConflicts prepends a min-conflicts requirement to reqs.
func minConflicts(n int, reqs ...types.Requirement) []types.Requirement {
	return append([]types.Requirement{{Kind: types.RequireMinConflicts, Count: n}}, reqs...)
}

func traits(names ...string) types.Nature {
	n := make(types.Nature, len(names))
	for _, name := range names {
		n[name] = true
	}
	return n
}

// builtin is the default pattern catalog, in declaration order.
var builtin = []types.ArchetypeDef{
	// Natural phenomena.
	{
		Name:     "Aurora",
		Required: has("bright", "cold"),
		Tier:     "uncommon",
		Flavor:   "Light bends through frozen air, painting impossible colors.",
		Cascade:  traits("cold", "bright"),
	},
	{
		Name:     "Stormglass",
		Required: has("volatile", "bright", "liquid"),
		Tier:     "rare",
		Flavor:   "A vessel of contained lightning, swirling and alive.",
		Cascade:  traits("volatile", "liquid"),
	},
	{
		Name:     "Permafrost",
		Required: has("cold", "persistent", "vast"),
		Tier:     "uncommon",
		Flavor:   "What freezes deep enough never thaws.",
		Cascade:  traits("cold", "persistent"),
	},
	{
		Name:     "Wildfire",
		Required: has("hot", "volatile", "organic"),
		Tier:     "uncommon",
		Flavor:   "It doesn't burn the forest. It becomes the forest.",
		Cascade:  traits("hot", "ephemeral"),
	},

	// Emotional constructs.
	{
		Name:     "Vendetta Engine",
		Required: has("emotional", "mechanical", "persistent"),
		Tier:     "rare",
		Flavor:   "A grudge so precise it runs on clockwork.",
		Cascade:  traits("persistent", "sharp"),
	},
	{
		Name:     "Euphoria Cascade",
		Required: has("emotional", "bright", "volatile"),
		Tier:     "uncommon",
		Flavor:   "Joy so intense it becomes unstable.",
		Cascade:  traits("bright", "ephemeral"),
	},
	{
		Name:     "Quiet Resolve",
		Required: has("emotional", "persistent", "calm"),
		Tier:     "common",
		Flavor:   "Not loud. Not fast. But absolutely certain.",
		Cascade:  traits("calm"),
	},
	{
		Name:     "Heartstring",
		Required: has("emotional", "organic"),
		Tier:     "common",
		Flavor:   "A connection that pulses with something warm.",
		Cascade:  traits("organic"),
	},

	// Mythological.
	{
		Name:     "Web of Wyrd",
		Required: has("persistent", "vast", "sharp"),
		Tier:     "rare",
		Flavor:   "Fate is not a line. It is a net, and every knot remembers.",
		Cascade:  traits("persistent", "vast"),
	},
	{
		Name:     "Anansi's Thread",
		Required: has("sharp", "organic", "ephemeral"),
		Tier:     "rare",
		Flavor:   "The trickster's gift: a story that catches you before you catch it.",
		Cascade:  traits("sharp", "ephemeral"),
	},
	{
		Name:     "Bifrost Shard",
		Required: has("bright", "vast", "cold"),
		Tier:     "rare",
		Flavor:   "A fragment of the bridge between worlds, still humming.",
		Cascade:  traits("bright", "vast"),
	},

	// Inventions.
	{
		Name:     "Perpetual Motion",
		Required: has("mechanical", "persistent"),
		Tier:     "uncommon",
		Flavor:   "It shouldn't work. It does. Don't ask why.",
		Cascade:  traits("mechanical"),
	},
	{
		Name:     "Resonance Crystal",
		Required: has("bright", "sharp", "mechanical"),
		Tier:     "uncommon",
		Flavor:   "Cut to a frequency that makes other things vibrate in sympathy.",
		Cascade:  traits("bright", "sharp"),
	},
	{
		Name:     "Living Clockwork",
		Required: has("mechanical", "organic", "persistent"),
		Tier:     "rare",
		Flavor:   "Gears that grow. Springs that breathe. Ticking that sounds like a heartbeat.",
		Cascade:  traits("organic", "mechanical"),
	},

	// Paradox patterns need conflicts.
	{
		Name:     "Paradox Bloom",
		Required: minConflicts(3),
		Tier:     "mythic",
		Flavor:   "A flower that exists in the space between contradictions. It is beautiful and it should not be.",
		Cascade:  traits("volatile", "organic", "emotional"),
	},
	{
		Name:     "Schrodinger's Thread",
		Required: minConflicts(2, has("mechanical")...),
		Tier:     "rare",
		Flavor:   "Simultaneously wound and unwound until observed.",
		Cascade:  traits("mechanical", "ephemeral"),
	},
	{
		Name:     "Oxymoron Engine",
		Required: minConflicts(2, has("persistent")...),
		Tier:     "rare",
		Flavor:   "Runs on impossibility. The more it contradicts, the harder it works.",
		Cascade:  traits("persistent", "volatile"),
	},

	// Abstract.
	{
		Name:     "Echo Chamber",
		Required: has("vast", "ephemeral"),
		Tier:     "common",
		Flavor:   "A space where whispers return louder than they left.",
		Cascade:  traits("vast"),
	},
	{
		Name:     "Void Lens",
		Required: has("vast", "sharp", "cold"),
		Tier:     "rare",
		Flavor:   "Focuses emptiness until it cuts.",
		Cascade:  traits("cold", "sharp"),
	},

	// Legendary. Only reachable through cascades.
	{
		Name:     "Tapestry of Ages",
		Required: has("persistent", "vast", "emotional", "bright", "organic"),
		Tier:     "legendary",
		Flavor:   "Every thread that ever was, remembered in a single weave.",
		Cascade:  traits("persistent", "vast", "calm"),
	},
	{
		Name:     "Paradox Engine",
		Required: minConflicts(3, has("mechanical", "persistent", "volatile", "emotional")...),
		Tier:     "legendary",
		Flavor:   "It runs on impossibility. Each contradiction powers the next.",
		Cascade:  traits("volatile", "mechanical", "sharp"),
	},
	{
		Name:     "The Unraveling",
		Required: has("ephemeral", "vast", "sharp", "volatile", "emotional"),
		Tier:     "legendary",
		Flavor:   "Not destruction. Transformation so fast it looks like ending.",
		Cascade:  traits("ephemeral", "volatile"),
	},
}

// Catalog returns a copy of the built-in pattern catalog in declaration order.
func Catalog() []types.ArchetypeDef {
	out := make([]types.ArchetypeDef, len(builtin))
	copy(out, builtin)
	return out
}
