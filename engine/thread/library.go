// Package thread holds the built-in thread library and the seeded draws
// that deal threads into a hand.
package thread

import "github.com/nathoo/tink/types"

// Rarities.
const (
	Common   = "common"
	Uncommon = "uncommon"
	Rare     = "rare"
)

func nature(traits ...string) types.Nature {
	n := make(types.Nature, len(traits))
	for _, t := range traits {
		n[t] = true
	}
	return n
}

var library = []types.Thread{
	// Physical.
	{Name: "Ember", Nature: nature("hot", "bright", "ephemeral"), Rarity: Common, Flavor: "A spark remembering the fire it came from."},
	{Name: "Glacier", Nature: nature("cold", "vast", "persistent"), Rarity: Common, Flavor: "Patience measured in millennia."},
	{Name: "Clockwork", Nature: nature("mechanical", "persistent", "sharp"), Rarity: Common, Flavor: "Every tooth knows its neighbor."},
	{Name: "Tidepool", Nature: nature("liquid", "organic", "calm"), Rarity: Common, Flavor: "A small world, complete."},
	{Name: "Obsidian", Nature: nature("sharp", "cold", "persistent"), Rarity: Common, Flavor: "Glass born from violence, cooled into patience."},
	{Name: "Pollen", Nature: nature("organic", "ephemeral", "bright"), Rarity: Common, Flavor: "Carries futures on the wind."},
	{Name: "Lodestone", Nature: nature("mechanical", "persistent"), Rarity: Common, Flavor: "It points. It always points."},
	{Name: "Dewdrop", Nature: nature("liquid", "bright", "ephemeral"), Rarity: Common, Flavor: "A lens that lasts until the sun finds it."},
	{Name: "Granite", Nature: nature("vast", "persistent", "calm"), Rarity: Common, Flavor: "The mountain does not argue."},
	{Name: "Spark", Nature: nature("hot", "volatile", "ephemeral"), Rarity: Common, Flavor: "A beginning that doesn't know it yet."},

	// Emotional.
	{Name: "Grudge", Nature: nature("emotional", "persistent", "hot"), Rarity: Uncommon, Flavor: "It remembers everything. Forgives nothing."},
	{Name: "Joy", Nature: nature("emotional", "bright", "volatile"), Rarity: Uncommon, Flavor: "Difficult to hold. Impossible to fake."},
	{Name: "Doubt", Nature: nature("emotional", "cold", "sharp"), Rarity: Uncommon, Flavor: "The blade you sharpen against yourself."},
	{Name: "Nostalgia", Nature: nature("emotional", "ephemeral", "calm"), Rarity: Uncommon, Flavor: "The past, edited for your comfort."},
	{Name: "Fury", Nature: nature("emotional", "hot", "volatile"), Rarity: Uncommon, Flavor: "Burns clean. Burns everything."},
	{Name: "Awe", Nature: nature("emotional", "vast", "bright"), Rarity: Uncommon, Flavor: "The feeling of smallness that makes you larger."},
	{Name: "Dread", Nature: nature("emotional", "cold", "persistent", "vast"), Rarity: Uncommon, Flavor: "The weight of a future you can already see."},
	{Name: "Whimsy", Nature: nature("emotional", "volatile", "bright", "organic"), Rarity: Uncommon, Flavor: "Rules? What rules?"},
	{Name: "Patience", Nature: nature("emotional", "persistent", "calm"), Rarity: Uncommon, Flavor: "Not waiting. Choosing when."},
	{Name: "Spite", Nature: nature("emotional", "sharp", "hot", "persistent"), Rarity: Uncommon, Flavor: "Revenge's quieter, more efficient sibling."},

	// Abstract.
	{Name: "Paradox", Nature: nature("volatile", "persistent", "hot", "cold"), Rarity: Rare, Flavor: "It insists on being two things at once."},
	{Name: "Echo", Nature: nature("ephemeral", "vast", "mechanical"), Rarity: Rare, Flavor: "A shape left by something that already passed."},
	{Name: "Silence", Nature: nature("calm", "vast", "cold"), Rarity: Rare, Flavor: "Not the absence of sound. The presence of nothing."},
	{Name: "Catalyst", Nature: nature("volatile", "sharp", "organic"), Rarity: Rare, Flavor: "Unchanged by the change it causes."},
	{Name: "Recursion", Nature: nature("mechanical", "persistent", "vast"), Rarity: Rare, Flavor: "It contains itself, which contains itself, which..."},
	{Name: "Mirage", Nature: nature("bright", "hot", "vast", "ephemeral"), Rarity: Rare, Flavor: "Real enough to walk toward. Gone when you arrive."},
	{Name: "Entropy", Nature: nature("vast", "persistent", "cold", "volatile"), Rarity: Rare, Flavor: "Everything falls apart. This is how."},
	{Name: "Anima", Nature: nature("organic", "emotional", "bright", "persistent"), Rarity: Rare, Flavor: "The part that makes the rest alive."},
	{Name: "Void", Nature: nature("vast", "cold", "calm", "persistent"), Rarity: Rare, Flavor: "Not empty. Full of nothing."},
	{Name: "Ouroboros", Nature: nature("organic", "mechanical", "persistent", "volatile"), Rarity: Rare, Flavor: "The end that is the beginning that is the end."},
}

// All returns a copy of the built-in library.
func All() []types.Thread {
	out := make([]types.Thread, len(library))
	copy(out, library)
	return out
}

// ByRarity filters lib to one rarity, keeping library order.
func ByRarity(lib []types.Thread, rarity string) []types.Thread {
	var out []types.Thread
	for _, t := range lib {
		if t.Rarity == rarity {
			out = append(out, t)
		}
	}
	return out
}
