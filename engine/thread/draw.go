package thread

import "github.com/nathoo/tink/types"

// Source is the randomness a draw consumes. *engine.RNG implements it.
type Source interface {
	// Pick returns an integer in [0, n).
	Pick(n int) int
	// WeightedSelect returns an index chosen with probability
	// proportional to its weight.
	WeightedSelect(weights []int) int
}

// Weight returns the draw weight of a rarity. Unknown rarities weigh 1.
func Weight(rarity string) int {
	switch rarity {
	case Common:
		return 6
	case Uncommon:
		return 3
	default:
		return 1
	}
}

// Draw deals n distinct threads from lib uniformly. n is clamped to the
// library size. lib is not modified.
func Draw(src Source, lib []types.Thread, n int) []types.Thread {
	pool := make([]types.Thread, len(lib))
	copy(pool, lib)
	n = min(max(n, 0), len(pool))

	// Partial Fisher-Yates: the first n slots end up drawn.
	for i := 0; i < n; i++ {
		j := i + src.Pick(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// DrawWeighted deals n distinct threads from lib, favoring common threads
// over uncommon and uncommon over rare.
func DrawWeighted(src Source, lib []types.Thread, n int) []types.Thread {
	pool := make([]types.Thread, len(lib))
	copy(pool, lib)
	n = min(max(n, 0), len(pool))

	out := make([]types.Thread, 0, n)
	for len(out) < n {
		weights := make([]int, len(pool))
		for i, t := range pool {
			weights[i] = Weight(t.Rarity)
		}
		idx := src.WeightedSelect(weights)
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}
