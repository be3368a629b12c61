package loom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/tink/types"
)

// directions are the six axial neighbor offsets: E, SE, SW, W, NW, NE.
var directions = []types.Coord{
	{Q: 1, R: 0}, {Q: 0, R: 1}, {Q: -1, R: 1},
	{Q: -1, R: 0}, {Q: 0, R: -1}, {Q: 1, R: -1},
}

// order enumerates every cell of the largest loom. Each tier is a prefix.
var order = []types.Coord{
	{Q: 0, R: 0},
	// Ring 1.
	{Q: 1, R: 0}, {Q: 0, R: 1}, {Q: -1, R: 1},
	{Q: -1, R: 0}, {Q: 0, R: -1}, {Q: 1, R: -1},
	// Ring 2 corners.
	{Q: 2, R: 0}, {Q: 0, R: 2}, {Q: -2, R: 2},
	{Q: -2, R: 0}, {Q: 0, R: -2}, {Q: 2, R: -2},
	// Ring 2 edges.
	{Q: 1, R: 1}, {Q: -1, R: 2}, {Q: -2, R: 1},
	{Q: -1, R: -1}, {Q: 1, R: -2}, {Q: 2, R: -1},
}

var tierSizes = map[types.Tier]int{
	types.TierTriad: 3,
	types.TierHex:   7,
	types.TierBloom: 12,
	types.TierGrand: 19,
}

// Center is the cell whose pairs resolve first.
var Center = types.Coord{Q: 0, R: 0}

// Tiers returns the tier names from smallest to largest.
func Tiers() []types.Tier {
	return []types.Tier{types.TierTriad, types.TierHex, types.TierBloom, types.TierGrand}
}

// Cells returns the cell list of a tier in enumeration order.
func Cells(tier types.Tier) ([]types.Coord, error) {
	n, ok := tierSizes[tier]
	if !ok {
		return nil, fmt.Errorf("unknown loom tier %q", tier)
	}
	out := make([]types.Coord, n)
	copy(out, order[:n])
	return out, nil
}

// Size returns the cell count of a tier, or 0 for an unknown tier.
func Size(tier types.Tier) int {
	return tierSizes[tier]
}

// Adjacent reports whether a and b differ by one of the six directions.
func Adjacent(a, b types.Coord) bool {
	d := types.Coord{Q: b.Q - a.Q, R: b.R - a.R}
	for _, dir := range directions {
		if d == dir {
			return true
		}
	}
	return false
}

// Key is the canonical "q,r" form of a coordinate.
func Key(c types.Coord) string {
	return strconv.Itoa(c.Q) + "," + strconv.Itoa(c.R)
}

// ParseCoord parses "q,r" (spaces and surrounding parentheses allowed).
func ParseCoord(s string) (types.Coord, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.Coord{}, fmt.Errorf("coordinate %q: want q,r", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return types.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return types.Coord{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	return types.Coord{Q: q, R: r}, nil
}

// pairKey identifies an unordered pair by its sorted coordinate keys.
func pairKey(a, b types.Coord) string {
	ka, kb := Key(a), Key(b)
	if ka < kb {
		return ka + "|" + kb
	}
	return kb + "|" + ka
}
