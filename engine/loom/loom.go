// Package loom places threads on a hex grid and resolves every adjacent
// pair into a crossing, propagating archetype cascades outward from the
// center.
package loom

import (
	"github.com/nathoo/tink/engine/archetype"
	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

// Cell is one loom position and its occupant (nil when empty).
type Cell struct {
	Coord  types.Coord
	Thread *types.Thread
}

// Loom is a grid of a fixed tier. It is not safe for concurrent use.
type Loom struct {
	tier      types.Tier
	cells     []types.Coord
	valid     map[types.Coord]bool
	grid      map[types.Coord]types.Thread
	catalog   []types.ArchetypeDef
	crossings []types.Crossing
}

// New creates an empty loom. A nil catalog uses the built-in archetypes.
func New(tier types.Tier, catalog []types.ArchetypeDef) (*Loom, error) {
	cells, err := Cells(tier)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = archetype.Catalog()
	}
	valid := make(map[types.Coord]bool, len(cells))
	for _, c := range cells {
		valid[c] = true
	}
	return &Loom{
		tier:    tier,
		cells:   cells,
		valid:   valid,
		grid:    make(map[types.Coord]types.Thread),
		catalog: catalog,
	}, nil
}

// Tier returns the loom's size tier.
func (l *Loom) Tier() types.Tier { return l.tier }

// Place puts t at c. It fails when c is not a cell of this loom or is
// already occupied; nothing changes on failure.
func (l *Loom) Place(t types.Thread, c types.Coord) error {
	if !l.valid[c] {
		return &InvalidPositionError{Coord: c, Tier: l.tier}
	}
	if occ, ok := l.grid[c]; ok {
		return &OccupiedError{Coord: c, Occupant: occ.Name}
	}
	l.grid[c] = t
	return nil
}

// Neighbors returns the occupied cells adjacent to c in direction order.
func (l *Loom) Neighbors(c types.Coord) []Cell {
	var out []Cell
	for _, d := range directions {
		n := types.Coord{Q: c.Q + d.Q, R: c.R + d.R}
		if t, ok := l.grid[n]; ok {
			out = append(out, Cell{Coord: n, Thread: &t})
		}
	}
	return out
}

// Positions returns every cell of the loom in enumeration order.
func (l *Loom) Positions() []Cell {
	out := make([]Cell, 0, len(l.cells))
	for _, c := range l.cells {
		cell := Cell{Coord: c}
		if t, ok := l.grid[c]; ok {
			cell.Thread = &t
		}
		out = append(out, cell)
	}
	return out
}

// Free returns the empty cells in enumeration order.
func (l *Loom) Free() []types.Coord {
	var out []types.Coord
	for _, c := range l.cells {
		if _, ok := l.grid[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Occupied returns the number of placed threads.
func (l *Loom) Occupied() int { return len(l.grid) }

// Crossings returns the crossings of the last activation.
func (l *Loom) Crossings() []types.Crossing { return l.crossings }

// injection is a pending cascade pool entry for one coordinate.
type injection struct {
	traits types.Nature
	depth  int
}

// activation holds the state of a single Activate call.
type activation struct {
	loom     *Loom
	pool     map[types.Coord]*injection
	resolved map[string]bool
}

// Activate resolves every adjacent occupied pair exactly once, center
// first, then the remaining cells in enumeration order. Cascades from
// matched archetypes are pooled on the in-grid neighbors of both endpoints
// and augment any crossing resolved after them.
func (l *Loom) Activate() []types.Crossing {
	a := &activation{
		loom:     l,
		pool:     make(map[types.Coord]*injection),
		resolved: make(map[string]bool),
	}
	crossings := []types.Crossing{}

	// cells[0] is the center.
	for _, c := range l.cells {
		t, ok := l.grid[c]
		if !ok {
			continue
		}
		for _, nb := range l.Neighbors(c) {
			pk := pairKey(c, nb.Coord)
			if a.resolved[pk] {
				continue
			}
			a.resolved[pk] = true
			crossings = append(crossings, a.resolve(
				types.Placement{Thread: t, Position: c},
				types.Placement{Thread: *nb.Thread, Position: nb.Coord},
			))
		}
	}

	l.crossings = crossings
	return crossings
}

func (a *activation) resolve(pa, pb types.Placement) types.Crossing {
	var applied []types.CascadeInjection
	depth := 0

	augment := func(p types.Placement) types.Nature {
		inj, ok := a.pool[p.Position]
		if !ok {
			return p.Thread.Nature
		}
		for _, k := range unify.Keys(inj.traits) {
			applied = append(applied, types.CascadeInjection{Trait: k, To: p.Position})
		}
		depth = max(depth, inj.depth)
		// Injected traits override the thread's own.
		return unify.Merge(p.Thread.Nature, inj.traits)
	}
	natureA := augment(pa)
	natureB := augment(pb)

	u := unify.Unify(natureA, natureB)
	m := archetype.Match(u, a.loom.catalog)

	if m.Match != nil && len(m.Match.Cascade) > 0 {
		for _, p := range []types.Coord{pa.Position, pb.Position} {
			a.inject(p, m.Match.Cascade, depth+1)
		}
	}

	return types.Crossing{
		ThreadA:        pa,
		ThreadB:        pb,
		Unification:    u,
		Archetype:      m,
		CascadeApplied: applied,
		CascadeDepth:   depth,
	}
}

// inject pools cascade on every in-grid neighbor of c.
func (a *activation) inject(c types.Coord, cascade types.Nature, depth int) {
	for _, d := range directions {
		n := types.Coord{Q: c.Q + d.Q, R: c.R + d.R}
		if !a.loom.valid[n] {
			continue
		}
		entry, ok := a.pool[n]
		if !ok {
			entry = &injection{traits: types.Nature{}}
			a.pool[n] = entry
		}
		entry.traits = unify.Merge(entry.traits, cascade)
		entry.depth = max(entry.depth, depth)
	}
}
