// Package report renders weaves as plain-text narration and JSON exports.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

var tierStars = map[string]string{
	"legendary": "★★★★",
	"mythic":    "★★★",
	"rare":      "★★☆",
	"uncommon":  "★☆☆",
	"common":    "☆☆☆",
}

var stabilityLabels = map[types.Stability]string{
	types.Harmony:   "≡ HARMONY",
	types.Resonance: "✨ RESONANCE",
	types.Tension:   "⚡ TENSION",
	types.Paradox:   "☣ PARADOX",
}

// Stars returns the star rating of an archetype tier.
func Stars(tier string) string {
	if s, ok := tierStars[tier]; ok {
		return s
	}
	return "☆☆☆"
}

// StabilityLabel returns the display label of a stability class.
func StabilityLabel(s types.Stability) string {
	if l, ok := stabilityLabels[s]; ok {
		return l
	}
	return strings.ToUpper(string(s))
}

// Coord formats a coordinate as "(q,r)".
func Coord(c types.Coord) string {
	return "(" + loom.Key(c) + ")"
}

// Value formats a trait value. Conflicts show both sides.
func Value(v any) string {
	switch x := v.(type) {
	case types.Conflict:
		return "⚡(" + Value(x.From[0]) + "|" + Value(x.From[1]) + ")"
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Requirements formats archetype requirements as "trait", "trait=value"
// or "conflicts>=n".
func Requirements(reqs []types.Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		switch r.Kind {
		case types.RequireMinConflicts:
			out = append(out, fmt.Sprintf("conflicts>=%d", r.Count))
		default:
			if r.Value == true {
				out = append(out, r.Trait)
			} else {
				out = append(out, r.Trait+"="+Value(r.Value))
			}
		}
	}
	return out
}

// Nature formats a trait set as sorted key=value pairs.
func Nature(n map[string]any) string {
	keys := unify.Keys(n)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + Value(n[k])
	}
	return strings.Join(parts, ", ")
}

const halfCell = 6

// Layout draws the loom as staggered hex rows. Empty cells show a dot.
func Layout(cells []loom.Cell) []string {
	if len(cells) == 0 {
		return nil
	}
	rows := make(map[int][]loom.Cell)
	minX := math.MaxInt
	for _, c := range cells {
		rows[c.Coord.R] = append(rows[c.Coord.R], c)
		if x := 2*c.Coord.Q + c.Coord.R; x < minX {
			minX = x
		}
	}
	rs := make([]int, 0, len(rows))
	for r := range rows {
		rs = append(rs, r)
	}
	sort.Ints(rs)

	out := make([]string, 0, len(rs))
	for _, r := range rs {
		row := rows[r]
		sort.Slice(row, func(i, j int) bool { return row[i].Coord.Q < row[j].Coord.Q })
		var b strings.Builder
		col := 0
		for _, c := range row {
			x := (2*c.Coord.Q + c.Coord.R - minX) * halfCell
			if x > col {
				b.WriteString(strings.Repeat(" ", x-col))
				col = x
			}
			label := cellLabel(c)
			b.WriteString(label)
			col += utf8.RuneCountInString(label)
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return out
}

func cellLabel(c loom.Cell) string {
	if c.Thread == nil {
		return "·"
	}
	name := c.Thread.Name
	if utf8.RuneCountInString(name) > 2*halfCell-1 {
		name = string([]rune(name)[:2*halfCell-2]) + "…"
	}
	return name
}

// Crossing narrates one resolved pair. n is its 1-based position.
func Crossing(n int, c types.Crossing) []string {
	u := c.Unification
	out := []string{
		fmt.Sprintf("[%d] %s %s × %s %s", n,
			c.ThreadA.Thread.Name, Coord(c.ThreadA.Position),
			c.ThreadB.Thread.Name, Coord(c.ThreadB.Position)),
	}

	line := "    " + StabilityLabel(u.Stability)
	if len(u.Resonances) > 0 {
		line += "  resonates: " + strings.Join(u.Resonances, ", ")
	}
	if len(u.Conflicts) > 0 {
		line += "  conflicts: " + strings.Join(u.Conflicts, ", ")
	}
	out = append(out, line)
	out = append(out, "    → "+Nature(u.Unified))

	if m := c.Archetype.Match; m != nil {
		pct := 0
		if s := c.Archetype.Score; s != nil {
			pct = int(math.Round(s.Ratio * 100))
		}
		out = append(out, fmt.Sprintf("    %s %s (%s) %d%%", Stars(m.Tier), m.Name, m.Tier, pct))
		if m.Flavor != "" {
			out = append(out, "      \""+m.Flavor+"\"")
		}
	}
	for _, nm := range c.Archetype.NearMisses {
		out = append(out, fmt.Sprintf("    near: %s %d/%d, missing %s",
			nm.Name, nm.Matched, nm.Total, strings.Join(nm.MissingTraits, ", ")))
	}
	if len(c.CascadeApplied) > 0 {
		parts := make([]string, len(c.CascadeApplied))
		for i, inj := range c.CascadeApplied {
			parts[i] = inj.Trait + " → " + Coord(inj.To)
		}
		out = append(out, fmt.Sprintf("    ↯ cascade: %s (depth %d)", strings.Join(parts, ", "), c.CascadeDepth))
	}
	return out
}

// Summary tallies stabilities, archetypes and cascades across crossings.
func Summary(crossings []types.Crossing) []string {
	if len(crossings) == 0 {
		return []string{"No crossings. Place threads side by side."}
	}
	counts := make(map[types.Stability]int)
	var emerged []string
	cascaded, deepest := 0, 0
	for _, c := range crossings {
		counts[c.Unification.Stability]++
		if m := c.Archetype.Match; m != nil {
			emerged = append(emerged, m.Name)
		}
		if len(c.CascadeApplied) > 0 {
			cascaded++
		}
		if c.CascadeDepth > deepest {
			deepest = c.CascadeDepth
		}
	}

	out := []string{fmt.Sprintf("%d crossings: harmony %d, resonance %d, tension %d, paradox %d",
		len(crossings), counts[types.Harmony], counts[types.Resonance],
		counts[types.Tension], counts[types.Paradox])}
	if len(emerged) > 0 {
		out = append(out, fmt.Sprintf("Emerged (%d): %s", len(emerged), strings.Join(emerged, ", ")))
	} else {
		out = append(out, "Nothing emerged.")
	}
	if cascaded > 0 {
		out = append(out, fmt.Sprintf("Cascades touched %d crossings, deepest %d.", cascaded, deepest))
	}
	return out
}

// Epics narrates completed and near-missed epics of a run.
func Epics(run types.RunResult) []string {
	var out []string
	for _, r := range run.Results {
		switch {
		case r.Complete:
			out = append(out, fmt.Sprintf("✦ %s [%s] complete", r.Epic.Name, r.Projection.Name))
			if r.Epic.OnComplete != "" {
				out = append(out, "  "+r.Epic.OnComplete)
			}
			if r.GoldenCount > 0 {
				out = append(out, fmt.Sprintf("  %d golden %s", r.GoldenCount, plural(r.GoldenCount, "moment", "moments")))
			}
		case r.NearMiss:
			out = append(out, fmt.Sprintf("◇ %s [%s] %d/%d beats", r.Epic.Name, r.Projection.Name, r.CompletedBeats, r.TotalBeats))
			if r.Epic.OnPartial != "" {
				out = append(out, "  "+r.Epic.OnPartial)
			}
		}
	}
	if len(out) == 0 {
		return []string{"No epic took shape."}
	}
	if run.GoldenMoments > 0 {
		out = append(out, fmt.Sprintf("Golden moments: %d", run.GoldenMoments))
	}
	return out
}

// Weave narrates a complete weave: every crossing, the summary and epics.
func Weave(w *types.Weave) []string {
	out := []string{fmt.Sprintf("── Weave %d (%s) ──", w.Number, w.Tier)}
	for i, c := range w.Crossings {
		out = append(out, Crossing(i+1, c)...)
	}
	out = append(out, Summary(w.Crossings)...)
	out = append(out, Epics(w.Run)...)
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
