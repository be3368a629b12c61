// Package loader loads Lua content packs into Go structs at load time.
// The Lua VM is discarded after loading, so no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
	lua "github.com/yuin/gopher-lua"
)

// rawNamed holds a named definition table before compilation.
type rawNamed struct {
	name  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table and whether it was set.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	n, _ := getNumber(tbl, key)
	return int(n)
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toTraitValue converts a Lua scalar to a trait value. Integral numbers
// become int.
func toTraitValue(v lua.LValue) (any, error) {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val), nil
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f), nil
		}
		return f, nil
	case lua.LString:
		return string(val), nil
	default:
		return nil, fmt.Errorf("unsupported trait value of type %s", v.Type())
	}
}

// stringKeys returns the string keys of a table in sorted order.
func stringKeys(tbl *lua.LTable) []string {
	var keys []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			keys = append(keys, string(ks))
		}
	})
	sort.Strings(keys)
	return keys
}

// compileNature converts a { trait = value } table. Array entries are
// shorthand for trait = true.
func compileNature(tbl *lua.LTable) (types.Nature, error) {
	if tbl == nil {
		return nil, nil
	}
	n := types.Nature{}
	for i := 1; i <= tbl.MaxN(); i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("entry %d: want a trait name", i)
		}
		n[string(s)] = true
	}
	for _, k := range stringKeys(tbl) {
		v, err := toTraitValue(tbl.RawGetString(k))
		if err != nil {
			return nil, fmt.Errorf("trait %s: %w", k, err)
		}
		n[k] = v
	}
	return n, nil
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{}

	for _, raw := range coll.archetypes {
		a, err := compileArchetype(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling archetype %s: %w", raw.name, err)
		}
		defs.Archetypes = append(defs.Archetypes, a)
	}

	for _, raw := range coll.threads {
		t, err := compileThread(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling thread %s: %w", raw.name, err)
		}
		defs.Threads = append(defs.Threads, t)
	}

	for _, raw := range coll.epics {
		e, err := compileEpic(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling epic %s: %w", raw.name, err)
		}
		defs.Epics = append(defs.Epics, e)
	}

	return defs, nil
}

func compileArchetype(raw rawNamed) (types.ArchetypeDef, error) {
	tbl := raw.table
	reqs, err := compileRequirements(getTable(tbl, "requires"))
	if err != nil {
		return types.ArchetypeDef{}, fmt.Errorf("requires: %w", err)
	}
	cascade, err := compileNature(getTable(tbl, "cascade"))
	if err != nil {
		return types.ArchetypeDef{}, fmt.Errorf("cascade: %w", err)
	}
	return types.ArchetypeDef{
		Name:     raw.name,
		Required: reqs,
		Tier:     getString(tbl, "tier"),
		Flavor:   getString(tbl, "flavor"),
		Cascade:  cascade,
	}, nil
}

// compileRequirements reads { "bright", temperature = "cold", conflicts = 1 }.
// The conflict count comes first, then array traits in order, then keyed
// traits sorted by name.
func compileRequirements(tbl *lua.LTable) ([]types.Requirement, error) {
	if tbl == nil {
		return nil, nil
	}
	var reqs []types.Requirement
	if n := getInt(tbl, "conflicts"); n > 0 {
		reqs = append(reqs, types.Requirement{Kind: types.RequireMinConflicts, Count: n})
	}
	for i := 1; i <= tbl.MaxN(); i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("entry %d: want a trait name", i)
		}
		reqs = append(reqs, types.Requirement{Kind: types.RequireTrait, Trait: string(s), Value: true})
	}
	for _, k := range stringKeys(tbl) {
		if k == "conflicts" {
			continue
		}
		v, err := toTraitValue(tbl.RawGetString(k))
		if err != nil {
			return nil, fmt.Errorf("trait %s: %w", k, err)
		}
		reqs = append(reqs, types.Requirement{Kind: types.RequireTrait, Trait: k, Value: v})
	}
	return reqs, nil
}

func compileThread(raw rawNamed) (types.Thread, error) {
	tbl := raw.table
	nature, err := compileNature(getTable(tbl, "nature"))
	if err != nil {
		return types.Thread{}, fmt.Errorf("nature: %w", err)
	}
	rarity := getString(tbl, "rarity")
	if rarity == "" {
		rarity = "common"
	}
	return types.Thread{
		Name:   raw.name,
		Nature: nature,
		Rarity: rarity,
		Flavor: getString(tbl, "flavor"),
	}, nil
}

func compileEpic(raw rawNamed) (types.EpicDef, error) {
	tbl := raw.table
	projection := getString(tbl, "projection")
	if projection == "" {
		projection = epic.ProjectionTapestry
	}
	e := types.EpicDef{
		Name:       raw.name,
		Tier:       getString(tbl, "tier"),
		Projection: projection,
		OnComplete: getString(tbl, "on_complete"),
		OnPartial:  getString(tbl, "on_partial"),
	}

	beats := tbl
	if t := getTable(tbl, "beats"); t != nil {
		beats = t
	}
	for i := 1; i <= beats.MaxN(); i++ {
		bt, ok := beats.RawGetInt(i).(*lua.LTable)
		if !ok || getString(bt, beatMarker) == "" {
			return types.EpicDef{}, fmt.Errorf("entry %d is not a Beat", i)
		}
		b, err := compileBeat(bt)
		if err != nil {
			return types.EpicDef{}, fmt.Errorf("beat %q: %w", getString(bt, beatMarker), err)
		}
		e.Beats = append(e.Beats, b)
	}
	return e, nil
}

func compileBeat(tbl *lua.LTable) (types.Beat, error) {
	traits, err := compileNature(getTable(tbl, "traits"))
	if err != nil {
		return types.Beat{}, fmt.Errorf("traits: %w", err)
	}
	b := types.Beat{
		Label: getString(tbl, beatMarker),
		Requires: types.Requires{
			Stability:     types.Stability(getString(tbl, "stability")),
			Traits:        traits,
			HasArchetype:  getBool(tbl, "archetype", false),
			ArchetypeTier: getString(tbl, "tier"),
			CascadeDepth:  getInt(tbl, "cascade_depth"),
			HasNearMiss:   getBool(tbl, "near_miss", false),
			MinConflicts:  getInt(tbl, "min_conflicts"),
			HeroStage:     getString(tbl, "hero_stage"),
			DramaticArc:   getString(tbl, "arc"),
			Symmetry:      getString(tbl, "symmetry"),
		},
		OnMatch:   getString(tbl, "on_match"),
		OnPartial: getString(tbl, "on_partial"),
	}
	if mt := getTable(tbl, "mood"); mt != nil {
		m := &types.Mood{Tone: getString(mt, "tone"), Hue: getString(mt, "hue")}
		if v, ok := getNumber(mt, "intensity"); ok {
			m.Intensity = &v
		}
		b.Mood = m
	}
	return b, nil
}
