// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, the loom and epic evaluation into a single command.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/tink/engine/archetype"
	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/parser"
	"github.com/nathoo/tink/engine/report"
	"github.com/nathoo/tink/engine/resolve"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/engine/thread"
	"github.com/nathoo/tink/types"
)

// DefaultHandSize is the number of threads drawn when none is given.
const DefaultHandSize = 5

// ErrTooFewThreads is returned when a weave is attempted on a loom with
// fewer than two threads.
var ErrTooFewThreads = errors.New("the loom needs at least two threads")

// Logger is the logging surface the engine writes to.
type Logger interface {
	Printf(format string, v ...any)
}

// Options configures a session.
type Options struct {
	Tier     types.Tier
	Seed     int64
	HandSize int
	Weighted bool     // draw by rarity weight instead of uniformly
	Unlock   []string // projection ids unlocked from the start
	Logger   Logger
}

// Engine holds the catalogs, the current loom and the mutable session state.
type Engine struct {
	Defs        *state.Defs
	State       *types.State
	RNG         *RNG
	Loom        *loom.Loom
	Projections []epic.Projection

	opts Options
}

// New creates a session from definitions.
func New(defs *state.Defs, opts Options) (*Engine, error) {
	if opts.Tier == "" {
		opts.Tier = types.TierHex
	}
	if opts.HandSize <= 0 {
		opts.HandSize = DefaultHandSize
	}
	l, err := loom.New(opts.Tier, defs.Archetypes)
	if err != nil {
		return nil, err
	}
	projections := epic.Projections()
	s := state.NewState(opts.Tier, opts.Seed, projections)
	for _, id := range opts.Unlock {
		if _, ok := epic.ByID(projections, id); !ok {
			return nil, fmt.Errorf("unknown projection %q", id)
		}
		s.Unlocked[id] = true
	}
	return &Engine{
		Defs:        defs,
		State:       s,
		RNG:         NewRNG(opts.Seed),
		Loom:        l,
		Projections: projections,
		opts:        opts,
	}, nil
}

func (e *Engine) logf(format string, v ...any) {
	if e.opts.Logger != nil {
		e.opts.Logger.Printf(format, v...)
	}
}

// Step processes one session command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Log the command.
	e.State.CommandLog = append(e.State.CommandLog, input)

	// 3. Empty input.
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do? (help lists commands)")
		return result
	}

	// 4. Dispatch.
	switch intent.Verb {
	case "draw":
		e.stepDraw(intent, &result)
	case "hand":
		result.Output = append(result.Output, e.describeHand()...)
	case "place":
		e.stepPlace(intent, &result)
	case "auto":
		e.stepAuto(&result)
	case "loom":
		result.Output = append(result.Output, e.describeLoom()...)
	case "weave":
		e.stepWeave(&result)
	case "epics":
		result.Output = append(result.Output, e.describeEpics()...)
	case "archetypes":
		result.Output = append(result.Output, e.describeArchetypes()...)
	case "tier":
		e.stepTier(intent, &result)
	case "reset":
		n := e.clearLoom()
		result.Output = append(result.Output, fmt.Sprintf("The loom is bare. %d %s returned to your hand.", n, plural(n, "thread", "threads")))
	case "help":
		result.Output = append(result.Output, HelpText()...)
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q. (help lists commands)", intent.Verb))
	}

	// 5. Track RNG position for exports.
	e.State.RNGPosition = e.RNG.Position()

	return result
}

// Draw replaces the hand with n threads from the library. Threads still
// on the loom stay there and are not dealt again.
func (e *Engine) Draw(n int) []types.Thread {
	pool := e.drawPool()
	var hand []types.Thread
	if e.opts.Weighted {
		hand = thread.DrawWeighted(e.RNG, pool, n)
	} else {
		hand = thread.Draw(e.RNG, pool, n)
	}
	e.State.Hand = hand
	e.State.RNGPosition = e.RNG.Position()
	e.logf("draw %d: %s", n, strings.Join(threadNames(hand), ", "))
	return hand
}

// drawPool is the library minus the threads already on the loom.
func (e *Engine) drawPool() []types.Thread {
	placed := make(map[string]bool)
	for _, c := range e.Loom.Positions() {
		if c.Thread != nil {
			placed[c.Thread.Name] = true
		}
	}
	if len(placed) == 0 {
		return e.Defs.Threads
	}
	pool := make([]types.Thread, 0, len(e.Defs.Threads))
	for _, t := range e.Defs.Threads {
		if !placed[t.Name] {
			pool = append(pool, t)
		}
	}
	return pool
}

// Place moves a thread from the hand onto the loom. A nil position picks
// the first free cell.
func (e *Engine) Place(name string, pos *types.Coord) (types.Placement, error) {
	resolved, err := resolve.Thread(e.State.Hand, name)
	if err != nil {
		return types.Placement{}, err
	}
	var at types.Coord
	if pos != nil {
		at = *pos
	} else {
		free := e.Loom.Free()
		if len(free) == 0 {
			return types.Placement{}, fmt.Errorf("the %s loom is full", e.Loom.Tier())
		}
		at = free[0]
	}

	for _, t := range e.State.Hand {
		if t.Name != resolved {
			continue
		}
		if err := e.Loom.Place(t, at); err != nil {
			return types.Placement{}, err
		}
		state.RemoveFromHand(e.State, resolved)
		return types.Placement{Thread: t, Position: at}, nil
	}
	return types.Placement{}, &resolve.NotFoundError{Name: name}
}

// AutoPlace fills free cells in enumeration order with threads from the
// hand, center first, until either runs out.
func (e *Engine) AutoPlace() []types.Placement {
	var placed []types.Placement
	for _, at := range e.Loom.Free() {
		if len(e.State.Hand) == 0 {
			break
		}
		t := e.State.Hand[0]
		if err := e.Loom.Place(t, at); err != nil {
			break
		}
		state.RemoveFromHand(e.State, t.Name)
		placed = append(placed, types.Placement{Thread: t, Position: at})
	}
	return placed
}

// Weave activates the loom, evaluates the resulting history under every
// unlocked projection and clears the loom for the next weave. The weave is
// stored as State.Last.
func (e *Engine) Weave() ([]types.Event, error) {
	if e.Loom.Occupied() < 2 {
		return nil, ErrTooFewThreads
	}

	crossings := e.Loom.Activate()
	history := loom.History(crossings)
	run := epic.EvaluateRun(history, state.ApplyUnlocks(e.State, e.Projections), e.Defs.Epics)

	e.State.Weaves++
	w := &types.Weave{
		Number:    e.State.Weaves,
		Tier:      e.Loom.Tier(),
		Crossings: crossings,
		History:   history,
		Run:       run,
	}
	e.State.Last = w

	var evts []types.Event
	for i, c := range crossings {
		evts = append(evts, types.Event{
			Type: "crossing_resolved",
			Data: map[string]any{
				"index":     i,
				"a":         c.ThreadA.Thread.Name,
				"b":         c.ThreadB.Thread.Name,
				"stability": string(c.Unification.Stability),
			},
		})
		if m := c.Archetype.Match; m != nil {
			evts = append(evts, types.Event{
				Type: "archetype_emerged",
				Data: map[string]any{"index": i, "archetype": m.Name, "tier": m.Tier},
			})
			e.logf("weave %d: %s emerged from %s × %s", w.Number, m.Name, c.ThreadA.Thread.Name, c.ThreadB.Thread.Name)
		}
		if len(c.CascadeApplied) > 0 {
			evts = append(evts, types.Event{
				Type: "cascade",
				Data: map[string]any{"index": i, "depth": c.CascadeDepth, "injections": len(c.CascadeApplied)},
			})
		}
	}
	for _, r := range run.Results {
		if r.Complete {
			evts = append(evts, types.Event{
				Type: "epic_complete",
				Data: map[string]any{"epic": r.Epic.Name, "projection": r.Projection.ID},
			})
		}
		if r.GoldenCount > 0 {
			evts = append(evts, types.Event{
				Type: "golden_moment",
				Data: map[string]any{"epic": r.Epic.Name, "count": r.GoldenCount},
			})
		}
	}
	for _, p := range state.Unlock(e.State, e.Projections) {
		evts = append(evts, types.Event{
			Type: "projection_unlocked",
			Data: map[string]any{"projection": p.ID, "name": p.Name},
		})
		e.logf("weave %d: projection %s unlocked", w.Number, p.ID)
	}
	e.logf("weave %d: %d crossings, %d results, %d golden", w.Number, len(crossings), len(run.Results), run.GoldenMoments)

	l, err := loom.New(e.State.Tier, e.Defs.Archetypes)
	if err != nil {
		return evts, err
	}
	e.Loom = l
	return evts, nil
}

// SetTier switches to a new loom size. Threads on the old loom return to
// the hand.
func (e *Engine) SetTier(tier types.Tier) error {
	l, err := loom.New(tier, e.Defs.Archetypes)
	if err != nil {
		return err
	}
	e.clearLoom()
	e.Loom = l
	e.State.Tier = tier
	return nil
}

// clearLoom returns placed threads to the hand and empties the loom.
func (e *Engine) clearLoom() int {
	n := 0
	for _, c := range e.Loom.Positions() {
		if c.Thread != nil {
			e.State.Hand = append(e.State.Hand, *c.Thread)
			n++
		}
	}
	l, err := loom.New(e.Loom.Tier(), e.Defs.Archetypes)
	if err == nil {
		e.Loom = l
	}
	return n
}

func (e *Engine) stepDraw(intent types.Intent, result *types.Result) {
	n := e.opts.HandSize
	if intent.Object != "" {
		v, err := strconv.Atoi(intent.Object)
		if err != nil || v <= 0 {
			result.Output = append(result.Output, fmt.Sprintf("Draw how many? %q is not a count.", intent.Object))
			return
		}
		n = v
	}
	hand := e.Draw(n)
	result.Events = append(result.Events, types.Event{
		Type: "threads_drawn",
		Data: map[string]any{"count": len(hand), "threads": threadNames(hand)},
	})
	result.Output = append(result.Output, fmt.Sprintf("You draw %d %s.", len(hand), plural(len(hand), "thread", "threads")))
	result.Output = append(result.Output, e.describeHand()...)
}

func (e *Engine) stepPlace(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, "Place which thread? (place <thread> at <q,r>)")
		return
	}
	res, err := resolve.Resolve(e.State.Hand, intent)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	var pos *types.Coord
	if res.HasPos {
		pos = &res.Position
	}
	p, err := e.Place(res.Thread, pos)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	result.Events = append(result.Events, placedEvent(p))
	result.Output = append(result.Output, fmt.Sprintf("%s settles at %s.", p.Thread.Name, report.Coord(p.Position)))
}

func (e *Engine) stepAuto(result *types.Result) {
	placed := e.AutoPlace()
	if len(placed) == 0 {
		if len(e.State.Hand) == 0 {
			result.Output = append(result.Output, "Your hand is empty. Draw first.")
		} else {
			result.Output = append(result.Output, "The loom is full.")
		}
		return
	}
	for _, p := range placed {
		result.Events = append(result.Events, placedEvent(p))
		result.Output = append(result.Output, fmt.Sprintf("%s settles at %s.", p.Thread.Name, report.Coord(p.Position)))
	}
}

func (e *Engine) stepWeave(result *types.Result) {
	evts, err := e.Weave()
	result.Events = append(result.Events, evts...)
	if err != nil {
		result.Output = append(result.Output, err.Error()+".")
		return
	}
	result.Output = append(result.Output, report.Weave(e.State.Last)...)
	for _, ev := range evts {
		if ev.Type == "projection_unlocked" {
			result.Output = append(result.Output, fmt.Sprintf("A new way of seeing opens: %v.", ev.Data["name"]))
		}
	}
}

func (e *Engine) stepTier(intent types.Intent, result *types.Result) {
	if intent.Object == "" {
		result.Output = append(result.Output, fmt.Sprintf("The loom is %s (%d cells). Tiers: %s.",
			e.State.Tier, loom.Size(e.State.Tier), tierList()))
		return
	}
	tier := types.Tier(intent.Object)
	if err := e.SetTier(tier); err != nil {
		result.Output = append(result.Output, fmt.Sprintf("Unknown tier %q. Tiers: %s.", intent.Object, tierList()))
		return
	}
	result.Events = append(result.Events, types.Event{
		Type: "tier_changed",
		Data: map[string]any{"tier": string(tier), "cells": loom.Size(tier)},
	})
	result.Output = append(result.Output, fmt.Sprintf("The loom widens to %s: %d cells.", tier, loom.Size(tier)))
}

func (e *Engine) describeHand() []string {
	if len(e.State.Hand) == 0 {
		return []string{"Your hand is empty."}
	}
	out := make([]string, 0, len(e.State.Hand))
	for _, t := range e.State.Hand {
		out = append(out, fmt.Sprintf("  %-10s %-9s %s", t.Name, t.Rarity, report.Nature(t.Nature)))
	}
	return out
}

func (e *Engine) describeLoom() []string {
	out := []string{fmt.Sprintf("Loom: %s, %d/%d threads", e.Loom.Tier(), e.Loom.Occupied(), loom.Size(e.Loom.Tier()))}
	out = append(out, report.Layout(e.Loom.Positions())...)
	return out
}

func (e *Engine) describeEpics() []string {
	var out []string
	for _, p := range e.Projections {
		status := "locked"
		if state.IsUnlocked(e.State, p.ID) {
			status = "open"
		} else if p.UnlocksAt > 0 {
			status = fmt.Sprintf("opens after %d weaves", p.UnlocksAt)
		}
		out = append(out, fmt.Sprintf("%s (%s): %s", p.Name, status, p.Description))
		for _, ep := range e.Defs.Epics {
			if ep.Projection == p.ID {
				out = append(out, fmt.Sprintf("  %-28s %d beats", ep.Name, len(ep.Beats)))
			}
		}
	}
	if e.State.Last != nil {
		out = append(out, fmt.Sprintf("Last weave (%d):", e.State.Last.Number))
		out = append(out, report.Epics(e.State.Last.Run)...)
	}
	return out
}

func (e *Engine) describeArchetypes() []string {
	defs := make([]types.ArchetypeDef, len(e.Defs.Archetypes))
	copy(defs, e.Defs.Archetypes)
	sort.SliceStable(defs, func(i, j int) bool {
		return archetype.TierRank(defs[i].Tier) < archetype.TierRank(defs[j].Tier)
	})
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, fmt.Sprintf("%s %-24s %s", report.Stars(d.Tier), d.Name, d.Flavor))
	}
	return out
}

// HelpText lists the session commands.
func HelpText() []string {
	return []string{
		"draw [n]                 draw a fresh hand (default 5)",
		"hand                     show your threads",
		"place <thread> [at] q,r  put a thread on the loom",
		"auto                     fill the loom from your hand, center first",
		"loom                     show the loom",
		"weave                    activate the loom",
		"epics                    list epics and the last weave's results",
		"archetypes               list what can emerge",
		"tier <triad|hex|bloom|grand>  change the loom size",
		"reset                    return placed threads to your hand",
	}
}

func placedEvent(p types.Placement) types.Event {
	return types.Event{
		Type: "thread_placed",
		Data: map[string]any{"thread": p.Thread.Name, "position": loom.Key(p.Position)},
	}
}

func tierList() string {
	tiers := loom.Tiers()
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func threadNames(ts []types.Thread) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
