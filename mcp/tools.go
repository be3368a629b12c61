package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/archetype"
	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/report"
	"github.com/nathoo/tink/engine/resolve"
	"github.com/nathoo/tink/engine/unify"
	"github.com/nathoo/tink/types"
)

type UnifyInput struct {
	A map[string]any `json:"a" jsonschema:"first trait set"`
	B map[string]any `json:"b" jsonschema:"second trait set"`
}

type WeaveInput struct {
	Tier    string           `json:"tier,omitempty" jsonschema:"loom size: triad, hex, bloom or grand"`
	Threads []PlacementInput `json:"threads" jsonschema:"threads to place, by library name"`
	Unlock  []string         `json:"unlock,omitempty" jsonschema:"projection ids to evaluate besides the tapestry"`
}

type PlacementInput struct {
	Name string `json:"name" jsonschema:"thread name from the library"`
	At   string `json:"at,omitempty" jsonschema:"cell as q,r; empty takes the next free cell"`
}

type ListArchetypesInput struct {
	Tier string `json:"tier,omitempty" jsonschema:"archetype tier filter"`
}

type ListEpicsInput struct {
	Projection string `json:"projection,omitempty" jsonschema:"projection id filter"`
}

type ListThreadsInput struct {
	Rarity string `json:"rarity,omitempty" jsonschema:"rarity filter"`
}

type UnifyOutput struct {
	Stability  string         `json:"stability"`
	Unified    map[string]any `json:"unified"`
	Conflicts  []string       `json:"conflicts"`
	Resonances []string       `json:"resonances"`
}

type MatchOutput struct {
	Unification UnifyOutput       `json:"unification"`
	Archetype   *ArchetypeOutput  `json:"archetype,omitempty"`
	Ratio       float64           `json:"ratio"`
	Candidates  []CandidateOutput `json:"candidates"`
	NearMisses  []NearMissOutput  `json:"near_misses"`
}

type ArchetypeOutput struct {
	Name    string         `json:"name"`
	Tier    string         `json:"tier"`
	Stars   string         `json:"stars"`
	Flavor  string         `json:"flavor,omitempty"`
	Cascade map[string]any `json:"cascade,omitempty"`
}

type CandidateOutput struct {
	Name  string  `json:"name"`
	Tier  string  `json:"tier"`
	Ratio float64 `json:"ratio"`
	Score float64 `json:"score"`
}

type NearMissOutput struct {
	Name    string   `json:"name"`
	Tier    string   `json:"tier"`
	Matched int      `json:"matched"`
	Total   int      `json:"total"`
	Missing []string `json:"missing"`
}

type WeaveOutput struct {
	Weave     report.ExportData `json:"weave"`
	Narration []string          `json:"narration"`
	Events    []string          `json:"events"`
}

type ArchetypeEntryOutput struct {
	Name     string   `json:"name"`
	Tier     string   `json:"tier"`
	Stars    string   `json:"stars"`
	Requires []string `json:"requires"`
	Flavor   string   `json:"flavor,omitempty"`
}

type ListArchetypesOutput struct {
	Archetypes []ArchetypeEntryOutput `json:"archetypes"`
}

type EpicEntryOutput struct {
	Name       string   `json:"name"`
	Projection string   `json:"projection"`
	Beats      []string `json:"beats"`
	OnComplete string   `json:"on_complete,omitempty"`
}

type ListEpicsOutput struct {
	Epics []EpicEntryOutput `json:"epics"`
}

type ThreadEntryOutput struct {
	Name   string         `json:"name"`
	Rarity string         `json:"rarity"`
	Nature map[string]any `json:"nature"`
	Flavor string         `json:"flavor,omitempty"`
}

type ListThreadsOutput struct {
	Threads []ThreadEntryOutput `json:"threads"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "unify",
		Description: "Merge two trait sets and classify how well they agree",
	}, s.handleUnify)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "match_archetype",
		Description: "Unify two trait sets and find the archetype that emerges",
	}, s.handleMatchArchetype)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "weave",
		Description: "Place library threads on a loom, weave it and evaluate epics",
	}, s.handleWeave)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_archetypes",
		Description: "List the archetype catalog, rarest first",
	}, s.handleListArchetypes)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_epics",
		Description: "List epics and the projection each is read under",
	}, s.handleListEpics)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_threads",
		Description: "List the thread library",
	}, s.handleListThreads)
}

func (s *Server) handleUnify(ctx context.Context, req *sdk.CallToolRequest, input UnifyInput) (*sdk.CallToolResult, UnifyOutput, error) {
	if input.A == nil || input.B == nil {
		return nil, UnifyOutput{}, fmt.Errorf("a and b are required")
	}
	u := unify.Unify(input.A, input.B)
	return nil, unifyOutput(u), nil
}

func (s *Server) handleMatchArchetype(ctx context.Context, req *sdk.CallToolRequest, input UnifyInput) (*sdk.CallToolResult, MatchOutput, error) {
	if input.A == nil || input.B == nil {
		return nil, MatchOutput{}, fmt.Errorf("a and b are required")
	}
	u := unify.Unify(input.A, input.B)
	res := archetype.Match(u, s.defs.Archetypes)

	out := MatchOutput{
		Unification: unifyOutput(u),
		Candidates:  make([]CandidateOutput, 0, len(res.Candidates)),
		NearMisses:  make([]NearMissOutput, 0, len(res.NearMisses)),
	}
	if m := res.Match; m != nil {
		out.Archetype = &ArchetypeOutput{
			Name:    m.Name,
			Tier:    m.Tier,
			Stars:   report.Stars(m.Tier),
			Flavor:  m.Flavor,
			Cascade: m.Cascade,
		}
		out.Ratio = res.Score.Ratio
	}
	for _, c := range res.Candidates {
		out.Candidates = append(out.Candidates, CandidateOutput{Name: c.Name, Tier: c.Tier, Ratio: c.Ratio, Score: c.Score.Score})
	}
	for _, nm := range res.NearMisses {
		out.NearMisses = append(out.NearMisses, NearMissOutput{
			Name:    nm.Name,
			Tier:    nm.Tier,
			Matched: nm.Matched,
			Total:   nm.Total,
			Missing: nm.MissingTraits,
		})
	}
	return nil, out, nil
}

func (s *Server) handleWeave(ctx context.Context, req *sdk.CallToolRequest, input WeaveInput) (*sdk.CallToolResult, WeaveOutput, error) {
	if len(input.Threads) < 2 {
		return nil, WeaveOutput{}, fmt.Errorf("at least two threads are required")
	}
	e, err := engine.New(s.defs, engine.Options{
		Tier:   types.Tier(strings.ToLower(input.Tier)),
		Unlock: input.Unlock,
		Logger: s.logger,
	})
	if err != nil {
		return nil, WeaveOutput{}, err
	}

	for _, p := range input.Threads {
		name, err := resolve.Thread(s.defs.Threads, p.Name)
		if err != nil {
			return nil, WeaveOutput{}, err
		}
		var pos *types.Coord
		if p.At != "" {
			c, err := loom.ParseCoord(p.At)
			if err != nil {
				return nil, WeaveOutput{}, err
			}
			pos = &c
		}
		e.State.Hand = []types.Thread{libraryThread(s.defs.Threads, name)}
		if _, err := e.Place(name, pos); err != nil {
			return nil, WeaveOutput{}, err
		}
	}

	evts, err := e.Weave()
	if err != nil {
		return nil, WeaveOutput{}, err
	}
	out := WeaveOutput{
		Weave:     report.Build(e.State.Last, nil),
		Narration: report.Weave(e.State.Last),
		Events:    make([]string, 0, len(evts)),
	}
	for _, ev := range evts {
		out.Events = append(out.Events, ev.Type)
	}
	return nil, out, nil
}

func (s *Server) handleListArchetypes(ctx context.Context, req *sdk.CallToolRequest, input ListArchetypesInput) (*sdk.CallToolResult, ListArchetypesOutput, error) {
	defs := make([]types.ArchetypeDef, 0, len(s.defs.Archetypes))
	for _, d := range s.defs.Archetypes {
		if input.Tier == "" || strings.EqualFold(d.Tier, input.Tier) {
			defs = append(defs, d)
		}
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return archetype.TierRank(defs[i].Tier) < archetype.TierRank(defs[j].Tier)
	})

	output := make([]ArchetypeEntryOutput, 0, len(defs))
	for _, d := range defs {
		output = append(output, ArchetypeEntryOutput{
			Name:     d.Name,
			Tier:     d.Tier,
			Stars:    report.Stars(d.Tier),
			Requires: report.Requirements(d.Required),
			Flavor:   d.Flavor,
		})
	}
	return nil, ListArchetypesOutput{Archetypes: output}, nil
}

func (s *Server) handleListEpics(ctx context.Context, req *sdk.CallToolRequest, input ListEpicsInput) (*sdk.CallToolResult, ListEpicsOutput, error) {
	if input.Projection != "" {
		if _, ok := epic.ByID(epic.Projections(), input.Projection); !ok {
			return nil, ListEpicsOutput{}, fmt.Errorf("unknown projection %q", input.Projection)
		}
	}
	output := make([]EpicEntryOutput, 0, len(s.defs.Epics))
	for _, ep := range s.defs.Epics {
		if input.Projection != "" && ep.Projection != input.Projection {
			continue
		}
		beats := make([]string, len(ep.Beats))
		for i, b := range ep.Beats {
			beats[i] = b.Label
		}
		output = append(output, EpicEntryOutput{
			Name:       ep.Name,
			Projection: ep.Projection,
			Beats:      beats,
			OnComplete: ep.OnComplete,
		})
	}
	return nil, ListEpicsOutput{Epics: output}, nil
}

func (s *Server) handleListThreads(ctx context.Context, req *sdk.CallToolRequest, input ListThreadsInput) (*sdk.CallToolResult, ListThreadsOutput, error) {
	output := make([]ThreadEntryOutput, 0, len(s.defs.Threads))
	for _, t := range s.defs.Threads {
		if input.Rarity != "" && !strings.EqualFold(t.Rarity, input.Rarity) {
			continue
		}
		output = append(output, ThreadEntryOutput{
			Name:   t.Name,
			Rarity: t.Rarity,
			Nature: t.Nature,
			Flavor: t.Flavor,
		})
	}
	return nil, ListThreadsOutput{Threads: output}, nil
}

func unifyOutput(u types.Unification) UnifyOutput {
	return UnifyOutput{
		Stability:  string(u.Stability),
		Unified:    report.ExportNature(u.Unified),
		Conflicts:  nonNil(u.Conflicts),
		Resonances: nonNil(u.Resonances),
	}
}

func libraryThread(lib []types.Thread, name string) types.Thread {
	for _, t := range lib {
		if t.Name == name {
			return t
		}
	}
	return types.Thread{Name: name}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
