package report

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/types"
)

// ExportVersion is the format version written into every export.
const ExportVersion = "1"

// ExportData is the JSON format of an exported weave.
type ExportData struct {
	Version     string         `json:"version"`
	Weave       int            `json:"weave"`
	Tier        types.Tier     `json:"tier"`
	Seed        int64          `json:"seed"`
	RNGPosition int64          `json:"rng_position"`
	Crossings   []CrossingData `json:"crossings"`
	Epics       []EpicData     `json:"epics"`
	Golden      int            `json:"golden_moments"`
	CommandLog  []string       `json:"command_log,omitempty"`
	Unlocked    []string       `json:"unlocked_projections,omitempty"`
}

// CrossingData is one exported crossing.
type CrossingData struct {
	A            string         `json:"a"`
	B            string         `json:"b"`
	From         string         `json:"from"`
	To           string         `json:"to"`
	Stability    string         `json:"stability"`
	Unified      map[string]any `json:"unified"`
	Conflicts    []string       `json:"conflicts"`
	Resonances   []string       `json:"resonances"`
	Archetype    string         `json:"archetype,omitempty"`
	Tier         string         `json:"tier,omitempty"`
	NearMisses   []string       `json:"near_misses,omitempty"`
	Cascade      []string       `json:"cascade,omitempty"`
	CascadeDepth int            `json:"cascade_depth"`
}

// EpicData is one exported epic result.
type EpicData struct {
	Name       string  `json:"name"`
	Projection string  `json:"projection"`
	Beats      int     `json:"beats"`
	Completed  int     `json:"completed"`
	Ratio      float64 `json:"ratio"`
	Complete   bool    `json:"complete"`
	NearMiss   bool    `json:"near_miss"`
	Golden     int     `json:"golden"`
}

// Export serializes a weave and the session that produced it to JSON bytes.
// s may be nil.
func Export(w *types.Weave, s *types.State) ([]byte, error) {
	return json.MarshalIndent(Build(w, s), "", "  ")
}

// Build converts a weave into its export form.
func Build(w *types.Weave, s *types.State) ExportData {
	data := ExportData{
		Version:   ExportVersion,
		Weave:     w.Number,
		Tier:      w.Tier,
		Crossings: make([]CrossingData, 0, len(w.Crossings)),
		Epics:     make([]EpicData, 0, len(w.Run.Results)),
		Golden:    w.Run.GoldenMoments,
	}
	if s != nil {
		data.Seed = s.RNGSeed
		data.RNGPosition = s.RNGPosition
		data.CommandLog = s.CommandLog
		data.Unlocked = sortedTrue(s.Unlocked)
	}

	for _, c := range w.Crossings {
		cd := CrossingData{
			A:            c.ThreadA.Thread.Name,
			B:            c.ThreadB.Thread.Name,
			From:         loom.Key(c.ThreadA.Position),
			To:           loom.Key(c.ThreadB.Position),
			Stability:    string(c.Unification.Stability),
			Unified:      ExportNature(c.Unification.Unified),
			Conflicts:    nonNil(c.Unification.Conflicts),
			Resonances:   nonNil(c.Unification.Resonances),
			CascadeDepth: c.CascadeDepth,
		}
		if m := c.Archetype.Match; m != nil {
			cd.Archetype = m.Name
			cd.Tier = m.Tier
		}
		for _, nm := range c.Archetype.NearMisses {
			cd.NearMisses = append(cd.NearMisses, nm.Name)
		}
		for _, inj := range c.CascadeApplied {
			cd.Cascade = append(cd.Cascade, inj.Trait+"@"+loom.Key(inj.To))
		}
		data.Crossings = append(data.Crossings, cd)
	}

	for _, r := range w.Run.Results {
		data.Epics = append(data.Epics, EpicData{
			Name:       r.Epic.Name,
			Projection: r.Projection.ID,
			Beats:      r.TotalBeats,
			Completed:  r.CompletedBeats,
			Ratio:      r.Ratio,
			Complete:   r.Complete,
			NearMiss:   r.NearMiss,
			Golden:     r.GoldenCount,
		})
	}
	return data
}

// Load deserializes an export written by this version of Export.
func Load(data []byte) (*ExportData, error) {
	var ed ExportData
	if err := json.Unmarshal(data, &ed); err != nil {
		return nil, err
	}
	if ed.Version != ExportVersion {
		return nil, fmt.Errorf("export version %q: want %q", ed.Version, ExportVersion)
	}
	if ed.Crossings == nil {
		ed.Crossings = []CrossingData{}
	}
	if ed.Epics == nil {
		ed.Epics = []EpicData{}
	}
	return &ed, nil
}

// ExportNature replaces conflict markers with {"conflict": [a, b]} so a
// unified trait set encodes as plain JSON.
func ExportNature(n map[string]any) map[string]any {
	out := make(map[string]any, len(n))
	for k, v := range n {
		if c, ok := v.(types.Conflict); ok {
			out[k] = map[string]any{"conflict": []any{c.From[0], c.From[1]}}
			continue
		}
		out[k] = v
	}
	return out
}

func sortedTrue(m map[string]bool) []string {
	var out []string
	for k, v := range m {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
