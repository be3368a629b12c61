package report

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nathoo/tink/types"
)

func sampleWeave() *types.Weave {
	return &types.Weave{
		Number:    2,
		Tier:      types.TierHex,
		Crossings: []types.Crossing{sampleCrossing()},
		Run: types.RunResult{
			Results: []types.ProjectedResult{{
				EpicResult: types.EpicResult{
					Epic:           types.EpicDef{Name: "Dawn"},
					CompletedBeats: 2, TotalBeats: 2, Ratio: 1, Complete: true,
				},
				Projection:  types.ProjectionDef{ID: "tapestry", Name: "Tapestry"},
				GoldenCount: 1,
			}},
			GoldenMoments: 1,
		},
	}
}

func TestBuild(t *testing.T) {
	s := &types.State{
		RNGSeed:     42,
		RNGPosition: 5,
		CommandLog:  []string{"draw", "weave"},
		Unlocked:    map[string]bool{"tapestry": true, "heroic": true, "tragedy": false},
	}
	data := Build(sampleWeave(), s)

	if data.Version != ExportVersion || data.Weave != 2 || data.Tier != types.TierHex {
		t.Errorf("header = %+v", data)
	}
	if data.Seed != 42 || data.RNGPosition != 5 || data.Golden != 1 {
		t.Errorf("session fields = %+v", data)
	}
	if !reflect.DeepEqual(data.Unlocked, []string{"heroic", "tapestry"}) {
		t.Errorf("unlocked = %v", data.Unlocked)
	}

	if len(data.Crossings) != 1 {
		t.Fatalf("crossings = %d", len(data.Crossings))
	}
	c := data.Crossings[0]
	if c.A != "Lantern" || c.B != "Frost" || c.From != "0,0" || c.To != "1,0" {
		t.Errorf("crossing ends = %+v", c)
	}
	if c.Archetype != "Aurora" || c.Tier != "rare" || c.Stability != "tension" {
		t.Errorf("crossing result = %+v", c)
	}
	if !reflect.DeepEqual(c.Cascade, []string{"luminous@1,0"}) {
		t.Errorf("cascade = %v", c.Cascade)
	}
	heat, ok := c.Unified["heat"].(map[string]any)
	if !ok {
		t.Fatalf("heat = %#v", c.Unified["heat"])
	}
	if !reflect.DeepEqual(heat["conflict"], []any{3, -2}) {
		t.Errorf("heat conflict = %#v", heat["conflict"])
	}

	if len(data.Epics) != 1 || data.Epics[0].Projection != "tapestry" || !data.Epics[0].Complete {
		t.Errorf("epics = %+v", data.Epics)
	}
}

func TestBuild_NilState(t *testing.T) {
	data := Build(&types.Weave{Number: 1, Tier: types.TierTriad}, nil)
	if data.Seed != 0 || data.CommandLog != nil || data.Unlocked != nil {
		t.Errorf("session fields should be empty: %+v", data)
	}
	if data.Crossings == nil || data.Epics == nil {
		t.Error("slices should be non-nil so they encode as []")
	}
}

func TestExportLoad(t *testing.T) {
	raw, err := Export(sampleWeave(), &types.State{RNGSeed: 7})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(raw), `"conflict": [`) {
		t.Errorf("export should encode conflicts: %s", raw)
	}

	got, err := Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Seed != 7 || got.Weave != 2 || got.Crossings[0].Archetype != "Aurora" {
		t.Errorf("loaded = %+v", got)
	}
	if got.Crossings[0].Resonances[0] != "bright" {
		t.Errorf("resonances = %v", got.Crossings[0].Resonances)
	}
}

func TestLoad_Empty(t *testing.T) {
	got, err := Load([]byte(`{"version":"1","weave":1}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Crossings == nil || got.Epics == nil {
		t.Error("Load should return non-nil slices")
	}
	if _, err := Load([]byte(`{`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestLoad_VersionMismatch(t *testing.T) {
	for _, data := range []string{`{"version":"0","weave":1}`, `{"weave":1}`} {
		if _, err := Load([]byte(data)); err == nil || !strings.Contains(err.Error(), "export version") {
			t.Errorf("Load(%s) err = %v, want a version error", data, err)
		}
	}
}
