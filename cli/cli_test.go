package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
)

// testDefs returns a three-thread deck that weaves an Aurora on the triad.
func testDefs() *state.Defs {
	return &state.Defs{
		Archetypes: []types.ArchetypeDef{
			{
				Name: "Aurora",
				Tier: "uncommon",
				Required: []types.Requirement{
					{Kind: types.RequireTrait, Trait: "bright", Value: true},
					{Kind: types.RequireTrait, Trait: "cold", Value: true},
				},
			},
		},
		Threads: []types.Thread{
			{Name: "Lantern", Rarity: "common", Nature: types.Nature{"bright": true}},
			{Name: "Frost", Rarity: "common", Nature: types.Nature{"cold": true}},
			{Name: "Tide", Rarity: "common", Nature: types.Nature{"liquid": true}},
		},
		Epics: []types.EpicDef{
			{
				Name:       "Dawn",
				Projection: "tapestry",
				Beats:      []types.Beat{{Label: "spark", Requires: types.Requires{HasArchetype: true}}},
			},
		},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	eng, err := engine.New(testDefs(), engine.Options{Tier: types.TierTriad, Seed: 7})
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var out bytes.Buffer
	c := &CLI{
		Engine:    eng,
		In:        strings.NewReader(input),
		Out:       &out,
		ExportDir: t.TempDir(),
	}
	return c, &out
}

func TestCLI_IntroAndOpeningHand(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, Intro) {
		t.Error("expected intro text in output")
	}
	if !strings.Contains(output, "You draw 3 threads.") {
		t.Errorf("expected opening hand in output, got:\n%s", output)
	}
}

func TestCLI_AutoAndWeave(t *testing.T) {
	c, out := newTestCLI(t, "auto\nweave\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "── Weave 1 (triad) ──") {
		t.Errorf("expected weave header, got:\n%s", output)
	}
	if !strings.Contains(output, "Aurora") {
		t.Error("expected Aurora to emerge")
	}
	if !strings.Contains(output, "✦ Dawn") {
		t.Error("expected Dawn to complete")
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"/export", "/review", "/quit", "weave", "again (g)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in help output", want)
		}
	}
}

func TestCLI_ExportAndReview(t *testing.T) {
	c, out := newTestCLI(t, "auto\nweave\n/export test\n/review test\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Weave 1 exported to test.") {
		t.Errorf("expected export confirmation, got:\n%s", output)
	}
	if !strings.Contains(output, "[Weave 1 (triad), seed 7.]") {
		t.Error("expected review header")
	}
	if !strings.Contains(output, "★☆☆ Aurora") {
		t.Error("expected reviewed crossing with archetype")
	}
	if !strings.Contains(output, "✦ Dawn [tapestry]") {
		t.Error("expected reviewed epic")
	}
}

func TestCLI_ExportBeforeWeave(t *testing.T) {
	c, out := newTestCLI(t, "/export\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "nothing has been woven yet") {
		t.Error("expected export failure before the first weave")
	}
}

func TestCLI_ReviewNonexistent(t *testing.T) {
	c, out := newTestCLI(t, "/review nonexistent\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Review failed") {
		t.Error("expected review failure message")
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/bogus\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("expected unknown command message")
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nauto\n/trace\n/quit\n")
	c.Run()

	output := out.String()
	if !strings.Contains(output, "Trace output enabled") {
		t.Error("expected trace enabled message")
	}
	if !strings.Contains(output, "[trace]   thread_placed") {
		t.Error("expected placement events in trace")
	}
	if !strings.Contains(output, "Trace output disabled") {
		t.Error("expected trace disabled message")
	}
}

func TestCLI_StateCommand(t *testing.T) {
	c, out := newTestCLI(t, "/state\n/quit\n")
	c.Run()

	output := out.String()
	for _, want := range []string{"Tier: triad (0/3 placed)", "Weaves: 0", "Seed: 7", "Projections: tapestry"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in state output", want)
		}
	}
}

func TestCLI_EmptyAndCommentLines(t *testing.T) {
	c, out := newTestCLI(t, "\n# a note\n\n/quit\n")
	c.Run()

	output := out.String()
	if strings.Contains(output, "What do you want to do?") {
		t.Error("empty lines should be silently skipped by CLI")
	}
	if strings.Contains(output, "a note") {
		t.Error("comment lines should be skipped")
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "loom\n/quit\n")
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> loom\n") {
		t.Error("expected echoed input after the prompt")
	}
}

func TestCLI_Again_RepeatsLastCommand(t *testing.T) {
	for _, again := range []string{"again", "g"} {
		t.Run(again, func(t *testing.T) {
			c, out := newTestCLI(t, "loom\n"+again+"\n/quit\n")
			c.Run()

			if n := strings.Count(out.String(), "Loom: triad"); n != 2 {
				t.Errorf("expected the loom twice, got %d", n)
			}
		})
	}
}

func TestCLI_Again_NothingToRepeat(t *testing.T) {
	c, out := newTestCLI(t, "again\n/quit\n")
	c.Run()

	if !strings.Contains(out.String(), "Nothing to repeat") {
		t.Error("expected 'Nothing to repeat' when no prior command")
	}
}
