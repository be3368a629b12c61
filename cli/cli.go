// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for a tink weaving session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/report"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/types"
)

// Intro is printed when a session starts.
const Intro = "The loom waits. Draw threads, place them side by side, and weave."

// CLI handles terminal interaction with the weaver.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	ExportDir string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:    eng,
		In:        os.Stdin,
		Out:       os.Stdout,
		ExportDir: filepath.Join(home, ".tink", "weaves"),
	}
}

// Run starts the session loop. It prints the intro and deals the opening
// hand, then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printLine(Intro)
	c.printLine("")

	result := c.Engine.Step("draw")
	c.printResult(result)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last session command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("The loom rests.")
		return true

	case "/export":
		c.cmdExport(arg)

	case "/review":
		c.cmdReview(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdExport(name string) {
	if name == "" {
		name = "last"
	}
	last := c.Engine.State.Last
	if last == nil {
		c.printSystem("Export failed: nothing has been woven yet.")
		return
	}

	data, err := report.Export(last, c.Engine.State)
	if err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}

	path := filepath.Join(c.ExportDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Weave %d exported to %s.", last.Number, name))
}

func (c *CLI) cmdReview(name string) {
	if name == "" {
		name = "last"
	}

	path := filepath.Join(c.ExportDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Review failed: %v", err))
		return
	}

	ed, err := report.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Review failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Weave %d (%s), seed %d.", ed.Weave, ed.Tier, ed.Seed))
	for i, cd := range ed.Crossings {
		line := fmt.Sprintf("  [%d] %s × %s  %s", i+1, cd.A, cd.B, cd.Stability)
		if cd.Archetype != "" {
			line += fmt.Sprintf("  %s %s", report.Stars(cd.Tier), cd.Archetype)
		}
		c.printLine(line)
	}
	for _, ep := range ed.Epics {
		switch {
		case ep.Complete:
			c.printLine(fmt.Sprintf("  ✦ %s [%s]", ep.Name, ep.Projection))
		case ep.NearMiss:
			c.printLine(fmt.Sprintf("  ◇ %s [%s] %d/%d", ep.Name, ep.Projection, ep.Completed, ep.Beats))
		}
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /export [name]  Export the last weave as JSON (default: last)",
		"  /review [name]  Summarize an exported weave",
		"  /quit           Leave the loom",
		"  /help           Show this help",
		"  /state          Debug: dump session state",
		"  /trace          Toggle event trace output",
		"",
		"Session commands:",
	}
	for _, line := range help {
		c.printLine(line)
	}
	for _, line := range engine.HelpText() {
		c.printLine("  " + line)
	}
	c.printLine("  again (g)                repeat your last command")
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Tier: %s (%d/%d placed)", s.Tier, c.Engine.Loom.Occupied(), loom.Size(s.Tier)))
	c.printSystem(fmt.Sprintf("Weaves: %d", s.Weaves))
	c.printSystem(fmt.Sprintf("Hand: %v", handNames(s.Hand)))
	c.printSystem(fmt.Sprintf("Seed: %d at position %d", s.RNGSeed, s.RNGPosition))
	var open []string
	for _, p := range c.Engine.Projections {
		if state.IsUnlocked(s, p.ID) {
			open = append(open, p.ID)
		}
	}
	c.printSystem(fmt.Sprintf("Projections: %s", strings.Join(open, ", ")))
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

func handNames(hand []types.Thread) []string {
	out := make([]string, len(hand))
	for i, t := range hand {
		out[i] = t.Name
	}
	return out
}
