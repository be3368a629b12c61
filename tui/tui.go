package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/tink/cli"
	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/report"
	"github.com/nathoo/tink/types"
)

const historySize = 100

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed weaver input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the tink TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width       int
	height      int
	ready       bool
	trace       bool
	quitting    bool
	lastCmd     string
	exportDir   string
	historyPath string // empty disables persistence
}

// sessionOutputMsg carries output from the engine into the Update loop.
type sessionOutputMsg struct {
	input    string   // echoed weaver input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:    eng,
		input:     ti,
		history:   NewHistory(historySize),
		exportDir: filepath.Join(home, ".tink", "weaves"),
	}
}

// Run starts the Bubble Tea program. Command history is kept in
// ~/.tink/history across sessions.
func Run(eng *engine.Engine) error {
	m := New(eng)
	if home, err := os.UserHomeDir(); err == nil {
		m.historyPath = filepath.Join(home, ".tink", "history")
		if h, err := LoadHistory(m.historyPath, historySize); err == nil {
			m.history = h
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro and opening hand.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := []string{
			fmt.Sprintf("tink: a %s loom (%d cells)", m.engine.State.Tier, loom.Size(m.engine.State.Tier)),
			"",
			cli.Intro,
			"",
		}
		result := m.engine.Step("draw")
		lines = append(lines, result.Output...)
		return sessionOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, session output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.saveHistory()
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case sessionOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(sessionOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(sessionOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			m.saveHistory()
			return m, tea.Quit
		}
		return m, nil
	}

	// Session command.
	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, m.formatTrace(result)...)
	}
	m = m.appendOutput(sessionOutputMsg{input: input, lines: output})
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg sessionOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: msg.input, isInput: true})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between commands.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		switch {
		case rl.isInput:
			styled = append(styled, styledPlayerInput(wordWrap(rl.text, width-2)))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wordWrap(rl.text, width-2)))
		default:
			styled = append(styled, renderLineKind(wordWrap(rl.text, width), rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindHeader:
		return styleHeader.Render(line)
	case kindHarmony, kindResonance, kindTension, kindParadox:
		return stabilityStyles[kind].Render(line)
	case kindArchetype:
		return styledArchetype(line)
	case kindFlavor:
		return styleFlavor.Render(line)
	case kindCascade:
		return styleCascade.Render(line)
	case kindEpicComplete:
		return styleEpicComplete.Render(line)
	case kindEpicPartial:
		return styleEpicPartial.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Lines that fit are returned untouched, so loom rows keep their
// spacing. Wrapped lines repeat the leading indentation.
func wordWrap(text string, width int) string {
	if width <= 0 || len([]rune(text)) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len([]rune(word))

		if i == 0 {
			result.WriteString(indent)
			result.WriteString(word)
			lineLen = len(indent) + wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(indent)
			result.WriteString(word)
			lineLen = len(indent) + wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Threading the loom..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"The loom rests."}, true

	case "/export":
		return m.cmdExport(arg), false

	case "/review":
		return m.cmdReview(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdExport(name string) []string {
	if name == "" {
		name = "last"
	}
	last := m.engine.State.Last
	if last == nil {
		return []string{"Export failed: nothing has been woven yet."}
	}

	data, err := report.Export(last, m.engine.State)
	if err != nil {
		return []string{fmt.Sprintf("Export failed: %v", err)}
	}

	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		return []string{fmt.Sprintf("Export failed: %v", err)}
	}

	path := filepath.Join(m.exportDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return []string{fmt.Sprintf("Export failed: %v", err)}
	}

	return []string{fmt.Sprintf("Weave %d exported to %s.", last.Number, name)}
}

func (m *Model) cmdReview(name string) []string {
	if name == "" {
		name = "last"
	}

	path := filepath.Join(m.exportDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("Review failed: %v", err)}
	}

	ed, err := report.Load(data)
	if err != nil {
		return []string{fmt.Sprintf("Review failed: %v", err)}
	}

	output := []string{fmt.Sprintf("Weave %d (%s), seed %d.", ed.Weave, ed.Tier, ed.Seed)}
	for i, cd := range ed.Crossings {
		line := fmt.Sprintf("  [%d] %s × %s  %s", i+1, cd.A, cd.B, cd.Stability)
		if cd.Archetype != "" {
			line += fmt.Sprintf("  %s %s", report.Stars(cd.Tier), cd.Archetype)
		}
		output = append(output, line)
	}
	for _, ep := range ed.Epics {
		if ep.Complete {
			output = append(output, fmt.Sprintf("  ✦ %s [%s]", ep.Name, ep.Projection))
		}
	}
	return output
}

func (m *Model) cmdHelp() []string {
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
	for _, line := range engine.HelpText() {
		help = append(help, "  "+line)
	}
	return append(help,
		"  again (g)                repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	)
}

func (m *Model) cmdState() []string {
	s := m.engine.State
	names := make([]string, len(s.Hand))
	for i, t := range s.Hand {
		names[i] = t.Name
	}
	return []string{
		fmt.Sprintf("Tier: %s (%d/%d placed)", s.Tier, m.engine.Loom.Occupied(), loom.Size(s.Tier)),
		fmt.Sprintf("Weaves: %d", s.Weaves),
		fmt.Sprintf("Hand: %v", names),
		fmt.Sprintf("Seed: %d at position %d", s.RNGSeed, s.RNGPosition),
		fmt.Sprintf("Projections: %s", strings.Join(m.openProjections(), ", ")),
	}
}

func (m *Model) formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

func (m *Model) saveHistory() {
	if m.historyPath == "" {
		return
	}
	_ = m.history.Save(m.historyPath)
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
