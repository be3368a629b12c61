package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")).
			Bold(true)

	styleFlavor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Italic(true)

	styleCascade = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141"))

	styleEpicComplete = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220")).
				Bold(true)

	styleEpicPartial = lipgloss.NewStyle().
				Foreground(lipgloss.Color("180"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// stabilityStyles color a crossing's stability line.
var stabilityStyles = map[lineKind]lipgloss.Style{
	kindHarmony:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	kindResonance: lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
	kindTension:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	kindParadox:   lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true),
}

// tierStyles color an archetype line by the rarity its stars show.
var tierStyles = []struct {
	stars string
	style lipgloss.Style
}{
	{"★★★★", lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)},
	{"★★★", lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)},
	{"★★☆", lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)},
	{"★☆☆", lipgloss.NewStyle().Foreground(lipgloss.Color("78"))},
	{"☆☆☆", lipgloss.NewStyle().Foreground(lipgloss.Color("252"))},
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindHeader
	kindHarmony
	kindResonance
	kindTension
	kindParadox
	kindArchetype
	kindFlavor
	kindCascade
	kindEpicComplete
	kindEpicPartial
	kindSystem
	kindError
	kindTrace
)

// errorPrefixes start the engine's refusal messages.
var errorPrefixes = []string{
	"no thread",
	"which ",
	"the loom needs",
	"Unknown tier",
	"I don't know how to",
	"Draw how many?",
	"Place which thread?",
	"invalid position",
	"position (",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "── "):
		return kindHeader
	case strings.HasPrefix(trimmed, "≡ "):
		return kindHarmony
	case strings.HasPrefix(trimmed, "✨ "):
		return kindResonance
	case strings.HasPrefix(trimmed, "⚡ "):
		return kindTension
	case strings.HasPrefix(trimmed, "☣ "):
		return kindParadox
	case strings.HasPrefix(trimmed, "★") || strings.HasPrefix(trimmed, "☆"):
		return kindArchetype
	case strings.HasPrefix(trimmed, "\""):
		return kindFlavor
	case strings.HasPrefix(trimmed, "↯"):
		return kindCascade
	case strings.HasPrefix(line, "✦"):
		return kindEpicComplete
	case strings.HasPrefix(line, "◇"):
		return kindEpicPartial
	case isError(line):
		return kindError
	default:
		return kindNarration
	}
}

func isError(line string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return strings.HasSuffix(line, "loom is full")
}

// styledArchetype colors an archetype line by its star rating.
func styledArchetype(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, ts := range tierStyles {
		if strings.HasPrefix(trimmed, ts.stars) {
			return ts.style.Render(line)
		}
	}
	return styleNarration.Render(line)
}

// styledPlayerInput renders the echoed player input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
