package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/engine/state"
)

// openProjections returns the ids of unlocked projections in catalog order.
func (m Model) openProjections() []string {
	var ids []string
	for _, p := range m.engine.Projections {
		if state.IsUnlocked(m.engine.State, p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// renderStatusBar produces a full-width inverted status line showing the
// loom tier and fill, the hand, open projections and the weave count.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	left := fmt.Sprintf(" %s %d/%d | %s", s.Tier, m.engine.Loom.Occupied(), loom.Size(s.Tier),
		strings.Join(m.openProjections(), ","))
	right := fmt.Sprintf("W:%d ", s.Weaves)

	// Show hand names if they fit, otherwise just count.
	if n := len(s.Hand); n > 0 {
		names := make([]string, n)
		for i, t := range s.Hand {
			names[i] = t.Name
		}
		candidate := fmt.Sprintf("Hand: %s | W:%d ", strings.Join(names, ", "), s.Weaves)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Hand: %d | W:%d ", n, s.Weaves)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
