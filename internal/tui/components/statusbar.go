package components

import (
	"strings"

	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// info (backend, last load, flash message) on the right. alert paints the
// info in the error color.
func RenderStatusBar(width int, hints, info string, busy, alert bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	infoStyle := style
	if alert {
		infoStyle = infoStyle.Foreground(t.Bad).Bold(true)
	}

	left := " " + hints
	right := info
	if busy {
		right = "syncing… " + right
	}
	if right != "" {
		right += " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left+strings.Repeat(" ", padding)) + infoStyle.Render(right)
}
