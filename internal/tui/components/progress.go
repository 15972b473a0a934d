package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a plain bar for a 0..1 fraction with its percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := min(max(int(pct*float64(width)), 0), width)

	filledStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	return b.String() + pctStyle.Render(fmt.Sprintf(" %.0f%%", pct*100))
}

// ColorForLevel returns the theme color of a budget meter level.
func ColorForLevel(l model.MeterLevel) lipgloss.Color {
	t := theme.Active
	switch l {
	case model.MeterGreen:
		return t.Good
	case model.MeterOrange:
		return t.Warn
	default:
		return t.Bad
	}
}

// MeterBar renders the budget meter: a bar filled to m.Fill in the level
// color followed by the uncapped percentage.
func MeterBar(m model.MeterStats, barWidth int) string {
	t := theme.Active
	color := ColorForLevel(m.Level)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(m.Fill/100) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%.1f%%", m.Percent))
}
