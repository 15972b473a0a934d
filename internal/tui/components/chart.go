package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := min(max(int(v/peak*float64(len(blocks)-1)), 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// ColumnChart renders one column per value, oldest on the left, with the
// peak labelled on the y axis. Values beyond what fits are dropped from the
// left so the most recent days stay visible.
func ColumnChart(values []float64, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	yLabel := shortAmount(peak)
	labelW := max(len(yLabel), 3) + 1
	colW := 2
	fit := max((width-labelW-1)/(colW+1), 1)
	if len(values) > fit {
		values = values[len(values)-fit:]
	}

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	eighths := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = yLabel
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, label)))
		for _, v := range values {
			filled := v / peak * float64(height)
			var cell string
			switch {
			case filled >= float64(row):
				cell = strings.Repeat("█", colW)
			case filled > float64(row-1):
				idx := min(max(int(math.Round((filled-float64(row-1))*8)), 1), 8)
				cell = strings.Repeat(string(eighths[idx]), colW)
			default:
				cell = strings.Repeat(" ", colW)
			}
			b.WriteString(bar.Render(cell))
			b.WriteString(blank.Render(" "))
		}
		b.WriteString("\n")
	}
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", labelW, "0", strings.Repeat("─", len(values)*(colW+1)))))
	return b.String()
}

// HBar renders a horizontal bar of value relative to peak.
func HBar(value, peak float64, width int, color lipgloss.Color) string {
	t := theme.Active
	n := 0
	if peak > 0 {
		n = min(max(int(value/peak*float64(width)), 0), width)
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", width-n))
}

func shortAmount(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
