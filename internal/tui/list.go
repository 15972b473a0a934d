package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// listColumn is one column of a selectable list. A zero width takes the
// space left over by the fixed columns.
type listColumn struct {
	title string
	width int
	right bool
}

// listView is a bordered, scrollable list with one highlighted row.
type listView struct {
	title   string
	columns []listColumn
	rows    [][]string
	cursor  int
	focused bool
	empty   string
}

// render draws the list into a card of outer width cw showing at most
// maxRows rows, scrolled so the cursor stays visible.
func (l listView) render(cw, maxRows int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	widths := l.columnWidths(innerW - 2)

	var b strings.Builder
	b.WriteString(headStyle.Render("  " + l.line(func(i int) string { return l.columns[i].title }, widths)))
	b.WriteString("\n")

	if len(l.rows) == 0 {
		b.WriteString(dimStyle.Render("  " + l.empty))
		return components.ContentCard(l.cardTitle(), b.String(), cw)
	}

	maxRows = max(maxRows, 1)
	start := 0
	if l.cursor >= maxRows {
		start = l.cursor - maxRows + 1
	}
	end := min(start+maxRows, len(l.rows))

	for i := start; i < end; i++ {
		row := l.rows[i]
		text := l.line(func(c int) string {
			if c < len(row) {
				return row[c]
			}
			return ""
		}, widths)
		if i == l.cursor && l.focused {
			b.WriteString(selStyle.Render(padRight("▸ "+text, innerW)))
		} else {
			b.WriteString(rowStyle.Render("  " + text))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if len(l.rows) > maxRows {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(l.rows))))
	}
	return components.ContentCard(l.cardTitle(), b.String(), cw)
}

func (l listView) cardTitle() string {
	if l.focused {
		return "● " + l.title
	}
	return l.title
}

func (l listView) columnWidths(total int) []int {
	widths := make([]int, len(l.columns))
	used, flex := 0, 0
	for i, c := range l.columns {
		widths[i] = c.width
		used += c.width + 1
		if c.width == 0 {
			flex++
		}
	}
	if flex > 0 {
		share := max((total-used)/flex, 6)
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

func (l listView) line(cell func(int) string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		s := truncStr(cell(i), w)
		if l.columns[i].right {
			parts[i] = padLeft(s, w)
		} else {
			parts[i] = padRight(s, w)
		}
	}
	return strings.Join(parts, " ")
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-lipgloss.Width(s), 0)) + s
}
