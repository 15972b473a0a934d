package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes: %q", i, lines[i])
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	joined := CardRow([]string{
		ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20),
		ContentCard("Short", "A", 30),
	})
	lines := strings.Split(joined, "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{80, 3}, {121, 4}, {10, 1}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(n=0) should be nil")
	}
}

func TestMeterBarUsesUncappedPercent(t *testing.T) {
	theme.SetActive("flexoki-dark")
	out := MeterBar(model.MeterStats{Budget: 100, Spent: 130, Percent: 130, Fill: 100, Level: model.MeterRed}, 20)
	if !strings.Contains(out, "130.0%") {
		t.Errorf("meter = %q, want 130.0%%", out)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('x') != TabSettings || TabIdxByKey('o') != TabOverview || TabIdxByKey('z') != -1 {
		t.Fatal("TabIdxByKey mismatch")
	}
}

func TestColumnChartKeepsRecentValues(t *testing.T) {
	theme.SetActive("flexoki-dark")
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	out := ColumnChart(values, theme.Active.Spend, 40, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("chart lines = %d, want 5", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 40 {
			t.Errorf("line %d width %d exceeds 40", i, w)
		}
	}
}
