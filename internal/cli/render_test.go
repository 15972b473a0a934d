package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/messbook/internal/model"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderTableAlignsUnicodeCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Tier", "Range"},
		Rows: [][]string{
			{"Basic", "৳41-50"},
			{"---"},
			{"Premium", "above ৳90"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width %d, want %d: %q", i, lipgloss.Width(l), w, l)
		}
	}
	if !strings.Contains(lines[3], "   ৳41-50 ") {
		t.Errorf("range column not right-aligned: %q", lines[3])
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q", got)
	}
}

func TestRenderMeterCapsFill(t *testing.T) {
	out := RenderMeter(model.MeterStats{Budget: 100, Spent: 150, Percent: 150, Fill: 100, Level: model.MeterRed}, 10)
	if !strings.Contains(out, strings.Repeat("█", 10)) || strings.Contains(out, "░") {
		t.Errorf("meter not full: %q", out)
	}
	if !strings.Contains(out, "150.0%") {
		t.Errorf("meter percent missing: %q", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 50, 100}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
}
