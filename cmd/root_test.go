package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/plan"
)

func setRange(t *testing.T, from, to string) {
	t.Helper()
	oldFrom, oldTo := flagFrom, flagTo
	flagFrom, flagTo = from, to
	t.Cleanup(func() { flagFrom, flagTo = oldFrom, oldTo })
}

func TestInRange(t *testing.T) {
	expenses := []model.Expense{
		{ID: 1, Date: "2025-02-28"},
		{ID: 2, Date: "2025-03-01"},
		{ID: 3, Date: "2025-03-15"},
		{ID: 4, Date: "2025-04-01"},
	}
	tests := []struct {
		from, to string
		want     []int64
	}{
		{"", "", []int64{1, 2, 3, 4}},
		{"2025-03-01", "2025-03-31", []int64{2, 3}},
		{"2025-03-15", "", []int64{3, 4}},
		{"", "2025-03-01", []int64{1, 2}},
	}
	for _, tt := range tests {
		setRange(t, tt.from, tt.to)
		got, err := inRange(expenses)
		if err != nil {
			t.Fatalf("inRange(%q, %q): %v", tt.from, tt.to, err)
		}
		var ids []int64
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		if !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("inRange(%q, %q) = %v, want %v", tt.from, tt.to, ids, tt.want)
		}
	}
}

func TestInRangeRejectsBadDate(t *testing.T) {
	setRange(t, "2025-13-01", "")
	if _, err := inRange([]model.Expense{}); !errors.Is(err, mess.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestRangeLabel(t *testing.T) {
	tests := []struct{ from, to, want string }{
		{"", "", "All time"},
		{"2025-03-01", "", "Since 2025-03-01"},
		{"", "2025-03-31", "Until 2025-03-31"},
		{"2025-03-01", "2025-03-31", "2025-03-01 to 2025-03-31"},
	}
	for _, tt := range tests {
		setRange(t, tt.from, tt.to)
		if got := rangeLabel(); got != tt.want {
			t.Errorf("rangeLabel(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID(" 1741000000000 "); err != nil || id != 1741000000000 {
		t.Errorf("parseID = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "1.5"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) succeeded", bad)
		}
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9", "--detach=true"})
	if want := []string{"serve", "--addr", ":9"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("filterDetachArg = %v, want %v", got, want)
	}
}

func TestResolveDumpPath(t *testing.T) {
	dir := t.TempDir()
	if _, err := resolveDumpPath(dir); err == nil {
		t.Error("resolveDumpPath(empty dir) succeeded")
	}

	older := filepath.Join(dir, "a.json")
	newer := filepath.Join(dir, "b.json")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = os.Chtimes(older, base, base)
	_ = os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute))

	if got, err := resolveDumpPath(dir); err != nil || got != newer {
		t.Errorf("resolveDumpPath(dir) = %q, %v; want %q", got, err, newer)
	}
	if got, err := resolveDumpPath(older); err != nil || got != older {
		t.Errorf("resolveDumpPath(file) = %q, %v", got, err)
	}
}

func TestPrintTierHeadingPerCaller(t *testing.T) {
	// 40.5 per meal is Emergency for the calculator but Basic for the planner.
	calc := plan.ForCalculator(40.5)
	if calc.ID != plan.Emergency {
		t.Fatalf("ForCalculator(40.5) = %s, want emergency", calc.ID)
	}

	var b bytes.Buffer
	printTier(&b, calc.Label(), calc)
	out := b.String()
	if !strings.Contains(out, calc.CalculatorName) {
		t.Errorf("calculator output lacks %q:\n%s", calc.CalculatorName, out)
	}
	if strings.Contains(out, "Below 40") {
		t.Errorf("calculator output carries the planner heading:\n%s", out)
	}

	b.Reset()
	planner := plan.ForPlanner(10)
	printTier(&b, plannerHeading(planner), planner)
	if !strings.HasPrefix(b.String(), "  "+planner.Heading+"\n") {
		t.Errorf("planner output = %q, want heading %q first", b.String(), planner.Heading)
	}
}
