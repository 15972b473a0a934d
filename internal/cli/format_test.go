package cli

import (
	"testing"
	"time"

	"github.com/theirongolddev/messbook/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00 BDT"},
		{12.5, "12.50 BDT"},
		{1234.5, "1,234.50 BDT"},
		{1234567.891, "1,234,567.89 BDT"},
		{-250, "-250.00 BDT"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTaka(t *testing.T) {
	if got := FormatTaka(45.333); got != "৳45.33" {
		t.Errorf("FormatTaka(45.333) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	for in, want := range map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"} {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2025, 3, 22, 18, 0, 0, 0, time.UTC)
	n := model.Notice{Date: "2025-03-22", Time: "16:00:00"}
	if got := FormatAgo(n, now); got != "2 hours ago" {
		t.Errorf("FormatAgo = %q, want 2 hours ago", got)
	}
	legacy := model.Notice{Date: "2025-03-22", Time: "4:00:00 PM"}
	if got := FormatAgo(legacy, now); got != "2025-03-22 4:00:00 PM" {
		t.Errorf("FormatAgo(legacy) = %q", got)
	}
}

func TestFormatMemberID(t *testing.T) {
	id := int64(42)
	if FormatMemberID(nil) != "-" || FormatMemberID(&id) != "42" {
		t.Error("FormatMemberID mismatch")
	}
}
