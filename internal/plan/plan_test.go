package plan

import (
	"math"
	"testing"
)

func TestForPlannerBoundaries(t *testing.T) {
	tests := []struct {
		v    float64
		want ID
	}{
		{math.Inf(-1), Exceeded},
		{-5, Exceeded},
		{0, Exceeded},
		{0.01, Emergency},
		{40, Emergency},
		{40.01, Basic},
		{50, Basic},
		{50.5, Balanced},
		{60, Balanced},
		{70, Standard},
		{80, Nutrition},
		{90, Comfort},
		{90.01, Premium},
		{math.Inf(1), Premium},
		{math.NaN(), Exceeded},
	}
	for _, tt := range tests {
		if got := ForPlanner(tt.v).ID; got != tt.want {
			t.Errorf("ForPlanner(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestForCalculatorBoundaries(t *testing.T) {
	tests := []struct {
		v    float64
		want ID
	}{
		{-1, Emergency},
		{0, Emergency},
		{40.99, Emergency},
		{41, Basic},
		{50, Basic},
		{55, Balanced},
		{61, Standard},
		{75, Nutrition},
		{90, Comfort},
		{90.5, Premium},
		{math.NaN(), Emergency},
	}
	for _, tt := range tests {
		if got := ForCalculator(tt.v).ID; got != tt.want {
			t.Errorf("ForCalculator(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestCalculatorLabels(t *testing.T) {
	low := ForCalculator(10)
	if low.Label() != "Below Basic Survival Plan - Consider increasing your budget" {
		t.Errorf("low label = %q", low.Label())
	}
	if low.Range != "below ৳41" {
		t.Errorf("low range = %q", low.Range)
	}
	if got := ForCalculator(45).Label(); got != "Basic Survival Plan" {
		t.Errorf("basic label = %q", got)
	}
	if got := ForCalculator(100).Range; got != "above ৳90" {
		t.Errorf("premium range = %q", got)
	}
}

func TestAllTiersLoaded(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("len(All()) = %d, want 8", len(all))
	}
	if all[0].ID != Exceeded || all[7].ID != Premium {
		t.Errorf("tier order = %s..%s, want exceeded..premium", all[0].ID, all[7].ID)
	}
	for _, tier := range all[2:] {
		if !tier.HasMenu() || tier.Tagline == "" {
			t.Errorf("tier %s missing menu or tagline", tier.ID)
		}
	}
	all[0].Name = "mutated"
	if ForPlanner(0).Name == "mutated" {
		t.Error("All() exposed internal slice")
	}
}
