// Package plan classifies a per-meal budget into one of eight meal plan tiers.
package plan

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
)

// ID names a tier.
type ID string

const (
	Exceeded  ID = "exceeded"
	Emergency ID = "emergency"
	Basic     ID = "basic"
	Balanced  ID = "balanced"
	Standard  ID = "standard"
	Nutrition ID = "nutrition"
	Comfort   ID = "comfort"
	Premium   ID = "premium"
)

// Tier is one meal plan with its suggested menu.
type Tier struct {
	ID             ID     `toml:"id"`
	Name           string `toml:"name"`
	Heading        string `toml:"heading"`
	CalculatorName string `toml:"calculator_name"`
	Range          string `toml:"range"`
	Tagline        string `toml:"tagline"`
	Suggestion     string `toml:"suggestion"`
	Breakfast      string `toml:"breakfast"`
	Lunch          string `toml:"lunch"`
	Dinner         string `toml:"dinner"`
}

// HasMenu reports whether the tier lists a breakfast/lunch/dinner menu.
func (t Tier) HasMenu() bool {
	return t.Breakfast != "" || t.Lunch != "" || t.Dinner != ""
}

// Label is the name shown by the calculator.
func (t Tier) Label() string {
	if t.CalculatorName != "" {
		return t.CalculatorName
	}
	return t.Name
}

//go:embed tiers.toml
var tiersTOML string

var (
	tiers []Tier
	byID  map[ID]Tier
)

func init() {
	var doc struct {
		Tier []Tier `toml:"tier"`
	}
	if _, err := toml.Decode(tiersTOML, &doc); err != nil {
		panic(fmt.Sprintf("plan: decoding tiers.toml: %v", err))
	}
	tiers = doc.Tier
	byID = make(map[ID]Tier, len(tiers))
	for _, t := range tiers {
		byID[t.ID] = t
	}
	for _, id := range []ID{Exceeded, Emergency, Basic, Balanced, Standard, Nutrition, Comfort, Premium} {
		if _, ok := byID[id]; !ok {
			panic(fmt.Sprintf("plan: tiers.toml is missing tier %q", id))
		}
	}
}

// All returns every tier from cheapest to most generous.
func All() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Get returns the tier with the given id.
func Get(id ID) (Tier, bool) {
	t, ok := byID[id]
	return t, ok
}

// ForPlanner classifies the month-end planner projection. Zero or less means
// the budget is already spent.
func ForPlanner(perMeal float64) Tier {
	switch {
	case math.IsNaN(perMeal), perMeal <= 0:
		return byID[Exceeded]
	case perMeal <= 40:
		return byID[Emergency]
	}
	return upper(perMeal)
}

// ForCalculator classifies the calculator result. Anything under 41 is
// below basic survival, including zero.
func ForCalculator(perMeal float64) Tier {
	if math.IsNaN(perMeal) || perMeal < 41 {
		return byID[Emergency]
	}
	return upper(perMeal)
}

func upper(v float64) Tier {
	switch {
	case v <= 50:
		return byID[Basic]
	case v <= 60:
		return byID[Balanced]
	case v <= 70:
		return byID[Standard]
	case v <= 80:
		return byID[Nutrition]
	case v <= 90:
		return byID[Comfort]
	default:
		return byID[Premium]
	}
}
