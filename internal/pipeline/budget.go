package pipeline

import (
	"time"

	"github.com/theirongolddev/messbook/internal/model"
)

// Calculator defaults, applied to any zero or negative input.
const (
	DefaultMonthlyBudget  = 3000
	DefaultCalculatorDays = 30
)

// Planner projects the stored budget over the rest of now's month. Spend is
// every recorded expense, unfiltered.
func Planner(l model.Ledger, now time.Time, mealsPerDay int) model.PlannerStats {
	if mealsPerDay <= 0 {
		mealsPerDay = DefaultMealsPerDay
	}
	spent := TotalExpenses(l.Expenses)
	days := DaysRemainingInMonth(now)
	return model.PlannerStats{
		Budget:        l.Budget,
		Spent:         spent,
		Remaining:     l.Budget - spent,
		DaysRemaining: days,
		Members:       len(l.Members),
		MealsPerDay:   mealsPerDay,
		PerMeal:       PerMealBudgetProjection(l.Budget, spent, days, len(l.Members), mealsPerDay),
	}
}

// Meter reports how much of the budget is spent. ok is false when there is
// no positive budget to measure against.
func Meter(budget, spent float64) (m model.MeterStats, ok bool) {
	if budget <= 0 {
		return model.MeterStats{}, false
	}
	pct := spent / budget * 100
	m = model.MeterStats{
		Budget:  budget,
		Spent:   spent,
		Percent: pct,
		Fill:    min(max(pct, 0), 100),
	}
	switch {
	case pct < 50:
		m.Level = model.MeterGreen
	case pct < 80:
		m.Level = model.MeterOrange
	default:
		m.Level = model.MeterRed
	}
	return m, true
}

// Calculate runs the meal budget calculator against spent.
func Calculate(in model.CalculatorInput, spent float64) model.CalculatorResult {
	if in.MonthlyBudget <= 0 {
		in.MonthlyBudget = DefaultMonthlyBudget
	}
	if in.Days <= 0 {
		in.Days = DefaultCalculatorDays
	}
	if in.MealsPerDay <= 0 {
		in.MealsPerDay = DefaultMealsPerDay
	}
	r := model.CalculatorResult{
		CalculatorInput: in,
		Spent:           spent,
		Remaining:       max(0, in.MonthlyBudget-spent),
	}
	r.Daily = r.Remaining / float64(in.Days)
	r.PerMeal = r.Daily / float64(in.MealsPerDay)
	return r
}
