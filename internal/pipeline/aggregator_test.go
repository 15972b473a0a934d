package pipeline

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/plan"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func ptr(v int64) *int64 { return &v }

func sampleLedger() model.Ledger {
	return model.Ledger{
		Members: []model.Member{
			{ID: 1, Name: "Rahim"},
			{ID: 2, Name: "Karim"},
			{ID: 3, Name: "Salma"},
		},
		Expenses: []model.Expense{
			{ID: 10, Date: "2025-03-01", Amount: 600, Description: "rice", Category: "groceries"},
			{ID: 11, Date: "2025-03-02", Amount: 300, Description: "fish", Category: "groceries"},
			{ID: 12, Date: "2025-03-05", Amount: 100, Description: "gas", Category: "utilities"},
		},
		MealCounts: []model.MealCount{
			{ID: 20, Date: "2025-03-01", MemberID: ptr(1), MemberName: "Rahim", Breakfast: 1, Lunch: 1, Dinner: 1, Total: 3},
			{ID: 21, Date: "2025-03-02", MemberID: ptr(2), MemberName: "Karim", Breakfast: 1, Lunch: 1, Dinner: 0, Total: 2},
			{ID: 22, Date: "2025-03-05", MemberID: ptr(1), MemberName: "Rahim", Breakfast: 0, Lunch: 1, Dinner: 1, Total: 2},
			{ID: 23, Date: "2025-03-05", MemberID: nil, MemberName: "Guest", Breakfast: 1, Lunch: 1, Dinner: 1, Total: 3},
		},
		Debts: []model.Debt{{ID: 30, Name: "grocer", Amount: 250}},
		Tasks: []model.Task{
			{ID: 40, Status: model.TaskPending},
			{ID: 41, Status: model.TaskCompleted},
		},
		Notices: []model.Notice{{ID: 50, Text: "water off on friday"}},
	}
}

func TestTotals(t *testing.T) {
	l := sampleLedger()
	if got := TotalExpenses(l.Expenses); !approx(got, 1000) {
		t.Errorf("TotalExpenses = %v, want 1000", got)
	}
	if got := TotalExpenses(nil); got != 0 {
		t.Errorf("TotalExpenses(nil) = %v, want 0", got)
	}
	if got := TotalMeals(l.MealCounts); got != 10 {
		t.Errorf("TotalMeals = %d, want 10", got)
	}
	if got := TotalMeals(nil); got != 0 {
		t.Errorf("TotalMeals(nil) = %d, want 0", got)
	}
}

func TestTotalMealsUsesStoredTotal(t *testing.T) {
	counts := []model.MealCount{{Breakfast: 5, Lunch: 5, Dinner: 5, Total: 1}}
	if got := TotalMeals(counts); got != 1 {
		t.Fatalf("TotalMeals = %d, want stored total 1", got)
	}
}

func TestMealRate(t *testing.T) {
	tests := []struct {
		exp   float64
		meals int
		want  float64
	}{
		{100, 50, 2},
		{123, 0, 0},
		{0, 0, 0},
		{0, 7, 0},
	}
	for _, tt := range tests {
		if got := MealRate(tt.exp, tt.meals); !approx(got, tt.want) {
			t.Errorf("MealRate(%v, %d) = %v, want %v", tt.exp, tt.meals, got, tt.want)
		}
	}
}

func TestFilterByDateRange(t *testing.T) {
	l := sampleLedger()
	got := FilterByDateRange(l.Expenses, "2025-03-02", "2025-03-05")
	if len(got) != 2 || got[0].ID != 11 || got[1].ID != 12 {
		t.Fatalf("filtered = %+v, want ids 11, 12", got)
	}

	again := FilterByDateRange(got, "2025-03-02", "2025-03-05")
	if !reflect.DeepEqual(got, again) {
		t.Errorf("filter not idempotent: %+v vs %+v", got, again)
	}

	if got := FilterByDateRange(l.MealCounts, "2025-03-06", "2025-03-01"); len(got) != 0 {
		t.Errorf("inverted range kept %d records", len(got))
	}
}

func TestValidDate(t *testing.T) {
	for s, want := range map[string]bool{
		"2025-03-01": true,
		"2024-02-29": true,
		"2025-02-29": false,
		"2025-3-1":   false,
		"":           false,
		"yesterday":  false,
	} {
		if got := ValidDate(s); got != want {
			t.Errorf("ValidDate(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestPerMemberSummary(t *testing.T) {
	l := sampleLedger()
	rows := PerMemberSummary(l.Members, l.MealCounts, 2.5)

	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	wantMeals := []int{5, 2, 0}
	for i, r := range rows {
		if r.Member.ID != l.Members[i].ID {
			t.Errorf("row %d member = %d, want roster order", i, r.Member.ID)
		}
		if r.Meals != wantMeals[i] {
			t.Errorf("%s meals = %d, want %d", r.Member.Name, r.Meals, wantMeals[i])
		}
		if !approx(r.Balance, float64(r.Meals)*2.5) || r.Paid != 0 || r.Balance != r.Cost {
			t.Errorf("%s cost/paid/balance = %v/%v/%v", r.Member.Name, r.Cost, r.Paid, r.Balance)
		}
	}
}

func TestPerMealBudgetProjection(t *testing.T) {
	tests := []struct {
		name                 string
		budget, spent        float64
		days, members, meals int
		want                 float64
	}{
		{"spent out", 3000, 3000, 10, 2, 3, 0},
		{"overspent", 3000, 3500, 10, 2, 3, 0},
		{"basic", 3000, 0, 10, 2, 3, 50},
		{"no members counts as one", 300, 0, 10, 0, 3, 10},
		{"meals default", 3000, 0, 10, 2, 0, 50},
		{"no days left", 3000, 0, 0, 2, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerMealBudgetProjection(tt.budget, tt.spent, tt.days, tt.members, tt.meals)
			if !approx(got, tt.want) {
				t.Fatalf("projection = %v, want %v", got, tt.want)
			}
		})
	}

	if tier := plan.ForPlanner(PerMealBudgetProjection(3000, 3000, 10, 2, 3)); tier.ID != plan.Exceeded {
		t.Errorf("spent-out tier = %s, want exceeded", tier.ID)
	}
	if tier := plan.ForPlanner(PerMealBudgetProjection(3000, 0, 10, 2, 3)); tier.ID != plan.Basic {
		t.Errorf("50/meal tier = %s, want basic", tier.ID)
	}
}

func TestDaysRemainingInMonth(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-03-01", 31},
		{"2025-03-31", 1},
		{"2025-02-20", 9},
		{"2024-02-20", 10},
		{"2025-12-15", 17},
	}
	for _, tt := range tests {
		d, _ := time.Parse(model.DateLayout, tt.date)
		if got := DaysRemainingInMonth(d); got != tt.want {
			t.Errorf("DaysRemainingInMonth(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestAggregateCategories(t *testing.T) {
	exp := append(sampleLedger().Expenses, model.Expense{Amount: 100})
	cats := AggregateCategories(exp)
	if len(cats) != 3 {
		t.Fatalf("len = %d, want 3", len(cats))
	}
	if cats[0].Category != "groceries" || !approx(cats[0].Amount, 900) || cats[0].Count != 2 {
		t.Errorf("top category = %+v", cats[0])
	}
	if cats[1].Category != "other" || cats[2].Category != "utilities" {
		t.Errorf("tie order = %s, %s; want other, utilities", cats[1].Category, cats[2].Category)
	}
	var share float64
	for _, c := range cats {
		share += c.SharePercent
	}
	if !approx(share, 100) {
		t.Errorf("shares sum to %v, want 100", share)
	}
}

func TestAggregateDays(t *testing.T) {
	l := sampleLedger()
	days := AggregateDays(l.Expenses, l.MealCounts)
	var dates []string
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	if want := []string{"2025-03-05", "2025-03-02", "2025-03-01"}; !reflect.DeepEqual(dates, want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	if days[0].Meals != 5 || !approx(days[0].Expenses, 100) {
		t.Errorf("2025-03-05 = %+v, want 5 meals, 100 spent", days[0])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLedger(), "", "")
	if !approx(s.TotalExpenses, 1000) || s.TotalMeals != 10 || !approx(s.MealRate, 100) {
		t.Fatalf("totals = %v/%d/%v", s.TotalExpenses, s.TotalMeals, s.MealRate)
	}
	if s.OpenTasks != 1 || !approx(s.TotalDebts, 250) || s.NoticeCount != 1 || s.ExpenseCount != 3 {
		t.Errorf("board counts = %+v", s)
	}

	r := Summarize(sampleLedger(), "2025-03-05", "2025-03-05")
	if !approx(r.TotalExpenses, 100) || r.TotalMeals != 5 || !approx(r.MealRate, 20) {
		t.Fatalf("ranged totals = %v/%d/%v", r.TotalExpenses, r.TotalMeals, r.MealRate)
	}
	if len(r.Members) != 3 || r.Members[0].Meals != 2 {
		t.Errorf("ranged members = %+v", r.Members)
	}

	open := Summarize(sampleLedger(), "2025-03-02", "")
	if open.ExpenseCount != 2 {
		t.Errorf("open-ended range kept %d expenses, want 2", open.ExpenseCount)
	}
}
