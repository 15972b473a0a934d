// Package pipeline computes meal rate, per-member costs and budget
// projections from loaded ledger collections. Every function is pure.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/messbook/internal/model"
)

// DefaultMealsPerDay is used when a caller passes zero or less.
const DefaultMealsPerDay = 3

// TotalExpenses sums expense amounts.
func TotalExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalMeals sums the stored totals of meal counts.
func TotalMeals(counts []model.MealCount) int {
	total := 0
	for _, c := range counts {
		total += c.Total
	}
	return total
}

// MealRate is the cost of one meal, or 0 when no meals were eaten.
func MealRate(totalExpenses float64, totalMeals int) float64 {
	if totalMeals <= 0 {
		return 0
	}
	return totalExpenses / float64(totalMeals)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}

// FilterByDateRange keeps records with start <= date <= end. Dates are
// compared as strings, which orders correctly for YYYY-MM-DD.
func FilterByDateRange[T model.Dated](records []T, start, end string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		d := r.RecordDate()
		if d >= start && d <= end {
			out = append(out, r)
		}
	}
	return out
}

// PerMemberSummary allocates the meal cost to each member in roster order.
// Meal counts whose member id is nil or unknown are not attributed.
func PerMemberSummary(members []model.Member, counts []model.MealCount, rate float64) []model.MemberSummary {
	meals := make(map[int64]int, len(members))
	for _, c := range counts {
		if c.MemberID != nil {
			meals[*c.MemberID] += c.Total
		}
	}

	out := make([]model.MemberSummary, 0, len(members))
	for _, m := range members {
		n := meals[m.ID]
		cost := float64(n) * rate
		out = append(out, model.MemberSummary{
			Member:  m,
			Meals:   n,
			Cost:    cost,
			Paid:    0,
			Balance: cost,
		})
	}
	return out
}

// PerMealBudgetProjection spreads what is left of the budget over every
// meal still to be eaten this month. It is 0 once the budget is spent or
// no days remain.
func PerMealBudgetProjection(budget, spent float64, daysRemaining, memberCount, mealsPerDay int) float64 {
	if mealsPerDay <= 0 {
		mealsPerDay = DefaultMealsPerDay
	}
	remaining := budget - spent
	future := daysRemaining * max(memberCount, 1) * mealsPerDay
	if remaining <= 0 || future <= 0 {
		return 0
	}
	return remaining / float64(future)
}

// DaysRemainingInMonth counts today and every later day of t's month.
func DaysRemainingInMonth(t time.Time) int {
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	return last - t.Day() + 1
}

// AggregateCategories computes spend per category sorted by amount
// descending. Uncategorised expenses are grouped under "other".
func AggregateCategories(expenses []model.Expense) []model.CategoryStats {
	byCat := make(map[string]*model.CategoryStats)
	var total float64
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = "other"
		}
		cs, ok := byCat[cat]
		if !ok {
			cs = &model.CategoryStats{Category: cat}
			byCat[cat] = cs
		}
		cs.Amount += e.Amount
		cs.Count++
		total += e.Amount
	}

	cats := make([]model.CategoryStats, 0, len(byCat))
	for _, cs := range byCat {
		if total != 0 {
			cs.SharePercent = cs.Amount / total * 100
		}
		cats = append(cats, *cs)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Amount != cats[j].Amount {
			return cats[i].Amount > cats[j].Amount
		}
		return cats[i].Category < cats[j].Category
	})
	return cats
}

// AggregateDays computes spend and meals per date, most recent first.
func AggregateDays(expenses []model.Expense, counts []model.MealCount) []model.DailyStats {
	dayMap := make(map[string]*model.DailyStats)
	day := func(d string) *model.DailyStats {
		ds, ok := dayMap[d]
		if !ok {
			ds = &model.DailyStats{Date: d}
			dayMap[d] = ds
		}
		return ds
	}
	for _, e := range expenses {
		day(e.Date).Expenses += e.Amount
	}
	for _, c := range counts {
		day(c.Date).Meals += c.Total
	}

	days := make([]model.DailyStats, 0, len(dayMap))
	for _, ds := range dayMap {
		days = append(days, *ds)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// Summarize builds the dashboard aggregate. When either from or to is set,
// expenses and meal counts are restricted to [from, to] first, with an empty
// bound left open. The roster, debts, notices and tasks are never filtered.
func Summarize(l model.Ledger, from, to string) model.Summary {
	expenses, counts := l.Expenses, l.MealCounts
	if from != "" || to != "" {
		lo, hi := from, to
		if hi == "" {
			hi = "9999-12-31"
		}
		expenses = FilterByDateRange(expenses, lo, hi)
		counts = FilterByDateRange(counts, lo, hi)
	}

	s := model.Summary{
		From:          from,
		To:            to,
		TotalExpenses: TotalExpenses(expenses),
		TotalMeals:    TotalMeals(counts),
		ExpenseCount:  len(expenses),
		NoticeCount:   len(l.Notices),
	}
	s.MealRate = MealRate(s.TotalExpenses, s.TotalMeals)
	s.Members = PerMemberSummary(l.Members, counts, s.MealRate)
	s.Categories = AggregateCategories(expenses)
	s.Days = AggregateDays(expenses, counts)

	for _, d := range l.Debts {
		s.TotalDebts += d.Amount
	}
	for _, t := range l.Tasks {
		if t.Status != model.TaskCompleted {
			s.OpenTasks++
		}
	}
	return s
}
