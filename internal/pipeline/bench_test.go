package pipeline

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/messbook/internal/model"
)

// bigLedger builds a year of daily records for a ten-member mess.
func bigLedger() model.Ledger {
	var l model.Ledger
	for m := int64(1); m <= 10; m++ {
		l.Members = append(l.Members, model.Member{ID: m, Name: fmt.Sprintf("member-%d", m)})
	}
	id := int64(1000)
	for d := 0; d < 365; d++ {
		date := fmt.Sprintf("2025-%02d-%02d", d/31%12+1, d%28+1)
		l.Expenses = append(l.Expenses, model.Expense{ID: id, Date: date, Amount: 450, Category: "groceries"})
		id++
		for m := int64(1); m <= 10; m++ {
			mid := m
			l.MealCounts = append(l.MealCounts, model.MealCount{ID: id, Date: date, MemberID: &mid, Total: 3})
			id++
		}
	}
	return l
}

func BenchmarkSummarize(b *testing.B) {
	l := bigLedger()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(l, "", "")
	}
}

func BenchmarkSummarizeRange(b *testing.B) {
	l := bigLedger()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(l, "2025-03-01", "2025-03-31")
	}
}

func BenchmarkPerMemberSummary(b *testing.B) {
	l := bigLedger()
	rate := MealRate(TotalExpenses(l.Expenses), TotalMeals(l.MealCounts))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = PerMemberSummary(l.Members, l.MealCounts, rate)
	}
}
