package tui

import (
	"strconv"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/tui/components"
)

// listChrome is the card border, title and header lines around list rows.
const listChrome = 5

func (a App) expenseList() listView {
	ls := a.lists[components.TabLedger]
	rows := make([][]string, len(a.data.expenses))
	for i, e := range a.data.expenses {
		rows[i] = []string{e.Date, e.Description, e.Category, cli.FormatTaka(e.Amount)}
	}
	return listView{
		title: "Expenses · " + cli.FormatTaka(a.data.summary.TotalExpenses),
		columns: []listColumn{
			{title: "Date", width: 10},
			{title: "Description"},
			{title: "Category", width: 12},
			{title: "Amount", width: 12, right: true},
		},
		rows:    rows,
		cursor:  ls.cursor[sectionExpenses],
		focused: ls.section == sectionExpenses,
		empty:   "No expenses. Press a to add one.",
	}
}

func (a App) mealList() listView {
	ls := a.lists[components.TabLedger]
	rows := make([][]string, len(a.data.meals))
	for i, m := range a.data.meals {
		rows[i] = []string{m.Date, m.MemberName, cli.FormatMeals(m), strconv.Itoa(m.Total)}
	}
	return listView{
		title: "Meal counts · " + cli.FormatNumber(int64(a.data.summary.TotalMeals)) + " meals",
		columns: []listColumn{
			{title: "Date", width: 10},
			{title: "Member"},
			{title: "B/L/D", width: 8},
			{title: "Total", width: 5, right: true},
		},
		rows:    rows,
		cursor:  ls.cursor[sectionMeals],
		focused: ls.section == sectionMeals,
		empty:   "No meals recorded. Press tab, then a.",
	}
}

func (a App) renderLedgerTab(cw, h int) string {
	if a.isCompactLayout() {
		rows := max(h/2-listChrome, 1)
		return a.expenseList().render(cw, rows) + "\n" + a.mealList().render(cw, rows)
	}
	widths := components.LayoutRow(cw, 2)
	rows := max(h-listChrome, 1)
	return components.CardRow([]string{
		a.expenseList().render(widths[0], rows),
		a.mealList().render(widths[1], rows),
	})
}
