package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const overviewNotices = 5

func (a App) renderOverviewTab(cw int) string {
	s := a.data.summary
	p := a.data.planner
	var b strings.Builder

	budgetValue, budgetDelta := "not set", "press p to plan"
	if p.HasMeter {
		budgetValue = cli.FormatTaka(p.Stats.Budget)
		budgetDelta = cli.FormatPercent(p.Meter.Percent) + " spent"
	}

	metrics := []components.Metric{
		{Label: "Total expenses", Value: cli.FormatTaka(s.TotalExpenses), Delta: cli.FormatNumber(int64(s.ExpenseCount)) + " entries"},
		{Label: "Total meals", Value: cli.FormatNumber(int64(s.TotalMeals)), Delta: fmt.Sprintf("%d members", len(s.Members))},
		{Label: "Meal rate", Value: cli.FormatTaka(s.MealRate), Delta: "per meal"},
		{Label: "Budget", Value: budgetValue, Delta: budgetDelta},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderDailyChart(cw))
		b.WriteString("\n")
		b.WriteString(a.renderCategories(cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderDailyChart(widths[0]),
			a.renderCategories(widths[1]),
		}))
	}
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		a.renderRecentNotices(widths[0]),
		a.renderBoardDigest(widths[1]),
	}))

	return b.String()
}

func (a App) renderDailyChart(w int) string {
	t := theme.Active
	days := a.data.summary.Days
	if len(days) == 0 {
		return components.ContentCard("Daily spend", lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No expenses yet"), w)
	}

	// Days arrive newest first; the chart reads left to right.
	vals := make([]float64, len(days))
	for i, d := range days {
		vals[len(days)-1-i] = d.Expenses
	}
	title := fmt.Sprintf("Daily spend · %s to %s", days[len(days)-1].Date, days[0].Date)
	return components.ContentCard(title, components.ColumnChart(vals, t.Spend, components.CardInnerWidth(w), 6), w)
}

func (a App) renderCategories(w int) string {
	t := theme.Active
	cats := a.data.summary.Categories
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(cats) == 0 {
		return components.ContentCard("Categories", labelStyle.Render("No expenses yet"), w)
	}

	innerW := components.CardInnerWidth(w)
	nameW := 12
	amountW := 12
	barW := max(innerW-nameW-amountW-8, 4)
	peak := cats[0].Amount

	var b strings.Builder
	for i, c := range cats {
		if i >= 7 {
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(padRight(truncStr(c.Category, nameW), nameW) + " "))
		b.WriteString(components.HBar(c.Amount, peak, barW, t.Spend))
		b.WriteString(valueStyle.Render(" " + padLeft(cli.FormatTaka(c.Amount), amountW)))
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %3.0f%%", c.SharePercent)))
	}
	return components.ContentCard("Categories", b.String(), w)
}

func (a App) renderRecentNotices(w int) string {
	t := theme.Active
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	ageStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	innerW := components.CardInnerWidth(w)

	notices := a.data.notices
	if len(notices) == 0 {
		return components.ContentCard("Notice board", ageStyle.Render("Nothing pinned"), w)
	}

	now := a.svc.Now()
	var b strings.Builder
	for i, n := range notices {
		if i >= overviewNotices {
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		age := cli.FormatAgo(n, now)
		text := strings.ReplaceAll(n.Text, "\n", " ")
		b.WriteString(textStyle.Render(truncStr(text, innerW-lipgloss.Width(age)-2)))
		b.WriteString(ageStyle.Render("  " + age))
	}
	return components.ContentCard("Notice board", b.String(), w)
}

func (a App) renderBoardDigest(w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)

	s := a.data.summary
	var b strings.Builder
	b.WriteString(labelStyle.Render("Open tasks:   ") + valueStyle.Render(cli.FormatNumber(int64(s.OpenTasks))) + "\n")
	b.WriteString(labelStyle.Render("Outside debt: "))
	if s.TotalDebts > 0 {
		b.WriteString(warnStyle.Render(cli.FormatTaka(s.TotalDebts)))
	} else {
		b.WriteString(valueStyle.Render(cli.FormatTaka(s.TotalDebts)))
	}
	if n := len(a.data.ledger.Tasks); n > 0 {
		done := float64(n-s.OpenTasks) / float64(n)
		b.WriteString("\n" + labelStyle.Render("Chores done:  ") +
			components.ProgressBar(done, max(components.CardInnerWidth(w)-20, 6)))
	}

	today := a.svc.Now().Format(model.DateLayout)
	var due []string
	for _, task := range a.data.ledger.Tasks {
		if task.Status == model.TaskPending && task.DueDate <= today {
			due = append(due, task.Name+" ("+task.AssignedTo+")")
		}
	}
	if len(due) > 0 {
		b.WriteString("\n\n")
		b.WriteString(warnStyle.Render("Due or overdue"))
		for _, d := range due {
			b.WriteString("\n")
			b.WriteString(valueStyle.Render("  • " + truncStr(d, components.CardInnerWidth(w)-4)))
		}
	}
	return components.ContentCard("Board", b.String(), w)
}
