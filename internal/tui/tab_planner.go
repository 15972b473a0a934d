package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/plan"
	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPlannerTab(cw int) string {
	t := theme.Active
	p := a.data.planner
	c := a.data.calc
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value)
	}

	var b strings.Builder

	// Meter
	var meter string
	if p.HasMeter {
		meter = components.MeterBar(p.Meter, max(components.CardInnerWidth(cw)-10, 10)) + "\n" +
			labelStyle.Render(cli.FormatTaka(p.Meter.Spent)+" of "+cli.FormatTaka(p.Meter.Budget)+" spent")
	} else {
		meter = labelStyle.Render("No budget set. Press a to set the monthly meal budget.")
	}
	b.WriteString(components.ContentCard("Budget meter", meter, cw))
	b.WriteString("\n")

	planner := strings.Join([]string{
		row("Monthly budget", cli.FormatTaka(p.Stats.Budget)),
		row("Spent", cli.FormatTaka(p.Stats.Spent)),
		row("Remaining", cli.FormatTaka(p.Stats.Remaining)),
		row("Days remaining", fmt.Sprintf("%d", p.Stats.DaysRemaining)),
		row("Members", fmt.Sprintf("%d × %d meals/day", p.Stats.Members, p.Stats.MealsPerDay)),
		row("Per meal", cli.FormatTaka(p.Stats.PerMeal)),
		labelStyle.Render(fmt.Sprintf("%-18s", "Plan")) + accentStyle.Render(p.Tier.Name),
	}, "\n")

	in := c.Result.CalculatorInput
	calc := strings.Join([]string{
		row("Budget", cli.FormatTaka(in.MonthlyBudget)),
		row("Days × meals", fmt.Sprintf("%d × %d", in.Days, in.MealsPerDay)),
		row("Spent so far", cli.FormatTaka(c.Result.Spent)),
		row("Remaining", cli.FormatTaka(c.Result.Remaining)),
		row("Daily", cli.FormatTaka(c.Result.Daily)),
		row("Per meal", cli.FormatTaka(c.Result.PerMeal)),
		labelStyle.Render(fmt.Sprintf("%-18s", "Plan")) + accentStyle.Render(c.Tier.Label()),
	}, "\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Month-end planner", planner, cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Calculator [c]", calc, cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Month-end planner", planner, widths[0]),
			components.ContentCard("Calculator [c]", calc, widths[1]),
		}))
	}
	b.WriteString("\n")
	b.WriteString(renderTierCard(p.Tier, cw))
	return b.String()
}

func renderTierCard(tier plan.Tier, cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	if tier.Range != "" {
		b.WriteString(labelStyle.Render(tier.Range + " per meal"))
		b.WriteString("\n")
	}
	if tier.Tagline != "" {
		b.WriteString(valueStyle.Render(truncStr(tier.Tagline, innerW)))
		b.WriteString("\n")
	}
	if tier.HasMenu() {
		for _, meal := range []struct{ name, menu string }{
			{"Breakfast", tier.Breakfast},
			{"Lunch", tier.Lunch},
			{"Dinner", tier.Dinner},
		} {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", meal.name)))
			b.WriteString(valueStyle.Render(truncStr(meal.menu, innerW-10)))
			b.WriteString("\n")
		}
	}
	if tier.Suggestion != "" {
		b.WriteString(warnStyle.Render(truncStr(tier.Suggestion, innerW)))
	}

	title := tier.Heading
	if title == "" {
		title = tier.Name
	}
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), cw)
}
