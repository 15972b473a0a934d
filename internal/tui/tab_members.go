package tui

import (
	"fmt"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMembersTab(cw, h int) string {
	t := theme.Active
	s := a.data.summary

	rows := make([][]string, len(s.Members))
	for i, ms := range s.Members {
		rows[i] = []string{
			ms.Member.Name,
			ms.Member.Phone,
			ms.Member.JoinDate,
			cli.FormatNumber(int64(ms.Meals)),
			cli.FormatTaka(ms.Cost),
			cli.FormatTaka(ms.Paid),
			cli.FormatTaka(ms.Balance),
		}
	}
	list := listView{
		title: "Members",
		columns: []listColumn{
			{title: "Name"},
			{title: "Phone", width: 14},
			{title: "Joined", width: 10},
			{title: "Meals", width: 6, right: true},
			{title: "Cost", width: 12, right: true},
			{title: "Paid", width: 10, right: true},
			{title: "Balance", width: 12, right: true},
		},
		rows:    rows,
		cursor:  a.lists[components.TabMembers].cursor[0],
		focused: true,
		empty:   "No members yet. Press a to add one.",
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	footer := labelStyle.Render("Meal rate ") + valueStyle.Render(cli.FormatTaka(s.MealRate)) +
		labelStyle.Render(" = ") + valueStyle.Render(cli.FormatTaka(s.TotalExpenses)) +
		labelStyle.Render(" / ") + valueStyle.Render(cli.FormatNumber(int64(s.TotalMeals))) +
		labelStyle.Render(" meals. Payments are not tracked, so balance equals cost.")

	detail := a.renderMemberDetail(cw)
	footerCard := components.ContentCard("", footer, cw)
	rowsFit := max(h-listChrome-lipgloss.Height(footerCard)-lipgloss.Height(detail), 1)
	return list.render(cw, rowsFit) + "\n" + detail + "\n" + footerCard
}

func (a App) renderMemberDetail(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	_, i := a.selected()
	if a.activeTab != components.TabMembers || i < 0 {
		return components.ContentCard("Contact", labelStyle.Render("Select a member"), cw)
	}
	ms := a.data.summary.Members[i]
	m := ms.Member
	notes := m.Notes
	if notes == "" {
		notes = "-"
	}
	body := labelStyle.Render("Email: ") + valueStyle.Render(m.Email) +
		labelStyle.Render("   Phone: ") + valueStyle.Render(orDash(m.Phone)) + "\n" +
		labelStyle.Render("Notes: ") + valueStyle.Render(truncStr(notes, components.CardInnerWidth(cw)-7)) + "\n" +
		a.renderMealShare(ms.Meals, cw)
	return components.ContentCard(m.Name, body, cw)
}

// renderMealShare draws one member's meals against the mess total.
func (a App) renderMealShare(meals, cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	total := a.data.summary.TotalMeals
	share := 0.0
	if total > 0 {
		share = float64(meals) / float64(total) * 100
	}
	barW := max(components.CardInnerWidth(cw)-30, 4)
	return labelStyle.Render(fmt.Sprintf("Meals: %-5d ", meals)) +
		components.HBar(float64(meals), float64(total), barW, t.Meals) +
		labelStyle.Render(fmt.Sprintf(" %5.1f%% of all", share))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
