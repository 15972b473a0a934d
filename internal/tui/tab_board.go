package tui

import (
	"strings"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/tui/components"
)

func (a App) renderBoardTab(cw, h int) string {
	ls := a.lists[components.TabBoard]
	now := a.svc.Now()

	noticeRows := make([][]string, len(a.data.notices))
	for i, n := range a.data.notices {
		noticeRows[i] = []string{cli.FormatAgo(n, now), strings.ReplaceAll(n.Text, "\n", " ")}
	}
	notices := listView{
		title: "Notices",
		columns: []listColumn{
			{title: "Posted", width: 16},
			{title: "Notice"},
		},
		rows:    noticeRows,
		cursor:  ls.cursor[sectionNotices],
		focused: ls.section == sectionNotices,
		empty:   "Nothing pinned. Press a to post a notice.",
	}

	debtRows := make([][]string, len(a.data.ledger.Debts))
	for i, d := range a.data.ledger.Debts {
		debtRows[i] = []string{d.Date, d.Name, cli.FormatTaka(d.Amount)}
	}
	debts := listView{
		title: "Debts · " + cli.FormatTaka(a.data.summary.TotalDebts),
		columns: []listColumn{
			{title: "Date", width: 10},
			{title: "Owed to"},
			{title: "Amount", width: 12, right: true},
		},
		rows:    debtRows,
		cursor:  ls.cursor[sectionDebts],
		focused: ls.section == sectionDebts,
		empty:   "No outside debts.",
	}

	taskRows := make([][]string, len(a.data.ledger.Tasks))
	for i, t := range a.data.ledger.Tasks {
		mark := "[ ]"
		if t.Status == model.TaskCompleted {
			mark = "[x]"
		}
		taskRows[i] = []string{mark, t.Name, t.AssignedTo, t.DueDate}
	}
	tasks := listView{
		title: "Tasks",
		columns: []listColumn{
			{title: "", width: 3},
			{title: "Task"},
			{title: "Assigned", width: 12},
			{title: "Due", width: 10},
		},
		rows:    taskRows,
		cursor:  ls.cursor[sectionTasks],
		focused: ls.section == sectionTasks,
		empty:   "No tasks.",
	}

	topRows := max(h/2-listChrome, 1)
	bottomRows := max(h-h/2-listChrome, 1)
	top := notices.render(cw, topRows)
	if a.isCompactLayout() {
		return top + "\n" + debts.render(cw, bottomRows/2) + "\n" + tasks.render(cw, bottomRows/2)
	}
	widths := components.LayoutRow(cw, 2)
	return top + "\n" + components.CardRow([]string{
		debts.render(widths[0], bottomRows),
		tasks.render(widths[1], bottomRows),
	})
}
