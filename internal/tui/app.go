// Package tui provides the interactive Bubble Tea dashboard for messbook.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/messbook/internal/config"
	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dashboard is everything one reload reads from the service.
type dashboard struct {
	ledger   model.Ledger
	summary  model.Summary
	planner  mess.PlannerView
	calc     mess.CalculatorView
	expenses []model.Expense   // newest first
	meals    []model.MealCount // newest first
	notices  []model.Notice    // newest first
}

// dataLoadedMsg is sent when a reload finishes.
type dataLoadedMsg struct {
	data     dashboard
	loadTime time.Duration
	err      error
}

// mutationMsg is sent when a write to the service finishes.
type mutationMsg struct {
	status string
	err    error
}

// listState is the selection within one tab. Tabs with several lists
// (Ledger, Board) switch between them with tab.
type listState struct {
	section int
	cursor  [3]int
}

// App is the root Bubble Tea model.
type App struct {
	svc     *mess.Service
	cfg     config.Config
	backend string

	// Data
	data     dashboard
	loaded   bool
	loadTime time.Duration
	lastLoad time.Time
	loadErr  error
	calcIn   model.CalculatorInput

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	busy      bool
	flash     string
	flashErr  bool

	// Per-tab state
	lists    [6]listState
	settings settingsState

	// Add-record form
	form     *huh.Form
	formKind formKind
	formVals *formValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the root model over svc. needSetup shows the first-run
// form before the dashboard.
func NewApp(svc *mess.Service, cfg config.Config, needSetup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		svc:      svc,
		cfg:      cfg,
		backend:  cfg.General.Backend,
		spinner:  sp,
		formVals: &formValues{},
		calcIn: model.CalculatorInput{
			MonthlyBudget: cfg.Budget.CalculatorBudget,
			Days:          cfg.Budget.CalculatorDays,
			MealsPerDay:   cfg.Budget.MealsPerDay,
		},
	}
	if needSetup {
		a.needSetup = true
		a.setupVals = newSetupValues(cfg)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, loadCmd(a.svc, a.calcIn)}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width-4, 72))
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil || a.needSetup {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		return a.handleKey(msg)

	case spinner.TickMsg:
		if a.loaded && !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case dataLoadedMsg:
		a.busy = false
		a.loaded = true
		a.loadTime = msg.loadTime
		a.loadErr = msg.err
		if msg.err == nil {
			a.data = msg.data
			a.lastLoad = time.Now()
			a.clampCursors()
		}
		return a, nil

	case mutationMsg:
		a.busy = false
		if msg.err != nil {
			a.flash, a.flashErr = msg.err.Error(), true
			return a, nil
		}
		a.flash, a.flashErr = msg.status, false
		a.busy = true
		return a, tea.Batch(a.spinner.Tick, loadCmd(a.svc, a.calcIn))
	}

	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "r":
		a.busy = true
		a.flash = ""
		return a, tea.Batch(a.spinner.Tick, loadCmd(a.svc, a.calcIn))
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "j", "down":
		if a.activeTab == components.TabSettings {
			a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
			return a, nil
		}
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		if a.activeTab == components.TabSettings {
			a.settings.cursor = max(a.settings.cursor-1, 0)
			return a, nil
		}
		a.moveCursor(-1)
		return a, nil
	case "tab":
		if n := sectionCount(a.activeTab); n > 1 {
			ls := &a.lists[a.activeTab]
			ls.section = (ls.section + 1) % n
		}
		return a, nil
	case "enter":
		if a.activeTab == components.TabSettings {
			return a.settingsStartEdit()
		}
		return a, nil
	case "a":
		return a.openAddForm()
	case "c":
		if a.activeTab == components.TabPlanner {
			return a.startForm(formCalculator)
		}
	case "d":
		return a, a.deleteSelected()
	case "t":
		return a, a.toggleSelected()
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

// ─── Selection ──────────────────────────────────────────────────

const (
	sectionExpenses = 0
	sectionMeals    = 1

	sectionNotices = 0
	sectionDebts   = 1
	sectionTasks   = 2
)

func sectionCount(tab int) int {
	switch tab {
	case components.TabLedger:
		return 2
	case components.TabBoard:
		return 3
	case components.TabMembers:
		return 1
	}
	return 0
}

func (a App) rowCount(tab, section int) int {
	switch tab {
	case components.TabLedger:
		if section == sectionMeals {
			return len(a.data.meals)
		}
		return len(a.data.expenses)
	case components.TabMembers:
		return len(a.data.summary.Members)
	case components.TabBoard:
		switch section {
		case sectionNotices:
			return len(a.data.notices)
		case sectionDebts:
			return len(a.data.ledger.Debts)
		case sectionTasks:
			return len(a.data.ledger.Tasks)
		}
	}
	return 0
}

func (a *App) moveCursor(delta int) {
	if sectionCount(a.activeTab) == 0 {
		return
	}
	ls := &a.lists[a.activeTab]
	n := a.rowCount(a.activeTab, ls.section)
	ls.cursor[ls.section] = min(max(ls.cursor[ls.section]+delta, 0), max(n-1, 0))
}

func (a *App) clampCursors() {
	for tab := range a.lists {
		for sec := 0; sec < sectionCount(tab); sec++ {
			n := a.rowCount(tab, sec)
			a.lists[tab].cursor[sec] = min(a.lists[tab].cursor[sec], max(n-1, 0))
		}
	}
}

// selected returns the cursor position in the active list, or -1 when the
// list is empty.
func (a App) selected() (section, idx int) {
	ls := a.lists[a.activeTab]
	if a.rowCount(a.activeTab, ls.section) == 0 {
		return ls.section, -1
	}
	return ls.section, ls.cursor[ls.section]
}

func (a App) deleteSelected() tea.Cmd {
	section, i := a.selected()
	if i < 0 {
		return nil
	}
	svc := a.svc
	var (
		id     int64
		what   string
		remove func(context.Context, int64) (bool, error)
	)
	switch a.activeTab {
	case components.TabLedger:
		if section == sectionMeals {
			id, what, remove = a.data.meals[i].ID, "meal count", svc.RemoveMealCount
		} else {
			id, what, remove = a.data.expenses[i].ID, "expense", svc.RemoveExpense
		}
	case components.TabMembers:
		m := a.data.summary.Members[i].Member
		id, what, remove = m.ID, "member "+m.Name, svc.RemoveMember
	case components.TabBoard:
		switch section {
		case sectionNotices:
			id, what, remove = a.data.notices[i].ID, "notice", svc.RemoveNotice
		case sectionDebts:
			id, what, remove = a.data.ledger.Debts[i].ID, "debt", svc.RemoveDebt
		case sectionTasks:
			id, what, remove = a.data.ledger.Tasks[i].ID, "task", svc.RemoveTask
		}
	}
	if remove == nil {
		return nil
	}
	return mutateCmd(func(ctx context.Context) (string, error) {
		if _, err := remove(ctx, id); err != nil {
			return "", err
		}
		return "Deleted " + what, nil
	})
}

func (a App) toggleSelected() tea.Cmd {
	section, i := a.selected()
	if a.activeTab != components.TabBoard || section != sectionTasks || i < 0 {
		return nil
	}
	task := a.data.ledger.Tasks[i]
	svc := a.svc
	return mutateCmd(func(ctx context.Context) (string, error) {
		st, err := svc.ToggleTask(ctx, task.ID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s marked %s", task.Name, st), nil
	})
}

// ─── Commands ───────────────────────────────────────────────────

func loadCmd(svc *mess.Service, in model.CalculatorInput) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		d, err := loadDashboard(context.Background(), svc, in)
		return dataLoadedMsg{data: d, loadTime: time.Since(start), err: err}
	}
}

func loadDashboard(ctx context.Context, svc *mess.Service, in model.CalculatorInput) (dashboard, error) {
	var (
		d   dashboard
		err error
	)
	if d.ledger, err = svc.Ledger(ctx); err != nil {
		return d, err
	}
	if d.summary, err = svc.Summary(ctx, "", ""); err != nil {
		return d, err
	}
	if d.planner, err = svc.Planner(ctx); err != nil {
		return d, err
	}
	if d.calc, err = svc.Calculator(ctx, in); err != nil {
		return d, err
	}
	if d.notices, err = svc.Notices(ctx); err != nil {
		return d, err
	}
	d.expenses = reversed(d.ledger.Expenses)
	d.meals = reversed(d.ledger.MealCounts)
	return d, nil
}

func mutateCmd(fn func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return mutationMsg{status: status, err: err}
	}
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// ─── Layout ─────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.form != nil {
		return a.viewForm()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  messbook needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ messbook"))
	b.WriteString(subtitleStyle.Render(" · Mess Management"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + a.backend + " store..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o l m b p x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"tab", "Switch list (Ledger, Board)"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"a", "Add a record to the selected list"},
			{"d", "Delete the selected record"},
			{"t", "Toggle the selected task"},
			{"c", "Run the calculator (Planner)"},
			{"Enter", "Edit setting"},
			{"r", "Reload"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[a]dd [d]elete [r]eload [?]help [q]uit"
	switch a.activeTab {
	case components.TabBoard:
		hints = "[a]dd [d]elete [t]oggle [tab]list [?]help [q]uit"
	case components.TabLedger:
		hints = "[a]dd [d]elete [tab]list [r]eload [?]help [q]uit"
	case components.TabPlanner:
		hints = "[a] set budget [c]alculator [r]eload [?]help [q]uit"
	case components.TabSettings:
		hints = "[j/k] navigate [Enter] edit [?]help [q]uit"
	}
	info := a.backend
	if !a.lastLoad.IsZero() {
		info += " · " + a.lastLoad.Format("15:04:05")
	}
	switch {
	case a.loadErr != nil:
		info = "load failed: " + a.loadErr.Error()
	case a.flash != "":
		info = a.flash + " · " + info
	}
	statusBar := components.RenderStatusBar(w, hints, info, a.busy, a.flashErr || a.loadErr != nil)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabOverview:
		content = a.renderOverviewTab(cw)
	case components.TabLedger:
		content = a.renderLedgerTab(cw, contentH)
	case components.TabMembers:
		content = a.renderMembersTab(cw, contentH)
	case components.TabBoard:
		content = a.renderBoardTab(cw, contentH)
	case components.TabPlanner:
		content = a.renderPlannerTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}
