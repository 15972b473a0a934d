package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/messbook/internal/mess"
	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/pipeline"
	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type formKind int

const (
	formMember formKind = iota
	formExpense
	formMeal
	formNotice
	formDebt
	formTask
	formBudget
	formCalculator
)

var formTitles = map[formKind]string{
	formMember:     "Add member",
	formExpense:    "Add expense",
	formMeal:       "Record meals",
	formNotice:     "Post notice",
	formDebt:       "Add debt",
	formTask:       "Add task",
	formBudget:     "Set monthly meal budget",
	formCalculator: "Meal budget calculator",
}

// expenseCategories are offered as suggestions; any text is accepted.
var expenseCategories = []string{"groceries", "vegetables", "fish", "meat", "rice", "gas", "utilities", "rent", "other"}

// formValues backs every add form. huh binds to these fields by pointer,
// so the struct lives behind a pointer that survives App copies.
type formValues struct {
	name, email, phone, notes string

	date, amount, description, category string

	member                   string
	breakfast, lunch, dinner string

	text     string
	assignee string
	due      string

	days, mealsPerDay string
}

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	section := a.lists[a.activeTab].section
	switch a.activeTab {
	case components.TabOverview:
		return a.startForm(formExpense)
	case components.TabLedger:
		if section == sectionMeals {
			return a.startForm(formMeal)
		}
		return a.startForm(formExpense)
	case components.TabMembers:
		return a.startForm(formMember)
	case components.TabBoard:
		switch section {
		case sectionDebts:
			return a.startForm(formDebt)
		case sectionTasks:
			return a.startForm(formTask)
		}
		return a.startForm(formNotice)
	case components.TabPlanner:
		return a.startForm(formBudget)
	}
	return a, nil
}

func (a App) startForm(kind formKind) (tea.Model, tea.Cmd) {
	today := a.svc.Now().Format(model.DateLayout)
	v := &formValues{
		date:      today,
		due:       today,
		breakfast: "0",
		lunch:     "1",
		dinner:    "1",
	}
	if kind == formCalculator {
		v.amount = strconv.FormatFloat(a.calcIn.MonthlyBudget, 'f', -1, 64)
		v.days = strconv.Itoa(a.calcIn.Days)
		v.mealsPerDay = strconv.Itoa(a.calcIn.MealsPerDay)
	}

	members := make([]string, 0, len(a.data.ledger.Members))
	for _, m := range a.data.ledger.Members {
		members = append(members, m.Name)
	}

	a.formKind = kind
	a.formVals = v
	a.form = newAddForm(kind, v, members).WithWidth(min(a.width-8, 72))
	a.flash, a.flashErr = "", false
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.form = nil
		if a.formKind == formCalculator {
			in, err := parseCalculator(a.formVals)
			if err != nil {
				a.flash, a.flashErr = err.Error(), true
				return a, nil
			}
			a.calcIn = in
			a.busy = true
			return a, tea.Batch(a.spinner.Tick, loadCmd(a.svc, a.calcIn))
		}
		a.busy = true
		return a, tea.Batch(a.spinner.Tick, submitCmd(a.svc, a.formKind, *a.formVals))
	case huh.StateAborted:
		a.form = nil
		a.flash, a.flashErr = "Cancelled", false
		return a, nil
	}
	return a, cmd
}

func (a App) viewForm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := titleStyle.Render("◈ "+formTitles[a.formKind]) + "\n\n" +
		a.form.View() + "\n" +
		hintStyle.Render("Enter next · Esc cancel")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return km
}

func newAddForm(kind formKind, v *formValues, members []string) *huh.Form {
	var fields []huh.Field

	switch kind {
	case formMember:
		fields = []huh.Field{
			huh.NewInput().Title("Name").Value(&v.name).Validate(required("name")),
			huh.NewInput().Title("Email").Value(&v.email).Validate(required("email")),
			huh.NewInput().Title("Phone").Value(&v.phone),
			huh.NewInput().Title("Notes").Value(&v.notes),
		}
	case formExpense:
		fields = []huh.Field{
			huh.NewInput().Title("Date").Placeholder(model.DateLayout).Value(&v.date).Validate(validDate),
			huh.NewInput().Title("Amount").Value(&v.amount).Validate(validAmount),
			huh.NewInput().Title("Description").Value(&v.description).Validate(required("description")),
			huh.NewInput().Title("Category").Suggestions(expenseCategories).Value(&v.category),
		}
	case formMeal:
		var who huh.Field = huh.NewInput().Title("Member").Value(&v.member).Validate(required("member"))
		if len(members) > 0 {
			v.member = members[0]
			who = huh.NewSelect[string]().Title("Member").Options(huh.NewOptions(members...)...).Value(&v.member)
		}
		fields = []huh.Field{
			huh.NewInput().Title("Date").Placeholder(model.DateLayout).Value(&v.date).Validate(validDate),
			who,
			huh.NewInput().Title("Breakfast").Value(&v.breakfast).Validate(validCount),
			huh.NewInput().Title("Lunch").Value(&v.lunch).Validate(validCount),
			huh.NewInput().Title("Dinner").Value(&v.dinner).Validate(validCount),
		}
	case formNotice:
		fields = []huh.Field{
			huh.NewText().Title("Notice").Lines(3).Value(&v.text).Validate(required("notice text")),
		}
	case formDebt:
		fields = []huh.Field{
			huh.NewInput().Title("Owed to").Value(&v.name).Validate(required("name")),
			huh.NewInput().Title("Amount").Value(&v.amount).Validate(validAmount),
		}
	case formTask:
		assignee := huh.Field(huh.NewInput().Title("Assigned to").Value(&v.assignee).Validate(required("assignee")))
		if len(members) > 0 {
			v.assignee = members[0]
			assignee = huh.NewSelect[string]().Title("Assigned to").Options(huh.NewOptions(members...)...).Value(&v.assignee)
		}
		fields = []huh.Field{
			huh.NewInput().Title("Task").Value(&v.name).Validate(required("task name")),
			assignee,
			huh.NewInput().Title("Due date").Placeholder(model.DateLayout).Value(&v.due).Validate(validDate),
			huh.NewInput().Title("Description").Value(&v.description),
		}
	case formBudget:
		fields = []huh.Field{
			huh.NewInput().Title("Monthly budget (৳)").Value(&v.amount).Validate(validPositive),
		}
	case formCalculator:
		fields = []huh.Field{
			huh.NewInput().Title("Monthly budget (৳)").Value(&v.amount).Validate(validPositive),
			huh.NewInput().Title("Days").Value(&v.days).Validate(validCount),
			huh.NewInput().Title("Meals per day").Value(&v.mealsPerDay).Validate(validCount),
		}
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeDracula()).
		WithKeyMap(formKeyMap()).
		WithShowHelp(false)
}

func submitCmd(svc *mess.Service, kind formKind, v formValues) tea.Cmd {
	return mutateCmd(func(ctx context.Context) (string, error) {
		return submit(ctx, svc, kind, v)
	})
}

// submit writes the form values through the service and returns the status
// line to show.
func submit(ctx context.Context, svc *mess.Service, kind formKind, v formValues) (string, error) {
	switch kind {
	case formMember:
		m, err := svc.AddMember(ctx, mess.MemberInput{Name: v.name, Email: v.email, Phone: v.phone, Notes: v.notes})
		if err != nil {
			return "", err
		}
		return "Added member " + m.Name, nil

	case formExpense:
		amount, err := parseAmount(v.amount)
		if err != nil {
			return "", err
		}
		if _, err := svc.AddExpense(ctx, mess.ExpenseInput{
			Date: strings.TrimSpace(v.date), Amount: amount, Description: v.description, Category: v.category,
		}); err != nil {
			return "", err
		}
		return "Added expense " + strings.TrimSpace(v.description), nil

	case formMeal:
		var counts [3]int
		for i, raw := range []string{v.breakfast, v.lunch, v.dinner} {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return "", fmt.Errorf("meal count %q: %w", raw, mess.ErrInvalidMealCount)
			}
			counts[i] = n
		}
		mc, err := svc.AddMealCount(ctx, mess.MealInput{
			Date: strings.TrimSpace(v.date), MemberName: v.member, Breakfast: counts[0], Lunch: counts[1], Dinner: counts[2],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Recorded %d meals for %s", mc.Total, mc.MemberName), nil

	case formNotice:
		if _, err := svc.PostNotice(ctx, v.text); err != nil {
			return "", err
		}
		return "Notice posted", nil

	case formDebt:
		amount, err := parseAmount(v.amount)
		if err != nil {
			return "", err
		}
		d, err := svc.AddDebt(ctx, v.name, amount)
		if err != nil {
			return "", err
		}
		return "Added debt to " + d.Name, nil

	case formTask:
		t, err := svc.AddTask(ctx, mess.TaskInput{
			Name: v.name, AssignedTo: v.assignee, DueDate: strings.TrimSpace(v.due), Description: v.description,
		})
		if err != nil {
			return "", err
		}
		return "Added task " + t.Name, nil

	case formBudget:
		amount, err := strconv.ParseFloat(strings.TrimSpace(v.amount), 64)
		if err != nil {
			return "", fmt.Errorf("budget %q: %w", v.amount, mess.ErrInvalidBudget)
		}
		if err := svc.SetBudget(ctx, amount); err != nil {
			return "", err
		}
		return "Budget saved", nil
	}
	return "", fmt.Errorf("unknown form %d", kind)
}

func parseCalculator(v *formValues) (model.CalculatorInput, error) {
	budget, err := strconv.ParseFloat(strings.TrimSpace(v.amount), 64)
	if err != nil || math.IsInf(budget, 0) || math.IsNaN(budget) {
		return model.CalculatorInput{}, fmt.Errorf("calculator budget %q: not a number", v.amount)
	}
	days, err := strconv.Atoi(strings.TrimSpace(v.days))
	if err != nil {
		return model.CalculatorInput{}, fmt.Errorf("calculator days %q: not a whole number", v.days)
	}
	meals, err := strconv.Atoi(strings.TrimSpace(v.mealsPerDay))
	if err != nil {
		return model.CalculatorInput{}, fmt.Errorf("meals per day %q: not a whole number", v.mealsPerDay)
	}
	return model.CalculatorInput{MonthlyBudget: budget, Days: days, MealsPerDay: meals}, nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, mess.ErrAmountRequired)
	}
	return v, nil
}

// ─── Field validators ───────────────────────────────────────────

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validDate(s string) error {
	if !pipeline.ValidDate(strings.TrimSpace(s)) {
		return mess.ErrInvalidDate
	}
	return nil
}

func validAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return mess.ErrAmountRequired
	}
	return nil
}

func validPositive(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return mess.ErrInvalidBudget
	}
	return nil
}

func validCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
