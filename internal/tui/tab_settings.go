package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/messbook/internal/cli"
	"github.com/theirongolddev/messbook/internal/config"
	"github.com/theirongolddev/messbook/internal/tui/components"
	"github.com/theirongolddev/messbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldMealsPerDay
	settingsFieldCalcBudget
	settingsFieldCalcDays
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool
	saveErr error
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldMealsPerDay:
		ti.Placeholder = "3"
		ti.SetValue(strconv.Itoa(a.cfg.Budget.MealsPerDay))
	case settingsFieldCalcBudget:
		ti.Placeholder = "3000"
		ti.SetValue(strconv.FormatFloat(a.cfg.Budget.CalculatorBudget, 'f', -1, 64))
	case settingsFieldCalcDays:
		ti.Placeholder = "30"
		ti.SetValue(strconv.Itoa(a.cfg.Budget.CalculatorDays))
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn, error"
		ti.SetValue(a.cfg.General.LogLevel)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, loadCmd(a.svc, a.calcIn)
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited value to the live app and writes the
// config file. Invalid values are reported and leave the config untouched.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldTheme:
		if _, ok := theme.Lookup(val); !ok {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldMealsPerDay:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			a.settings.saveErr = fmt.Errorf("meals per day must be a whole number of at least 1")
			return
		}
		cfg.Budget.MealsPerDay = n
		a.svc.SetMealsPerDay(n)
		a.calcIn.MealsPerDay = n
	case settingsFieldCalcBudget:
		v, err := strconv.ParseFloat(val, 64)
		if err != nil || !(v > 0) || math.IsInf(v, 0) {
			a.settings.saveErr = fmt.Errorf("calculator budget must be a finite number greater than zero")
			return
		}
		cfg.Budget.CalculatorBudget = v
		a.calcIn.MonthlyBudget = v
	case settingsFieldCalcDays:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			a.settings.saveErr = fmt.Errorf("calculator days must be a whole number of at least 1")
			return
		}
		cfg.Budget.CalculatorDays = n
		a.calcIn.Days = n
	case settingsFieldLogLevel:
		switch val {
		case "", "debug", "info", "warn", "error":
			cfg.General.LogLevel = val
		default:
			a.settings.saveErr = fmt.Errorf("unknown log level %q", val)
			return
		}
	}

	a.cfg = cfg
	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	goodStyle := lipgloss.NewStyle().Foreground(t.GoodBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	logLevel := cfg.General.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}
	fields := []struct{ label, value string }{
		{"Theme", cfg.Appearance.Theme},
		{"Meals per day", strconv.Itoa(cfg.Budget.MealsPerDay)},
		{"Calculator budget", cli.FormatTaka(cfg.Budget.CalculatorBudget)},
		{"Calculator days", strconv.Itoa(cfg.Budget.CalculatorDays)},
		{"Log level", logLevel},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-20s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-20s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			used := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if pad := components.CardInnerWidth(cw) - used; pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render("Save failed: " + a.settings.saveErr.Error()))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(goodStyle.Render("Saved!"))
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	l := a.data.ledger
	records := len(l.Members) + len(l.Expenses) + len(l.MealCounts) + len(l.Debts) + len(l.Notices) + len(l.Tasks)
	var info strings.Builder
	info.WriteString(labelStyle.Render("Backend:        ") + valueStyle.Render(a.backend) + "\n")
	info.WriteString(labelStyle.Render("Data directory: ") + valueStyle.Render(cfg.DataDir()) + "\n")
	info.WriteString(labelStyle.Render("Records:        ") + valueStyle.Render(cli.FormatNumber(int64(records))) + "\n")
	info.WriteString(labelStyle.Render("Load time:      ") + valueStyle.Render(fmt.Sprintf("%dms", a.loadTime.Milliseconds())) + "\n")
	info.WriteString(labelStyle.Render("Config file:    ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Storage changes apply on restart; run `messbook setup`."))

	return components.ContentCard("Settings", formBody.String(), cw) + "\n" +
		components.ContentCard("Storage", info.String(), cw)
}
