// Package theme holds the color palettes of the messbook dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceHover  lipgloss.Color // selected row
	SurfaceBright lipgloss.Color // active tab, headers
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Money and status roles.
	Good       lipgloss.Color // under budget, completed tasks
	GoodBright lipgloss.Color
	Warn       lipgloss.Color // meter above half, pending tasks
	Bad        lipgloss.Color // budget exceeded, debts, errors
	Spend      lipgloss.Color // expense charts
	Meals      lipgloss.Color // meal charts
}

// Default is used when a config names no theme or an unknown one.
const Default = "flexoki-dark"

// Active is the currently selected theme.
var Active = registry[Default]

var registry = map[string]Theme{
	"flexoki-dark": {
		Name:          "flexoki-dark",
		Background:    "#100F0F",
		Surface:       "#1C1B1A",
		SurfaceHover:  "#282726",
		SurfaceBright: "#343331",
		Border:        "#403E3C",
		BorderAccent:  "#3AA99F",
		TextDim:       "#575653",
		TextMuted:     "#878580",
		TextPrimary:   "#FFFCF0",
		Accent:        "#3AA99F",
		AccentBright:  "#5BC8BE",
		Good:          "#879A39",
		GoodBright:    "#A3B859",
		Warn:          "#DA702C",
		Bad:           "#D14D41",
		Spend:         "#4385BE",
		Meals:         "#24837B",
	},
	"gruvbox-dark": {
		Name:          "gruvbox-dark",
		Background:    "#1D2021",
		Surface:       "#282828",
		SurfaceHover:  "#3C3836",
		SurfaceBright: "#504945",
		Border:        "#665C54",
		BorderAccent:  "#FABD2F",
		TextDim:       "#7C6F64",
		TextMuted:     "#A89984",
		TextPrimary:   "#EBDBB2",
		Accent:        "#FABD2F",
		AccentBright:  "#FFD75F",
		Good:          "#98971A",
		GoodBright:    "#B8BB26",
		Warn:          "#FE8019",
		Bad:           "#FB4934",
		Spend:         "#83A598",
		Meals:         "#8EC07C",
	},
	"nord": {
		Name:          "nord",
		Background:    "#242933",
		Surface:       "#2E3440",
		SurfaceHover:  "#3B4252",
		SurfaceBright: "#434C5E",
		Border:        "#4C566A",
		BorderAccent:  "#88C0D0",
		TextDim:       "#616E88",
		TextMuted:     "#D8DEE9",
		TextPrimary:   "#ECEFF4",
		Accent:        "#88C0D0",
		AccentBright:  "#8FBCBB",
		Good:          "#A3BE8C",
		GoodBright:    "#B9D3A1",
		Warn:          "#D08770",
		Bad:           "#BF616A",
		Spend:         "#81A1C1",
		Meals:         "#8FBCBB",
	},
	// ANSI 16 only, for terminals without true color.
	"terminal": {
		Name:          "terminal",
		Background:    "0",
		Surface:       "0",
		SurfaceHover:  "8",
		SurfaceBright: "8",
		Border:        "8",
		BorderAccent:  "6",
		TextDim:       "8",
		TextMuted:     "7",
		TextPrimary:   "15",
		Accent:        "6",
		AccentBright:  "14",
		Good:          "2",
		GoodBright:    "10",
		Warn:          "3",
		Bad:           "1",
		Spend:         "4",
		Meals:         "6",
	},
}

// Names lists the available themes, default first.
func Names() []string {
	return []string{"flexoki-dark", "gruvbox-dark", "nord", "terminal"}
}

// Lookup returns the named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return registry[Default]
}

// SetActive switches the active theme. Unknown names select Default.
func SetActive(name string) {
	Active = ByName(name)
}
