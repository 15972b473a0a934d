package model

// MemberSummary is one member's share of the meal cost.
// Paid is always zero: there is no payment ledger yet.
type MemberSummary struct {
	Member  Member  `json:"member"`
	Meals   int     `json:"meals"`
	Cost    float64 `json:"cost"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// CategoryStats holds spend for a single expense category.
type CategoryStats struct {
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	Count        int     `json:"count"`
	SharePercent float64 `json:"share_percent"`
}

// DailyStats holds spend and meals for one calendar day.
type DailyStats struct {
	Date     string  `json:"date"`
	Expenses float64 `json:"expenses"`
	Meals    int     `json:"meals"`
}

// Summary is the dashboard aggregate for an optional date range.
type Summary struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	TotalExpenses float64 `json:"total_expenses"`
	TotalMeals    int     `json:"total_meals"`
	MealRate      float64 `json:"meal_rate"`

	Members    []MemberSummary `json:"members"`
	Categories []CategoryStats `json:"categories"`
	Days       []DailyStats    `json:"days"`

	ExpenseCount int     `json:"expense_count"`
	TotalDebts   float64 `json:"total_debts"`
	OpenTasks    int     `json:"open_tasks"`
	NoticeCount  int     `json:"notice_count"`
}

// PlannerStats holds the month-end meal budget projection.
type PlannerStats struct {
	Budget        float64 `json:"budget"`
	Spent         float64 `json:"spent"`
	Remaining     float64 `json:"remaining"`
	DaysRemaining int     `json:"days_remaining"`
	Members       int     `json:"members"`
	MealsPerDay   int     `json:"meals_per_day"`
	PerMeal       float64 `json:"per_meal"`
}

// MeterLevel is the colour band of the budget meter.
type MeterLevel string

const (
	MeterGreen  MeterLevel = "green"
	MeterOrange MeterLevel = "orange"
	MeterRed    MeterLevel = "red"
)

// MeterStats describes how much of the budget has been spent.
// Percent is uncapped; Fill is Percent clamped to [0, 100] for display.
type MeterStats struct {
	Budget  float64    `json:"budget"`
	Spent   float64    `json:"spent"`
	Percent float64    `json:"percent"`
	Fill    float64    `json:"fill"`
	Level   MeterLevel `json:"level"`
}

// CalculatorInput holds the meal budget calculator parameters.
type CalculatorInput struct {
	MonthlyBudget float64 `json:"monthly_budget"`
	Days          int     `json:"days"`
	MealsPerDay   int     `json:"meals_per_day"`
}

// CalculatorResult is the outcome of the meal budget calculator.
type CalculatorResult struct {
	CalculatorInput
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
	Daily     float64 `json:"daily"`
	PerMeal   float64 `json:"per_meal"`
}

// Ledger is every collection loaded at one point in time.
type Ledger struct {
	Members    []Member
	Expenses   []Expense
	MealCounts []MealCount
	Debts      []Debt
	Notices    []Notice
	Tasks      []Task
	Budget     float64
}
