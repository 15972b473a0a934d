package records

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/store"
)

// Storage keys. These match the layout written by the web dashboard
// so an exported localStorage dump can be loaded as-is.
const (
	KeyMembers    = "members"
	KeyExpenses   = "expenses"
	KeyMealCounts = "mealCounts"
	KeyDebts      = "debts"
	KeyNotices    = "notices"
	KeyTasks      = "tasks"
	KeyMealBudget = "mealBudget"
)

// AllKeys lists every key owned by a Book.
var AllKeys = []string{KeyMembers, KeyExpenses, KeyMealCounts, KeyDebts, KeyNotices, KeyTasks, KeyMealBudget}

// Budget is the single decimal stored under KeyMealBudget.
type Budget struct {
	s store.Store
}

// Get returns the stored budget, or 0 when absent or unparsable.
func (b *Budget) Get(ctx context.Context) (float64, error) {
	raw, ok, err := b.s.Get(ctx, KeyMealBudget)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", KeyMealBudget, err)
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.Trim(strings.TrimSpace(string(raw)), `"`), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		slog.Debug("treating unparsable budget as zero", "value", string(raw))
		return 0, nil
	}
	return v, nil
}

// Set stores v as a bare JSON number.
func (b *Budget) Set(ctx context.Context, v float64) error {
	if err := b.s.Set(ctx, KeyMealBudget, []byte(strconv.FormatFloat(v, 'f', -1, 64))); err != nil {
		return fmt.Errorf("writing %s: %w", KeyMealBudget, err)
	}
	return nil
}

// Book groups the repositories of one mess.
type Book struct {
	Members    *Repository[model.Member]
	Expenses   *Repository[model.Expense]
	MealCounts *Repository[model.MealCount]
	Debts      *Repository[model.Debt]
	Notices    *Repository[model.Notice]
	Tasks      *Repository[model.Task]
	Budget     *Budget

	s store.Store
}

// NewBook wires every repository to s.
func NewBook(s store.Store) *Book {
	return &Book{
		Members:    NewRepository[model.Member](s, KeyMembers),
		Expenses:   NewRepository[model.Expense](s, KeyExpenses),
		MealCounts: NewRepository[model.MealCount](s, KeyMealCounts),
		Debts:      NewRepository[model.Debt](s, KeyDebts),
		Notices:    NewRepository[model.Notice](s, KeyNotices),
		Tasks:      NewRepository[model.Task](s, KeyTasks),
		Budget:     &Budget{s: s},
		s:          s,
	}
}

// Store returns the underlying key-value store.
func (b *Book) Store() store.Store { return b.s }

// Load reads every collection.
func (b *Book) Load(ctx context.Context) (model.Ledger, error) {
	var (
		l   model.Ledger
		err error
	)
	if l.Members, err = b.Members.All(ctx); err != nil {
		return l, err
	}
	if l.Expenses, err = b.Expenses.All(ctx); err != nil {
		return l, err
	}
	if l.MealCounts, err = b.MealCounts.All(ctx); err != nil {
		return l, err
	}
	if l.Debts, err = b.Debts.All(ctx); err != nil {
		return l, err
	}
	if l.Notices, err = b.Notices.All(ctx); err != nil {
		return l, err
	}
	if l.Tasks, err = b.Tasks.All(ctx); err != nil {
		return l, err
	}
	if l.Budget, err = b.Budget.Get(ctx); err != nil {
		return l, err
	}
	return l, nil
}

// ClearAll wipes every collection and the budget.
func (b *Book) ClearAll(ctx context.Context) error {
	for _, k := range AllKeys {
		if err := b.s.Remove(ctx, k); err != nil {
			return fmt.Errorf("clearing %s: %w", k, err)
		}
	}
	return nil
}
