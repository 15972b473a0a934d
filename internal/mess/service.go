// Package mess implements the record-keeping operations of a mess on top of
// a records.Book: validation, id allocation and derived views.
package mess

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/pipeline"
	"github.com/theirongolddev/messbook/internal/plan"
	"github.com/theirongolddev/messbook/internal/records"
)

// TimeLayout is the wall-clock format stored on notices.
const TimeLayout = "15:04:05"

// Service is safe for concurrent use within one process.
type Service struct {
	book        *records.Book
	now         func() time.Time
	log         *slog.Logger
	mealsPerDay atomic.Int64

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger used for mutation records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMealsPerDay sets the meals-per-day used by the planner.
func WithMealsPerDay(n int) Option {
	return func(s *Service) { s.SetMealsPerDay(n) }
}

// New returns a service over book.
func New(book *records.Book, opts ...Option) *Service {
	s := &Service{
		book: book,
		now:  time.Now,
		log:  slog.Default(),
	}
	s.mealsPerDay.Store(pipeline.DefaultMealsPerDay)
	for _, o := range opts {
		o(s)
	}
	return s
}

// Book returns the underlying repositories.
func (s *Service) Book() *records.Book { return s.book }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// SetMealsPerDay changes the meals-per-day used by the planner. Values
// below one are ignored.
func (s *Service) SetMealsPerDay(n int) {
	if n >= 1 {
		s.mealsPerDay.Store(int64(n))
	}
}

// MealsPerDay returns the meals-per-day used by the planner.
func (s *Service) MealsPerDay() int { return int(s.mealsPerDay.Load()) }

func (s *Service) today() string { return s.now().Format(model.DateLayout) }

// insert allocates an id from the clock and appends the record built for it.
// An id that is not greater than every existing id is bumped past the
// largest one.
func insert[T model.Record](ctx context.Context, s *Service, repo *records.Repository[T], build func(id int64) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	items, err := repo.All(ctx)
	if err != nil {
		return zero, err
	}
	id := s.now().UnixMilli()
	for _, it := range items {
		if it.RecordID() >= id {
			id = it.RecordID() + 1
		}
	}
	rec := build(id)
	if err := repo.Add(ctx, rec); err != nil {
		return zero, err
	}
	s.log.Debug("record added", "collection", repo.Key(), "id", id)
	return rec, nil
}

func remove[T model.Record](ctx context.Context, s *Service, repo *records.Repository[T], id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := repo.Remove(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.log.Debug("record removed", "collection", repo.Key(), "id", id)
	}
	return ok, nil
}

// validAmount reports whether v is a usable non-zero money amount.
func validAmount(v float64) bool {
	return v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func checkDate(d string) error {
	if d == "" {
		return ErrDateRequired
	}
	if !pipeline.ValidDate(d) {
		return fmt.Errorf("%q: %w", d, ErrInvalidDate)
	}
	return nil
}

// MemberInput holds the fields of a new member.
type MemberInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// AddMember registers a member joining today.
func (s *Service) AddMember(ctx context.Context, in MemberInput) (model.Member, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return model.Member{}, fmt.Errorf("adding member: %w", ErrNameRequired)
	}
	if in.Email == "" {
		return model.Member{}, fmt.Errorf("adding member: %w", ErrEmailRequired)
	}
	return insert(ctx, s, s.book.Members, func(id int64) model.Member {
		return model.Member{
			ID:       id,
			Name:     in.Name,
			Email:    in.Email,
			Phone:    strings.TrimSpace(in.Phone),
			Notes:    strings.TrimSpace(in.Notes),
			JoinDate: s.today(),
		}
	})
}

// RemoveMember deletes a member. Meal counts keep their stale member id.
func (s *Service) RemoveMember(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, s, s.book.Members, id)
}

// Members returns the roster in join order.
func (s *Service) Members(ctx context.Context) ([]model.Member, error) {
	return s.book.Members.All(ctx)
}

// ExpenseInput holds the fields of a new expense.
type ExpenseInput struct {
	Date        string
	Amount      float64
	Description string
	Category    string
}

// AddExpense records a purchase.
func (s *Service) AddExpense(ctx context.Context, in ExpenseInput) (model.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := checkDate(in.Date); err != nil {
		return model.Expense{}, fmt.Errorf("adding expense: %w", err)
	}
	if !validAmount(in.Amount) {
		return model.Expense{}, fmt.Errorf("adding expense: %w", ErrAmountRequired)
	}
	if in.Description == "" {
		return model.Expense{}, fmt.Errorf("adding expense: %w", ErrDescriptionRequired)
	}
	return insert(ctx, s, s.book.Expenses, func(id int64) model.Expense {
		return model.Expense{
			ID:          id,
			Date:        in.Date,
			Amount:      in.Amount,
			Description: in.Description,
			Category:    strings.TrimSpace(in.Category),
		}
	})
}

// RemoveExpense deletes an expense.
func (s *Service) RemoveExpense(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, s, s.book.Expenses, id)
}

// Expenses returns expenses in insertion order.
func (s *Service) Expenses(ctx context.Context) ([]model.Expense, error) {
	return s.book.Expenses.All(ctx)
}

// MealInput holds one member's meals for a day.
type MealInput struct {
	Date       string
	MemberName string
	Breakfast  int
	Lunch      int
	Dinner     int
}

// AddMealCount records meals for a member. The member id is looked up by
// exact name and left nil for names not on the roster.
func (s *Service) AddMealCount(ctx context.Context, in MealInput) (model.MealCount, error) {
	in.MemberName = strings.TrimSpace(in.MemberName)
	if err := checkDate(in.Date); err != nil {
		return model.MealCount{}, fmt.Errorf("adding meal count: %w", err)
	}
	if in.MemberName == "" {
		return model.MealCount{}, fmt.Errorf("adding meal count: %w", ErrMemberRequired)
	}
	if in.Breakfast < 0 || in.Lunch < 0 || in.Dinner < 0 {
		return model.MealCount{}, fmt.Errorf("adding meal count: %w", ErrInvalidMealCount)
	}

	members, err := s.book.Members.All(ctx)
	if err != nil {
		return model.MealCount{}, err
	}
	var memberID *int64
	for _, m := range members {
		if m.Name == in.MemberName {
			id := m.ID
			memberID = &id
			break
		}
	}
	if memberID == nil {
		s.log.Debug("meal count for unknown member", "member", in.MemberName)
	}

	return insert(ctx, s, s.book.MealCounts, func(id int64) model.MealCount {
		return model.MealCount{
			ID:         id,
			Date:       in.Date,
			MemberID:   memberID,
			MemberName: in.MemberName,
			Breakfast:  in.Breakfast,
			Lunch:      in.Lunch,
			Dinner:     in.Dinner,
			Total:      in.Breakfast + in.Lunch + in.Dinner,
		}
	})
}

// RemoveMealCount deletes a meal count.
func (s *Service) RemoveMealCount(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, s, s.book.MealCounts, id)
}

// MealCounts returns meal counts in insertion order.
func (s *Service) MealCounts(ctx context.Context) ([]model.MealCount, error) {
	return s.book.MealCounts.All(ctx)
}

// AddDebt records money owed, dated today.
func (s *Service) AddDebt(ctx context.Context, name string, amount float64) (model.Debt, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Debt{}, fmt.Errorf("adding debt: %w", ErrNameRequired)
	}
	if !validAmount(amount) {
		return model.Debt{}, fmt.Errorf("adding debt: %w", ErrAmountRequired)
	}
	return insert(ctx, s, s.book.Debts, func(id int64) model.Debt {
		return model.Debt{ID: id, Name: name, Amount: amount, Date: s.today()}
	})
}

// RemoveDebt deletes a debt.
func (s *Service) RemoveDebt(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, s, s.book.Debts, id)
}

// Debts returns debts in insertion order.
func (s *Service) Debts(ctx context.Context) ([]model.Debt, error) {
	return s.book.Debts.All(ctx)
}

// PostNotice pins text to the board with the current date and time.
func (s *Service) PostNotice(ctx context.Context, text string) (model.Notice, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Notice{}, fmt.Errorf("posting notice: %w", ErrNoticeTextRequired)
	}
	return insert(ctx, s, s.book.Notices, func(id int64) model.Notice {
		now := s.now()
		return model.Notice{
			ID:   id,
			Text: text,
			Date: now.Format(model.DateLayout),
			Time: now.Format(TimeLayout),
		}
	})
}

// RemoveNotice deletes a notice.
func (s *Service) RemoveNotice(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, s, s.book.Notices, id)
}

// Notices returns the board newest first.
func (s *Service) Notices(ctx context.Context) ([]model.Notice, error) {
	notices, err := s.book.Notices.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notices, func(i, j int) bool { return notices[i].ID > notices[j].ID })
	return notices, nil
}

// TaskInput holds the fields of a new task.
type TaskInput struct {
	Name        string
	AssignedTo  string
	DueDate     string
	Description string
}

// AddTask creates a pending task.
func (s *Service) AddTask(ctx context.Context, in TaskInput) (model.Task, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
	if in.Name == "" || in.AssignedTo == "" || in.DueDate == "" {
		return model.Task{}, fmt.Errorf("adding task: %w", ErrTaskFieldsRequired)
	}
	if err := checkDate(in.DueDate); err != nil {
		return model.Task{}, fmt.Errorf("adding task: %w", err)
	}
	return insert(ctx, s, s.book.Tasks, func(id int64) model.Task {
		return model.Task{
			ID:          id,
			Name:        in.Name,
			AssignedTo:  in.AssignedTo,
			DueDate:     in.DueDate,
			Description: strings.TrimSpace(in.Description),
			Status:      model.TaskPending,
			CreatedDate: s.today(),
		}
	})
}

// ToggleTask flips a task between pending and completed and returns the
// new status.
func (s *Service) ToggleTask(ctx context.Context, id int64) (model.TaskStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status model.TaskStatus
	ok, err := s.book.Tasks.Update(ctx, id, func(t *model.Task) {
		t.Status = t.Status.Toggled()
		status = t.Status
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("toggling task %d: %w", id, ErrTaskNotFound)
	}
	s.log.Debug("task toggled", "id", id, "status", status)
	return status, nil
}

// RemoveTask deletes a task.
func (s *Service) RemoveTask(ctx context.Context, id int64) (bool, error) {
	return remove(ctx, s, s.book.Tasks, id)
}

// Tasks returns tasks in insertion order.
func (s *Service) Tasks(ctx context.Context) ([]model.Task, error) {
	return s.book.Tasks.All(ctx)
}

// SetBudget stores the monthly meal budget.
func (s *Service) SetBudget(ctx context.Context, amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return fmt.Errorf("setting budget: %w", ErrInvalidBudget)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Budget.Set(ctx, amount)
}

// Budget returns the stored monthly meal budget, 0 when unset.
func (s *Service) Budget(ctx context.Context) (float64, error) {
	return s.book.Budget.Get(ctx)
}

// Ledger loads every collection.
func (s *Service) Ledger(ctx context.Context) (model.Ledger, error) {
	return s.book.Load(ctx)
}

// PlannerView is the planner projection with its classified tier.
type PlannerView struct {
	Stats model.PlannerStats
	Tier  plan.Tier
	Meter model.MeterStats
	// HasMeter is false when no positive budget is set.
	HasMeter bool
}

// Planner projects the stored budget over the rest of the month.
func (s *Service) Planner(ctx context.Context) (PlannerView, error) {
	l, err := s.book.Load(ctx)
	if err != nil {
		return PlannerView{}, err
	}
	stats := pipeline.Planner(l, s.now(), s.MealsPerDay())
	v := PlannerView{Stats: stats, Tier: plan.ForPlanner(stats.PerMeal)}
	v.Meter, v.HasMeter = pipeline.Meter(stats.Budget, stats.Spent)
	return v, nil
}

// Meter reports how much of the stored budget is spent.
func (s *Service) Meter(ctx context.Context) (model.MeterStats, bool, error) {
	l, err := s.book.Load(ctx)
	if err != nil {
		return model.MeterStats{}, false, err
	}
	m, ok := pipeline.Meter(l.Budget, pipeline.TotalExpenses(l.Expenses))
	return m, ok, nil
}

// CalculatorView is a calculator result with its classified tier.
type CalculatorView struct {
	Result model.CalculatorResult
	Tier   plan.Tier
}

// Calculator runs the meal budget calculator against everything spent so far.
func (s *Service) Calculator(ctx context.Context, in model.CalculatorInput) (CalculatorView, error) {
	if math.IsInf(in.MonthlyBudget, 0) || math.IsNaN(in.MonthlyBudget) {
		return CalculatorView{}, fmt.Errorf("calculator: %w", ErrInvalidBudget)
	}
	expenses, err := s.book.Expenses.All(ctx)
	if err != nil {
		return CalculatorView{}, err
	}
	r := pipeline.Calculate(in, pipeline.TotalExpenses(expenses))
	return CalculatorView{Result: r, Tier: plan.ForCalculator(r.PerMeal)}, nil
}

// Summary aggregates the ledger, restricted to [from, to] when either is set.
func (s *Service) Summary(ctx context.Context, from, to string) (model.Summary, error) {
	for _, d := range []string{from, to} {
		if d != "" && !pipeline.ValidDate(d) {
			return model.Summary{}, fmt.Errorf("summary range: %q: %w", d, ErrInvalidDate)
		}
	}
	l, err := s.book.Load(ctx)
	if err != nil {
		return model.Summary{}, err
	}
	return pipeline.Summarize(l, from, to), nil
}

// ClearAll deletes every collection and the budget.
func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.book.ClearAll(ctx); err != nil {
		return err
	}
	s.log.Info("all mess data cleared")
	return nil
}
