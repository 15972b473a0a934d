// Package model defines the stored record types and derived summaries for a mess.
package model

// DateLayout is the calendar date format used by every stored record.
// Range filters compare dates as strings, which is only valid in this layout.
const DateLayout = "2006-01-02"

// Record is anything stored in a collection with a numeric id.
type Record interface {
	RecordID() int64
}

// Dated is a record carrying a DateLayout calendar date.
type Dated interface {
	RecordDate() string
}

// Member is one person sharing the mess.
type Member struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
	JoinDate string `json:"joinDate"`
}

func (m Member) RecordID() int64 { return m.ID }

// Expense is a purchase paid from the shared pot.
type Expense struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

func (e Expense) RecordID() int64   { return e.ID }
func (e Expense) RecordDate() string { return e.Date }

// MealCount is the number of meals one member ate on one day.
// Total is a snapshot of Breakfast+Lunch+Dinner taken when the record was
// written; it is never recomputed.
type MealCount struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	MemberID   *int64 `json:"memberId"`
	MemberName string `json:"memberName"`
	Breakfast  int    `json:"breakfast"`
	Lunch      int    `json:"lunch"`
	Dinner     int    `json:"dinner"`
	Total      int    `json:"total"`
}

func (m MealCount) RecordID() int64   { return m.ID }
func (m MealCount) RecordDate() string { return m.Date }

// Debt is money owed to someone outside the roster.
type Debt struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func (d Debt) RecordID() int64   { return d.ID }
func (d Debt) RecordDate() string { return d.Date }

// Notice is a message pinned to the board.
type Notice struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Date string `json:"date"`
	Time string `json:"time"`
}

func (n Notice) RecordID() int64   { return n.ID }
func (n Notice) RecordDate() string { return n.Date }

// TaskStatus is the state of a chore.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Toggled returns the opposite status.
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskCompleted {
		return TaskPending
	}
	return TaskCompleted
}

// Task is a chore assigned to a member.
type Task struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	AssignedTo  string     `json:"assignedTo"`
	DueDate     string     `json:"dueDate"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedDate string     `json:"createdDate"`
}

func (t Task) RecordID() int64   { return t.ID }
func (t Task) RecordDate() string { return t.DueDate }
