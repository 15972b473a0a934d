package mess

import "errors"

var (
	ErrNameRequired        = errors.New("name is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrDateRequired        = errors.New("date is required")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrAmountRequired      = errors.New("amount must be a non-zero finite number")
	ErrDescriptionRequired = errors.New("description is required")
	ErrMemberRequired      = errors.New("member name is required")
	ErrInvalidMealCount    = errors.New("meal counts must not be negative")
	ErrNoticeTextRequired  = errors.New("notice text is required")
	ErrTaskFieldsRequired  = errors.New("task name, assignee and due date are required")
	ErrInvalidBudget       = errors.New("budget must be a finite number greater than zero")
	ErrTaskNotFound        = errors.New("task not found")
)
