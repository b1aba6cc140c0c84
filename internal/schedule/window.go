package schedule

import "github.com/rotaboard/rotaboard/internal/domain"

// Window derives the task's visibility window: the earliest date it
// may appear (the latest of its creation date in the business
// timezone, its publish-delay date and its explicit start date) and
// the latest (explicit end date, or nil for unbounded).
func (e *Evaluator) Window(task *domain.Task) (start domain.Date, end *domain.Date) {
	start = e.zone.DateOf(task.CreatedAt)
	if task.PublishAt != nil && task.PublishAt.After(start) {
		start = *task.PublishAt
	}
	if task.StartDate != nil && task.StartDate.After(start) {
		start = *task.StartDate
	}
	return start, task.EndDate
}

// Visible reports whether the date falls inside the task's visibility
// window. This gate is checked before recurrence: a date outside the
// window means the task does not occur there regardless of its rules.
// An end date before the window start makes the task never visible.
func (e *Evaluator) Visible(task *domain.Task, date domain.Date) bool {
	if !task.Active {
		return false
	}
	start, end := e.Window(task)
	if end != nil && end.Before(start) {
		return false
	}
	if date.Before(start) {
		return false
	}
	if end != nil && date.After(*end) {
		return false
	}
	return true
}
