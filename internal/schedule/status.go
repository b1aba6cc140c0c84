package schedule

import (
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// DueInstant returns the instant the task falls due on the given date:
// the business-timezone combination of the date and the task's due
// time, or end of day (23:59) for "anytime" and malformed due times.
func (e *Evaluator) DueInstant(task *domain.Task, date domain.Date) time.Time {
	hour, minute := task.DueTime.Clock()
	return e.zone.At(date, hour, minute)
}

// Status derives the lifecycle status of the task's occurrence on the
// given date at the given instant. completed is the persisted
// completion flag and always wins.
//
// Callers are expected to pre-filter by Visible and OccursOn; if
// invoked for a non-occurring date anyway the result is NotDueYet.
func (e *Evaluator) Status(task *domain.Task, date domain.Date, now time.Time, completed bool) domain.OccurrenceStatus {
	if completed {
		return domain.StatusCompleted
	}

	if !e.Visible(task, date) || !e.OccursOn(task, date) {
		return domain.StatusNotDueYet
	}

	today := e.zone.DateOf(now)
	switch {
	case date.After(today):
		return domain.StatusNotDueYet
	case date.Before(today):
		return domain.StatusMissed
	}

	// Equal time at the due instant still counts as due, not overdue.
	if now.After(e.DueInstant(task, date)) {
		return domain.StatusOverdue
	}
	return domain.StatusDueToday
}

// Evaluate combines occurrence and status in one call, the shape the
// checklist and calendar views consume per (task, date).
func (e *Evaluator) Evaluate(task *domain.Task, date domain.Date, now time.Time, completed bool) (occurs bool, status domain.OccurrenceStatus) {
	if !e.Visible(task, date) {
		return false, domain.StatusNotDueYet
	}
	if !e.OccursOn(task, date) {
		return false, domain.StatusNotDueYet
	}
	return true, e.Status(task, date, now, completed)
}
