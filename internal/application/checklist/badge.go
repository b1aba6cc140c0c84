package checklist

import (
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/schedule"
)

// badgeWindow is how long the "new task" badge stays visible after a
// task first becomes visible.
const badgeWindow = 12 * time.Hour

// NewBadgeVisible decides whether the "new task" badge shows for a
// task at the given instant. A derived notification view layered on
// top of the engine's visibility window; it does not participate in
// status calculation.
//
// The badge appears at local midnight of the task's first visible day
// and disappears after twelve hours, or at the task's due instant on
// that day if that comes first.
func NewBadgeVisible(eval *schedule.Evaluator, task *domain.Task, now time.Time) bool {
	if !task.Active {
		return false
	}

	start, end := eval.Window(task)
	if end != nil && end.Before(start) {
		return false
	}

	activated := eval.Zone().Midnight(start)
	if now.Before(activated) {
		return false
	}

	until := activated.Add(badgeWindow)
	if due := eval.DueInstant(task, start); due.Before(until) {
		until = due
	}
	return !now.After(until)
}
