package schedule

import (
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// onceWeeklyAnchor is the fixed weekday once-weekly tasks fall on.
const onceWeeklyAnchor = time.Monday

// Evaluator combines the holiday calendar and the business timezone
// and answers occurrence, visibility and status questions per
// (task, date). It holds no mutable state; one Evaluator may be shared
// across goroutines for a whole evaluation batch.
type Evaluator struct {
	zone Zone
	cal  *Calendar
}

// NewEvaluator creates an evaluator for one batch. cal may be nil when
// no holiday data is available.
func NewEvaluator(zone Zone, cal *Calendar) *Evaluator {
	return &Evaluator{zone: zone, cal: cal}
}

// Zone returns the evaluator's business timezone.
func (e *Evaluator) Zone() Zone {
	return e.zone
}

// OccursOn reports whether any of the task's frequency rules produces
// an occurrence on the given business-timezone date. An empty rule
// list never occurs; duplicate rules cannot double-count because the
// result is a plain OR.
func (e *Evaluator) OccursOn(task *domain.Task, date domain.Date) bool {
	for _, rule := range task.Frequencies {
		if e.ruleMatches(rule, task, date) {
			return true
		}
	}
	return false
}

func (e *Evaluator) ruleMatches(rule domain.FrequencyRule, task *domain.Task, date domain.Date) bool {
	switch rule.Kind {
	case domain.FrequencyEveryDay:
		// Only Sunday is excluded; Saturdays and holidays count.
		return date.Weekday() != time.Sunday

	case domain.FrequencySpecificWeekday:
		return date.Weekday() == rule.Weekday

	case domain.FrequencyOnceWeekly:
		return date.Weekday() == onceWeeklyAnchor

	case domain.FrequencyOnceMonthly:
		return e.isLastSaturday(date)

	case domain.FrequencyStartOfEveryMonth:
		return date == e.monthStartOccurrence(date.Year, date.Month)

	case domain.FrequencyStartOfMonth:
		return date.Month == rule.Month && date == e.monthStartOccurrence(date.Year, date.Month)

	case domain.FrequencyEndOfEveryMonth:
		occ, ok := e.monthEndOccurrence(date.Year, date.Month)
		return ok && date == occ

	case domain.FrequencyEndOfMonth:
		if date.Month != rule.Month {
			return false
		}
		occ, ok := e.monthEndOccurrence(date.Year, date.Month)
		return ok && date == occ

	case domain.FrequencyOnceOff:
		return task.DueDate != nil && date == *task.DueDate

	default:
		return false
	}
}

// isLastSaturday scans backward from month end to the first Saturday.
// A month without a Saturday cannot exist in the Gregorian calendar,
// but the scan is bounded so bad input returns false instead of
// looping.
func (e *Evaluator) isLastSaturday(date domain.Date) bool {
	d := domain.NewDate(date.Year, date.Month, date.DaysInMonth())
	for d.Month == date.Month {
		if d.Weekday() == time.Saturday {
			return d == date
		}
		d = d.AddDays(-1)
	}
	return false
}

// monthStartOccurrence returns the 1st of the month shifted forward
// past Sundays and holidays. The shift is bounded to the month; a
// month consisting entirely of skipped days yields the zero Date,
// which matches no real date.
func (e *Evaluator) monthStartOccurrence(year int, month time.Month) domain.Date {
	d := domain.NewDate(year, month, 1)
	for d.Month == month {
		if d.Weekday() != time.Sunday && !e.cal.IsHoliday(d) {
			return d
		}
		d = d.AddDays(1)
	}
	return domain.Date{}
}

// monthEndOccurrence returns the last calendar day of the month shifted
// backward past Sundays and holidays. The shift never wraps into the
// previous month; exhausting the month reports no occurrence.
func (e *Evaluator) monthEndOccurrence(year int, month time.Month) (domain.Date, bool) {
	d := domain.NewDate(year, month, 1)
	d = domain.NewDate(year, month, d.DaysInMonth())
	for d.Month == month {
		if d.Weekday() != time.Sunday && !e.cal.IsHoliday(d) {
			return d, true
		}
		d = d.AddDays(-1)
	}
	return domain.Date{}, false
}
