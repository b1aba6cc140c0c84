package schedule

import (
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// Calendar answers holiday-membership queries and holiday/weekend date
// shifts. It is built once per evaluation batch from the holiday store
// and shared read-only across all evaluations in that batch.
//
// A nil *Calendar is valid and observes no holidays; missing holiday
// data degrades gracefully instead of erroring.
type Calendar struct {
	names map[domain.Date]string
}

// NewCalendar indexes holiday entries by date. Duplicate entries for
// the same date collapse to one and do not change evaluation.
func NewCalendar(holidays []domain.Holiday) *Calendar {
	names := make(map[domain.Date]string, len(holidays))
	for _, h := range holidays {
		if _, ok := names[h.Date]; ok {
			continue
		}
		names[h.Date] = h.Name
	}
	return &Calendar{names: names}
}

// IsHoliday reports whether the date is a public holiday.
func (c *Calendar) IsHoliday(d domain.Date) bool {
	if c == nil {
		return false
	}
	_, ok := c.names[d]
	return ok
}

// HolidayName returns the display name of the holiday on the date.
func (c *Calendar) HolidayName(d domain.Date) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[d]
	return name, ok
}

// ShiftForward advances one day at a time until the date is neither a
// skipped weekend day (Sunday always, Saturday when skipSaturday is
// set) nor, when skipHolidays is set, a holiday.
func (c *Calendar) ShiftForward(d domain.Date, skipSaturday, skipHolidays bool) domain.Date {
	for c.skipped(d, skipSaturday, skipHolidays) {
		d = d.AddDays(1)
	}
	return d
}

func (c *Calendar) skipped(d domain.Date, skipSaturday, skipHolidays bool) bool {
	wd := d.Weekday()
	if wd == time.Sunday {
		return true
	}
	if skipSaturday && wd == time.Saturday {
		return true
	}
	return skipHolidays && c.IsHoliday(d)
}
