package domain

import (
	"strconv"
	"strings"
)

// DueTimeAnytime is the sentinel stored for tasks with no specific due
// time. Such tasks fall due at end of day.
const DueTimeAnytime = "anytime"

// End-of-day fallback used for "anytime" tasks and for due-time strings
// that fail to parse. A parse failure must never hide a task from the
// checklist, so it degrades to the most permissive due time instead of
// returning an error.
const (
	endOfDayHour   = 23
	endOfDayMinute = 59
)

// DueTime is a time-of-day in HH:MM form, or the "anytime" sentinel.
// Value object - immutable.
type DueTime string

// NewDueTime normalizes a raw due-time string. Empty input becomes the
// anytime sentinel. Malformed input is kept verbatim; Clock falls back
// to end of day for it.
func NewDueTime(s string) DueTime {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DueTimeAnytime
	}
	return DueTime(s)
}

// IsAnytime reports whether the task has no specific due time.
func (d DueTime) IsAnytime() bool {
	return string(d) == DueTimeAnytime || string(d) == ""
}

// Clock returns the due hour and minute. Anytime and malformed values
// both resolve to 23:59.
func (d DueTime) Clock() (hour, minute int) {
	if d.IsAnytime() {
		return endOfDayHour, endOfDayMinute
	}

	parts := strings.SplitN(string(d), ":", 2)
	if len(parts) != 2 {
		return endOfDayHour, endOfDayMinute
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return endOfDayHour, endOfDayMinute
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return endOfDayHour, endOfDayMinute
	}
	return h, m
}

func (d DueTime) String() string {
	if d.IsAnytime() {
		return DueTimeAnytime
	}
	return string(d)
}
