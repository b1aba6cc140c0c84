package domain

import (
	"fmt"
	"strings"
	"time"
)

// FrequencyKind identifies one recurrence pattern.
// Value object - immutable string enum.
type FrequencyKind string

const (
	// FrequencyEveryDay occurs every day except Sunday. Saturdays and
	// holidays are included.
	FrequencyEveryDay FrequencyKind = "every_day"

	// FrequencyOnceWeekly occurs on the anchor weekday (Monday),
	// independent of holidays.
	FrequencyOnceWeekly FrequencyKind = "once_weekly"

	// FrequencySpecificWeekday occurs on one fixed weekday carried in
	// FrequencyRule.Weekday.
	FrequencySpecificWeekday FrequencyKind = "specific_weekday"

	// FrequencyOnceMonthly occurs on the last Saturday of each month.
	FrequencyOnceMonthly FrequencyKind = "once_monthly"

	// FrequencyStartOfEveryMonth occurs on the 1st of each month,
	// shifted forward past Sundays and holidays.
	FrequencyStartOfEveryMonth FrequencyKind = "start_of_every_month"

	// FrequencyStartOfMonth is FrequencyStartOfEveryMonth restricted to
	// the month carried in FrequencyRule.Month.
	FrequencyStartOfMonth FrequencyKind = "start_of_month"

	// FrequencyEndOfEveryMonth occurs on the last day of each month,
	// shifted backward past Sundays and holidays.
	FrequencyEndOfEveryMonth FrequencyKind = "end_of_every_month"

	// FrequencyEndOfMonth is FrequencyEndOfEveryMonth restricted to the
	// month carried in FrequencyRule.Month.
	FrequencyEndOfMonth FrequencyKind = "end_of_month"

	// FrequencyOnceOff occurs only on the task's explicit due date.
	FrequencyOnceOff FrequencyKind = "once_off"
)

// FrequencyRule is one recurrence pattern assigned to a task.
// Exactly one kind per rule; Weekday and Month are only meaningful for
// the kinds that carry them.
type FrequencyRule struct {
	Kind    FrequencyKind
	Weekday time.Weekday // FrequencySpecificWeekday only
	Month   time.Month   // FrequencyStartOfMonth / FrequencyEndOfMonth only
}

// Tag returns the canonical string form of the rule, the inverse of
// ParseFrequency for every rule ParseFrequency can produce.
func (r FrequencyRule) Tag() string {
	switch r.Kind {
	case FrequencySpecificWeekday:
		return strings.ToLower(r.Weekday.String())
	case FrequencyStartOfMonth:
		return "start_of_" + strings.ToLower(r.Month.String())
	case FrequencyEndOfMonth:
		return "end_of_" + strings.ToLower(r.Month.String())
	default:
		return string(r.Kind)
	}
}

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// legacyAliases remaps historical tags that predate the canonical set.
// This table is the single place such remapping happens; call sites
// must not carry their own.
var legacyAliases = map[string]string{
	"daily":       "every_day",
	"everyday":    "every_day",
	"weekly":      "once_weekly",
	"once_a_week": "once_weekly",
	"monthly":     "once_monthly",
	"every_month": "start_of_every_month",
	"month_start": "start_of_every_month",
	"month_end":   "end_of_every_month",
	"one_off":     "once_off",
	"onceoff":     "once_off",
}

// ParseFrequency maps a stored frequency tag to a FrequencyRule.
// It is the only conversion between the string form and the enum.
// Returns ErrUnknownFrequency for unrecognized tags; callers at the
// storage boundary drop (and log) such rules rather than failing the
// whole task.
func ParseFrequency(tag string) (FrequencyRule, error) {
	s := strings.ToLower(strings.TrimSpace(tag))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")

	if canonical, ok := legacyAliases[s]; ok {
		s = canonical
	}

	switch FrequencyKind(s) {
	case FrequencyEveryDay, FrequencyOnceWeekly, FrequencyOnceMonthly,
		FrequencyStartOfEveryMonth, FrequencyEndOfEveryMonth, FrequencyOnceOff:
		return FrequencyRule{Kind: FrequencyKind(s)}, nil
	}

	if wd, ok := weekdaysByName[s]; ok {
		return FrequencyRule{Kind: FrequencySpecificWeekday, Weekday: wd}, nil
	}

	if rest, ok := strings.CutPrefix(s, "start_of_"); ok {
		if m, ok := monthsByName[rest]; ok {
			return FrequencyRule{Kind: FrequencyStartOfMonth, Month: m}, nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "end_of_"); ok {
		if m, ok := monthsByName[rest]; ok {
			return FrequencyRule{Kind: FrequencyEndOfMonth, Month: m}, nil
		}
	}

	return FrequencyRule{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, tag)
}

// ParseFrequencies converts a list of stored tags, dropping
// unrecognized ones. The second return value lists the dropped tags so
// the caller can log them.
func ParseFrequencies(tags []string) ([]FrequencyRule, []string) {
	var rules []FrequencyRule
	var dropped []string
	for _, tag := range tags {
		rule, err := ParseFrequency(tag)
		if err != nil {
			dropped = append(dropped, tag)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, dropped
}

// FrequencyTags returns the canonical tags for a rule list.
func FrequencyTags(rules []FrequencyRule) []string {
	tags := make([]string, len(rules))
	for i, r := range rules {
		tags[i] = r.Tag()
	}
	return tags
}
