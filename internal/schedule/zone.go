// Package schedule implements the task recurrence and status engine:
// given a task template, a target calendar date, the regional holiday
// calendar and the current instant, it decides whether an occurrence
// exists on that date and which lifecycle status it holds.
//
// The engine is pure and synchronous. It performs no clock reads, no
// logging and no I/O; the evaluation context (target date, current
// instant, holiday calendar) is threaded explicitly through every
// call, so results are exactly reproducible.
package schedule

import (
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// Zone converts between UTC instants and business-timezone calendar
// dates. It wraps an IANA location rather than a fixed offset so the
// engine keeps working if the region's rules ever change. All
// calendar-date comparisons in the engine go through a Zone; raw UTC
// instants are never compared against calendar dates.
type Zone struct {
	loc *time.Location
}

// LoadZone resolves an IANA zone name (e.g. "Africa/Johannesburg").
func LoadZone(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, err
	}
	return Zone{loc: loc}, nil
}

// FixedZone wraps an existing location, mainly for tests.
func FixedZone(loc *time.Location) Zone {
	return Zone{loc: loc}
}

func (z Zone) location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// DateOf returns the business-timezone calendar date of an instant.
func (z Zone) DateOf(t time.Time) domain.Date {
	return domain.DateOf(t.In(z.location()))
}

// Midnight returns the instant the given calendar date begins in the
// business timezone.
func (z Zone) Midnight(d domain.Date) time.Time {
	return d.In(z.location())
}

// At combines a calendar date and a time-of-day into an instant in the
// business timezone.
func (z Zone) At(d domain.Date, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, z.location())
}
