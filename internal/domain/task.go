package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is an aggregate root representing a recurring checklist task
// template. The engine treats it as immutable per evaluation; mutation
// happens only through the task-management service.
type Task struct {
	ID    string
	Title string

	// Frequencies is the task's assigned recurrence rules. A task
	// occurs on a date when ANY rule matches. An empty list never
	// occurs; duplicate rules are idempotent.
	Frequencies []FrequencyRule

	// DueTime is the time-of-day the task falls due, or "anytime"
	// (end of day).
	DueTime DueTime

	// DueDate is the explicit date for once-off tasks. Ignored by all
	// other rules.
	DueDate *Date

	// CreatedAt is the creation instant, stored in UTC. Its
	// business-timezone calendar date is the earliest the task can
	// appear.
	CreatedAt time.Time
	UpdatedAt time.Time

	// PublishAt delays visibility to a later date.
	PublishAt *Date

	// StartDate and EndDate bound the visibility window explicitly.
	// EndDate before the window start means the task is never visible.
	StartDate *Date
	EndDate   *Date

	// Active gates the task in and out of evaluation entirely.
	Active bool
}

// Title length bound, matching the checklist UI column.
const maxTitleLen = 255

// NewTitle validates a task title.
func NewTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrTitleRequired
	}
	if len(s) > maxTitleLen {
		return "", ErrTitleTooLong
	}
	return s, nil
}

// Holiday is one entry of the regional public-holiday calendar.
// Loaded once per evaluation batch and treated as read-only.
type Holiday struct {
	Date Date
	Name string
}

// ChecklistEntry is the engine's per-(task, date) output consumed by
// the checklist and calendar views.
type ChecklistEntry struct {
	Task      *Task
	Date      Date
	Status    OccurrenceStatus
	Completed bool

	// NewBadge marks tasks that recently became visible. Derived view
	// on top of status, not part of the status calculation.
	NewBadge bool
}

// Completion is a persisted record that a task occurrence was done.
type Completion struct {
	TaskID      string
	Date        Date
	CompletedAt time.Time
	CompletedBy string
}

// DaySnapshot is a persisted per-day checklist summary produced by the
// snapshot worker for the reporting layer.
type DaySnapshot struct {
	ID        string
	Date      Date
	Total     int
	Completed int
	Missed    int
	CreatedAt time.Time
}

// UpdateTaskParams carries a partial task update. Nil fields are left
// unchanged; the Clear* flags reset optional dates to unset.
type UpdateTaskParams struct {
	TaskID string

	Title       *string
	Frequencies []string // canonical or legacy tags, mapped at the boundary
	DueTime     *string
	DueDate     *Date
	PublishAt   *Date
	StartDate   *Date
	EndDate     *Date
	Active      *bool

	ClearDueDate   bool
	ClearPublishAt bool
	ClearStartDate bool
	ClearEndDate   bool
}

// Validate checks internal consistency of the update.
func (p UpdateTaskParams) Validate() error {
	if p.TaskID == "" {
		return fmt.Errorf("%w: task id", ErrInvalidID)
	}
	if p.Title != nil {
		if _, err := NewTitle(*p.Title); err != nil {
			return err
		}
	}
	return nil
}
