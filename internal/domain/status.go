package domain

// OccurrenceStatus is the lifecycle state of one task occurrence on one
// date. It is derived per evaluation and never persisted by the engine;
// a persisted completion record takes precedence over the derived
// value.
// Value object - immutable string enum.
type OccurrenceStatus string

const (
	// StatusNotDueYet means the occurrence date is still in the future.
	StatusNotDueYet OccurrenceStatus = "not_due_yet"

	// StatusDueToday means the occurrence is today and the due instant
	// has not passed.
	StatusDueToday OccurrenceStatus = "due_today"

	// StatusOverdue means the occurrence is today but the due instant
	// has passed.
	StatusOverdue OccurrenceStatus = "overdue"

	// StatusMissed means the occurrence date has passed without
	// completion.
	StatusMissed OccurrenceStatus = "missed"

	// StatusCompleted means a completion record exists for the
	// occurrence. Completion always wins over the derived states.
	StatusCompleted OccurrenceStatus = "completed"
)
