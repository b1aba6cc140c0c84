package domain

import "errors"

// Domain errors returned by the application and repository layers.
// The schedule engine itself never returns errors; its failure modes
// degrade to documented fallbacks instead.

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrTaskNotFound indicates the specified task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidID indicates the provided ID format is invalid.
	ErrInvalidID = errors.New("invalid ID format")

	// ErrTitleRequired indicates an empty task title.
	ErrTitleRequired = errors.New("title is required")

	// ErrTitleTooLong indicates a title over 255 characters.
	ErrTitleTooLong = errors.New("title too long")

	// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownFrequency indicates a frequency tag outside the
	// canonical set and its legacy aliases.
	ErrUnknownFrequency = errors.New("unknown frequency tag")

	// ErrInvalidRange indicates a calendar range with to before from.
	ErrInvalidRange = errors.New("invalid date range")
)
