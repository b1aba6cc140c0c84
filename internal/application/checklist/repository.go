package checklist

import (
	"context"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// Repository defines storage operations for checklist management.
// Implementations return domain errors (domain.ErrTaskNotFound, ...)
// so the service and HTTP layers can map them without knowing the
// storage engine.
type Repository interface {
	// === Task operations ===

	// CreateTask persists a new task template and returns it as stored.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// FindTaskByID retrieves a task template.
	// Returns domain.ErrTaskNotFound if it does not exist.
	FindTaskByID(ctx context.Context, id string) (*domain.Task, error)

	// FindTasks lists task templates. includeInactive controls whether
	// deactivated templates are returned.
	FindTasks(ctx context.Context, includeInactive bool) ([]*domain.Task, error)

	// UpdateTask applies a partial update and returns the task as stored.
	// Returns domain.ErrTaskNotFound if it does not exist.
	UpdateTask(ctx context.Context, params domain.UpdateTaskParams) (*domain.Task, error)

	// DeleteTask removes a task template and its completion records.
	// Returns domain.ErrTaskNotFound if it does not exist.
	DeleteTask(ctx context.Context, id string) error

	// === Holiday operations ===

	// ListHolidays returns all holiday entries, order-independent.
	ListHolidays(ctx context.Context) ([]domain.Holiday, error)

	// ReplaceHolidays swaps the full holiday set atomically.
	ReplaceHolidays(ctx context.Context, holidays []domain.Holiday) error

	// DeleteHoliday removes the entry for one date, if present.
	DeleteHoliday(ctx context.Context, date domain.Date) error

	// === Completion operations ===

	// FindCompletions returns completion records with dates in
	// [from, to] inclusive.
	FindCompletions(ctx context.Context, from, to domain.Date) ([]domain.Completion, error)

	// SetCompletion records a (task, date) occurrence as done.
	// Idempotent: re-completing keeps the original record.
	SetCompletion(ctx context.Context, completion domain.Completion) error

	// ClearCompletion removes a completion record, if present.
	ClearCompletion(ctx context.Context, taskID string, date domain.Date) error
}
