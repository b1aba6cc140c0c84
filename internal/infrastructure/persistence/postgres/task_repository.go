package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// checkRowsAffected validates that an UPDATE/DELETE affected exactly
// one row. Returns domain.ErrTaskNotFound if rowsAffected == 0.
func checkRowsAffected(rowsAffected int64, entityID string) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, entityID)
	}
	return nil
}

func parseTaskID(id string) (uuid.UUID, error) {
	taskUUID, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}
	return taskUUID, nil
}

const taskColumns = `id, title, frequencies, due_time, due_date, publish_at, start_date, end_date, active, created_at, updated_at`

// scanTask reads one task row into a domain Task.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task        domain.Task
		frequencies []byte
		dueTime     string
		dueDate     *time.Time
		publishAt   *time.Time
		startDate   *time.Time
		endDate     *time.Time
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&frequencies,
		&dueTime,
		&dueDate,
		&publishAt,
		&startDate,
		&endDate,
		&task.Active,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rules, err := frequenciesFromDB(frequencies)
	if err != nil {
		return nil, err
	}
	task.Frequencies = rules
	task.DueTime = domain.NewDueTime(dueTime)
	task.DueDate = optionalDateFromDB(dueDate)
	task.PublishAt = optionalDateFromDB(publishAt)
	task.StartDate = optionalDateFromDB(startDate)
	task.EndDate = optionalDateFromDB(endDate)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

// CreateTask persists a new task template.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	taskUUID, err := parseTaskID(task.ID)
	if err != nil {
		return nil, err
	}
	frequencies, err := frequenciesToDB(task.Frequencies)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+taskColumns,
		taskUUID,
		task.Title,
		frequencies,
		string(task.DueTime),
		optionalDateToDB(task.DueDate),
		optionalDateToDB(task.PublishAt),
		optionalDateToDB(task.StartDate),
		optionalDateToDB(task.EndDate),
		task.Active,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	)

	created, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// FindTaskByID retrieves a task template by its ID.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	taskUUID, err := parseTaskID(id)
	if err != nil {
		return nil, err
	}

	row := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1`,
		taskUUID,
	)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// FindTasks lists task templates sorted by creation time.
func (s *Store) FindTasks(ctx context.Context, includeInactive bool) ([]*domain.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE active OR $1
		ORDER BY created_at, id`,
		includeInactive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update and returns the task as stored.
// Read-modify-write in one transaction so concurrent updates do not
// interleave field-by-field.
func (s *Store) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) (*domain.Task, error) {
	taskUUID, err := parseTaskID(params.TaskID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Task
	err = s.inTransaction(ctx, "update_task", func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			SELECT `+taskColumns+`
			FROM tasks
			WHERE id = $1
			FOR UPDATE`,
			taskUUID,
		)
		task, err := scanTask(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, params.TaskID)
			}
			return fmt.Errorf("failed to get task for update: %w", err)
		}

		if err := applyTaskUpdate(task, params); err != nil {
			return err
		}
		task.UpdatedAt = time.Now().UTC()

		frequencies, err := frequenciesToDB(task.Frequencies)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			UPDATE tasks
			SET title = $2,
			    frequencies = $3,
			    due_time = $4,
			    due_date = $5,
			    publish_at = $6,
			    start_date = $7,
			    end_date = $8,
			    active = $9,
			    updated_at = $10
			WHERE id = $1`,
			taskUUID,
			task.Title,
			frequencies,
			string(task.DueTime),
			optionalDateToDB(task.DueDate),
			optionalDateToDB(task.PublishAt),
			optionalDateToDB(task.StartDate),
			optionalDateToDB(task.EndDate),
			task.Active,
			task.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		if err := checkRowsAffected(tag.RowsAffected(), params.TaskID); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyTaskUpdate(task *domain.Task, params domain.UpdateTaskParams) error {
	if params.Title != nil {
		title, err := domain.NewTitle(*params.Title)
		if err != nil {
			return err
		}
		task.Title = title
	}
	if params.Frequencies != nil {
		rules, _ := domain.ParseFrequencies(params.Frequencies)
		task.Frequencies = rules
	}
	if params.DueTime != nil {
		task.DueTime = domain.NewDueTime(*params.DueTime)
	}
	if params.DueDate != nil {
		d := *params.DueDate
		task.DueDate = &d
	}
	if params.ClearDueDate {
		task.DueDate = nil
	}
	if params.PublishAt != nil {
		d := *params.PublishAt
		task.PublishAt = &d
	}
	if params.ClearPublishAt {
		task.PublishAt = nil
	}
	if params.StartDate != nil {
		d := *params.StartDate
		task.StartDate = &d
	}
	if params.ClearStartDate {
		task.StartDate = nil
	}
	if params.EndDate != nil {
		d := *params.EndDate
		task.EndDate = &d
	}
	if params.ClearEndDate {
		task.EndDate = nil
	}
	if params.Active != nil {
		task.Active = *params.Active
	}
	return nil
}

// DeleteTask removes a task template. Completion records go with it
// via ON DELETE CASCADE.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	taskUUID, err := parseTaskID(id)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskUUID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), id)
}
