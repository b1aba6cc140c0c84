package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rotaboard/rotaboard/internal/application/checklist"
	"github.com/rotaboard/rotaboard/internal/application/snapshot"
	"github.com/rotaboard/rotaboard/internal/domain"
)

// Store is the SQLite implementation of the repository interfaces.
// Dates are stored as ISO 8601 text and instants as RFC 3339 UTC text,
// which keeps lexicographic and chronological order identical.
type Store struct {
	db *sql.DB
}

// Compile-time verification that Store implements the repositories.
var (
	_ checklist.Repository = (*Store)(nil)
	_ snapshot.Repository  = (*Store)(nil)
)

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func instantToDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func instantFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored instant %q: %w", s, err)
	}
	return t.UTC(), nil
}

func optionalDateToDB(d *domain.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func optionalDateFromDB(s *string) (*domain.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func frequenciesToDB(rules []domain.FrequencyRule) (string, error) {
	tags, err := json.Marshal(domain.FrequencyTags(rules))
	if err != nil {
		return "", fmt.Errorf("failed to marshal frequencies: %w", err)
	}
	return string(tags), nil
}

func frequenciesFromDB(raw string) ([]domain.FrequencyRule, error) {
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frequencies: %w", err)
	}
	rules, _ := domain.ParseFrequencies(tags)
	return rules, nil
}

const taskColumns = `id, title, frequencies, due_time, due_date, publish_at, start_date, end_date, active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		frequencies string
		dueTime     string
		dueDate     *string
		publishAt   *string
		startDate   *string
		endDate     *string
		createdAt   string
		updatedAt   string
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
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	rules, err := frequenciesFromDB(frequencies)
	if err != nil {
		return nil, err
	}
	task.Frequencies = rules
	task.DueTime = domain.NewDueTime(dueTime)
	if task.DueDate, err = optionalDateFromDB(dueDate); err != nil {
		return nil, err
	}
	if task.PublishAt, err = optionalDateFromDB(publishAt); err != nil {
		return nil, err
	}
	if task.StartDate, err = optionalDateFromDB(startDate); err != nil {
		return nil, err
	}
	if task.EndDate, err = optionalDateFromDB(endDate); err != nil {
		return nil, err
	}
	if task.CreatedAt, err = instantFromDB(createdAt); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = instantFromDB(updatedAt); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask persists a new task template.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	frequencies, err := frequenciesToDB(task.Frequencies)
	if err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		frequencies,
		string(task.DueTime),
		optionalDateToDB(task.DueDate),
		optionalDateToDB(task.PublishAt),
		optionalDateToDB(task.StartDate),
		optionalDateToDB(task.EndDate),
		task.Active,
		instantToDB(task.CreatedAt),
		instantToDB(task.UpdatedAt),
	); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.FindTaskByID(ctx, task.ID)
}

// FindTaskByID retrieves a task template by its ID.
func (s *Store) FindTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?`,
		id,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// FindTasks lists task templates sorted by creation time.
func (s *Store) FindTasks(ctx context.Context, includeInactive bool) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE active OR ?
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

// UpdateTask applies a partial update inside a transaction.
func (s *Store) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) (*domain.Task, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?`,
		params.TaskID,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, params.TaskID)
		}
		return nil, fmt.Errorf("failed to get task for update: %w", err)
	}

	if err := applyTaskUpdate(task, params); err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now().UTC()

	frequencies, err := frequenciesToDB(task.Frequencies)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?,
		    frequencies = ?,
		    due_time = ?,
		    due_date = ?,
		    publish_at = ?,
		    start_date = ?,
		    end_date = ?,
		    active = ?,
		    updated_at = ?
		WHERE id = ?`,
		task.Title,
		frequencies,
		string(task.DueTime),
		optionalDateToDB(task.DueDate),
		optionalDateToDB(task.PublishAt),
		optionalDateToDB(task.StartDate),
		optionalDateToDB(task.EndDate),
		task.Active,
		instantToDB(task.UpdatedAt),
		params.TaskID,
	); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return task, nil
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

// DeleteTask removes a task template; completions cascade.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, id)
	}
	return nil
}

// ListHolidays returns all holiday entries sorted by date.
func (s *Store) ListHolidays(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT holiday_date, name
		FROM holidays
		ORDER BY holiday_date`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []domain.Holiday
	for rows.Next() {
		var dateStr, name string
		if err := rows.Scan(&dateStr, &name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, domain.Holiday{Date: date, Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}
	return holidays, nil
}

// ReplaceHolidays swaps the full holiday set atomically.
func (s *Store) ReplaceHolidays(ctx context.Context, holidays []domain.Holiday) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holidays`); err != nil {
		return fmt.Errorf("failed to clear holidays: %w", err)
	}
	for _, h := range holidays {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holidays (holiday_date, name)
			VALUES (?, ?)
			ON CONFLICT (holiday_date) DO NOTHING`,
			h.Date.String(),
			h.Name,
		); err != nil {
			return fmt.Errorf("failed to insert holiday %s: %w", h.Date, err)
		}
	}
	return tx.Commit()
}

// DeleteHoliday removes the entry for one date, if present.
func (s *Store) DeleteHoliday(ctx context.Context, date domain.Date) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM holidays
		WHERE holiday_date = ?`,
		date.String(),
	); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// FindCompletions returns completions with dates in [from, to].
func (s *Store) FindCompletions(ctx context.Context, from, to domain.Date) ([]domain.Completion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, completion_date, completed_at, completed_by
		FROM completions
		WHERE completion_date BETWEEN ? AND ?
		ORDER BY completion_date, task_id`,
		from.String(),
		to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	var completions []domain.Completion
	for rows.Next() {
		var (
			c           domain.Completion
			dateStr     string
			completedAt string
		)
		if err := rows.Scan(&c.TaskID, &dateStr, &completedAt, &c.CompletedBy); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		if c.Date, err = domain.ParseDate(dateStr); err != nil {
			return nil, err
		}
		if c.CompletedAt, err = instantFromDB(completedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completions: %w", err)
	}
	return completions, nil
}

// SetCompletion records a completion, keeping the original on repeats.
func (s *Store) SetCompletion(ctx context.Context, completion domain.Completion) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO completions (task_id, completion_date, completed_at, completed_by)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (task_id, completion_date) DO NOTHING`,
		completion.TaskID,
		completion.Date.String(),
		instantToDB(completion.CompletedAt),
		completion.CompletedBy,
	); err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// ClearCompletion removes a completion record, if present.
func (s *Store) ClearCompletion(ctx context.Context, taskID string, date domain.Date) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM completions
		WHERE task_id = ? AND completion_date = ?`,
		taskID,
		date.String(),
	); err != nil {
		return fmt.Errorf("failed to clear completion: %w", err)
	}
	return nil
}

// HasSnapshot reports whether a day summary already exists.
func (s *Store) HasSnapshot(ctx context.Context, date domain.Date) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM day_snapshots WHERE snapshot_date = ?
		)`,
		date.String(),
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check snapshot: %w", err)
	}
	return exists, nil
}

// SaveSnapshot persists one per-day summary row.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot domain.DaySnapshot) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO day_snapshots (id, snapshot_date, total, completed, missed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (snapshot_date) DO NOTHING`,
		snapshot.ID,
		snapshot.Date.String(),
		snapshot.Total,
		snapshot.Completed,
		snapshot.Missed,
		instantToDB(snapshot.CreatedAt),
	); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
