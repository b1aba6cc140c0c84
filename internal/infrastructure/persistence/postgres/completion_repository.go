package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// FindCompletions returns completion records with dates in [from, to]
// inclusive.
func (s *Store) FindCompletions(ctx context.Context, from, to domain.Date) ([]domain.Completion, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT task_id, completion_date, completed_at, completed_by
		FROM completions
		WHERE completion_date BETWEEN $1 AND $2
		ORDER BY completion_date, task_id`,
		dateToDB(from),
		dateToDB(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	var completions []domain.Completion
	for rows.Next() {
		var (
			c    domain.Completion
			date time.Time
		)
		if err := rows.Scan(&c.TaskID, &date, &c.CompletedAt, &c.CompletedBy); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		c.Date = dateFromDB(date)
		c.CompletedAt = c.CompletedAt.UTC()
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completions: %w", err)
	}
	return completions, nil
}

// SetCompletion records a (task, date) occurrence as done. Repeated
// completion keeps the original record.
func (s *Store) SetCompletion(ctx context.Context, completion domain.Completion) error {
	taskUUID, err := parseTaskID(completion.TaskID)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `
		INSERT INTO completions (task_id, completion_date, completed_at, completed_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (task_id, completion_date) DO NOTHING`,
		taskUUID,
		dateToDB(completion.Date),
		completion.CompletedAt.UTC(),
		completion.CompletedBy,
	); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: task %s", domain.ErrTaskNotFound, completion.TaskID)
		}
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// ClearCompletion removes a completion record, if present.
func (s *Store) ClearCompletion(ctx context.Context, taskID string, date domain.Date) error {
	taskUUID, err := parseTaskID(taskID)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, `
		DELETE FROM completions
		WHERE task_id = $1 AND completion_date = $2`,
		taskUUID,
		dateToDB(date),
	); err != nil {
		return fmt.Errorf("failed to clear completion: %w", err)
	}
	return nil
}
