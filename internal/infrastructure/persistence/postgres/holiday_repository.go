package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// ListHolidays returns all holiday calendar entries sorted by date.
func (s *Store) ListHolidays(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := s.pool.Query(ctx, `
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
		var (
			date time.Time
			name string
		)
		if err := rows.Scan(&date, &name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, domain.Holiday{
			Date: dateFromDB(date),
			Name: name,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}
	return holidays, nil
}

// ReplaceHolidays swaps the full holiday set atomically.
func (s *Store) ReplaceHolidays(ctx context.Context, holidays []domain.Holiday) error {
	return s.inTransaction(ctx, "replace_holidays", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM holidays`); err != nil {
			return fmt.Errorf("failed to clear holidays: %w", err)
		}
		for _, h := range holidays {
			// Duplicate dates in the input keep the first entry.
			if _, err := tx.Exec(ctx, `
				INSERT INTO holidays (holiday_date, name)
				VALUES ($1, $2)
				ON CONFLICT (holiday_date) DO NOTHING`,
				dateToDB(h.Date),
				h.Name,
			); err != nil {
				return fmt.Errorf("failed to insert holiday %s: %w", h.Date, err)
			}
		}
		return nil
	})
}

// DeleteHoliday removes the entry for one date, if present.
func (s *Store) DeleteHoliday(ctx context.Context, date domain.Date) error {
	if _, err := s.pool.Exec(ctx, `
		DELETE FROM holidays
		WHERE holiday_date = $1`,
		dateToDB(date),
	); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}
