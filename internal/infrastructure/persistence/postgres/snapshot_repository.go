package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// isForeignKeyViolation checks if an error is a PostgreSQL FK violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	// 23503 is foreign_key_violation
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// HasSnapshot reports whether a day summary already exists.
func (s *Store) HasSnapshot(ctx context.Context, date domain.Date) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM day_snapshots WHERE snapshot_date = $1
		)`,
		dateToDB(date),
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check snapshot: %w", err)
	}
	return exists, nil
}

// SaveSnapshot persists one per-day summary row. The date is unique;
// a concurrent worker writing the same day keeps the first row.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot domain.DaySnapshot) error {
	snapshotUUID, err := uuid.Parse(snapshot.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidID, err)
	}

	if _, err := s.pool.Exec(ctx, `
		INSERT INTO day_snapshots (id, snapshot_date, total, completed, missed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (snapshot_date) DO NOTHING`,
		snapshotUUID,
		dateToDB(snapshot.Date),
		snapshot.Total,
		snapshot.Completed,
		snapshot.Missed,
		snapshot.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
