// Package snapshot runs the nightly checklist summary worker. It
// evaluates the previous day's checklist with the same engine the API
// uses and persists one summary row per day for the reporting layer.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/schedule"
)

// Repository defines the storage operations the snapshot worker needs.
type Repository interface {
	FindTasks(ctx context.Context, includeInactive bool) ([]*domain.Task, error)
	ListHolidays(ctx context.Context) ([]domain.Holiday, error)
	FindCompletions(ctx context.Context, from, to domain.Date) ([]domain.Completion, error)

	// HasSnapshot reports whether a summary row already exists for the
	// date, so restarts do not duplicate work.
	HasSnapshot(ctx context.Context, date domain.Date) (bool, error)

	// SaveSnapshot persists one per-day summary row.
	SaveSnapshot(ctx context.Context, snapshot domain.DaySnapshot) error
}

// Worker periodically snapshots the previous day's checklist.
type Worker struct {
	repo             Repository
	zone             schedule.Zone
	interval         time.Duration
	operationTimeout time.Duration
	now              func() time.Time
	wg               sync.WaitGroup
}

// Option is a functional option for configuring Worker.
type Option func(*Worker)

// WithInterval sets how often the worker checks for a missing snapshot.
func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		w.interval = d
	}
}

// WithOperationTimeout sets the timeout for one snapshot run.
func WithOperationTimeout(d time.Duration) Option {
	return func(w *Worker) {
		w.operationTimeout = d
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		w.now = now
	}
}

// New creates a snapshot worker.
func New(repo Repository, zone schedule.Zone, opts ...Option) *Worker {
	w := &Worker{
		repo:             repo,
		zone:             zone,
		interval:         1 * time.Hour,
		operationTimeout: 30 * time.Second,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs the worker until the context is cancelled. On shutdown it
// waits for in-flight runs to complete.
func (w *Worker) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "snapshot worker started", "interval", w.interval)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), w.operationTimeout)
	if err := w.RunOnce(startupCtx); err != nil {
		slog.ErrorContext(startupCtx, "error snapshotting on startup", "error", err)
	}
	startupCancel()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.wg.Go(func() {
				opCtx, cancel := context.WithTimeout(context.Background(), w.operationTimeout)
				defer cancel()
				if err := w.RunOnce(opCtx); err != nil {
					slog.ErrorContext(opCtx, "error snapshotting", "error", err)
				}
			})
		case <-ctx.Done():
			slog.InfoContext(ctx, "shutdown requested, waiting for in-flight snapshot runs...")
			w.wg.Wait()
			slog.InfoContext(ctx, "snapshot worker stopped gracefully")
			return nil
		}
	}
}

// RunOnce snapshots the previous local day if no snapshot exists yet.
func (w *Worker) RunOnce(ctx context.Context) error {
	now := w.now()
	date := w.zone.DateOf(now).AddDays(-1)

	exists, err := w.repo.HasSnapshot(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to check snapshot for %s: %w", date, err)
	}
	if exists {
		return nil
	}

	snapshot, err := w.buildSnapshot(ctx, date, now)
	if err != nil {
		return err
	}

	if err := w.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", date, err)
	}

	slog.InfoContext(ctx, "day snapshot saved",
		"date", date.String(),
		"total", snapshot.Total,
		"completed", snapshot.Completed,
		"missed", snapshot.Missed)
	return nil
}

func (w *Worker) buildSnapshot(ctx context.Context, date domain.Date, now time.Time) (domain.DaySnapshot, error) {
	holidays, err := w.repo.ListHolidays(ctx)
	if err != nil {
		return domain.DaySnapshot{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	eval := schedule.NewEvaluator(w.zone, schedule.NewCalendar(holidays))

	tasks, err := w.repo.FindTasks(ctx, false)
	if err != nil {
		return domain.DaySnapshot{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	completions, err := w.repo.FindCompletions(ctx, date, date)
	if err != nil {
		return domain.DaySnapshot{}, fmt.Errorf("failed to load completions: %w", err)
	}
	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		if c.Date == date {
			done[c.TaskID] = true
		}
	}

	idObj, err := uuid.NewV7()
	if err != nil {
		return domain.DaySnapshot{}, fmt.Errorf("failed to generate snapshot id: %w", err)
	}

	snapshot := domain.DaySnapshot{
		ID:        idObj.String(),
		Date:      date,
		CreatedAt: now.UTC(),
	}
	for _, task := range tasks {
		occurs, status := eval.Evaluate(task, date, now, done[task.ID])
		if !occurs {
			continue
		}
		snapshot.Total++
		switch status {
		case domain.StatusCompleted:
			snapshot.Completed++
		case domain.StatusMissed:
			snapshot.Missed++
		}
	}
	return snapshot, nil
}
