package checklist

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/schedule"
)

// Maximum number of days a single calendar query may span. The engine
// has no internal bound on work, so the caller-facing layer enforces
// one.
const MaxCalendarRangeDays = 92

// Service provides business logic for the task checklist. It owns the
// boundary between stored task records and the schedule engine: tags
// are mapped to the frequency enum here, holidays are loaded once per
// call, and "now" is taken from the injected clock exactly once per
// request and threaded through the engine explicitly.
type Service struct {
	repo Repository
	zone schedule.Zone
	now  func() time.Time
}

// Option is a functional option for configuring Service.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new checklist service.
func NewService(repo Repository, zone schedule.Zone, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		zone: zone,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// evaluator loads the holiday calendar once and builds the engine for
// this evaluation batch.
func (s *Service) evaluator(ctx context.Context) (*schedule.Evaluator, error) {
	holidays, err := s.repo.ListHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return schedule.NewEvaluator(s.zone, schedule.NewCalendar(holidays)), nil
}

type completionKey struct {
	taskID string
	date   domain.Date
}

func completionIndex(completions []domain.Completion) map[completionKey]domain.Completion {
	idx := make(map[completionKey]domain.Completion, len(completions))
	for _, c := range completions {
		idx[completionKey{taskID: c.TaskID, date: c.Date}] = c
	}
	return idx
}

// ChecklistFor returns the checklist entries for one date: every active
// task that is visible and occurs on that date, with its derived
// status and new-task badge.
func (s *Service) ChecklistFor(ctx context.Context, date domain.Date) ([]domain.ChecklistEntry, error) {
	eval, err := s.evaluator(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.FindTasks(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	completions, err := s.repo.FindCompletions(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}
	done := completionIndex(completions)

	now := s.now()
	entries := make([]domain.ChecklistEntry, 0, len(tasks))
	for _, task := range tasks {
		_, completed := done[completionKey{taskID: task.ID, date: date}]
		occurs, status := eval.Evaluate(task, date, now, completed)
		if !occurs {
			continue
		}
		entries = append(entries, domain.ChecklistEntry{
			Task:      task,
			Date:      date,
			Status:    status,
			Completed: completed,
			NewBadge:  NewBadgeVisible(eval, task, now),
		})
	}
	return entries, nil
}

// CalendarRange returns checklist entries for every date in
// [from, to] inclusive, keyed in date order. The range is bounded by
// MaxCalendarRangeDays.
func (s *Service) CalendarRange(ctx context.Context, from, to domain.Date) (map[string][]domain.ChecklistEntry, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidRange
	}
	if from.AddDays(MaxCalendarRangeDays).Before(to) {
		return nil, fmt.Errorf("%w: longer than %d days", domain.ErrInvalidRange, MaxCalendarRangeDays)
	}

	eval, err := s.evaluator(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.FindTasks(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	completions, err := s.repo.FindCompletions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}
	done := completionIndex(completions)

	now := s.now()
	days := make(map[string][]domain.ChecklistEntry)
	for date := from; !date.After(to); date = date.AddDays(1) {
		for _, task := range tasks {
			_, completed := done[completionKey{taskID: task.ID, date: date}]
			occurs, status := eval.Evaluate(task, date, now, completed)
			if !occurs {
				continue
			}
			days[date.String()] = append(days[date.String()], domain.ChecklistEntry{
				Task:      task,
				Date:      date,
				Status:    status,
				Completed: completed,
			})
		}
	}
	return days, nil
}

// CreateTaskParams carries the fields accepted when creating a task.
type CreateTaskParams struct {
	Title       string
	Frequencies []string // canonical or legacy tags
	DueTime     string
	DueDate     *domain.Date
	PublishAt   *domain.Date
	StartDate   *domain.Date
	EndDate     *domain.Date
}

// CreateTask validates input, maps frequency tags through the canonical
// table (dropping and logging unrecognized ones) and persists the task.
func (s *Service) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	title, err := domain.NewTitle(params.Title)
	if err != nil {
		return nil, err
	}

	rules, dropped := domain.ParseFrequencies(params.Frequencies)
	if len(dropped) > 0 {
		slog.WarnContext(ctx, "dropped unrecognized frequency tags",
			"title", title,
			"dropped", dropped)
	}

	idObj, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	nowUTC := s.now().UTC()
	task := &domain.Task{
		ID:          idObj.String(),
		Title:       title,
		Frequencies: rules,
		DueTime:     domain.NewDueTime(params.DueTime),
		DueDate:     params.DueDate,
		CreatedAt:   nowUTC,
		UpdatedAt:   nowUTC,
		PublishAt:   params.PublishAt,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Active:      true,
	}

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// GetTask retrieves a single task template.
func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if id == "" {
		return nil, domain.ErrTaskNotFound
	}
	return s.repo.FindTaskByID(ctx, id)
}

// ListTasks lists task templates.
func (s *Service) ListTasks(ctx context.Context, includeInactive bool) ([]*domain.Task, error) {
	return s.repo.FindTasks(ctx, includeInactive)
}

// UpdateTask applies a partial update.
func (s *Service) UpdateTask(ctx context.Context, params domain.UpdateTaskParams) (*domain.Task, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Frequencies != nil {
		_, dropped := domain.ParseFrequencies(params.Frequencies)
		if len(dropped) > 0 {
			slog.WarnContext(ctx, "dropped unrecognized frequency tags",
				"task_id", params.TaskID,
				"dropped", dropped)
		}
	}
	return s.repo.UpdateTask(ctx, params)
}

// DeleteTask removes a task template and its completions.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrTaskNotFound
	}
	return s.repo.DeleteTask(ctx, id)
}

// Complete records a (task, date) occurrence as done. The occurrence
// must exist: the task must be visible and occur on the date.
func (s *Service) Complete(ctx context.Context, taskID string, date domain.Date, completedBy string) error {
	task, err := s.repo.FindTaskByID(ctx, taskID)
	if err != nil {
		return err
	}

	eval, err := s.evaluator(ctx)
	if err != nil {
		return err
	}
	if !eval.Visible(task, date) || !eval.OccursOn(task, date) {
		return fmt.Errorf("%w: task %s has no occurrence on %s", domain.ErrNotFound, taskID, date)
	}

	return s.repo.SetCompletion(ctx, domain.Completion{
		TaskID:      taskID,
		Date:        date,
		CompletedAt: s.now().UTC(),
		CompletedBy: completedBy,
	})
}

// Reopen clears a completion record.
func (s *Service) Reopen(ctx context.Context, taskID string, date domain.Date) error {
	if _, err := s.repo.FindTaskByID(ctx, taskID); err != nil {
		return err
	}
	return s.repo.ClearCompletion(ctx, taskID, date)
}

// Holidays lists the holiday calendar entries.
func (s *Service) Holidays(ctx context.Context) ([]domain.Holiday, error) {
	return s.repo.ListHolidays(ctx)
}

// ReplaceHolidays swaps the holiday calendar for a new set.
func (s *Service) ReplaceHolidays(ctx context.Context, holidays []domain.Holiday) error {
	return s.repo.ReplaceHolidays(ctx, holidays)
}

// DeleteHoliday removes one holiday entry.
func (s *Service) DeleteHoliday(ctx context.Context, date domain.Date) error {
	return s.repo.DeleteHoliday(ctx, date)
}
