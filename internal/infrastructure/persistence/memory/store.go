// Package memory provides an in-process store. It backs unit tests and
// the zero-dependency demo mode (STORAGE_TYPE=memory); production
// deployments use the postgres or sqlite stores.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rotaboard/rotaboard/internal/application/checklist"
	"github.com/rotaboard/rotaboard/internal/application/snapshot"
	"github.com/rotaboard/rotaboard/internal/domain"
)

type completionKey struct {
	taskID string
	date   domain.Date
}

// Store is a mutex-guarded in-memory implementation of the repository
// interfaces.
type Store struct {
	mu          sync.RWMutex
	tasks       map[string]*domain.Task
	holidays    map[domain.Date]string
	completions map[completionKey]domain.Completion
	snapshots   map[domain.Date]domain.DaySnapshot
}

// Compile-time verification that Store implements the repositories.
var (
	_ checklist.Repository = (*Store)(nil)
	_ snapshot.Repository  = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		tasks:       make(map[string]*domain.Task),
		holidays:    make(map[domain.Date]string),
		completions: make(map[completionKey]domain.Completion),
		snapshots:   make(map[domain.Date]domain.DaySnapshot),
	}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	c.Frequencies = append([]domain.FrequencyRule(nil), t.Frequencies...)
	return &c
}

// CreateTask stores a copy of the task.
func (s *Store) CreateTask(_ context.Context, task *domain.Task) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

// FindTaskByID returns a copy of the stored task.
func (s *Store) FindTaskByID(_ context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

// FindTasks lists stored tasks sorted by creation time then ID.
func (s *Store) FindTasks(_ context.Context, includeInactive bool) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !includeInactive && !task.Active {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

// UpdateTask applies the partial update in place.
func (s *Store) UpdateTask(_ context.Context, params domain.UpdateTaskParams) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[params.TaskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	if params.Title != nil {
		title, err := domain.NewTitle(*params.Title)
		if err != nil {
			return nil, err
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

	return cloneTask(task), nil
}

// DeleteTask removes the task and its completion records.
func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for key := range s.completions {
		if key.taskID == id {
			delete(s.completions, key)
		}
	}
	return nil
}

// ListHolidays returns all holiday entries sorted by date.
func (s *Store) ListHolidays(_ context.Context) ([]domain.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	holidays := make([]domain.Holiday, 0, len(s.holidays))
	for date, name := range s.holidays {
		holidays = append(holidays, domain.Holiday{Date: date, Name: name})
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays, nil
}

// ReplaceHolidays swaps the full holiday set.
func (s *Store) ReplaceHolidays(_ context.Context, holidays []domain.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays = make(map[domain.Date]string, len(holidays))
	for _, h := range holidays {
		if _, ok := s.holidays[h.Date]; ok {
			continue
		}
		s.holidays[h.Date] = h.Name
	}
	return nil
}

// DeleteHoliday removes the entry for one date.
func (s *Store) DeleteHoliday(_ context.Context, date domain.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holidays, date)
	return nil
}

// FindCompletions returns completions with dates in [from, to].
func (s *Store) FindCompletions(_ context.Context, from, to domain.Date) ([]domain.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Completion
	for key, c := range s.completions {
		if key.date.Before(from) || key.date.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// SetCompletion records a completion, keeping the original on repeats.
func (s *Store) SetCompletion(_ context.Context, completion domain.Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := completionKey{taskID: completion.TaskID, date: completion.Date}
	if _, ok := s.completions[key]; ok {
		return nil
	}
	s.completions[key] = completion
	return nil
}

// ClearCompletion removes a completion record.
func (s *Store) ClearCompletion(_ context.Context, taskID string, date domain.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.completions, completionKey{taskID: taskID, date: date})
	return nil
}

// HasSnapshot reports whether a summary exists for the date.
func (s *Store) HasSnapshot(_ context.Context, date domain.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.snapshots[date]
	return ok, nil
}

// SaveSnapshot persists a per-day summary row.
func (s *Store) SaveSnapshot(_ context.Context, snapshot domain.DaySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.Date] = snapshot
	return nil
}

// Snapshot returns the stored summary for a date, for tests.
func (s *Store) Snapshot(date domain.Date) (domain.DaySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[date]
	return snap, ok
}
