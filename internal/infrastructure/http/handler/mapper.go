package handler

import (
	"time"

	"github.com/rotaboard/rotaboard/internal/domain"
)

// taskResponse is the JSON shape of a task template.
type taskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Frequencies []string `json:"frequencies"`
	DueTime     string   `json:"due_time"`
	DueDate     *string  `json:"due_date,omitempty"`
	PublishAt   *string  `json:"publish_at,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Active      bool     `json:"active"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// checklistEntryResponse is one row of the daily checklist.
type checklistEntryResponse struct {
	TaskID    string `json:"task_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	DueTime   string `json:"due_time"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	NewBadge  bool   `json:"new_badge,omitempty"`
}

// holidayEntry is the JSON shape of one holiday calendar entry.
type holidayEntry struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func taskToResponse(task *domain.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Frequencies: domain.FrequencyTags(task.Frequencies),
		DueTime:     string(task.DueTime),
		DueDate:     dateToString(task.DueDate),
		PublishAt:   dateToString(task.PublishAt),
		StartDate:   dateToString(task.StartDate),
		EndDate:     dateToString(task.EndDate),
		Active:      task.Active,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func tasksToResponse(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func entryToResponse(e domain.ChecklistEntry) checklistEntryResponse {
	return checklistEntryResponse{
		TaskID:    e.Task.ID,
		Title:     e.Task.Title,
		Date:      e.Date.String(),
		DueTime:   string(e.Task.DueTime),
		Status:    string(e.Status),
		Completed: e.Completed,
		NewBadge:  e.NewBadge,
	}
}

func entriesToResponse(entries []domain.ChecklistEntry) []checklistEntryResponse {
	out := make([]checklistEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out
}

func dateToString(d *domain.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// parseOptionalDate maps a request date field to a domain date.
// Nil stays nil.
func parseOptionalDate(s *string) (*domain.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
