package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotaboard/rotaboard/internal/application/checklist"
	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/infrastructure/http/response"
)

type createTaskRequest struct {
	Title       string   `json:"title"`
	Frequencies []string `json:"frequencies"`
	DueTime     string   `json:"due_time"`
	DueDate     *string  `json:"due_date"`
	PublishAt   *string  `json:"publish_at"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
}

// CreateTask handles POST /tasks.
func (h *ChecklistHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	params := checklist.CreateTaskParams{
		Title:       req.Title,
		Frequencies: req.Frequencies,
		DueTime:     req.DueTime,
	}
	var err error
	if params.DueDate, err = parseOptionalDate(req.DueDate); err != nil {
		response.ValidationError(w, "due_date", "must be formatted YYYY-MM-DD")
		return
	}
	if params.PublishAt, err = parseOptionalDate(req.PublishAt); err != nil {
		response.ValidationError(w, "publish_at", "must be formatted YYYY-MM-DD")
		return
	}
	if params.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		response.ValidationError(w, "start_date", "must be formatted YYYY-MM-DD")
		return
	}
	if params.EndDate, err = parseOptionalDate(req.EndDate); err != nil {
		response.ValidationError(w, "end_date", "must be formatted YYYY-MM-DD")
		return
	}

	task, err := h.service.CreateTask(r.Context(), params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, taskToResponse(task))
}

// GetTask handles GET /tasks/{taskID}.
func (h *ChecklistHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.GetTask(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, taskToResponse(task))
}

// ListTasks handles GET /tasks. Inactive templates are included when
// include_inactive=true.
func (h *ChecklistHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	tasks, err := h.service.ListTasks(r.Context(), includeInactive)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, map[string]any{"tasks": tasksToResponse(tasks)})
}

// updateTaskRequest carries a partial update. Absent fields are left
// unchanged; optional date fields set to empty string are cleared.
type updateTaskRequest struct {
	Title       *string  `json:"title"`
	Frequencies []string `json:"frequencies"`
	DueTime     *string  `json:"due_time"`
	DueDate     *string  `json:"due_date"`
	PublishAt   *string  `json:"publish_at"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Active      *bool    `json:"active"`
}

// dateField maps one optional request date onto params: empty string
// clears, a value sets, absent leaves unchanged.
func dateField(raw *string, target **domain.Date, clear *bool) error {
	if raw == nil {
		return nil
	}
	if *raw == "" {
		*clear = true
		return nil
	}
	d, err := domain.ParseDate(*raw)
	if err != nil {
		return err
	}
	*target = &d
	return nil
}

// UpdateTask handles PATCH /tasks/{taskID}.
func (h *ChecklistHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	params := domain.UpdateTaskParams{
		TaskID:      chi.URLParam(r, "taskID"),
		Title:       req.Title,
		Frequencies: req.Frequencies,
		DueTime:     req.DueTime,
		Active:      req.Active,
	}
	if err := dateField(req.DueDate, &params.DueDate, &params.ClearDueDate); err != nil {
		response.ValidationError(w, "due_date", "must be formatted YYYY-MM-DD")
		return
	}
	if err := dateField(req.PublishAt, &params.PublishAt, &params.ClearPublishAt); err != nil {
		response.ValidationError(w, "publish_at", "must be formatted YYYY-MM-DD")
		return
	}
	if err := dateField(req.StartDate, &params.StartDate, &params.ClearStartDate); err != nil {
		response.ValidationError(w, "start_date", "must be formatted YYYY-MM-DD")
		return
	}
	if err := dateField(req.EndDate, &params.EndDate, &params.ClearEndDate); err != nil {
		response.ValidationError(w, "end_date", "must be formatted YYYY-MM-DD")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (h *ChecklistHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTask(r.Context(), chi.URLParam(r, "taskID")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

type completeTaskRequest struct {
	CompletedBy string `json:"completed_by"`
}

// CompleteTask handles PUT /tasks/{taskID}/completions/{date}.
// Idempotent: repeating the call keeps the original completion record.
func (h *ChecklistHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.ValidationError(w, "date", "must be formatted YYYY-MM-DD")
		return
	}

	// Body is optional; an empty body completes anonymously.
	var req completeTaskRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "invalid JSON body")
			return
		}
	}

	if err := h.service.Complete(r.Context(), chi.URLParam(r, "taskID"), date, req.CompletedBy); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ReopenTask handles DELETE /tasks/{taskID}/completions/{date}.
func (h *ChecklistHandler) ReopenTask(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.ValidationError(w, "date", "must be formatted YYYY-MM-DD")
		return
	}

	if err := h.service.Reopen(r.Context(), chi.URLParam(r, "taskID"), date); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}
