// Package handler adapts HTTP requests to checklist service calls.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotaboard/rotaboard/internal/application/checklist"
)

// ChecklistHandler serves the task, checklist, calendar and holiday
// endpoints.
type ChecklistHandler struct {
	service *checklist.Service
}

// NewChecklistHandler creates a new HTTP API handler.
func NewChecklistHandler(service *checklist.Service) *ChecklistHandler {
	return &ChecklistHandler{service: service}
}

// NewRouter builds the API router. Both production code and tests use
// this function so they exercise identical routing.
func NewRouter(service *checklist.Service) http.Handler {
	h := NewChecklistHandler(service)

	r := chi.NewRouter()

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)
		r.Get("/", h.ListTasks)
		r.Route("/{taskID}", func(r chi.Router) {
			r.Get("/", h.GetTask)
			r.Patch("/", h.UpdateTask)
			r.Delete("/", h.DeleteTask)
			r.Put("/completions/{date}", h.CompleteTask)
			r.Delete("/completions/{date}", h.ReopenTask)
		})
	})

	r.Get("/checklist", h.GetChecklist)
	r.Get("/calendar", h.GetCalendar)

	r.Route("/holidays", func(r chi.Router) {
		r.Get("/", h.ListHolidays)
		r.Put("/", h.ReplaceHolidays)
		r.Delete("/{date}", h.DeleteHoliday)
	})

	return r
}
