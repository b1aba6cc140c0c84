package handler

import (
	"net/http"

	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/infrastructure/http/response"
)

// GetChecklist handles GET /checklist?date=YYYY-MM-DD. The date
// parameter is required; the frontend passes the staff member's
// current local date.
func (h *ChecklistHandler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		response.ValidationError(w, "date", "required query parameter missing")
		return
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		response.ValidationError(w, "date", "must be formatted YYYY-MM-DD")
		return
	}

	entries, err := h.service.ChecklistFor(r.Context(), date)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, map[string]any{
		"date":    date.String(),
		"entries": entriesToResponse(entries),
	})
}

// GetCalendar handles GET /calendar?from=YYYY-MM-DD&to=YYYY-MM-DD,
// returning entries for every date in the inclusive range keyed by
// date string.
func (h *ChecklistHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	from, err := domain.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		response.ValidationError(w, "from", "must be formatted YYYY-MM-DD")
		return
	}
	to, err := domain.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		response.ValidationError(w, "to", "must be formatted YYYY-MM-DD")
		return
	}

	days, err := h.service.CalendarRange(r.Context(), from, to)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	out := make(map[string][]checklistEntryResponse, len(days))
	for date, entries := range days {
		out[date] = entriesToResponse(entries)
	}
	response.OK(w, map[string]any{
		"from": from.String(),
		"to":   to.String(),
		"days": out,
	})
}
