package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotaboard/rotaboard/internal/domain"
	"github.com/rotaboard/rotaboard/internal/infrastructure/http/response"
)

// ListHolidays handles GET /holidays.
func (h *ChecklistHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.service.Holidays(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	entries := make([]holidayEntry, 0, len(holidays))
	for _, holiday := range holidays {
		entries = append(entries, holidayEntry{
			Date: holiday.Date.String(),
			Name: holiday.Name,
		})
	}
	response.OK(w, map[string]any{"holidays": entries})
}

type replaceHolidaysRequest struct {
	Holidays []holidayEntry `json:"holidays"`
}

// ReplaceHolidays handles PUT /holidays, swapping the full calendar.
// Admins upload the regional calendar once a year.
func (h *ChecklistHandler) ReplaceHolidays(w http.ResponseWriter, r *http.Request) {
	var req replaceHolidaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	holidays := make([]domain.Holiday, 0, len(req.Holidays))
	for _, entry := range req.Holidays {
		date, err := domain.ParseDate(entry.Date)
		if err != nil {
			response.ValidationError(w, "holidays", "dates must be formatted YYYY-MM-DD")
			return
		}
		holidays = append(holidays, domain.Holiday{Date: date, Name: entry.Name})
	}

	if err := h.service.ReplaceHolidays(r.Context(), holidays); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// DeleteHoliday handles DELETE /holidays/{date}.
func (h *ChecklistHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		response.ValidationError(w, "date", "must be formatted YYYY-MM-DD")
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), date); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}
