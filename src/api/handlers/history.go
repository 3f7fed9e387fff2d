package handlers

import (
	"context"
	"net/http"
	"time"

	"server/src/schemas"
	"server/src/utils"
)

// GetHistory returns the user's portfolio value time series. Defaults to the
// last 30 days when no range is given.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := h.userID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if startDateStr := r.URL.Query().Get("startDate"); startDateStr != "" {
		from, err = time.Parse(utils.ShortDashDateLayout, startDateStr)
		if err != nil {
			h.HandleErrors(w, utils.UnprocessableEntity("invalid startDate"))
			return
		}
	}
	if endDateStr := r.URL.Query().Get("endDate"); endDateStr != "" {
		to, err = time.Parse(utils.ShortDashDateLayout, endDateStr)
		if err != nil {
			h.HandleErrors(w, utils.UnprocessableEntity("invalid endDate"))
			return
		}
		// Inclusive end of day
		to = to.Add(24*time.Hour - time.Second)
	}

	points, err := h.HistoryService.ListRange(ctx, userID, from, to)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, &schemas.HistoryResponse{Points: points}, http.StatusOK)
}
