package handlers

import (
	"context"
	"net/http"
	"time"
)

// RecordAllSnapshots runs one portfolio-history snapshot pass over all users.
func (h *Handler) RecordAllSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	if err := h.HistoryService.RecordAll(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nil, http.StatusOK)
}

// RefreshPrices forces a feed refresh outside the cron cadence.
func (h *Handler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	h.PriceService.Refresh(ctx)
	h.respond(w, r, nil, http.StatusOK)
}
