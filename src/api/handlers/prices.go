package handlers

import (
	"context"
	"net/http"
	"time"

	"server/src/schemas"
)

func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, lastUpdated := h.PriceService.Snapshot()
	h.respond(w, r, &schemas.PricesResponse{
		Prices:      prices,
		LastUpdated: lastUpdated,
	}, http.StatusOK)
}

// RefreshPrices triggers an immediate feed refresh. Feed failures are not
// surfaced: the response always reflects the table after the attempt, stale
// or not.
func (h *Handler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	h.PriceService.Refresh(ctx)

	prices, lastUpdated := h.PriceService.Snapshot()
	h.respond(w, r, &schemas.PricesResponse{
		Prices:      prices,
		LastUpdated: lastUpdated,
	}, http.StatusOK)
}
