package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"server/src/clients/frankfurter"
	"server/src/clients/truncgil"
	"server/src/config"
	"server/src/database"
	"server/src/repositories"
	"server/src/services"
	"server/src/utils"
)

type Handler struct {
	PriceService   services.PriceServiceI
	HistoryService services.HistoryServiceI
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	lotRepository := repositories.NewLotRepository(db)
	historyRepository := repositories.NewHistoryRepository(db)

	priceService := services.NewPriceService(frankfurter.NewClient(cfg), truncgil.NewClient(cfg))
	return &Handler{
		PriceService:   priceService,
		HistoryService: services.NewHistoryService(lotRepository, historyRepository, priceService),
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out"))
	} else if errors.As(err, &httpErr) {
		utils.WriteError(w, httpErr)
	} else if err != nil {
		utils.WriteError(w, utils.InternalServerError(err.Error()))
	} else {
		utils.WriteError(w, utils.InternalServerError("Unhandled error"))
	}
}
