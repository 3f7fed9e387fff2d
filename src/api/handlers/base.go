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
	redis_utils "server/src/utils/redis"

	"github.com/go-chi/jwtauth"
)

type Handler struct {
	LedgerService    services.LedgerServiceI
	PortfolioService services.PortfolioServiceI
	PriceService     services.PriceServiceI
	HistoryService   services.HistoryServiceI
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var locker services.LotLocker
	if cfg.Databases.Redis.Host != "" {
		redisHandler, err := redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
		locker = redisHandler
	}

	lotRepository := repositories.NewLotRepository(db)
	saleRepository := repositories.NewSaleRepository(db)
	portfolioRepository := repositories.NewPortfolioRepository(db)
	historyRepository := repositories.NewHistoryRepository(db)

	priceService := services.NewPriceService(frankfurter.NewClient(cfg), truncgil.NewClient(cfg))
	return &Handler{
		LedgerService:    services.NewLedgerService(db, lotRepository, saleRepository, priceService, locker),
		PortfolioService: services.NewPortfolioService(db, portfolioRepository, lotRepository, priceService),
		PriceService:     priceService,
		HistoryService:   services.NewHistoryService(lotRepository, historyRepository, priceService),
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	var partialWrite *services.PartialWriteError
	if errors.Is(err, context.DeadlineExceeded) {
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "Request timed out"))
	} else if errors.As(err, &partialWrite) {
		utils.WriteError(w, utils.NewHTTPError(http.StatusInternalServerError, partialWrite.Error()))
	} else if errors.As(err, &httpErr) {
		utils.WriteError(w, httpErr)
	} else if err != nil {
		utils.WriteError(w, utils.InternalServerError(err.Error()))
	} else {
		utils.WriteError(w, utils.InternalServerError("Unhandled error"))
	}
}

// userID resolves the authenticated user from the verified token. The
// identity provider issues the token; this service only trusts its sub claim.
func (h *Handler) userID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", utils.Unauthorized("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", utils.Unauthorized("token has no subject")
	}
	return sub, nil
}
