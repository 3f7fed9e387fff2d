package services

import (
	"context"
	"time"

	"server/src/models"
	"server/src/repositories"
	"server/src/utils"
)

type HistoryServiceI interface {
	RecordAll(ctx context.Context) error
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]models.PortfolioHistoryPoint, error)
}

// HistoryService appends one aggregate-value snapshot per user per run. Points
// are never rewritten; charts read them back by range.
type HistoryService struct {
	lotRepository     repositories.LotRepository
	historyRepository repositories.HistoryRepository
	priceService      PriceServiceI
}

func NewHistoryService(lotRepository repositories.LotRepository, historyRepository repositories.HistoryRepository, priceService PriceServiceI) *HistoryService {
	return &HistoryService{
		lotRepository:     lotRepository,
		historyRepository: historyRepository,
		priceService:      priceService,
	}
}

// RecordAll snapshots every user's aggregate portfolio value. When the price
// table has never been loaded the run is a no-op: recording zeros would
// poison the charts. Users whose portfolio values to zero are skipped for the
// same reason.
func (s *HistoryService) RecordAll(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)

	prices, lastUpdated := s.priceService.Snapshot()
	if lastUpdated == nil {
		logger.Warn("skipping history snapshot: prices were never loaded")
		return nil
	}

	userIDs, err := s.lotRepository.ListUserIDs(ctx)
	if err != nil {
		return err
	}

	recordedAt := time.Now()
	for _, userID := range userIDs {
		lots, err := s.lotRepository.ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		value := TotalPortfolioValue(lots, prices)
		if value <= 0 {
			continue
		}
		point := &models.PortfolioHistoryPoint{
			UserID:     userID,
			Value:      value,
			RecordedAt: recordedAt,
		}
		if err := s.historyRepository.Insert(ctx, point); err != nil {
			return err
		}
	}
	return nil
}

func (s *HistoryService) ListRange(ctx context.Context, userID string, from, to time.Time) ([]models.PortfolioHistoryPoint, error) {
	return s.historyRepository.ListRange(ctx, userID, from, to)
}
