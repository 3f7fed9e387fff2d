package services_test

import (
	"context"
	"testing"
	"time"

	"server/src/models"
	"server/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistoryRepo struct {
	points []models.PortfolioHistoryPoint
}

func (r *fakeHistoryRepo) Insert(ctx context.Context, point *models.PortfolioHistoryPoint) error {
	point.ID = int64(len(r.points) + 1)
	r.points = append(r.points, *point)
	return nil
}

func (r *fakeHistoryRepo) ListRange(ctx context.Context, userID string, from, to time.Time) ([]models.PortfolioHistoryPoint, error) {
	var points []models.PortfolioHistoryPoint
	for _, point := range r.points {
		if point.UserID == userID && !point.RecordedAt.Before(from) && !point.RecordedAt.After(to) {
			points = append(points, point)
		}
	}
	return points, nil
}

func TestHistoryServiceRecordAll(t *testing.T) {
	ctx := context.Background()
	var ops []string

	t.Run("is a no-op before prices are loaded", func(t *testing.T) {
		lotRepo := newFakeLotRepo(&ops)
		lotRepo.add(models.InvestmentLot{UserID: "user-1", Type: models.AssetGold, Amount: 10})
		historyRepo := &fakeHistoryRepo{}
		prices := &fakePriceService{prices: services.BaselinePrices()}

		service := services.NewHistoryService(lotRepo, historyRepo, prices)
		require.NoError(t, service.RecordAll(ctx))
		assert.Empty(t, historyRepo.points)
	})

	t.Run("records one point per user with holdings", func(t *testing.T) {
		lotRepo := newFakeLotRepo(&ops)
		lotRepo.add(models.InvestmentLot{UserID: "user-1", Type: models.AssetGold, Amount: 10})
		lotRepo.add(models.InvestmentLot{UserID: "user-2", Type: models.AssetGold, Amount: 5})
		historyRepo := &fakeHistoryRepo{}
		now := time.Now()
		prices := &fakePriceService{
			prices:      priceTable(map[models.AssetType]float64{models.AssetGold: 2000}),
			lastUpdated: &now,
		}

		service := services.NewHistoryService(lotRepo, historyRepo, prices)
		require.NoError(t, service.RecordAll(ctx))
		require.Len(t, historyRepo.points, 2)

		values := make(map[string]float64)
		for _, point := range historyRepo.points {
			values[point.UserID] = point.Value
			assert.Equal(t, historyRepo.points[0].RecordedAt, point.RecordedAt, "all points of one run share a timestamp")
		}
		assert.Equal(t, 20000.0, values["user-1"])
		assert.Equal(t, 10000.0, values["user-2"])
	})

	t.Run("skips users whose portfolio values to zero", func(t *testing.T) {
		lotRepo := newFakeLotRepo(&ops)
		lotRepo.add(models.InvestmentLot{UserID: "user-1", Type: models.AssetGold, Amount: 10})
		// user-2 only holds an asset with no fetched quote
		lotRepo.add(models.InvestmentLot{UserID: "user-2", Type: models.AssetGumus, Amount: 100})
		historyRepo := &fakeHistoryRepo{}
		now := time.Now()
		prices := &fakePriceService{
			prices:      priceTable(map[models.AssetType]float64{models.AssetGold: 2000}),
			lastUpdated: &now,
		}

		service := services.NewHistoryService(lotRepo, historyRepo, prices)
		require.NoError(t, service.RecordAll(ctx))
		require.Len(t, historyRepo.points, 1)
		assert.Equal(t, "user-1", historyRepo.points[0].UserID)
	})
}

func TestHistoryServiceListRange(t *testing.T) {
	ctx := context.Background()
	var ops []string
	lotRepo := newFakeLotRepo(&ops)
	historyRepo := &fakeHistoryRepo{
		points: []models.PortfolioHistoryPoint{
			{ID: 1, UserID: "user-1", Value: 100, RecordedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, UserID: "user-1", Value: 200, RecordedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 3, UserID: "user-2", Value: 300, RecordedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
	}
	service := services.NewHistoryService(lotRepo, historyRepo, &fakePriceService{})

	points, err := service.ListRange(ctx, "user-1",
		time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 200.0, points[0].Value)
}
