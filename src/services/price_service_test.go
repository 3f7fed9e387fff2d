package services_test

import (
	"context"
	"errors"
	"testing"

	"server/src/clients/frankfurter"
	"server/src/clients/truncgil"
	"server/src/models"
	"server/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFrankfurterClient struct {
	response *frankfurter.LatestRatesResponse
	err      error
}

func (c *fakeFrankfurterClient) GetLatestRates(ctx context.Context, base string, symbols []string) (*frankfurter.LatestRatesResponse, error) {
	return c.response, c.err
}

type fakeTruncgilClient struct {
	response truncgil.TodayResponse
	err      error
}

func (c *fakeTruncgilClient) GetToday(ctx context.Context) (truncgil.TodayResponse, error) {
	return c.response, c.err
}

func TestPriceServiceRefresh(t *testing.T) {
	ctx := context.Background()

	currencyFeed := &fakeFrankfurterClient{
		response: &frankfurter.LatestRatesResponse{
			Base:  "TRY",
			Rates: map[string]float64{"USD": 0.03125, "EUR": 0.025},
		},
	}
	metalsFeed := &fakeTruncgilClient{
		response: truncgil.TodayResponse{
			"GRA": {Selling: 2450.5, Buying: 2440.0},
		},
	}

	t.Run("before the first refresh", func(t *testing.T) {
		service := services.NewPriceService(currencyFeed, metalsFeed)
		prices, lastUpdated := service.Snapshot()

		assert.Nil(t, lastUpdated)
		assert.Equal(t, 1.0, prices[models.AssetTL].SellingPrice)
		assert.Equal(t, 0.0, prices[models.AssetUSD].SellingPrice)
	})

	t.Run("both feeds succeed", func(t *testing.T) {
		service := services.NewPriceService(currencyFeed, metalsFeed)
		service.Refresh(ctx)

		prices, lastUpdated := service.Snapshot()
		require.NotNil(t, lastUpdated)
		assert.InDelta(t, 32.0, prices[models.AssetUSD].SellingPrice, 1e-9)
		assert.InDelta(t, 40.0, prices[models.AssetEUR].SellingPrice, 1e-9)
		assert.InDelta(t, 2450.5, prices[models.AssetGold].SellingPrice, 1e-9)
		assert.Equal(t, 1.0, prices[models.AssetTL].SellingPrice)
	})

	t.Run("one feed failing keeps the other feed's assets stale", func(t *testing.T) {
		service := services.NewPriceService(currencyFeed, metalsFeed)
		service.Refresh(ctx)

		brokenMetals := &fakeTruncgilClient{err: errors.New("connection refused")}
		degraded := services.NewPriceService(currencyFeed, brokenMetals)
		degraded.Refresh(ctx)

		prices, lastUpdated := degraded.Snapshot()
		require.NotNil(t, lastUpdated)
		assert.InDelta(t, 32.0, prices[models.AssetUSD].SellingPrice, 1e-9)
		// gold was never fetched in this process and stays at baseline,
		// untouched by the currency merge
		assert.Equal(t, 0.0, prices[models.AssetGold].SellingPrice)
	})

	t.Run("one feed failing never zeroes prior values", func(t *testing.T) {
		brokenMetals := &fakeTruncgilClient{response: metalsFeed.response}
		service := services.NewPriceService(currencyFeed, brokenMetals)
		service.Refresh(ctx)

		prices, _ := service.Snapshot()
		require.InDelta(t, 2450.5, prices[models.AssetGold].SellingPrice, 1e-9)

		brokenMetals.response = nil
		brokenMetals.err = errors.New("connection refused")
		service.Refresh(ctx)

		prices, lastUpdated := service.Snapshot()
		require.NotNil(t, lastUpdated)
		assert.InDelta(t, 2450.5, prices[models.AssetGold].SellingPrice, 1e-9)
	})

	t.Run("both feeds failing leaves the table and timestamp untouched", func(t *testing.T) {
		service := services.NewPriceService(
			&fakeFrankfurterClient{err: errors.New("timeout")},
			&fakeTruncgilClient{err: errors.New("timeout")},
		)
		service.Refresh(ctx)

		prices, lastUpdated := service.Snapshot()
		assert.Nil(t, lastUpdated)
		assert.Equal(t, 0.0, prices[models.AssetUSD].SellingPrice)
		assert.Equal(t, 1.0, prices[models.AssetTL].SellingPrice)
	})

	t.Run("snapshot returns an independent copy", func(t *testing.T) {
		service := services.NewPriceService(currencyFeed, metalsFeed)
		service.Refresh(ctx)

		prices, _ := service.Snapshot()
		prices[models.AssetUSD] = services.BaselinePrices()[models.AssetUSD]

		fresh, _ := service.Snapshot()
		assert.InDelta(t, 32.0, fresh[models.AssetUSD].SellingPrice, 1e-9)
	})
}
