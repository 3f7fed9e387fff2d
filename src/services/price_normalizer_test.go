package services_test

import (
	"testing"

	"server/src/clients/frankfurter"
	"server/src/clients/truncgil"
	"server/src/models"
	"server/src/schemas"
	"server/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselinePrices(t *testing.T) {
	table := services.BaselinePrices()

	require.Len(t, table, len(models.AllAssetTypes()))

	t.Run("tl is pinned at one", func(t *testing.T) {
		assert.Equal(t, 1.0, table[models.AssetTL].SellingPrice)
		assert.Equal(t, 1.0, table[models.AssetTL].BuyingPrice)
	})

	t.Run("everything else starts unfetched", func(t *testing.T) {
		for _, assetType := range models.AllAssetTypes() {
			if assetType == models.AssetTL {
				continue
			}
			assert.Equal(t, 0.0, table[assetType].SellingPrice, string(assetType))
			assert.Equal(t, 0.0, table[assetType].BuyingPrice, string(assetType))
		}
	})
}

func TestNormalizeCurrencyRates(t *testing.T) {
	t.Run("inverts TRY-based rates into TRY prices", func(t *testing.T) {
		resp := &frankfurter.LatestRatesResponse{
			Base: "TRY",
			Rates: map[string]float64{
				"USD": 0.03125, // 1 TRY = 0.03125 USD -> 1 USD = 32 TRY
				"EUR": 0.025,
			},
		}

		updates := services.NormalizeCurrencyRates(resp)

		require.Len(t, updates, 2)
		assert.InDelta(t, 32.0, updates[models.AssetUSD].SellingPrice, 1e-9)
		assert.InDelta(t, 40.0, updates[models.AssetEUR].SellingPrice, 1e-9)
		assert.Equal(t, updates[models.AssetUSD].SellingPrice, updates[models.AssetUSD].BuyingPrice)
	})

	t.Run("skips unknown symbols and non-positive rates", func(t *testing.T) {
		resp := &frankfurter.LatestRatesResponse{
			Rates: map[string]float64{
				"GBP": 0.024,
				"USD": 0,
			},
		}

		assert.Empty(t, services.NormalizeCurrencyRates(resp))
	})

	t.Run("tolerates a nil response", func(t *testing.T) {
		assert.Empty(t, services.NormalizeCurrencyRates(nil))
	})
}

func TestNormalizeMetals(t *testing.T) {
	t.Run("maps known codes with english field names", func(t *testing.T) {
		resp := truncgil.TodayResponse{
			"GRA":         {Selling: 2450.75, Buying: 2440.10},
			"CEYREKALTIN": {Selling: "4100,50", Buying: "4050,25"},
			"GUMUS":       {Selling: "31,20", Buying: "30,80"},
		}

		updates := services.NormalizeMetals(resp)

		require.Len(t, updates, 3)
		assert.Equal(t, 2450.75, updates[models.AssetGold].SellingPrice)
		assert.Equal(t, 2440.10, updates[models.AssetGold].BuyingPrice)
		assert.Equal(t, 4100.50, updates[models.AssetQuarterGold].SellingPrice)
		assert.Equal(t, 31.20, updates[models.AssetGumus].SellingPrice)
	})

	t.Run("maps the turkish field name variant", func(t *testing.T) {
		resp := truncgil.TodayResponse{
			"22AYARBILEZIK": {Satis: "2250,00", Alis: "2200,00"},
			"ATAALTIN":      {Satis: 17100.0, Alis: 16900.0},
		}

		updates := services.NormalizeMetals(resp)

		require.Len(t, updates, 2)
		assert.Equal(t, 2250.0, updates[models.AssetAyar22Bilezik].SellingPrice)
		assert.Equal(t, 2200.0, updates[models.AssetAyar22Bilezik].BuyingPrice)
		assert.Equal(t, 17100.0, updates[models.AssetAtaGold].SellingPrice)
	})

	t.Run("ignores unmapped codes", func(t *testing.T) {
		resp := truncgil.TodayResponse{
			"PLATIN":     {Selling: 1000.0, Buying: 990.0},
			"BRENT":      {Selling: "85,30"},
			"YARIMALTIN": {Selling: 8200.0, Buying: 8100.0},
		}

		updates := services.NormalizeMetals(resp)

		require.Len(t, updates, 1)
		assert.Contains(t, updates, models.AssetHalfGold)
	})

	t.Run("drops items whose values are all garbage", func(t *testing.T) {
		resp := truncgil.TodayResponse{
			"GRA": {Selling: "n/a", Buying: ""},
		}

		assert.Empty(t, services.NormalizeMetals(resp))
	})

	t.Run("backfills a missing side from the other", func(t *testing.T) {
		resp := truncgil.TodayResponse{
			"GRA": {Selling: 2450.0},
		}

		updates := services.NormalizeMetals(resp)
		assert.Equal(t, 2450.0, updates[models.AssetGold].BuyingPrice)
	})
}

func TestMergePrices(t *testing.T) {
	t.Run("keeps assets absent from the update", func(t *testing.T) {
		current := services.BaselinePrices()
		services.MergePrices(current, schemas.PriceTable{
			models.AssetUSD:  {Symbol: models.AssetUSD, SellingPrice: 30, BuyingPrice: 30},
			models.AssetEUR:  {Symbol: models.AssetEUR, SellingPrice: 32, BuyingPrice: 32},
			models.AssetGold: {Symbol: models.AssetGold, SellingPrice: 2400, BuyingPrice: 2390},
		})

		// Metals feed fails on the next cycle; only currencies arrive.
		services.MergePrices(current, schemas.PriceTable{
			models.AssetUSD: {Symbol: models.AssetUSD, SellingPrice: 31, BuyingPrice: 31},
			models.AssetEUR: {Symbol: models.AssetEUR, SellingPrice: 33, BuyingPrice: 33},
		})

		assert.Equal(t, 31.0, current[models.AssetUSD].SellingPrice)
		assert.Equal(t, 33.0, current[models.AssetEUR].SellingPrice)
		assert.Equal(t, 2400.0, current[models.AssetGold].SellingPrice, "gold must keep its stale value")
	})

	t.Run("never overwrites tl", func(t *testing.T) {
		current := services.BaselinePrices()
		services.MergePrices(current, schemas.PriceTable{
			models.AssetTL: {Symbol: models.AssetTL, SellingPrice: 5, BuyingPrice: 5},
		})

		assert.Equal(t, 1.0, current[models.AssetTL].SellingPrice)
		assert.Equal(t, 1.0, current[models.AssetTL].BuyingPrice)
	})

	t.Run("computes change against the previous value", func(t *testing.T) {
		current := services.BaselinePrices()
		services.MergePrices(current, schemas.PriceTable{
			models.AssetUSD: {Symbol: models.AssetUSD, SellingPrice: 30, BuyingPrice: 30},
		})
		services.MergePrices(current, schemas.PriceTable{
			models.AssetUSD: {Symbol: models.AssetUSD, SellingPrice: 33, BuyingPrice: 33},
		})

		assert.InDelta(t, 3.0, current[models.AssetUSD].Change, 1e-9)
		assert.InDelta(t, 10.0, current[models.AssetUSD].ChangePercent, 1e-9)
	})
}
