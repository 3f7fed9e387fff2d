package services

import (
	"server/src/clients/frankfurter"
	"server/src/clients/truncgil"
	"server/src/models"
	"server/src/schemas"
	"server/src/utils"
)

// currencySymbols maps ISO currency codes of the rates feed to asset types.
var currencySymbols = map[string]models.AssetType{
	"USD": models.AssetUSD,
	"EUR": models.AssetEUR,
}

// metalCodes maps the metals feed's asset codes to asset types. Codes not in
// this table are ignored so feed additions cannot break a refresh.
var metalCodes = map[string]models.AssetType{
	"GRA":              models.AssetGold,
	"CEYREKALTIN":      models.AssetQuarterGold,
	"YARIMALTIN":       models.AssetHalfGold,
	"TAMALTIN":         models.AssetFullGold,
	"CUMHURIYETALTINI": models.AssetCumhuriyetGold,
	"ATAALTIN":         models.AssetAtaGold,
	"14AYARALTIN":      models.AssetAyar14Gold,
	"18AYARALTIN":      models.AssetAyar18Gold,
	"22AYARBILEZIK":    models.AssetAyar22Bilezik,
	"GUMUS":            models.AssetGumus,
}

// BaselinePrices builds the full price table with every asset at 0, meaning
// "not fetched yet". TL is the base currency and is always pinned at 1/1.
func BaselinePrices() schemas.PriceTable {
	table := make(schemas.PriceTable, len(models.AllAssetTypes()))
	for _, t := range models.AllAssetTypes() {
		p := schemas.Price{Symbol: t, Name: t.Info().Name}
		if t == models.AssetTL {
			p.SellingPrice = 1
			p.BuyingPrice = 1
		}
		table[t] = p
	}
	return table
}

// NormalizeCurrencyRates converts a TRY-based rates payload into TRY prices.
// The feed reports "units of foreign currency per 1 TRY", so the TRY price of
// the foreign currency is the inverse. The feed carries no bid/ask spread;
// both sides get the same value. Zero or negative rates are skipped.
func NormalizeCurrencyRates(resp *frankfurter.LatestRatesResponse) schemas.PriceTable {
	updates := make(schemas.PriceTable)
	if resp == nil {
		return updates
	}
	for symbol, rate := range resp.Rates {
		assetType, ok := currencySymbols[symbol]
		if !ok {
			continue
		}
		if rate <= 0 {
			continue
		}
		price := 1 / rate
		updates[assetType] = schemas.Price{
			Symbol:       assetType,
			Name:         assetType.Info().Name,
			SellingPrice: price,
			BuyingPrice:  price,
		}
	}
	return updates
}

// NormalizeMetals converts the metals payload into TRY prices using the fixed
// code mapping. Values pass through ParseAPINumber, so locale-formatted
// strings and outright garbage both normalize instead of failing the refresh.
func NormalizeMetals(resp truncgil.TodayResponse) schemas.PriceTable {
	updates := make(schemas.PriceTable)
	for code, item := range resp {
		assetType, ok := metalCodes[code]
		if !ok {
			continue
		}
		selling := utils.ParseAPINumber(item.SellingValue())
		buying := utils.ParseAPINumber(item.BuyingValue())
		if selling == 0 && buying == 0 {
			continue
		}
		if buying == 0 {
			buying = selling
		}
		if selling == 0 {
			selling = buying
		}
		updates[assetType] = schemas.Price{
			Symbol:       assetType,
			Name:         assetType.Info().Name,
			SellingPrice: selling,
			BuyingPrice:  buying,
		}
	}
	return updates
}

// MergePrices applies updates on top of the current table in place. Assets
// absent from updates keep their previous value; this is what keeps a
// transient single-feed failure from zeroing unrelated prices. TL is never
// overwritten.
func MergePrices(current schemas.PriceTable, updates schemas.PriceTable) {
	for assetType, update := range updates {
		if assetType == models.AssetTL {
			continue
		}
		previous, ok := current[assetType]
		if ok && previous.SellingPrice > 0 {
			update.Change = update.SellingPrice - previous.SellingPrice
			update.ChangePercent = update.Change / previous.SellingPrice * 100
		}
		current[assetType] = update
	}
}
