package services

import (
	"sort"
	"strconv"

	"server/src/models"
	"server/src/schemas"
)

// Valuation is pure computation over lots and a price table: no state, no
// network, deterministic given its inputs.

// CurrentValue is amount times the current selling price. An unfetched price
// (0) propagates as 0; callers decide how to present it (see LotValuation).
func CurrentValue(lot models.InvestmentLot, prices schemas.PriceTable) float64 {
	return lot.Amount * prices[lot.Type].SellingPrice
}

// UnrealizedGain is the current value minus the acquisition cost.
func UnrealizedGain(lot models.InvestmentLot, prices schemas.PriceTable) float64 {
	return CurrentValue(lot, prices) - lot.Amount*lot.PurchasePrice
}

// GainPercent is the unrealized gain relative to cost, 0 when the cost basis
// is 0.
func GainPercent(lot models.InvestmentLot, prices schemas.PriceTable) float64 {
	cost := lot.Amount * lot.PurchasePrice
	if cost == 0 {
		return 0
	}
	return UnrealizedGain(lot, prices) / cost * 100
}

// TotalPortfolioValue sums the current value of every lot.
func TotalPortfolioValue(lots []models.InvestmentLot, prices schemas.PriceTable) float64 {
	var total float64
	for _, lot := range lots {
		total += CurrentValue(lot, prices)
	}
	return total
}

// RealizedProfit is the realized gain of one sale.
func RealizedProfit(sale models.SaleRecord) float64 {
	return sale.Amount*sale.SellPrice - sale.Amount*sale.BuyPrice
}

// ProfitPercent is the realized gain relative to cost, 0 when the cost is 0.
func ProfitPercent(sale models.SaleRecord) float64 {
	cost := sale.Amount * sale.BuyPrice
	if cost == 0 {
		return 0
	}
	return RealizedProfit(sale) / cost * 100
}

// AssetSummary groups lots by asset type and sums amount and value per group,
// sorted by descending total value. Summing every group reproduces
// TotalPortfolioValue for the same inputs.
func AssetSummary(lots []models.InvestmentLot, prices schemas.PriceTable) []schemas.AssetSummaryItem {
	grouped := make(map[models.AssetType]*schemas.AssetSummaryItem)
	for _, lot := range lots {
		item, ok := grouped[lot.Type]
		if !ok {
			info := lot.Type.Info()
			item = &schemas.AssetSummaryItem{
				Type:           lot.Type,
				Name:           info.Name,
				Unit:           info.Unit,
				FractionDigits: info.FractionDigits,
			}
			grouped[lot.Type] = item
		}
		item.TotalAmount += lot.Amount
		item.TotalValue += CurrentValue(lot, prices)
	}

	summary := make([]schemas.AssetSummaryItem, 0, len(grouped))
	for _, item := range grouped {
		summary = append(summary, *item)
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].TotalValue != summary[j].TotalValue {
			return summary[i].TotalValue > summary[j].TotalValue
		}
		return summary[i].Type < summary[j].Type
	})
	return summary
}

// FilterLotsByPortfolio selects the lots covered by a portfolio scope:
// "all", "uncategorized" (no portfolio), or a numeric portfolio id. An
// unparseable scope selects nothing.
func FilterLotsByPortfolio(lots []models.InvestmentLot, scope string) []models.InvestmentLot {
	if scope == schemas.PortfolioScopeAll {
		return lots
	}

	var filtered []models.InvestmentLot
	if scope == schemas.PortfolioScopeUncategorized {
		for _, lot := range lots {
			if lot.PortfolioID == nil {
				filtered = append(filtered, lot)
			}
		}
		return filtered
	}

	id, err := strconv.ParseInt(scope, 10, 64)
	if err != nil {
		return nil
	}
	for _, lot := range lots {
		if lot.PortfolioID != nil && *lot.PortfolioID == id {
			filtered = append(filtered, lot)
		}
	}
	return filtered
}

// PortfolioGroupValue is TotalPortfolioValue restricted to a portfolio scope.
func PortfolioGroupValue(lots []models.InvestmentLot, prices schemas.PriceTable, scope string) float64 {
	return TotalPortfolioValue(FilterLotsByPortfolio(lots, scope), prices)
}
