package schemas

import (
	"server/src/models"
)

// SaleWithProfit decorates a realized sale with its profit figures.
type SaleWithProfit struct {
	models.SaleRecord
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
}

type SalesResponse struct {
	Sales       []SaleWithProfit `json:"sales"`
	TotalProfit float64          `json:"totalProfit"`
}
