package schemas

import (
	"time"

	"server/src/models"
)

type CreateLotRequest struct {
	Type          models.AssetType `json:"type"`
	Amount        float64          `json:"amount"`
	PurchasePrice float64          `json:"purchasePrice"`
	PurchaseDate  time.Time        `json:"purchaseDate"`
	PortfolioID   *int64           `json:"portfolioId"`
}

type SellLotRequest struct {
	SellPrice float64    `json:"sellPrice"`
	Amount    float64    `json:"amount"`
	SaleDate  *time.Time `json:"saleDate"`
}

type AssignPortfolioRequest struct {
	PortfolioID *int64 `json:"portfolioId"`
}

// LotValuation is one lot decorated with its live valuation. PriceLoaded lets
// the UI distinguish a missing quote from a genuinely worthless position.
type LotValuation struct {
	models.InvestmentLot
	CurrentValue   float64 `json:"currentValue"`
	UnrealizedGain float64 `json:"unrealizedGain"`
	GainPercent    float64 `json:"gainPercent"`
	PriceLoaded    bool    `json:"priceLoaded"`
}

type LotsValuationResponse struct {
	Lots        []LotValuation `json:"lots"`
	TotalValue  float64        `json:"totalValue"`
	LastUpdated *time.Time     `json:"lastUpdated"`
}

// AssetSummaryItem aggregates a user's lots of one asset type.
type AssetSummaryItem struct {
	Type           models.AssetType `json:"type"`
	Name           string           `json:"name"`
	Unit           string           `json:"unit"`
	FractionDigits int              `json:"fractionDigits"`
	TotalAmount    float64          `json:"totalAmount"`
	TotalValue     float64          `json:"totalValue"`
}

type AssetSummaryResponse struct {
	Summary     []AssetSummaryItem `json:"summary"`
	TotalValue  float64            `json:"totalValue"`
	LastUpdated *time.Time         `json:"lastUpdated"`
}
