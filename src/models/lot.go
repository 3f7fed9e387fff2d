package models

import (
	"time"
)

// InvestmentLot is a single purchase of an asset. A lot is reduced in place by
// partial sells and removed entirely by a full sell or an explicit delete.
type InvestmentLot struct {
	ID            int64     `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Type          AssetType `db:"asset_type" json:"type"`
	Amount        float64   `db:"amount" json:"amount"`
	PurchasePrice float64   `db:"purchase_price" json:"purchasePrice"`
	PurchaseDate  time.Time `db:"purchase_date" json:"purchaseDate"`
	PortfolioID   *int64    `db:"portfolio_id" json:"portfolioId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
