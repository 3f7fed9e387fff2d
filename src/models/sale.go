package models

import (
	"time"
)

// SaleRecord is the immutable record of a realized sell. BuyPrice and
// PurchaseDate are copied from the source lot at sell time so the record stays
// meaningful after the lot is reduced or closed.
type SaleRecord struct {
	ID           int64     `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`
	LotID        int64     `db:"lot_id" json:"lotId"`
	Type         AssetType `db:"asset_type" json:"type"`
	Amount       float64   `db:"amount" json:"amount"`
	BuyPrice     float64   `db:"buy_price" json:"buyPrice"`
	SellPrice    float64   `db:"sell_price" json:"sellPrice"`
	SoldAt       time.Time `db:"sold_at" json:"soldAt"`
	PurchaseDate time.Time `db:"purchase_date" json:"purchaseDate"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
