package models

import (
	"time"
)

// PortfolioHistoryPoint is one append-only snapshot of a user's aggregate
// portfolio value, written by the worker job and queried by range for charts.
type PortfolioHistoryPoint struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	Value      float64   `db:"value" json:"value"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}
