package models

import (
	"time"
)

// Portfolio is a user-defined named grouping of lots. Purely organizational:
// deleting a portfolio reassigns its lots to uncategorized, it never deletes
// them.
type Portfolio struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Name        string    `db:"name" json:"name"`
	Color       string    `db:"color" json:"color"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
