package schemas

import (
	"time"

	"server/src/models"
)

// Price is the normalized quote of one asset in TRY. A zero SellingPrice on a
// non-TL asset means "not fetched yet", never an actual zero valuation.
type Price struct {
	Symbol        models.AssetType `json:"symbol"`
	Name          string           `json:"name"`
	SellingPrice  float64          `json:"sellingPrice"`
	BuyingPrice   float64          `json:"buyingPrice"`
	Change        float64          `json:"change"`
	ChangePercent float64          `json:"changePercent"`
}

// PriceTable maps every known asset type to its current normalized price.
type PriceTable map[models.AssetType]Price

// PricesResponse is the API view of the current price table.
type PricesResponse struct {
	Prices      PriceTable `json:"prices"`
	LastUpdated *time.Time `json:"lastUpdated"`
}
