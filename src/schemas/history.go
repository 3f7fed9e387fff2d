package schemas

import (
	"server/src/models"
)

type HistoryResponse struct {
	Points []models.PortfolioHistoryPoint `json:"points"`
}
