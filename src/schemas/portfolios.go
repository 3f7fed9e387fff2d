package schemas

type CreatePortfolioRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

type UpdatePortfolioRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// PortfolioScope selects which lots a grouped valuation covers: a portfolio
// id, every lot, or only lots without a portfolio.
const (
	PortfolioScopeAll           = "all"
	PortfolioScopeUncategorized = "uncategorized"
)

type PortfolioValueResponse struct {
	Scope    string  `json:"scope"`
	Value    float64 `json:"value"`
	LotCount int     `json:"lotCount"`
}
