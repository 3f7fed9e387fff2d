package frankfurter

// LatestRatesResponse is the payload of GET /latest. Rates are "units of the
// target currency per 1 unit of the base currency", so a TRY-based request
// must be inverted to price the foreign currency in TRY.
type LatestRatesResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}
