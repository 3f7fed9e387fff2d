package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"server/src/config"
	"server/src/utils/requests"
)

type FrankfurterServiceClientI interface {
	GetLatestRates(ctx context.Context, base string, symbols []string) (*LatestRatesResponse, error)
}

type FrankfurterServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of FrankfurterServiceClient
func NewClient(cfg *config.Config) *FrankfurterServiceClient {
	return &FrankfurterServiceClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.Frankfurter.BaseURL,
	}
}

// GetLatestRates fetches the latest exchange rates for the given base currency
// and target symbols.
func (c *FrankfurterServiceClient) GetLatestRates(ctx context.Context, base string, symbols []string) (*LatestRatesResponse, error) {
	endpoint := fmt.Sprintf("%s/latest", c.BaseURL)

	params := url.Values{}
	params.Add("from", base)
	params.Add("to", strings.Join(symbols, ","))

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("frankfurter returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var ratesResponse LatestRatesResponse
	if err = json.Unmarshal(responseBody, &ratesResponse); err != nil {
		return nil, err
	}

	return &ratesResponse, nil
}
