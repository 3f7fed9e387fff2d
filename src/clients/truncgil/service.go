package truncgil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"server/src/config"
	"server/src/utils"
	"server/src/utils/requests"
)

// responseCacheWindow damps bursts of manual refreshes against the feed.
const responseCacheWindow = time.Minute

type TruncgilServiceClientI interface {
	GetToday(ctx context.Context) (TodayResponse, error)
}

type TruncgilServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	cache   *utils.Cache[TodayResponse]
}

// NewClient creates a new instance of TruncgilServiceClient
func NewClient(cfg *config.Config) *TruncgilServiceClient {
	return &TruncgilServiceClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.Truncgil.BaseURL,
		cache:   utils.NewCache[TodayResponse](),
	}
}

// GetToday fetches today's metal and currency quotes. A response fetched within
// the last minute is served from cache.
func (c *TruncgilServiceClient) GetToday(ctx context.Context) (TodayResponse, error) {
	if cached, ok := c.cache.Get(time.Now().Add(-responseCacheWindow)); ok {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/today.json", c.BaseURL)

	resp, err := c.API.Get(ctx, endpoint, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("truncgil returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var todayResponse TodayResponse
	if err = json.Unmarshal(responseBody, &todayResponse); err != nil {
		return nil, err
	}

	c.cache.Set(todayResponse, responseCacheWindow)
	return todayResponse, nil
}
