package truncgil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"server/src/clients/truncgil"
	"server/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *truncgil.TruncgilServiceClient {
	cfg := &config.Config{}
	cfg.ExternalClients.Truncgil.BaseURL = baseURL
	return truncgil.NewClient(cfg)
}

func TestGetToday(t *testing.T) {
	t.Run("parses english field names", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/today.json", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"Update_Date": "2026-08-30 10:00:01",
				"GRA": {"Selling": 2450.75, "Buying": 2440.10},
				"CEYREKALTIN": {"Selling": "4012,50", "Buying": "3990,00"}
			}`))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GetToday(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2450.75, response["GRA"].SellingValue())
		assert.Equal(t, 2440.10, response["GRA"].BuyingValue())
		assert.Equal(t, "4012,50", response["CEYREKALTIN"].SellingValue())
		assert.NotContains(t, response, "Update_Date", "metadata fields are not quotes")
	})

	t.Run("parses turkish field names", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"GUMUS": {"Satis": "31,45", "Alis": "31,10"}
			}`))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GetToday(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "31,45", response["GUMUS"].SellingValue())
		assert.Equal(t, "31,10", response["GUMUS"].BuyingValue())
	})

	t.Run("serves repeat calls from cache", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"GRA": {"Selling": 2450.75, "Buying": 2440.10}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetToday(context.Background())
		require.NoError(t, err)
		_, err = client.GetToday(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetToday(context.Background())
		assert.Error(t, err)
	})
}
