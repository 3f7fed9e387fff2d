package frankfurter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/src/clients/frankfurter"
	"server/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *frankfurter.FrankfurterServiceClient {
	cfg := &config.Config{}
	cfg.ExternalClients.Frankfurter.BaseURL = baseURL
	return frankfurter.NewClient(cfg)
}

func TestGetLatestRates(t *testing.T) {
	t.Run("parses rates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/latest", r.URL.Path)
			assert.Equal(t, "TRY", r.URL.Query().Get("from"))
			assert.Equal(t, "USD,EUR", r.URL.Query().Get("to"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"amount": 1.0,
				"base": "TRY",
				"date": "2026-08-28",
				"rates": {"USD": 0.03125, "EUR": 0.025}
			}`))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GetLatestRates(context.Background(), "TRY", []string{"USD", "EUR"})

		require.NoError(t, err)
		assert.Equal(t, "TRY", response.Base)
		assert.Equal(t, 0.03125, response.Rates["USD"])
		assert.Equal(t, 0.025, response.Rates["EUR"])
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetLatestRates(context.Background(), "TRY", []string{"USD"})
		assert.Error(t, err)
	})
}
