package utils_test

import (
	"testing"
	"time"

	"server/src/utils"
)

func TestCache(t *testing.T) {
	t.Run("should return the cached value if valid", func(t *testing.T) {
		cache := utils.NewCache[string]()
		cache.Set("test value", 1*time.Minute)

		value, found := cache.Get(time.Now().Add(-time.Minute))
		if !found || value != "test value" {
			t.Error("expected 'test value', got", value)
		}
	})

	t.Run("should miss on an empty cache", func(t *testing.T) {
		cache := utils.NewCache[string]()

		if value, found := cache.Get(time.Now().Add(-time.Minute)); found {
			t.Error("expected cache miss, got", value)
		}
	})

	t.Run("should miss when the value is older than refreshAfter", func(t *testing.T) {
		cache := utils.NewCache[string]()
		cache.Set("test value", 1*time.Minute)

		// Anything cached before now does not qualify
		if value, found := cache.Get(time.Now().Add(time.Second)); found {
			t.Error("expected cache miss due to refreshAfter, got", value)
		}
	})

	t.Run("should miss after Clear", func(t *testing.T) {
		cache := utils.NewCache[string]()
		cache.Set("test value", 1*time.Minute)
		cache.Clear()

		if value, found := cache.Get(time.Now().Add(-time.Minute)); found {
			t.Error("expected cache miss after clear, got", value)
		}
	})

	t.Run("should cache struct values", func(t *testing.T) {
		type quote struct {
			Selling float64
		}
		cache := utils.NewCache[quote]()
		cache.Set(quote{Selling: 2450.5}, 1*time.Minute)

		value, found := cache.Get(time.Now().Add(-time.Minute))
		if !found || value.Selling != 2450.5 {
			t.Errorf("expected selling 2450.5, got %+v", value)
		}
	})
}
