package utils_test

import (
	"testing"

	"server/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestParseAPINumber(t *testing.T) {
	t.Run("should pass numbers through unchanged", func(t *testing.T) {
		assert.Equal(t, 42.0, utils.ParseAPINumber(42.0))
		assert.Equal(t, 42.0, utils.ParseAPINumber(42))
		assert.Equal(t, 0.0, utils.ParseAPINumber(0.0))
	})

	t.Run("should parse comma decimal strings", func(t *testing.T) {
		assert.Equal(t, 1234.56, utils.ParseAPINumber("1234,56"))
		assert.Equal(t, 2450.75, utils.ParseAPINumber("2450,75"))
	})

	t.Run("should parse dot decimal strings", func(t *testing.T) {
		assert.Equal(t, 31.25, utils.ParseAPINumber("31.25"))
	})

	t.Run("should normalize garbage to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, utils.ParseAPINumber("abc"))
		assert.Equal(t, 0.0, utils.ParseAPINumber(""))
		assert.Equal(t, 0.0, utils.ParseAPINumber("  "))
		assert.Equal(t, 0.0, utils.ParseAPINumber(nil))
		assert.Equal(t, 0.0, utils.ParseAPINumber(map[string]interface{}{}))
	})
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1234.57, utils.RoundTo(1234.5678, 2))
	assert.Equal(t, 1234.5678, utils.RoundTo(1234.5678, 4))
	assert.Equal(t, 1235.0, utils.RoundTo(1234.5678, 0))
}
