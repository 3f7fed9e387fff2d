package utils

import (
	"strconv"
	"strings"
)

// ParseAPINumber converts a value coming from an external feed into a float64.
// The metals feed reports numbers either as JSON numbers or as strings with a
// comma decimal separator ("4.321,50" style values do not occur, only "4321,50").
// Anything unparseable normalizes to 0 so that schema drift in a feed never
// turns into a failed refresh.
func ParseAPINumber(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// RoundTo rounds a value to the given number of fraction digits. Display-side
// only; stored amounts and prices keep full precision.
func RoundTo(value float64, digits int) float64 {
	s := strconv.FormatFloat(value, 'f', digits, 64)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
