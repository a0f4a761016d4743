package expr

import (
	"encoding/json"
	"math"
)

// Truthy reports whether v counts as true: zero and NaN are false,
// everything else is true.
func Truthy(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

// Bool converts a boolean result to its numeric form, 1 or 0.
func Bool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ToFloat64 converts a Go numeric value to float64. The second result is
// false for non-numeric values.
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case Tag:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
