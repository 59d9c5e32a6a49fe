package schemakit

import (
	"encoding/json"
	"math"
	"strconv"
)

// AsInt64 reports v as an int64 when it carries an integral value: any Go
// integer type, a json.Number holding an integer, or a float with no
// fractional part. Constraint and derived-field routines use it to compare
// numeric fields without caring how the entity was constructed.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsFloat64 reports v as a float64 when it carries a floating-point value:
// a Go float or a json.Number. Integer types are not coerced; use AsInt64.
func AsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.Trunc(f) != f || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f < math.MinInt64 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// isInt backs the int kind: Go integer types and a json.Number holding an
// integer. Floats never count, even when integral — AsInt64's float coercion
// exists for constraint authors, not for type matching.
func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	default:
		return false
	}
}

// isFloat backs the float kind. A json.Number must parse as a float; a
// malformed Number never matches.
func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	case json.Number:
		_, ok := AsFloat64(v)
		return ok
	default:
		return false
	}
}
