// Package catalog holds the product normalization and pricing rules shared by
// the write path (create/update) and the read path (listing, detail).
//
// Everything here is a pure function of its inputs: no I/O, no shared state.
package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// toNumber coerces a loosely-typed value to a finite float64. Strings are
// parsed after trimming; blank strings, booleans, nil and composite values do
// not coerce.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case *float64:
		if n == nil {
			return 0, false
		}
		f = *n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isAbsent reports whether a field value should be read as "not provided".
func isAbsent(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case *float64:
		return n == nil
	case string:
		return strings.TrimSpace(n) == ""
	}
	return false
}
