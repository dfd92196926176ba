package catalog

import (
	"reflect"
	"slices"
)

// DefaultSizeOptions is the size set offered by the admin product form.
var DefaultSizeOptions = []float64{5, 6, 7, 8, 9, 10, 11, 12}

// NormalizeSizes turns an arbitrary value into canonical sizes: positive,
// finite, deduplicated and ascending. Anything that is not a sequence yields an
// empty slice; elements that do not coerce to a number are dropped.
func NormalizeSizes(v any) []float64 {
	out := []float64{}

	elems, ok := sequence(v)
	if !ok {
		return out
	}

	seen := make(map[float64]struct{}, len(elems))
	for _, e := range elems {
		n, ok := toNumber(e)
		if !ok || n <= 0 {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	slices.Sort(out)
	return out
}

// ToggleSize adds size to the selection when missing and removes it when
// present. The result is always canonical.
func ToggleSize(sizes []float64, size float64) []float64 {
	current := NormalizeSizes(sizes)
	if i := slices.Index(current, size); i >= 0 {
		return slices.Delete(current, i, i+1)
	}
	return NormalizeSizes(append(current, size))
}

// sequence unpacks slices and arrays of any element type into []any.
func sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case []any:
		return s, true
	case []float64:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	// Byte slices are raw payloads, not sequences of sizes.
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
