package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"
)

// SortKey selects the catalogue ordering.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "priceLow"
	SortPriceHigh SortKey = "priceHigh"
	SortDiscount  SortKey = "discount"
)

var sortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortDiscount}

// SortKeys lists the supported orderings, default first.
func SortKeys() []SortKey {
	return slices.Clone(sortKeys)
}

// ParseSortKey maps a request value to a SortKey, falling back to newest.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range sortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return SortNewest, false
}

// Entry is the part of a record the ordering looks at. A nil Price or
// SellingPrice means the value is missing; a zero CreatedAt means unknown.
type Entry struct {
	ID               uint
	Name             string
	ShortDescription string
	Price            *float64
	SellingPrice     *float64
	CreatedAt        time.Time
}

// Query is the catalogue view requested by a visitor.
type Query struct {
	Search string
	Sort   SortKey
}

// Arrange filters items by the search term and orders them by the sort key.
// The input slice is left untouched and equal keys keep their input order.
func Arrange[T any](items []T, view func(T) Entry, q Query) []T {
	out := Filter(items, view, q.Search)

	switch q.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(effective(view(a), math.Inf(1)), effective(view(b), math.Inf(1)))
		})
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(effective(view(b), math.Inf(-1)), effective(view(a), math.Inf(-1)))
		})
	case SortDiscount:
		slices.SortStableFunc(out, func(a, b T) int {
			return cmp.Compare(discountOf(view(b)), discountOf(view(a)))
		})
	default:
		slices.SortStableFunc(out, func(a, b T) int {
			return compareNewest(view(a), view(b))
		})
	}
	return out
}

// Filter keeps items whose name or short description contains term, ignoring
// case. A blank term keeps everything. The result is always a new slice.
func Filter[T any](items []T, view func(T) Entry, term string) []T {
	q := strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q == "" {
			out = append(out, it)
			continue
		}
		e := view(it)
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.ShortDescription), q) {
			out = append(out, it)
		}
	}
	return out
}

// compareNewest puts dated records first, newest to oldest, then undated
// records by descending id.
func compareNewest(a, b Entry) int {
	aKnown, bKnown := !a.CreatedAt.IsZero(), !b.CreatedAt.IsZero()
	switch {
	case aKnown && bKnown:
		return b.CreatedAt.Compare(a.CreatedAt)
	case aKnown:
		return -1
	case bKnown:
		return 1
	}
	return cmp.Compare(b.ID, a.ID)
}

func effective(e Entry, missing float64) float64 {
	if p, ok := EffectivePrice(e.Price, e.SellingPrice); ok {
		return p
	}
	return missing
}

func discountOf(e Entry) int {
	return GetDiscount(e.Price, e.SellingPrice).Percent
}
