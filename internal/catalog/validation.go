package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPrice is the exclusive upper bound of a stored price, matching the
// decimal(10,2) columns.
const MaxPrice = 1e8

// Validation failures on the write path.
var (
	ErrMissingName         = errors.New("name is required")
	ErrInvalidPrice        = errors.New("price must be a non-negative number")
	ErrInvalidSellingPrice = errors.New("selling price must be a non-negative number below the price")
)

// ValidationError carries the failing field alongside its kind so callers can
// pick a specific message. errors.Is matches it against the sentinel kinds.
type ValidationError struct {
	Kind  error
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Kind.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Code is a stable identifier for the kind, used in API error details.
func (e *ValidationError) Code() string {
	switch e.Kind {
	case ErrMissingName:
		return "missing_name"
	case ErrInvalidPrice:
		return "invalid_price"
	case ErrInvalidSellingPrice:
		return "invalid_selling_price"
	}
	return "invalid"
}

// ProductInput is a product as submitted: prices may be numbers or numeric
// strings and the list fields may hold anything.
type ProductInput struct {
	Name             string
	ShortDescription string
	Description      string
	Images           any
	FlipkartLink     string
	AmazonLink       string
	Price            any
	SellingPrice     any
	Sizes            any
}

// NormalizedProduct is ready to be persisted.
type NormalizedProduct struct {
	Name             string
	ShortDescription string
	Description      string
	Images           []string
	FlipkartLink     string
	AmazonLink       string
	Price            float64
	SellingPrice     *float64
	Sizes            []float64
}

// ValidateProduct applies the strict write-path rules and, when they pass,
// returns the canonical record. Checks run in order name, price, selling price
// and the first failure is returned.
func ValidateProduct(in ProductInput) (NormalizedProduct, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NormalizedProduct{}, &ValidationError{Kind: ErrMissingName, Field: "name"}
	}

	price, ok := toMoney(in.Price)
	if !ok || price < 0 {
		return NormalizedProduct{}, &ValidationError{Kind: ErrInvalidPrice, Field: "price"}
	}

	var selling *float64
	if !isAbsent(in.SellingPrice) {
		sp, ok := toMoney(in.SellingPrice)
		if !ok || sp < 0 || sp >= price {
			return NormalizedProduct{}, &ValidationError{Kind: ErrInvalidSellingPrice, Field: "sellingprice"}
		}
		selling = &sp
	}

	return NormalizedProduct{
		Name:             name,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Images:           NormalizeImages(in.Images),
		FlipkartLink:     in.FlipkartLink,
		AmazonLink:       in.AmazonLink,
		Price:            price,
		SellingPrice:     selling,
		Sizes:            NormalizeSizes(in.Sizes),
	}, nil
}

// toMoney coerces v and rounds it to cents the way the price columns store
// it. Amounts at or above MaxPrice are not representable.
func toMoney(v any) (float64, bool) {
	f, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	rounded := decimal.NewFromFloat(f).Round(2)
	if rounded.Abs().GreaterThanOrEqual(decimal.NewFromFloat(MaxPrice)) {
		return 0, false
	}
	return rounded.InexactFloat64(), true
}
