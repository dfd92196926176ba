package catalog

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Discount is the display view of a product's pricing.
type Discount struct {
	Has          bool    `json:"has"`
	Percent      int     `json:"percent"`
	MRP          float64 `json:"mrp"`
	SellingPrice float64 `json:"sellingprice"`
}

// GetDiscount derives the discount badge from an MRP and an optional selling
// price. It never fails: unusable inputs simply produce "no discount".
func GetDiscount(price, sellingPrice any) Discount {
	mrp, mrpOK := toNumber(price)
	sp, spOK := toNumber(sellingPrice)

	d := Discount{}
	if mrpOK {
		d.MRP = mrp
	}
	if spOK {
		d.SellingPrice = sp
	}

	if !mrpOK || !spOK || sp < 0 || mrp <= sp {
		return d
	}

	// exact decimal arithmetic so x.5 percentages round away from zero
	mrpDec := decimal.NewFromFloat(mrp)
	off := mrpDec.Sub(decimal.NewFromFloat(sp)).Mul(hundred).Div(mrpDec)

	d.Has = true
	d.Percent = int(off.Round(0).IntPart())
	return d
}

// EffectivePrice is what the customer pays: the selling price when one is set,
// otherwise the MRP. ok is false when neither is a usable number.
func EffectivePrice(price, sellingPrice any) (float64, bool) {
	if sp, ok := toNumber(sellingPrice); ok {
		return sp, true
	}
	return toNumber(price)
}
