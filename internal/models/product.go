// internal/models/product.go
package models

import (
	"github.com/mittirang/mittirang-backend/internal/catalog"
)

type Product struct {
	BaseModel
	Name             string    `json:"name" gorm:"size:255;not null"`
	ShortDescription string    `json:"short_description" gorm:"type:text"`
	Description      string    `json:"description" gorm:"type:text"`
	Images           ImageList `json:"images" gorm:"not null"`
	FlipkartLink     string    `json:"flipkart_link" gorm:"type:text"`
	AmazonLink       string    `json:"amazon_link" gorm:"type:text"`
	Price            float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	SellingPrice     *float64  `json:"sellingprice" gorm:"column:sellingprice;type:decimal(10,2)"`
	Sizes            SizeList  `json:"sizes" gorm:"not null"`
}

// Entry is the view the catalogue ordering works on.
func (p Product) Entry() catalog.Entry {
	price := p.Price
	return catalog.Entry{
		ID:               p.ID,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Price:            &price,
		SellingPrice:     p.SellingPrice,
		CreatedAt:        p.CreatedAt,
	}
}

func (p Product) GetDiscount() catalog.Discount {
	return catalog.GetDiscount(p.Price, p.SellingPrice)
}

// Apply copies a validated record onto the product, replacing every
// editable field.
func (p *Product) Apply(n catalog.NormalizedProduct) {
	p.Name = n.Name
	p.ShortDescription = n.ShortDescription
	p.Description = n.Description
	p.Images = ImageList(n.Images)
	p.FlipkartLink = n.FlipkartLink
	p.AmazonLink = n.AmazonLink
	p.Price = n.Price
	p.SellingPrice = n.SellingPrice
	p.Sizes = SizeList(n.Sizes)
}
