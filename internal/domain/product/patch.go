package product

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/entity"
)

var _ entity.Patch[Product] = Patch{}

// Patch is a partial product update. Nil fields keep their stored value.
type Patch struct {
	SKU         *string
	Image       *string
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Stock       *int
	Status      *Status
	Description *string
	Rating      *float64

	ShortName               *string
	Identifier              *string
	ProductType             *string
	Brand                   *string
	Quantity                *int
	MRP                     *decimal.Decimal
	BusinessPrice           *decimal.Decimal
	Manufacturer            *string
	HSNCode                 *string
	PPUCount                *int
	Unit                    *string
	Tax                     *string
	ManufacturingPartNumber *string
	Gender                  *string
}

// Apply writes the set fields of p onto dst.
func (p Patch) Apply(dst *Product) {
	setIf(&dst.SKU, p.SKU)
	setIf(&dst.Image, p.Image)
	setIf(&dst.Name, p.Name)
	setIf(&dst.Category, p.Category)
	setIf(&dst.Price, p.Price)
	setIf(&dst.Stock, p.Stock)
	setIf(&dst.Status, p.Status)
	setIf(&dst.Description, p.Description)
	setIf(&dst.Rating, p.Rating)
	setIf(&dst.ShortName, p.ShortName)
	setIf(&dst.Identifier, p.Identifier)
	setIf(&dst.ProductType, p.ProductType)
	setIf(&dst.Brand, p.Brand)
	setIf(&dst.Quantity, p.Quantity)
	setIf(&dst.MRP, p.MRP)
	setIf(&dst.BusinessPrice, p.BusinessPrice)
	setIf(&dst.Manufacturer, p.Manufacturer)
	setIf(&dst.HSNCode, p.HSNCode)
	setIf(&dst.PPUCount, p.PPUCount)
	setIf(&dst.Unit, p.Unit)
	setIf(&dst.Tax, p.Tax)
	setIf(&dst.ManufacturingPartNumber, p.ManufacturingPartNumber)
	setIf(&dst.Gender, p.Gender)
}

// Empty reports whether p carries no field.
func (p Patch) Empty() bool {
	return p == Patch{}
}

func setIf[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}

// Diff returns the patch that turns before into after, leaving out equal
// fields.
func Diff(before, after Product) Patch {
	return Patch{
		SKU:         changed(before.SKU, after.SKU),
		Image:       changed(before.Image, after.Image),
		Name:        changed(before.Name, after.Name),
		Category:    changed(before.Category, after.Category),
		Price:       changedDecimal(before.Price, after.Price),
		Stock:       changed(before.Stock, after.Stock),
		Status:      changed(before.Status, after.Status),
		Description: changed(before.Description, after.Description),
		Rating:      changed(before.Rating, after.Rating),

		ShortName:               changed(before.ShortName, after.ShortName),
		Identifier:              changed(before.Identifier, after.Identifier),
		ProductType:             changed(before.ProductType, after.ProductType),
		Brand:                   changed(before.Brand, after.Brand),
		Quantity:                changed(before.Quantity, after.Quantity),
		MRP:                     changedDecimal(before.MRP, after.MRP),
		BusinessPrice:           changedDecimal(before.BusinessPrice, after.BusinessPrice),
		Manufacturer:            changed(before.Manufacturer, after.Manufacturer),
		HSNCode:                 changed(before.HSNCode, after.HSNCode),
		PPUCount:                changed(before.PPUCount, after.PPUCount),
		Unit:                    changed(before.Unit, after.Unit),
		Tax:                     changed(before.Tax, after.Tax),
		ManufacturingPartNumber: changed(before.ManufacturingPartNumber, after.ManufacturingPartNumber),
		Gender:                  changed(before.Gender, after.Gender),
	}
}

func changed[V comparable](before, after V) *V {
	if before == after {
		return nil
	}
	return &after
}

func changedDecimal(before, after decimal.Decimal) *decimal.Decimal {
	if before.Equal(after) {
		return nil
	}
	return &after
}
