package product

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/draft"
)

func priceField(rule string) draft.Field[Product] {
	return draft.DecimalOf("price", "Selling Price",
		func(p *Product) *decimal.Decimal { return &p.Price },
		draft.Currency("$"), draft.Min(0), draft.Rule(rule),
	)
}

func statusField() draft.Field[Product] {
	return draft.Enum("status", "Status", Statuses,
		func(p *Product) Status { return p.Status },
		func(p *Product, v Status) { p.Status = v },
	)
}

// EditSchema is the product detail edit form. It covers the compact catalog
// fields; the extended fields are set at creation.
var EditSchema = draft.NewSchema("Product",
	draft.StringOf("name", "Product Name", func(p *Product) *string { return &p.Name }, draft.Rule("required")),
	draft.StringOf("category", "Category", func(p *Product) *string { return &p.Category }),
	priceField("gt=0"),
	draft.IntOf("stock", "Stock", func(p *Product) *int { return &p.Stock }, draft.Min(0), draft.Rule("gte=0")),
	statusField(),
	draft.StringOf("description", "Description", func(p *Product) *string { return &p.Description }),
	draft.StringOf("image", "Image", func(p *Product) *string { return &p.Image }),
	draft.FloatOf("rating", "Rating", func(p *Product) *float64 { return &p.Rating }, draft.Between(0, MaxRating)),
).WithMessage("Product Name, a valid Selling Price, and a non-negative Stock are required.")

// CreateSchema is the new product form with every extended field. Rating is
// not set at creation.
var CreateSchema = draft.NewSchema("Product",
	draft.StringOf("sku", "SKU", func(p *Product) *string { return &p.SKU }, draft.Rule("required")),
	draft.StringOf("image", "Image", func(p *Product) *string { return &p.Image }),
	draft.StringOf("name", "Product Name", func(p *Product) *string { return &p.Name }, draft.Rule("required")),
	draft.StringOf("shortName", "Short Name", func(p *Product) *string { return &p.ShortName }),
	draft.StringOf("identifier", "Identifier (EAN)", func(p *Product) *string { return &p.Identifier }),
	draft.StringOf("productType", "Product Type", func(p *Product) *string { return &p.ProductType }),
	draft.StringOf("brand", "Brand", func(p *Product) *string { return &p.Brand }),
	draft.StringOf("category", "Category", func(p *Product) *string { return &p.Category }, draft.Rule("required")),
	draft.IntOf("quantity", "Quantity", func(p *Product) *int { return &p.Quantity }, draft.Min(0), draft.Rule("gte=0")),
	draft.IntOf("stock", "Stock", func(p *Product) *int { return &p.Stock }, draft.Min(0), draft.Rule("gte=0")),
	draft.DecimalOf("mrp", "MRP", func(p *Product) *decimal.Decimal { return &p.MRP }, draft.Currency("$"), draft.Min(0)),
	priceField("gt=0"),
	draft.DecimalOf("businessPrice", "Business Price", func(p *Product) *decimal.Decimal { return &p.BusinessPrice }, draft.Currency("$"), draft.Min(0)),
	draft.StringOf("manufacturer", "Manufacturer", func(p *Product) *string { return &p.Manufacturer }),
	draft.StringOf("hsnCode", "HSN Code", func(p *Product) *string { return &p.HSNCode }),
	draft.IntOf("ppuCount", "PPU Count", func(p *Product) *int { return &p.PPUCount }, draft.Min(0), draft.Rule("gte=0")),
	draft.StringOf("unit", "Unit", func(p *Product) *string { return &p.Unit }),
	draft.StringOf("tax", "Tax", func(p *Product) *string { return &p.Tax }),
	draft.StringOf("manufacturingPartNumber", "Manufacturing Part Number", func(p *Product) *string { return &p.ManufacturingPartNumber }),
	draft.StringOf("gender", "Gender", func(p *Product) *string { return &p.Gender }),
	statusField(),
	draft.StringOf("description", "Description", func(p *Product) *string { return &p.Description }),
).WithMessage("Product Name, Selling Price, SKU, and Category are required.")

// Template returns the initial create-form record.
func Template() Product {
	return Product{
		SchemaVersion: CurrentVersion,
		Status:        StatusDraft,
	}
}
