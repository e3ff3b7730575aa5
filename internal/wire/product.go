package wire

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/domain/product"
)

func priceField(e *jx.Encoder, name string, v decimal.Decimal) {
	strField(e, name, product.FormatPrice(v))
}

func writePrice(e *jx.Encoder, v decimal.Decimal) { e.Str(product.FormatPrice(v)) }

// EncodeProduct writes p as a JSON object. Prices are rendered as currency
// strings, e.g. "$269".
func EncodeProduct(e *jx.Encoder, p product.Product) {
	e.ObjStart()
	strField(e, "id", p.ID)
	intField(e, "schemaVersion", p.SchemaVersion)
	strField(e, "sku", p.SKU)
	strField(e, "image", p.Image)
	strField(e, "name", p.Name)
	strField(e, "category", p.Category)
	priceField(e, "price", p.Price)
	intField(e, "stock", p.Stock)
	strField(e, "status", string(p.Status))
	optStrField(e, "description", p.Description)
	floatField(e, "rating", p.Rating)

	optStrField(e, "shortName", p.ShortName)
	optStrField(e, "identifier", p.Identifier)
	optStrField(e, "productType", p.ProductType)
	optStrField(e, "brand", p.Brand)
	intField(e, "quantity", p.Quantity)
	if !p.MRP.IsZero() {
		priceField(e, "mrp", p.MRP)
	}
	if !p.BusinessPrice.IsZero() {
		priceField(e, "businessPrice", p.BusinessPrice)
	}
	optStrField(e, "manufacturer", p.Manufacturer)
	optStrField(e, "hsnCode", p.HSNCode)
	intField(e, "ppuCount", p.PPUCount)
	optStrField(e, "unit", p.Unit)
	optStrField(e, "tax", p.Tax)
	optStrField(e, "manufacturingPartNumber", p.ManufacturingPartNumber)
	optStrField(e, "gender", p.Gender)
	e.ObjEnd()
}

// DecodeProduct reads a product object. A missing schemaVersion means
// version 1.
func DecodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			return into(d, key, &p.ID, readStr)
		case "schemaVersion":
			return into(d, key, &p.SchemaVersion, readInt)
		case "sku":
			return into(d, key, &p.SKU, readStr)
		case "image":
			return into(d, key, &p.Image, readStr)
		case "name":
			return into(d, key, &p.Name, readStr)
		case "category":
			return into(d, key, &p.Category, readStr)
		case "price":
			return into(d, key, &p.Price, readDecimal)
		case "stock":
			return into(d, key, &p.Stock, readInt)
		case "status":
			return into(d, key, &p.Status, readEnum(product.Status.Valid))
		case "description":
			return into(d, key, &p.Description, readStr)
		case "rating":
			return into(d, key, &p.Rating, readFloat)
		case "shortName":
			return into(d, key, &p.ShortName, readStr)
		case "identifier":
			return into(d, key, &p.Identifier, readStr)
		case "productType":
			return into(d, key, &p.ProductType, readStr)
		case "brand":
			return into(d, key, &p.Brand, readStr)
		case "quantity":
			return into(d, key, &p.Quantity, readInt)
		case "mrp":
			return into(d, key, &p.MRP, readDecimal)
		case "businessPrice":
			return into(d, key, &p.BusinessPrice, readDecimal)
		case "manufacturer":
			return into(d, key, &p.Manufacturer, readStr)
		case "hsnCode":
			return into(d, key, &p.HSNCode, readStr)
		case "ppuCount":
			return into(d, key, &p.PPUCount, readInt)
		case "unit":
			return into(d, key, &p.Unit, readStr)
		case "tax":
			return into(d, key, &p.Tax, readStr)
		case "manufacturingPartNumber":
			return into(d, key, &p.ManufacturingPartNumber, readStr)
		case "gender":
			return into(d, key, &p.Gender, readStr)
		default:
			return &UnknownFieldError{Type: "product", Field: key}
		}
	})
	if err != nil {
		return product.Product{}, errors.Wrap(err, "decode product")
	}
	if p.SchemaVersion == 0 {
		p.SchemaVersion = product.Version1
	}
	return p, nil
}

// EncodeProductPatch writes the set fields of p.
func EncodeProductPatch(e *jx.Encoder, p product.Patch) {
	e.ObjStart()
	optField(e, "sku", p.SKU, writeStr)
	optField(e, "image", p.Image, writeStr)
	optField(e, "name", p.Name, writeStr)
	optField(e, "category", p.Category, writeStr)
	optField(e, "price", p.Price, writePrice)
	optField(e, "stock", p.Stock, writeInt)
	optField(e, "status", p.Status, writeEnum[product.Status])
	optField(e, "description", p.Description, writeStr)
	optField(e, "rating", p.Rating, writeFloat)
	optField(e, "shortName", p.ShortName, writeStr)
	optField(e, "identifier", p.Identifier, writeStr)
	optField(e, "productType", p.ProductType, writeStr)
	optField(e, "brand", p.Brand, writeStr)
	optField(e, "quantity", p.Quantity, writeInt)
	optField(e, "mrp", p.MRP, writePrice)
	optField(e, "businessPrice", p.BusinessPrice, writePrice)
	optField(e, "manufacturer", p.Manufacturer, writeStr)
	optField(e, "hsnCode", p.HSNCode, writeStr)
	optField(e, "ppuCount", p.PPUCount, writeInt)
	optField(e, "unit", p.Unit, writeStr)
	optField(e, "tax", p.Tax, writeStr)
	optField(e, "manufacturingPartNumber", p.ManufacturingPartNumber, writeStr)
	optField(e, "gender", p.Gender, writeStr)
	e.ObjEnd()
}

// DecodeProductPatch reads a partial product. Absent keys stay nil.
func DecodeProductPatch(d *jx.Decoder) (product.Patch, error) {
	var p product.Patch
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "sku":
			return intoPtr(d, key, &p.SKU, readStr)
		case "image":
			return intoPtr(d, key, &p.Image, readStr)
		case "name":
			return intoPtr(d, key, &p.Name, readStr)
		case "category":
			return intoPtr(d, key, &p.Category, readStr)
		case "price":
			return intoPtr(d, key, &p.Price, readDecimal)
		case "stock":
			return intoPtr(d, key, &p.Stock, readInt)
		case "status":
			return intoPtr(d, key, &p.Status, readEnum(product.Status.Valid))
		case "description":
			return intoPtr(d, key, &p.Description, readStr)
		case "rating":
			return intoPtr(d, key, &p.Rating, readFloat)
		case "shortName":
			return intoPtr(d, key, &p.ShortName, readStr)
		case "identifier":
			return intoPtr(d, key, &p.Identifier, readStr)
		case "productType":
			return intoPtr(d, key, &p.ProductType, readStr)
		case "brand":
			return intoPtr(d, key, &p.Brand, readStr)
		case "quantity":
			return intoPtr(d, key, &p.Quantity, readInt)
		case "mrp":
			return intoPtr(d, key, &p.MRP, readDecimal)
		case "businessPrice":
			return intoPtr(d, key, &p.BusinessPrice, readDecimal)
		case "manufacturer":
			return intoPtr(d, key, &p.Manufacturer, readStr)
		case "hsnCode":
			return intoPtr(d, key, &p.HSNCode, readStr)
		case "ppuCount":
			return intoPtr(d, key, &p.PPUCount, readInt)
		case "unit":
			return intoPtr(d, key, &p.Unit, readStr)
		case "tax":
			return intoPtr(d, key, &p.Tax, readStr)
		case "manufacturingPartNumber":
			return intoPtr(d, key, &p.ManufacturingPartNumber, readStr)
		case "gender":
			return intoPtr(d, key, &p.Gender, readStr)
		default:
			return &UnknownFieldError{Type: "product", Field: key}
		}
	})
	if err != nil {
		return product.Patch{}, errors.Wrap(err, "decode product patch")
	}
	return p, nil
}
