package product

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/entity"
)

// Status is the catalog visibility of a product.
type Status string

const (
	StatusActive   Status = "Active"
	StatusDraft    Status = "Draft"
	StatusArchived Status = "Archived"
)

// Statuses lists every product status.
var Statuses = []Status{StatusActive, StatusDraft, StatusArchived}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Schema versions of stored product records.
//
// Version 1 is the compact catalog record (image, name, category, price,
// stock, status, description, rating). Version 2 adds the descriptive and
// regulatory fields captured by the create form. Records are migrated to
// CurrentVersion when loaded, see Migrate.
const (
	Version1       = 1
	Version2       = 2
	CurrentVersion = Version2
)

// PlaceholderImage is used when a product is created without an image.
const PlaceholderImage = "/images/placeholder.png"

// MaxRating is the upper bound of Rating.
const MaxRating = 5

// Product is a catalog item.
type Product struct {
	ID            string
	SchemaVersion int

	SKU         string
	Image       string
	Name        string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Status      Status
	Description string
	// Rating is in [0, MaxRating]; zero means unrated.
	Rating float64

	ShortName               string
	Identifier              string // e.g. EAN
	ProductType             string
	Brand                   string
	Quantity                int
	MRP                     decimal.Decimal
	BusinessPrice           decimal.Decimal
	Manufacturer            string
	HSNCode                 string
	PPUCount                int
	Unit                    string
	Tax                     string
	ManufacturingPartNumber string
	Gender                  string
}

// Key returns the product id.
func Key(p *Product) string { return p.ID }

// FormatPrice renders a price the way the catalog shows it, e.g. "$269" or
// "$12.50".
func FormatPrice(d decimal.Decimal) string {
	if d.IsInteger() {
		return "$" + d.String()
	}
	return "$" + d.StringFixed(2)
}

// Migrate upgrades p to CurrentVersion in place and reports whether it
// changed. Version 1 records get a LEGACY-<id> SKU and their name as short
// name; all other extended fields stay empty.
func Migrate(p *Product) bool {
	if p.SchemaVersion >= CurrentVersion {
		return false
	}
	if p.SKU == "" {
		p.SKU = "LEGACY-" + p.ID
	}
	if p.ShortName == "" {
		p.ShortName = p.Name
	}
	p.SchemaVersion = CurrentVersion
	return true
}

// Repository is the product store.
type Repository interface {
	entity.Repository[Product]
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
}
