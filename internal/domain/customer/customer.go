// Package customer holds the back-office customer records.
package customer

import (
	"context"

	"github.com/xenking/backoffice/internal/entity"
)

// Status is the account state of a customer.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Statuses lists every customer status.
var Statuses = []Status{StatusActive, StatusInactive}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Customer is a shop customer.
type Customer struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Address     string
	TotalOrders int
	Status      Status
	CreatedAt   string // YYYY-MM-DD

	Language        string
	MarketingEmails bool
	MarketingSMS    bool
	VATNumber       string
	TaxSettings     string
	Notes           string
	Tags            string
}

// Key returns the customer id.
func Key(c *Customer) string { return c.ID }

// Repository is the customer store.
type Repository interface {
	entity.Repository[Customer]
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, c Customer) (Customer, error)
}

var _ entity.Patch[Customer] = Patch{}

// Patch is a partial customer update. Nil fields keep their stored value.
type Patch struct {
	Name            *string
	Email           *string
	Phone           *string
	Address         *string
	Status          *Status
	Language        *string
	MarketingEmails *bool
	MarketingSMS    *bool
	VATNumber       *string
	TaxSettings     *string
	Notes           *string
	Tags            *string
}

// Apply writes the set fields of p onto c.
func (p Patch) Apply(c *Customer) {
	setIf(&c.Name, p.Name)
	setIf(&c.Email, p.Email)
	setIf(&c.Phone, p.Phone)
	setIf(&c.Address, p.Address)
	setIf(&c.Status, p.Status)
	setIf(&c.Language, p.Language)
	setIf(&c.MarketingEmails, p.MarketingEmails)
	setIf(&c.MarketingSMS, p.MarketingSMS)
	setIf(&c.VATNumber, p.VATNumber)
	setIf(&c.TaxSettings, p.TaxSettings)
	setIf(&c.Notes, p.Notes)
	setIf(&c.Tags, p.Tags)
}

// Empty reports whether p carries no field.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Diff returns the patch that turns before into after, leaving out equal
// fields.
func Diff(before, after Customer) Patch {
	return Patch{
		Name:            changed(before.Name, after.Name),
		Email:           changed(before.Email, after.Email),
		Phone:           changed(before.Phone, after.Phone),
		Address:         changed(before.Address, after.Address),
		Status:          changed(before.Status, after.Status),
		Language:        changed(before.Language, after.Language),
		MarketingEmails: changed(before.MarketingEmails, after.MarketingEmails),
		MarketingSMS:    changed(before.MarketingSMS, after.MarketingSMS),
		VATNumber:       changed(before.VATNumber, after.VATNumber),
		TaxSettings:     changed(before.TaxSettings, after.TaxSettings),
		Notes:           changed(before.Notes, after.Notes),
		Tags:            changed(before.Tags, after.Tags),
	}
}

func changed[V comparable](before, after V) *V {
	if before == after {
		return nil
	}
	return &after
}

func setIf[V any](dst *V, v *V) {
	if v != nil {
		*dst = *v
	}
}
