package order

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/entity"
)

var _ entity.Patch[Order] = Patch{}

// Patch is a partial order update. Nil fields keep their stored value.
type Patch struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerPhone   *string
	OrderDate       *string
	ItemCount       *int
	TotalAmount     *decimal.Decimal
	Status          *Status
	PaymentMethod   *string
	ShippingAddress *string
	Notes           *string
}

// Apply writes the set fields of p onto o.
func (p Patch) Apply(o *Order) {
	setIf(&o.Customer.Name, p.CustomerName)
	setIf(&o.Customer.Email, p.CustomerEmail)
	setIf(&o.Customer.Phone, p.CustomerPhone)
	setIf(&o.OrderDate, p.OrderDate)
	setIf(&o.ItemCount, p.ItemCount)
	setIf(&o.TotalAmount, p.TotalAmount)
	setIf(&o.Status, p.Status)
	setIf(&o.PaymentMethod, p.PaymentMethod)
	setIf(&o.ShippingAddress, p.ShippingAddress)
	setIf(&o.Notes, p.Notes)
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

// Diff returns the patch that turns before into after. Fields equal in both
// are left out; the customer id and order lines are not patchable.
func Diff(before, after Order) Patch {
	var p Patch
	p.CustomerName = changed(before.Customer.Name, after.Customer.Name)
	p.CustomerEmail = changed(before.Customer.Email, after.Customer.Email)
	p.CustomerPhone = changed(before.Customer.Phone, after.Customer.Phone)
	p.OrderDate = changed(before.OrderDate, after.OrderDate)
	p.ItemCount = changed(before.ItemCount, after.ItemCount)
	if !before.TotalAmount.Equal(after.TotalAmount) {
		p.TotalAmount = &after.TotalAmount
	}
	p.Status = changed(before.Status, after.Status)
	p.PaymentMethod = changed(before.PaymentMethod, after.PaymentMethod)
	p.ShippingAddress = changed(before.ShippingAddress, after.ShippingAddress)
	p.Notes = changed(before.Notes, after.Notes)
	return p
}

func changed[V comparable](before, after V) *V {
	if before == after {
		return nil
	}
	return &after
}
