package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/draft"
)

// DateLayout is the layout of OrderDate.
const DateLayout = "2006-01-02"

// Schema is the order edit form. The same fields back the create form.
var Schema = draft.NewSchema("Order",
	draft.String("customerName", "Customer Name",
		func(o *Order) string { return o.Customer.Name },
		func(o *Order, v string) { o.Customer.Name = v },
		draft.Rule("required"),
	),
	draft.String("customerEmail", "Customer Email",
		func(o *Order) string { return o.Customer.Email },
		func(o *Order, v string) { o.Customer.Email = v },
	),
	draft.String("customerPhone", "Customer Phone",
		func(o *Order) string { return o.Customer.Phone },
		func(o *Order, v string) { o.Customer.Phone = v },
	),
	draft.String("orderDate", "Order Date",
		func(o *Order) string { return o.OrderDate },
		// A blank date keeps the current one.
		func(o *Order, v string) {
			if v != "" {
				o.OrderDate = v
			}
		},
		draft.Rule("omitempty,datetime="+DateLayout),
	),
	draft.Int("itemCount", "Item Count",
		func(o *Order) int { return o.ItemCount },
		func(o *Order, v int) { o.ItemCount = v },
		draft.Min(0), draft.Rule("gt=0"),
	),
	draft.Decimal("totalAmount", "Total Amount",
		func(o *Order) decimal.Decimal { return o.TotalAmount },
		func(o *Order, v decimal.Decimal) { o.TotalAmount = v },
		draft.Min(0), draft.Rule("gt=0"),
	),
	draft.Enum("status", "Status", Statuses,
		func(o *Order) Status { return o.Status },
		func(o *Order, v Status) { o.Status = v },
	),
	draft.String("paymentMethod", "Payment Method",
		func(o *Order) string { return o.PaymentMethod },
		func(o *Order, v string) { o.PaymentMethod = v },
	),
	draft.String("shippingAddress", "Shipping Address",
		func(o *Order) string { return o.ShippingAddress },
		func(o *Order, v string) { o.ShippingAddress = v },
	),
	draft.String("notes", "Notes",
		func(o *Order) string { return o.Notes },
		func(o *Order, v string) { o.Notes = v },
	),
).WithMessage("Customer Name, Item Count, and a valid Total Amount are required.")

// Template returns the initial create-form record: one item, pending, dated
// today.
func Template(now time.Time) Order {
	return Order{
		ItemCount: 1,
		Status:    StatusPending,
		OrderDate: now.Format(DateLayout),
	}
}
