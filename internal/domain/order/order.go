package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/entity"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
	StatusRefunded   Status = "Refunded"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusRefunded,
}

// Tone is the badge colour used when listing a status.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

// Tone returns the badge tone for s.
func (s Status) Tone() Tone {
	switch s {
	case StatusDelivered:
		return ToneSuccess
	case StatusProcessing:
		return ToneWarning
	case StatusCancelled, StatusRefunded:
		return ToneError
	default:
		return ToneInfo
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Customer is the customer snapshot stored on an order.
type Customer struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Avatar string
}

// Item is an order line.
type Item struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Order is a customer order as managed from the back office.
type Order struct {
	ID              string
	Customer        Customer
	OrderDate       string // YYYY-MM-DD
	TotalAmount     decimal.Decimal
	Status          Status
	ItemCount       int
	PaymentMethod   string
	ShippingAddress string
	Notes           string
	Items           []Item
}

// Clone returns a deep copy of o.
func (o Order) Clone() Order {
	if o.Items != nil {
		o.Items = append([]Item(nil), o.Items...)
	}
	return o
}

// Key returns the order id.
func Key(o *Order) string { return o.ID }

// Repository is the order store.
type Repository interface {
	entity.Repository[Order]
	List(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, o Order) (Order, error)
}
