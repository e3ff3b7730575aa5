package wire

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/backoffice/internal/domain/order"
)

// EncodeOrder writes o as a JSON object.
func EncodeOrder(e *jx.Encoder, o order.Order) {
	e.ObjStart()
	strField(e, "id", o.ID)
	e.FieldStart("customer")
	e.ObjStart()
	optStrField(e, "id", o.Customer.ID)
	strField(e, "name", o.Customer.Name)
	optStrField(e, "email", o.Customer.Email)
	optStrField(e, "phone", o.Customer.Phone)
	optStrField(e, "avatar", o.Customer.Avatar)
	e.ObjEnd()
	strField(e, "orderDate", o.OrderDate)
	numField(e, "totalAmount", o.TotalAmount)
	strField(e, "status", string(o.Status))
	intField(e, "itemCount", o.ItemCount)
	optStrField(e, "paymentMethod", o.PaymentMethod)
	optStrField(e, "shippingAddress", o.ShippingAddress)
	optStrField(e, "notes", o.Notes)
	if len(o.Items) > 0 {
		e.FieldStart("items")
		EncodeList(e, o.Items, encodeItem)
	}
	e.ObjEnd()
}

func encodeItem(e *jx.Encoder, it order.Item) {
	e.ObjStart()
	strField(e, "productId", it.ProductID)
	optStrField(e, "productName", it.ProductName)
	intField(e, "quantity", it.Quantity)
	numField(e, "price", it.Price)
	e.ObjEnd()
}

// DecodeOrder reads an order object. Unknown keys are rejected.
func DecodeOrder(d *jx.Decoder) (order.Order, error) {
	var o order.Order
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			return into(d, key, &o.ID, readStr)
		case "customer":
			c, err := decodeOrderCustomer(d)
			if err != nil {
				return errors.Wrap(err, "customer")
			}
			o.Customer = c
			return nil
		case "orderDate":
			return into(d, key, &o.OrderDate, readStr)
		case "totalAmount":
			return into(d, key, &o.TotalAmount, readDecimal)
		case "status":
			return into(d, key, &o.Status, readEnum(order.Status.Valid))
		case "itemCount":
			return into(d, key, &o.ItemCount, readInt)
		case "paymentMethod":
			return into(d, key, &o.PaymentMethod, readStr)
		case "shippingAddress":
			return into(d, key, &o.ShippingAddress, readStr)
		case "notes":
			return into(d, key, &o.Notes, readStr)
		case "items":
			return into(d, key, &o.Items, ListDecoder(decodeItem))
		default:
			return &UnknownFieldError{Type: "order", Field: key}
		}
	})
	if err != nil {
		return order.Order{}, errors.Wrap(err, "decode order")
	}
	return o, nil
}

func decodeOrderCustomer(d *jx.Decoder) (order.Customer, error) {
	var c order.Customer
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			return into(d, key, &c.ID, readStr)
		case "name":
			return into(d, key, &c.Name, readStr)
		case "email":
			return into(d, key, &c.Email, readStr)
		case "phone":
			return into(d, key, &c.Phone, readStr)
		case "avatar":
			return into(d, key, &c.Avatar, readStr)
		default:
			return &UnknownFieldError{Type: "customer", Field: key}
		}
	})
	return c, err
}

func decodeItem(d *jx.Decoder) (order.Item, error) {
	var it order.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			return into(d, key, &it.ProductID, readStr)
		case "productName":
			return into(d, key, &it.ProductName, readStr)
		case "quantity":
			return into(d, key, &it.Quantity, readInt)
		case "price":
			return into(d, key, &it.Price, readDecimal)
		default:
			return &UnknownFieldError{Type: "item", Field: key}
		}
	})
	return it, err
}

// EncodeOrderPatch writes the set fields of p.
func EncodeOrderPatch(e *jx.Encoder, p order.Patch) {
	e.ObjStart()
	optField(e, "customerName", p.CustomerName, writeStr)
	optField(e, "customerEmail", p.CustomerEmail, writeStr)
	optField(e, "customerPhone", p.CustomerPhone, writeStr)
	optField(e, "orderDate", p.OrderDate, writeStr)
	optField(e, "itemCount", p.ItemCount, writeInt)
	optField(e, "totalAmount", p.TotalAmount, writeNum)
	optField(e, "status", p.Status, writeEnum[order.Status])
	optField(e, "paymentMethod", p.PaymentMethod, writeStr)
	optField(e, "shippingAddress", p.ShippingAddress, writeStr)
	optField(e, "notes", p.Notes, writeStr)
	e.ObjEnd()
}

// DecodeOrderPatch reads a partial order. Absent keys stay nil.
func DecodeOrderPatch(d *jx.Decoder) (order.Patch, error) {
	var p order.Patch
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "customerName":
			return intoPtr(d, key, &p.CustomerName, readStr)
		case "customerEmail":
			return intoPtr(d, key, &p.CustomerEmail, readStr)
		case "customerPhone":
			return intoPtr(d, key, &p.CustomerPhone, readStr)
		case "orderDate":
			return intoPtr(d, key, &p.OrderDate, readStr)
		case "itemCount":
			return intoPtr(d, key, &p.ItemCount, readInt)
		case "totalAmount":
			return intoPtr(d, key, &p.TotalAmount, readDecimal)
		case "status":
			return intoPtr(d, key, &p.Status, readEnum(order.Status.Valid))
		case "paymentMethod":
			return intoPtr(d, key, &p.PaymentMethod, readStr)
		case "shippingAddress":
			return intoPtr(d, key, &p.ShippingAddress, readStr)
		case "notes":
			return intoPtr(d, key, &p.Notes, readStr)
		default:
			return &UnknownFieldError{Type: "order", Field: key}
		}
	})
	if err != nil {
		return order.Patch{}, errors.Wrap(err, "decode order patch")
	}
	return p, nil
}
