package wire

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/backoffice/internal/domain/customer"
)

// EncodeCustomer writes c as a JSON object.
func EncodeCustomer(e *jx.Encoder, c customer.Customer) {
	e.ObjStart()
	strField(e, "id", c.ID)
	strField(e, "name", c.Name)
	strField(e, "email", c.Email)
	optStrField(e, "phone", c.Phone)
	optStrField(e, "address", c.Address)
	intField(e, "totalOrders", c.TotalOrders)
	strField(e, "status", string(c.Status))
	strField(e, "createdAt", c.CreatedAt)
	optStrField(e, "language", c.Language)
	boolField(e, "marketingEmails", c.MarketingEmails)
	boolField(e, "marketingSMS", c.MarketingSMS)
	optStrField(e, "vatNumber", c.VATNumber)
	optStrField(e, "taxSettings", c.TaxSettings)
	optStrField(e, "notes", c.Notes)
	optStrField(e, "tags", c.Tags)
	e.ObjEnd()
}

// DecodeCustomer reads a customer object.
func DecodeCustomer(d *jx.Decoder) (customer.Customer, error) {
	var c customer.Customer
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
		case "address":
			return into(d, key, &c.Address, readStr)
		case "totalOrders":
			return into(d, key, &c.TotalOrders, readInt)
		case "status":
			return into(d, key, &c.Status, readEnum(customer.Status.Valid))
		case "createdAt":
			return into(d, key, &c.CreatedAt, readStr)
		case "language":
			return into(d, key, &c.Language, readStr)
		case "marketingEmails":
			return into(d, key, &c.MarketingEmails, readBool)
		case "marketingSMS":
			return into(d, key, &c.MarketingSMS, readBool)
		case "vatNumber":
			return into(d, key, &c.VATNumber, readStr)
		case "taxSettings":
			return into(d, key, &c.TaxSettings, readStr)
		case "notes":
			return into(d, key, &c.Notes, readStr)
		case "tags":
			return into(d, key, &c.Tags, readStr)
		default:
			return &UnknownFieldError{Type: "customer", Field: key}
		}
	})
	if err != nil {
		return customer.Customer{}, errors.Wrap(err, "decode customer")
	}
	return c, nil
}

// EncodeCustomerPatch writes the set fields of p.
func EncodeCustomerPatch(e *jx.Encoder, p customer.Patch) {
	e.ObjStart()
	optField(e, "name", p.Name, writeStr)
	optField(e, "email", p.Email, writeStr)
	optField(e, "phone", p.Phone, writeStr)
	optField(e, "address", p.Address, writeStr)
	optField(e, "status", p.Status, writeEnum[customer.Status])
	optField(e, "language", p.Language, writeStr)
	optField(e, "marketingEmails", p.MarketingEmails, writeBool)
	optField(e, "marketingSMS", p.MarketingSMS, writeBool)
	optField(e, "vatNumber", p.VATNumber, writeStr)
	optField(e, "taxSettings", p.TaxSettings, writeStr)
	optField(e, "notes", p.Notes, writeStr)
	optField(e, "tags", p.Tags, writeStr)
	e.ObjEnd()
}

// DecodeCustomerPatch reads a partial customer. Absent keys stay nil.
func DecodeCustomerPatch(d *jx.Decoder) (customer.Patch, error) {
	var p customer.Patch
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			return intoPtr(d, key, &p.Name, readStr)
		case "email":
			return intoPtr(d, key, &p.Email, readStr)
		case "phone":
			return intoPtr(d, key, &p.Phone, readStr)
		case "address":
			return intoPtr(d, key, &p.Address, readStr)
		case "status":
			return intoPtr(d, key, &p.Status, readEnum(customer.Status.Valid))
		case "language":
			return intoPtr(d, key, &p.Language, readStr)
		case "marketingEmails":
			return intoPtr(d, key, &p.MarketingEmails, readBool)
		case "marketingSMS":
			return intoPtr(d, key, &p.MarketingSMS, readBool)
		case "vatNumber":
			return intoPtr(d, key, &p.VATNumber, readStr)
		case "taxSettings":
			return intoPtr(d, key, &p.TaxSettings, readStr)
		case "notes":
			return intoPtr(d, key, &p.Notes, readStr)
		case "tags":
			return intoPtr(d, key, &p.Tags, readStr)
		default:
			return &UnknownFieldError{Type: "customer", Field: key}
		}
	})
	if err != nil {
		return customer.Patch{}, errors.Wrap(err, "decode customer patch")
	}
	return p, nil
}
