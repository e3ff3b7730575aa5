// Package wire encodes back-office records and partial updates as JSON.
//
// Field names follow the dashboard's camelCase records. Monetary amounts are
// decoded from either JSON numbers or currency strings such as "$1,299".
package wire

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/backoffice/internal/draft"
)

// UnknownFieldError is returned when a document carries a key the record
// type does not define.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return e.Type + ": unknown field " + `"` + e.Field + `"`
}

// Marshal encodes v with enc and returns the document.
func Marshal[T any](v T, enc func(*jx.Encoder, T)) []byte {
	var e jx.Encoder
	enc(&e, v)
	return e.Bytes()
}

// Unmarshal decodes data with dec.
func Unmarshal[T any](data []byte, dec func(*jx.Decoder) (T, error)) (T, error) {
	return dec(jx.DecodeBytes(data))
}

// EncodeList writes items as a JSON array.
func EncodeList[T any](e *jx.Encoder, items []T, enc func(*jx.Encoder, T)) {
	e.ArrStart()
	for _, v := range items {
		enc(e, v)
	}
	e.ArrEnd()
}

// DecodeList reads a JSON array of items.
func DecodeList[T any](d *jx.Decoder, dec func(*jx.Decoder) (T, error)) ([]T, error) {
	var out []T
	if err := d.Arr(func(d *jx.Decoder) error {
		v, err := dec(d)
		if err != nil {
			return errors.Wrapf(err, "[%d]", len(out))
		}
		out = append(out, v)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEncoder lifts an element encoder to a slice encoder.
func ListEncoder[T any](enc func(*jx.Encoder, T)) func(*jx.Encoder, []T) {
	return func(e *jx.Encoder, items []T) { EncodeList(e, items, enc) }
}

// ListDecoder lifts an element decoder to a slice decoder.
func ListDecoder[T any](dec func(*jx.Decoder) (T, error)) func(*jx.Decoder) ([]T, error) {
	return func(d *jx.Decoder) ([]T, error) { return DecodeList(d, dec) }
}

func strField(e *jx.Encoder, name, v string) {
	e.FieldStart(name)
	e.Str(v)
}

func optStrField(e *jx.Encoder, name, v string) {
	if v != "" {
		strField(e, name, v)
	}
}

func intField(e *jx.Encoder, name string, v int) {
	e.FieldStart(name)
	e.Int(v)
}

func floatField(e *jx.Encoder, name string, v float64) {
	e.FieldStart(name)
	e.Float64(v)
}

func boolField(e *jx.Encoder, name string, v bool) {
	e.FieldStart(name)
	e.Bool(v)
}

func numField(e *jx.Encoder, name string, v decimal.Decimal) {
	e.FieldStart(name)
	e.Num(jx.Num(v.String()))
}

// readDecimal accepts a number, a currency string or null.
func readDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	switch tt := d.Next(); tt {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(n.String())
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		return draft.ParseMoney(s, "$")
	case jx.Null:
		return decimal.Zero, d.Null()
	default:
		return decimal.Zero, errors.Errorf("amount: unexpected %s", tt)
	}
}

// readStr reads a string, treating null as empty.
func readStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}

func readInt(d *jx.Decoder) (int, error) {
	if d.Next() == jx.Null {
		return 0, d.Null()
	}
	return d.Int()
}

func readFloat(d *jx.Decoder) (float64, error) {
	if d.Next() == jx.Null {
		return 0, d.Null()
	}
	return d.Float64()
}

func readBool(d *jx.Decoder) (bool, error) {
	if d.Next() == jx.Null {
		return false, d.Null()
	}
	return d.Bool()
}

// into adapts a reader to assign through a pointer, wrapping errors with the
// field name.
func into[V any](d *jx.Decoder, key string, dst *V, read func(*jx.Decoder) (V, error)) error {
	v, err := read(d)
	if err != nil {
		return errors.Wrapf(err, "%s", key)
	}
	*dst = v
	return nil
}

// intoPtr is into for patch fields: the decoded value is stored behind a new
// pointer.
func intoPtr[V any](d *jx.Decoder, key string, dst **V, read func(*jx.Decoder) (V, error)) error {
	var v V
	if err := into(d, key, &v, read); err != nil {
		return err
	}
	*dst = &v
	return nil
}

// readEnum reads a string and checks it with valid.
func readEnum[E ~string](valid func(E) bool) func(*jx.Decoder) (E, error) {
	return func(d *jx.Decoder) (E, error) {
		var zero E
		s, err := d.Str()
		if err != nil {
			return zero, err
		}
		v := E(s)
		if !valid(v) {
			return zero, errors.Errorf("unknown value %q", s)
		}
		return v, nil
	}
}

func optField[V any](e *jx.Encoder, name string, v *V, write func(*jx.Encoder, V)) {
	if v == nil {
		return
	}
	e.FieldStart(name)
	write(e, *v)
}

func writeStr(e *jx.Encoder, v string)          { e.Str(v) }
func writeInt(e *jx.Encoder, v int)             { e.Int(v) }
func writeFloat(e *jx.Encoder, v float64)       { e.Float64(v) }
func writeBool(e *jx.Encoder, v bool)           { e.Bool(v) }
func writeNum(e *jx.Encoder, v decimal.Decimal) { e.Num(jx.Num(v.String())) }
func writeEnum[E ~string](e *jx.Encoder, v E)   { e.Str(string(v)) }
