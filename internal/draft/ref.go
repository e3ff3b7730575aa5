package draft

import "github.com/shopspring/decimal"

// The *Of constructors declare a field through a single accessor returning a
// pointer to the value, for fields that need no special getter or setter.

// StringOf is String over a field pointer.
func StringOf[T any](name, label string, ref func(*T) *string, opts ...FieldOption) Field[T] {
	return String(name, label,
		func(t *T) string { return *ref(t) },
		func(t *T, v string) { *ref(t) = v },
		opts...)
}

// IntOf is Int over a field pointer.
func IntOf[T any](name, label string, ref func(*T) *int, opts ...FieldOption) Field[T] {
	return Int(name, label,
		func(t *T) int { return *ref(t) },
		func(t *T, v int) { *ref(t) = v },
		opts...)
}

// FloatOf is Float over a field pointer.
func FloatOf[T any](name, label string, ref func(*T) *float64, opts ...FieldOption) Field[T] {
	return Float(name, label,
		func(t *T) float64 { return *ref(t) },
		func(t *T, v float64) { *ref(t) = v },
		opts...)
}

// DecimalOf is Decimal over a field pointer.
func DecimalOf[T any](name, label string, ref func(*T) *decimal.Decimal, opts ...FieldOption) Field[T] {
	return Decimal(name, label,
		func(t *T) decimal.Decimal { return *ref(t) },
		func(t *T, v decimal.Decimal) { *ref(t) = v },
		opts...)
}

// BoolOf is Bool over a field pointer.
func BoolOf[T any](name, label string, ref func(*T) *bool, opts ...FieldOption) Field[T] {
	return Bool(name, label,
		func(t *T) bool { return *ref(t) },
		func(t *T, v bool) { *ref(t) = v },
		opts...)
}
