package draft

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Kind is the input kind of a field.
type Kind string

const (
	KindString  Kind = "string"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindDecimal Kind = "decimal"
	KindEnum    Kind = "enum"
	KindBool    Kind = "bool"
)

// Field describes one editable attribute of T: how to read it, how to parse
// raw form input into it, the range it is clamped to and the rule it must
// satisfy on submit.
type Field[T any] interface {
	Name() string
	Label() string
	Kind() Kind
	// Options lists the allowed values of an enum field.
	Options() []string
	// Format renders the field of src as form input.
	Format(src *T) string
	// Parse converts raw input, clamps it and stores it in dst.
	Parse(dst *T, raw string) error
	// Copy writes the clamped value of src into dst.
	Copy(dst, src *T)
	// Check validates the field of src against its rule.
	Check(v *validator.Validate, src *T) error
	// Explain turns a Check failure into a message for the form.
	Explain(err error) string
}

// FieldOption configures a field.
type FieldOption func(*fieldOptions)

type fieldOptions struct {
	rule    string
	message string
	min     *float64
	max     *float64
	prefix  string
}

// Rule sets the validator tag checked on submit, e.g. "required" or "gt=0".
func Rule(tag string) FieldOption {
	return func(o *fieldOptions) { o.rule = tag }
}

// Message overrides the generated validation message.
func Message(msg string) FieldOption {
	return func(o *fieldOptions) { o.message = msg }
}

// Min clamps numeric input to at least v.
func Min(v float64) FieldOption {
	return func(o *fieldOptions) { o.min = &v }
}

// Max clamps numeric input to at most v.
func Max(v float64) FieldOption {
	return func(o *fieldOptions) { o.max = &v }
}

// Between clamps numeric input to [lo, hi].
func Between(lo, hi float64) FieldOption {
	return func(o *fieldOptions) {
		o.min = &lo
		o.max = &hi
	}
}

// Currency sets a symbol rendered before decimal values and stripped from input.
func Currency(symbol string) FieldOption {
	return func(o *fieldOptions) { o.prefix = symbol }
}

// ErrOutOfRange is the cause of a ParseError for numbers an int cannot hold.
var ErrOutOfRange = errors.New("out of range")

// Bounds of int as float64. maxIntFloat is MaxInt+1, the first float
// that no longer fits.
const (
	maxIntFloat = -float64(math.MinInt)
	minIntFloat = float64(math.MinInt)
)

// ParseError is returned when raw input cannot be converted to a field's kind.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return "parse " + e.Field + " " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

type field[T, V any] struct {
	name  string
	label string
	kind  Kind
	opts  fieldOptions
	enum  []string

	get    func(*T) V
	set    func(*T, V)
	parse  func(string) (V, error)
	format func(V) string
	clamp  func(V) V
	// checked maps the value to something the validator understands.
	checked func(V) any
}

func (f *field[T, V]) Name() string      { return f.name }
func (f *field[T, V]) Label() string     { return f.label }
func (f *field[T, V]) Kind() Kind        { return f.kind }
func (f *field[T, V]) Options() []string { return f.enum }

func (f *field[T, V]) Format(src *T) string {
	return f.format(f.get(src))
}

func (f *field[T, V]) Parse(dst *T, raw string) error {
	v, err := f.parse(strings.TrimSpace(raw))
	if err != nil {
		return &ParseError{Field: f.name, Input: raw, Err: err}
	}
	f.set(dst, f.clamp(v))
	return nil
}

func (f *field[T, V]) Copy(dst, src *T) {
	f.set(dst, f.clamp(f.get(src)))
}

func (f *field[T, V]) Check(v *validator.Validate, src *T) error {
	if f.opts.rule == "" {
		return nil
	}
	return v.Var(f.checked(f.get(src)), f.opts.rule)
}

func (f *field[T, V]) Explain(err error) string {
	if f.opts.message != "" {
		return f.opts.message
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return f.label + " " + describeTag(verrs[0].Tag(), verrs[0].Param())
	}
	return f.label + " is invalid"
}

func describeTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + param
	case "gte", "min":
		return "must be at least " + param
	case "lt":
		return "must be less than " + param
	case "lte", "max":
		return "must be at most " + param
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "datetime":
		return "must be a date formatted as " + param
	default:
		return "fails " + tag
	}
}

func buildOptions(opts []FieldOption) fieldOptions {
	var o fieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func identity[V any](v V) V { return v }

func asAny[V any](v V) any { return v }

// String declares a free-text field.
func String[T any](name, label string, get func(*T) string, set func(*T, string), opts ...FieldOption) Field[T] {
	return &field[T, string]{
		name:    name,
		label:   label,
		kind:    KindString,
		opts:    buildOptions(opts),
		get:     get,
		set:     set,
		parse:   func(s string) (string, error) { return s, nil },
		format:  identity[string],
		clamp:   identity[string],
		checked: asAny[string],
	}
}

// Int declares an integer field. Empty input becomes 0; fractional input is
// truncated toward zero.
func Int[T any](name, label string, get func(*T) int, set func(*T, int), opts ...FieldOption) Field[T] {
	o := buildOptions(opts)
	return &field[T, int]{
		name:  name,
		label: label,
		kind:  KindInt,
		opts:  o,
		get:   get,
		set:   set,
		parse: func(s string) (int, error) {
			if s == "" {
				return 0, nil
			}
			n, err := strconv.Atoi(s)
			switch {
			case err == nil:
				return n, nil
			case errors.Is(err, strconv.ErrRange):
				return 0, ErrOutOfRange
			}
			f, err := strconv.ParseFloat(s, 64)
			if errors.Is(err, strconv.ErrRange) && f != 0 {
				return 0, ErrOutOfRange
			}
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, errors.New("not an integer")
			}
			if f >= maxIntFloat || f < minIntFloat {
				return 0, ErrOutOfRange
			}
			return int(f), nil
		},
		format: strconv.Itoa,
		clamp: func(n int) int {
			if o.min != nil && float64(n) < *o.min {
				n = int(math.Ceil(*o.min))
			}
			if o.max != nil && float64(n) > *o.max {
				n = int(math.Floor(*o.max))
			}
			return n
		},
		checked: asAny[int],
	}
}

// Float declares a floating point field. Empty input becomes 0.
func Float[T any](name, label string, get func(*T) float64, set func(*T, float64), opts ...FieldOption) Field[T] {
	o := buildOptions(opts)
	return &field[T, float64]{
		name:  name,
		label: label,
		kind:  KindFloat,
		opts:  o,
		get:   get,
		set:   set,
		parse: func(s string) (float64, error) {
			if s == "" {
				return 0, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, errors.New("not a number")
			}
			return f, nil
		},
		format: func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
		clamp: func(f float64) float64 {
			if o.min != nil {
				f = math.Max(f, *o.min)
			}
			if o.max != nil {
				f = math.Min(f, *o.max)
			}
			return f
		},
		checked: asAny[float64],
	}
}

// Decimal declares a monetary field. Input may carry the currency symbol and
// thousands separators ("$1,299.00"); empty input becomes 0.
func Decimal[T any](name, label string, get func(*T) decimal.Decimal, set func(*T, decimal.Decimal), opts ...FieldOption) Field[T] {
	o := buildOptions(opts)
	return &field[T, decimal.Decimal]{
		name:  name,
		label: label,
		kind:  KindDecimal,
		opts:  o,
		get:   get,
		set:   set,
		parse: func(s string) (decimal.Decimal, error) {
			return ParseMoney(s, o.prefix)
		},
		format: func(d decimal.Decimal) string { return o.prefix + d.String() },
		clamp: func(d decimal.Decimal) decimal.Decimal {
			if o.min != nil {
				d = decimal.Max(d, decimal.NewFromFloat(*o.min))
			}
			if o.max != nil {
				d = decimal.Min(d, decimal.NewFromFloat(*o.max))
			}
			return d
		},
		checked: func(d decimal.Decimal) any { return d.InexactFloat64() },
	}
}

// Enum declares a field restricted to values. Input is matched
// case-insensitively and stored in its canonical spelling.
func Enum[T any, E ~string](name, label string, values []E, get func(*T) E, set func(*T, E), opts ...FieldOption) Field[T] {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return &field[T, E]{
		name:  name,
		label: label,
		kind:  KindEnum,
		opts:  buildOptions(opts),
		enum:  names,
		get:   get,
		set:   set,
		parse: func(s string) (E, error) {
			for _, v := range values {
				if strings.EqualFold(string(v), s) {
					return v, nil
				}
			}
			var zero E
			return zero, errors.Errorf("must be one of %s", strings.Join(names, ", "))
		},
		format:  func(v E) string { return string(v) },
		clamp:   identity[E],
		checked: func(v E) any { return string(v) },
	}
}

// Bool declares a checkbox field. Empty input is false.
func Bool[T any](name, label string, get func(*T) bool, set func(*T, bool), opts ...FieldOption) Field[T] {
	return &field[T, bool]{
		name:  name,
		label: label,
		kind:  KindBool,
		opts:  buildOptions(opts),
		get:   get,
		set:   set,
		parse: func(s string) (bool, error) {
			switch strings.ToLower(s) {
			case "", "0", "false", "off", "no":
				return false, nil
			case "1", "true", "on", "yes":
				return true, nil
			default:
				return false, errors.New("not a boolean")
			}
		},
		format:  strconv.FormatBool,
		clamp:   identity[bool],
		checked: asAny[bool],
	}
}

// ParseMoney parses a currency amount, ignoring the symbol and thousands
// separators. Empty input is zero.
func ParseMoney(s, symbol string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if symbol != "" {
		s = strings.TrimPrefix(s, symbol)
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("not an amount")
	}
	return d, nil
}
