// Package draft implements form editing over an entity-field schema.
//
// A Schema lists the editable fields of an entity type together with their
// parse, clamp and validation rules. An Editor holds a mutable draft of one
// entity, seeded from a last-known-good copy, and turns it into a patch on
// submit. Entity packages declare their schema once instead of repeating
// per-form input handlers.
package draft

import (
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"github.com/xenking/backoffice/internal/entity"
)

// Schema is the ordered set of editable fields of T.
type Schema[T any] struct {
	label   string
	message string
	fields  []Field[T]
	byName  map[string]Field[T]
	v       *validator.Validate
}

// NewSchema creates a schema for an entity type named label (e.g. "Order").
// It panics on duplicate field names.
func NewSchema[T any](label string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		label:  label,
		fields: fields,
		byName: make(map[string]Field[T], len(fields)),
		v:      validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, f := range fields {
		if _, dup := s.byName[f.Name()]; dup {
			panic("draft: duplicate field " + f.Name())
		}
		s.byName[f.Name()] = f
	}
	return s
}

// WithMessage sets the summary message of validation failures.
func (s *Schema[T]) WithMessage(msg string) *Schema[T] {
	s.message = msg
	return s
}

// Label returns the entity label.
func (s *Schema[T]) Label() string { return s.label }

// Fields returns the fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] { return s.fields }

// Field looks up a field by name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Set parses raw into the named field of dst.
func (s *Schema[T]) Set(dst *T, name, raw string) error {
	f, ok := s.byName[name]
	if !ok {
		return &UnknownFieldError{Entity: s.label, Field: name}
	}
	return f.Parse(dst, raw)
}

// Validate checks every field rule of src. It returns *ValidationError
// listing each failing field, or nil.
func (s *Schema[T]) Validate(src *T) error {
	var issues []Issue
	for _, f := range s.fields {
		if err := f.Check(s.v, src); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				// Bad rule tag; a programming error, not a user error.
				return errors.Wrapf(err, "check %s", f.Name())
			}
			issues = append(issues, Issue{Field: f.Name(), Message: f.Explain(err)})
		}
	}
	if len(issues) == 0 {
		return nil
	}
	msg := s.message
	if msg == "" {
		msg = issues[0].Message
	}
	return &ValidationError{Entity: s.label, Message: msg, Issues: issues}
}

// Patch returns a patch writing every field of a snapshot of src, clamped,
// onto the target record. Fields outside the schema are left untouched.
func (s *Schema[T]) Patch(src *T) entity.Patch[T] {
	snapshot := *src
	fields := s.fields
	return entity.PatchFunc[T](func(dst *T) {
		for _, f := range fields {
			f.Copy(dst, &snapshot)
		}
	})
}

// Values renders every field of src as form input.
func (s *Schema[T]) Values(src *T) []Value {
	out := make([]Value, len(s.fields))
	for i, f := range s.fields {
		out[i] = Value{
			Name:  f.Name(),
			Label: f.Label(),
			Kind:  f.Kind(),
			Value: f.Format(src),
		}
	}
	return out
}

// Value is one rendered form field.
type Value struct {
	Name  string
	Label string
	Kind  Kind
	Value string
	// Touched is set by Editor.Values for fields set since the last reset.
	Touched bool
}
