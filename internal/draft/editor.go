package draft

import "github.com/xenking/backoffice/internal/entity"

// Editor holds a draft of one entity alongside the copy it was seeded from.
// It is not safe for concurrent use.
type Editor[T any] struct {
	schema *Schema[T]
	base   T
	draft  T
	dirty  map[string]struct{}
}

// NewEditor returns an editor whose draft equals base.
func NewEditor[T any](schema *Schema[T], base T) *Editor[T] {
	e := &Editor[T]{schema: schema}
	e.Reset(base)
	return e
}

// Reset discards all edits and re-seeds the draft from base.
func (e *Editor[T]) Reset(base T) {
	e.base = base
	e.draft = base
	e.dirty = make(map[string]struct{})
}

// Revert discards all edits, returning the draft to the current base.
func (e *Editor[T]) Revert() {
	e.Reset(e.base)
}

// Set parses raw into the named field of the draft. On error the draft is
// unchanged.
func (e *Editor[T]) Set(name, raw string) error {
	if err := e.schema.Set(&e.draft, name, raw); err != nil {
		return err
	}
	e.dirty[name] = struct{}{}
	return nil
}

// Schema returns the editor's schema.
func (e *Editor[T]) Schema() *Schema[T] { return e.schema }

// Base returns the record the draft was seeded from.
func (e *Editor[T]) Base() T { return e.base }

// Draft returns a copy of the current draft.
func (e *Editor[T]) Draft() T { return e.draft }

// Values renders the draft as form input.
func (e *Editor[T]) Values() []Value {
	vs := e.schema.Values(&e.draft)
	for i := range vs {
		vs[i].Touched = e.Touched(vs[i].Name)
	}
	return vs
}

// Dirty reports whether any field was set since the last reset.
func (e *Editor[T]) Dirty() bool { return len(e.dirty) > 0 }

// Touched reports whether the named field was set since the last reset.
func (e *Editor[T]) Touched(name string) bool {
	_, ok := e.dirty[name]
	return ok
}

// Validate checks the draft against the schema rules.
func (e *Editor[T]) Validate() error { return e.schema.Validate(&e.draft) }

// Patch returns the patch that commits the draft's editable fields.
func (e *Editor[T]) Patch() entity.Patch[T] { return e.schema.Patch(&e.draft) }
