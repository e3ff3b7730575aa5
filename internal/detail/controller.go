// Package detail implements the detail view controller shared by the order,
// product and customer pages.
//
// A Controller loads one record, shows it, lets the user edit a draft of its
// editable fields and submits the draft to the store:
//
//	Idle -> Loading -> Viewing <-> Editing -> Submitting -> Viewing
//	                                              \-> Editing (with error)
//	Loading -> NotFound | Failed
//
// NotFound and Failed are terminal for the mounted id.
package detail

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/backoffice/internal/draft"
	"github.com/xenking/backoffice/internal/entity"
)

// Controller drives the detail view of one record of type T.
//
// A controller is meant to be driven by a single caller. Its state is
// guarded, so concurrent misuse is reported as an error instead of
// corrupting the view, and re-submission is refused while a submit is in
// flight.
type Controller[T any] struct {
	repo   entity.Repository[T]
	schema *draft.Schema[T]
	lg     *zap.Logger

	mu      sync.Mutex
	state   State
	id      string
	editor  *draft.Editor[T] // base is the last known good record
	message Message
	issues  []draft.Issue
	closed  bool
}

// New creates an idle controller.
func New[T any](repo entity.Repository[T], schema *draft.Schema[T], lg *zap.Logger) *Controller[T] {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Controller[T]{
		repo:   repo,
		schema: schema,
		lg:     lg.With(zap.String("entity", schema.Label())),
	}
}

func (c *Controller[T]) noun() string { return strings.ToLower(c.schema.Label()) }

// Mount loads the target record. It returns nil when the controller reaches
// Viewing. Otherwise the controller ends in NotFound or Failed and the
// returned error matches entity.ErrNotFound, ErrMissingID or ErrLoadFailed.
func (c *Controller[T]) Mount(ctx context.Context, t Target) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateIdle {
		s := c.state
		c.mu.Unlock()
		return &StateError{Action: "mount", State: s}
	}
	if t.ID == "" {
		c.state = StateFailed
		c.message = failure(fmt.Sprintf("%s ID is missing in route parameters.", c.schema.Label()))
		c.mu.Unlock()
		return ErrMissingID
	}
	c.state = StateLoading
	c.id = t.ID
	c.mu.Unlock()

	lg := c.lg.With(zap.String("id", t.ID))
	lg.Debug("Loading")

	rec, err := c.repo.Get(ctx, t.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		lg.Debug("Discarding load result after close")
		return ErrClosed
	}

	switch {
	case err == nil:
		c.editor = draft.NewEditor(c.schema, rec)
		c.state = StateViewing
		return nil
	case errors.Is(err, entity.ErrNotFound):
		lg.Info("Record not found")
		c.state = StateNotFound
		c.message = failure(fmt.Sprintf("%s with ID '%s' not found.", c.schema.Label(), t.ID))
		return errors.Wrapf(err, "get %s", t.ID)
	default:
		lg.Warn("Load failed", zap.Error(err))
		c.state = StateFailed
		c.message = failure(fmt.Sprintf("Failed to load %s details.", c.noun()))
		return &opError{op: "get", id: t.ID, kind: ErrLoadFailed, err: err}
	}
}

// Edit switches from Viewing to Editing with a draft seeded from the last
// known good record.
func (c *Controller[T]) Edit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("edit", StateViewing); err != nil {
		return err
	}
	c.editor.Revert()
	c.message = Message{}
	c.issues = nil
	c.state = StateEditing
	return nil
}

// SetField parses raw into the named draft field. Numeric input is clamped to
// the field's range and empty numeric input becomes zero. On error the draft
// is unchanged.
func (c *Controller[T]) SetField(name, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("set "+name, StateEditing); err != nil {
		return err
	}
	if err := c.editor.Set(name, raw); err != nil {
		return err
	}
	c.issues = dropIssue(c.issues, name)
	return nil
}

// Cancel discards the draft and returns to Viewing.
func (c *Controller[T]) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expect("cancel", StateEditing); err != nil {
		return err
	}
	c.editor.Revert()
	c.message = Message{}
	c.issues = nil
	c.state = StateViewing
	return nil
}

// Submit validates the draft and, if it passes, writes it to the store.
//
// A validation failure keeps the controller Editing, records the issues and
// returns *draft.ValidationError without calling the store. A store failure
// keeps the draft, returns to Editing and returns an error matching
// ErrUpdateFailed. On success both the record and the draft are replaced by
// the stored state.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if err := c.expect("submit", StateEditing); err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.editor.Validate(); err != nil {
		var verr *draft.ValidationError
		if errors.As(err, &verr) {
			c.message = failure(verr.Message)
			c.issues = verr.Issues
		}
		c.mu.Unlock()
		return err
	}
	c.state = StateSubmitting
	c.message = Message{}
	c.issues = nil
	id, patch := c.id, c.editor.Patch()
	c.mu.Unlock()

	lg := c.lg.With(zap.String("id", id))
	lg.Debug("Submitting")

	rec, err := c.repo.Update(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		lg.Debug("Discarding update result after close")
		return ErrClosed
	}

	if err != nil {
		c.state = StateEditing
		if errors.Is(err, entity.ErrNotFound) {
			lg.Info("Update target vanished")
			c.message = failure(fmt.Sprintf("Failed to update %s. Please try again.", c.noun()))
		} else {
			lg.Warn("Update failed", zap.Error(err))
			c.message = failure(fmt.Sprintf("An error occurred while updating the %s.", c.noun()))
		}
		return &opError{op: "update", id: id, kind: ErrUpdateFailed, err: err}
	}

	c.editor.Reset(rec)
	c.state = StateViewing
	c.message = success(fmt.Sprintf("%s #%s updated successfully!", c.schema.Label(), id))
	lg.Info("Updated")
	return nil
}

// Close detaches the controller from its caller. Results of in-flight calls
// that arrive later are discarded, and every later action returns ErrClosed.
// Close is idempotent.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// View returns a snapshot of the controller for rendering.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View[T]{
		State:   c.state,
		ID:      c.id,
		Label:   c.schema.Label(),
		Message: c.message,
		Issues:  append([]draft.Issue(nil), c.issues...),
	}
	if c.state.Ready() {
		v.Record = c.editor.Base()
		v.Draft = c.editor.Draft()
		v.Fields = c.editor.Values()
		v.Dirty = c.editor.Dirty()
	}
	return v
}

// State returns the current state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller[T]) expect(action string, want State) error {
	if c.closed {
		return ErrClosed
	}
	if c.state != want {
		return &StateError{Action: action, State: c.state}
	}
	return nil
}

func dropIssue(issues []draft.Issue, field string) []draft.Issue {
	out := issues[:0]
	for _, i := range issues {
		if i.Field != field {
			out = append(out, i)
		}
	}
	return out
}

// View is a snapshot of a Controller.
type View[T any] struct {
	State State
	ID    string
	Label string
	// Record is the last known good record. Zero unless State.Ready.
	Record T
	// Draft is the record being edited. Equals Record outside Editing and
	// Submitting.
	Draft  T
	Fields []draft.Value
	Dirty  bool

	Message Message
	Issues  []draft.Issue
}
