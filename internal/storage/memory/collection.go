// Package memory provides the in-process stand-in for back-office persistence.
//
// A Collection holds one entity type keyed by string id. Every call waits a
// fixed simulated latency before touching the data, and every record that
// crosses the API boundary is a copy, so callers can never mutate stored
// state except through Update.
//
// The collection mutex only keeps the map memory-safe. Two writers updating
// the same record race with last-write-wins semantics; there is no version
// check or conflict detection.
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/xenking/backoffice/internal/entity"
)

// ErrInjected is returned by calls selected for failure injection.
var ErrInjected = errors.New("injected store failure")

// Latency is the simulated network delay applied before each call resolves.
type Latency struct {
	Read  time.Duration
	Write time.Duration
}

// DefaultLatency mirrors the delays of the dashboard's mock API.
var DefaultLatency = Latency{
	Read:  300 * time.Millisecond,
	Write: 500 * time.Millisecond,
}

type options struct {
	latency   Latency
	failEvery int64
	meter     metric.MeterProvider
}

// Option configures a Collection.
type Option func(*options)

// WithLatency overrides DefaultLatency. Zero durations disable the delay.
func WithLatency(l Latency) Option {
	return func(o *options) { o.latency = l }
}

// WithFailEvery makes every n-th call fail with ErrInjected. Zero disables it.
func WithFailEvery(n int) Option {
	return func(o *options) { o.failEvery = int64(n) }
}

// WithMeterProvider sets the provider used for operation metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meter = mp }
}

// Collection is a mutable, id-keyed set of records of type T.
type Collection[T any] struct {
	name    string
	key     func(*T) string
	clone   func(T) T
	latency Latency

	failEvery int64
	calls     atomic.Int64

	ops      metric.Int64Counter
	duration metric.Float64Histogram

	mu      sync.RWMutex
	records map[string]*T
	order   []string
}

// New creates an empty collection. key extracts the record id; clone returns
// a deep copy of a record (records with only value fields may pass nil).
func New[T any](name string, key func(*T) string, clone func(T) T, opts ...Option) *Collection[T] {
	o := options{latency: DefaultLatency}
	for _, opt := range opts {
		opt(&o)
	}
	if o.meter == nil {
		o.meter = otel.GetMeterProvider()
	}
	if clone == nil {
		clone = func(v T) T { return v }
	}

	c := &Collection[T]{
		name:      name,
		key:       key,
		clone:     clone,
		latency:   o.latency,
		failEvery: o.failEvery,
		records:   make(map[string]*T),
	}

	meter := o.meter.Meter("github.com/xenking/backoffice/internal/storage/memory")
	ops, err := meter.Int64Counter("backoffice.store.operations",
		metric.WithDescription("Store calls by collection, operation and result"),
	)
	if err != nil {
		ops = noop.Int64Counter{}
	}
	duration, err := meter.Float64Histogram("backoffice.store.duration",
		metric.WithDescription("Store call duration including simulated latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		duration = noop.Float64Histogram{}
	}
	c.ops, c.duration = ops, duration
	return c
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Len returns the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Seed inserts records without latency. Existing ids are overwritten in place.
func (c *Collection[T]) Seed(records ...T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		r := c.clone(r)
		id := c.key(&r)
		if _, ok := c.records[id]; !ok {
			c.order = append(c.order, id)
		}
		c.records[id] = &r
	}
}

// Get returns a copy of the record with the given id, or entity.ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (out T, err error) {
	defer c.observe(ctx, "get", time.Now(), &err)

	if err := c.wait(ctx, c.latency.Read); err != nil {
		return out, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.records[id]
	if !ok {
		return out, entity.ErrNotFound
	}
	return c.clone(*r), nil
}

// Update merges patch over the stored record and returns a copy of the
// result. When id is unknown nothing is written and entity.ErrNotFound is
// returned.
func (c *Collection[T]) Update(ctx context.Context, id string, patch entity.Patch[T]) (out T, err error) {
	defer c.observe(ctx, "update", time.Now(), &err)

	if err := c.wait(ctx, c.latency.Write); err != nil {
		return out, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.records[id]
	if !ok {
		return out, entity.ErrNotFound
	}

	next := c.clone(*r)
	patch.Apply(&next)
	// The id is the map key; a patch cannot move a record.
	if c.key(&next) != id {
		return out, errors.Errorf("patch changed id %q to %q", id, c.key(&next))
	}
	*r = next
	return c.clone(next), nil
}

// Create appends a new record. It returns entity.ErrAlreadyExists when the id
// is already taken.
func (c *Collection[T]) Create(ctx context.Context, record T) (out T, err error) {
	defer c.observe(ctx, "create", time.Now(), &err)

	if err := c.wait(ctx, c.latency.Write); err != nil {
		return out, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.clone(record)
	id := c.key(&r)
	if id == "" {
		return out, errors.New("empty id")
	}
	if _, ok := c.records[id]; ok {
		return out, entity.ErrAlreadyExists
	}
	c.records[id] = &r
	c.order = append(c.order, id)
	return c.clone(r), nil
}

// List returns copies of all records in insertion order.
func (c *Collection[T]) List(ctx context.Context) (out []T, err error) {
	defer c.observe(ctx, "list", time.Now(), &err)

	if err := c.wait(ctx, c.latency.Read); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out = make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(*c.records[id]))
	}
	return out, nil
}

// Filter returns copies of the records matching keep, in insertion order.
func (c *Collection[T]) Filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// wait sleeps for d, then applies failure injection.
func (c *Collection[T]) wait(ctx context.Context, d time.Duration) error {
	if d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "wait")
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "wait")
	}

	if c.failEvery > 0 && c.calls.Add(1)%c.failEvery == 0 {
		return ErrInjected
	}
	return nil
}

func (c *Collection[T]) observe(ctx context.Context, op string, start time.Time, errp *error) {
	result := "ok"
	switch err := *errp; {
	case err == nil:
	case errors.Is(err, entity.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("collection", c.name),
		attribute.String("op", op),
		attribute.String("result", result),
	)
	c.ops.Add(ctx, 1, attrs)
	c.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}
