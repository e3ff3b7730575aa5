package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/xenking/backoffice/internal/entity"
)

type record struct {
	ID     string
	Status string
	Total  int
	Tags   []string
}

func cloneRecord(r record) record {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

func key(r *record) string { return r.ID }

func newCollection(opts ...Option) *Collection[record] {
	opts = append([]Option{WithLatency(Latency{})}, opts...)
	c := New("records", key, cloneRecord, opts...)
	c.Seed(
		record{ID: "ORD-1", Status: "Pending", Total: 10, Tags: []string{"gift"}},
		record{ID: "ORD-2", Status: "Shipped", Total: 25},
	)
	return c
}

func set(status string) entity.Patch[record] {
	return entity.PatchFunc[record](func(r *record) { r.Status = status })
}

func TestGet(t *testing.T) {
	c := newCollection()

	r, err := c.Get(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Pending", r.Status)

	_, err = c.Get(context.Background(), "NON-EXISTENT")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := newCollection()
	ctx := context.Background()

	r, err := c.Get(ctx, "ORD-1")
	require.NoError(t, err)
	r.Status = "Mutated"
	r.Tags[0] = "mutated"

	again, err := c.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Pending", again.Status)
	assert.Equal(t, []string{"gift"}, again.Tags)
}

func TestUpdate_Merge(t *testing.T) {
	c := newCollection()
	ctx := context.Background()

	r, err := c.Update(ctx, "ORD-1", set("Shipped"))
	require.NoError(t, err)
	assert.Equal(t, "Shipped", r.Status)
	assert.Equal(t, 10, r.Total, "fields absent from the patch are kept")

	stored, err := c.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, r, stored)

	other, err := c.Get(ctx, "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", other.Status)
	assert.Equal(t, 25, other.Total)
}

func TestUpdate_NotFound(t *testing.T) {
	c := newCollection()
	applied := false

	_, err := c.Update(context.Background(), "NON-EXISTENT", entity.PatchFunc[record](func(*record) { applied = true }))
	require.ErrorIs(t, err, entity.ErrNotFound)
	assert.False(t, applied)
	assert.Equal(t, 2, c.Len())
}

func TestUpdate_RejectsIDChange(t *testing.T) {
	c := newCollection()

	_, err := c.Update(context.Background(), "ORD-1", entity.PatchFunc[record](func(r *record) { r.ID = "ORD-9" }))
	require.Error(t, err)

	_, err = c.Get(context.Background(), "ORD-9")
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUpdate_PatchCannotLeakIntoStore(t *testing.T) {
	c := newCollection()
	var kept *record

	_, err := c.Update(context.Background(), "ORD-1", entity.PatchFunc[record](func(r *record) { kept = r }))
	require.NoError(t, err)

	kept.Status = "Leaked"
	r, err := c.Get(context.Background(), "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Pending", r.Status)
}

func TestCreateList(t *testing.T) {
	c := newCollection()
	ctx := context.Background()

	_, err := c.Create(ctx, record{ID: "ORD-3", Status: "Pending"})
	require.NoError(t, err)

	_, err = c.Create(ctx, record{ID: "ORD-1"})
	require.ErrorIs(t, err, entity.ErrAlreadyExists)

	_, err = c.Create(ctx, record{})
	require.Error(t, err)

	all, err := c.List(ctx)
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, r := range all {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"ORD-1", "ORD-2", "ORD-3"}, ids)

	pending, err := c.Filter(ctx, func(r *record) bool { return r.Status == "Pending" })
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestLatency(t *testing.T) {
	c := newCollection(WithLatency(Latency{Read: 30 * time.Millisecond, Write: 60 * time.Millisecond}))
	ctx := context.Background()

	start := time.Now()
	_, err := c.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	start = time.Now()
	_, err = c.Update(ctx, "ORD-1", set("Shipped"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestLatency_Canceled(t *testing.T) {
	c := newCollection(WithLatency(Latency{Read: time.Hour, Write: time.Hour}))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Update(ctx, "ORD-1", set("Shipped"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFailEvery(t *testing.T) {
	c := newCollection(WithFailEvery(3))
	ctx := context.Background()

	var errs []error
	for range 6 {
		_, err := c.Get(ctx, "ORD-1")
		errs = append(errs, err)
	}
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.ErrorIs(t, errs[2], ErrInjected)
	assert.NoError(t, errs[3])
	assert.ErrorIs(t, errs[5], ErrInjected)
}

func TestConcurrentUpdates_LastWriteWins(t *testing.T) {
	c := newCollection()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Update(ctx, "ORD-1", entity.PatchFunc[record](func(r *record) { r.Total = i }))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	r, err := c.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Total, 0)
	assert.Less(t, r.Total, 50)
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	c := newCollection(WithMeterProvider(mp))
	ctx := context.Background()

	_, _ = c.Get(ctx, "ORD-1")
	_, _ = c.Get(ctx, "missing")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	var ops *metricdata.Sum[int64]
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name == "backoffice.store.operations" {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			ops = &sum
		}
	}
	require.NotNil(t, ops)

	var total int64
	for _, dp := range ops.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)
	assert.Len(t, ops.DataPoints, 2, "ok and not_found are separate series")
}

func TestWait_Error(t *testing.T) {
	c := newCollection()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.wait(ctx, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
