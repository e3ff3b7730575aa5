package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetFromPath(t *testing.T) {
	collections := []string{"orders", "products", "customers"}
	for _, tc := range []struct {
		path string
		want Target
	}{
		{"/orders/ORD-1", Target{Collection: "orders", ID: "ORD-1"}},
		{"/dashboard/products/3/edit", Target{Collection: "products", ID: "3"}},
		{"/api/customers/cust%201/", Target{Collection: "customers", ID: "cust 1"}},
		{"/orders", Target{Collection: "orders"}},
	} {
		t.Run(tc.path, func(t *testing.T) {
			got, err := TargetFromPath(tc.path, collections...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := TargetFromPath("/settings/general", collections...)
	require.Error(t, err)
	_, err = TargetFromPath("/orders/%zz", collections...)
	require.Error(t, err)
}

func TestTargetFromArgs(t *testing.T) {
	assert.Equal(t, Target{Collection: "orders", ID: "ORD-1"}, TargetFromArgs("orders", []string{" ORD-1 "}))
	assert.Equal(t, Target{Collection: "orders"}, TargetFromArgs("orders", nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, StateNotFound.Terminal())
	assert.False(t, StateEditing.Terminal())
}
