//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestLivez(t *testing.T) {
	resp := doGet(t, "/livez")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decodeJSON[healthResponse](t, resp); body.Status != "ok" || len(body.Checks) != 0 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

// Readiness is gated on the seed check, so every embedded collection must
// already be served once /readyz reports ok.
func TestReadyz_Seeded(t *testing.T) {
	resp := doGet(t, "/readyz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decodeJSON[healthResponse](t, resp); body.Status != "ok" {
		t.Fatalf("expected status ok, got %+v", body)
	}

	for _, tc := range []struct {
		path string
		min  int
	}{
		{"/api/orders", 6},
		{"/api/products", 5},
		{"/api/customers", 5},
	} {
		list := doGet(t, tc.path)
		records := decodeJSON[[]map[string]any](t, list)
		list.Body.Close()
		if len(records) < tc.min {
			t.Errorf("%s: got %d records, want at least %d", tc.path, len(records), tc.min)
		}
	}
}

func TestHealth_NotUnderAPIPrefix(t *testing.T) {
	resp := doGet(t, "/api/readyz")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
