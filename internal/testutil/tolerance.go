package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireBounded fails t if any element is non-finite or exceeds bound in
// magnitude.
func RequireBounded(t *testing.T, data []float64, bound float64) {
	t.Helper()
	RequireFinite(t, data)
	for i, v := range data {
		if math.Abs(v) > bound {
			t.Fatalf("index %d: |%v| exceeds %v", i, v, bound)
		}
	}
}

// RequireNoAllocs fails t if f allocates on average over runs calls.
func RequireNoAllocs(t *testing.T, runs int, f func()) {
	t.Helper()
	if allocs := testing.AllocsPerRun(runs, f); allocs != 0 {
		t.Fatalf("allocations per run = %v, want 0", allocs)
	}
}
