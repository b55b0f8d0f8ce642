package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if any
// element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireIntSliceEqual fails t if got and want differ in length or content.
// Channel ids, quality flags and grouping flags all compare this way.
func RequireIntSliceEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d (got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

// RequireSumInvariant fails t if the totals of before and after differ by
// more than rel relative tolerance. Regrouping must conserve the total.
func RequireSumInvariant(t *testing.T, before, after []float64, rel float64) {
	t.Helper()
	var a, b float64
	for _, v := range before {
		a += v
	}
	for _, v := range after {
		b += v
	}
	tol := rel * math.Max(math.Abs(a), 1)
	if math.Abs(a-b) > tol {
		t.Fatalf("sum not invariant: before %v, after %v (diff %v > tol %v)", a, b, math.Abs(a-b), tol)
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
