package testutil

import (
	"fmt"
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
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
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

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		maxDiff = max(maxDiff, math.Abs(a[i]-b[i]))
	}

	return maxDiff, nil
}

// PeakPCM returns the largest absolute sample value of pcm.
func PeakPCM(pcm []int16) int {
	peak := 0
	for _, v := range pcm {
		peak = max(peak, abs(int(v)))
	}

	return peak
}

// RequirePCMRange fails t if any sample lies outside [-limit, limit].
func RequirePCMRange(t *testing.T, pcm []int16, limit int) {
	t.Helper()

	for i, v := range pcm {
		if abs(int(v)) > limit {
			t.Fatalf("sample %d: %d outside [-%d, %d]", i, v, limit, limit)
		}
	}
}

// RequirePCMEqual fails t if a and b are not sample-identical.
func RequirePCMEqual(t *testing.T, got, want []int16) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
