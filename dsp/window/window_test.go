package window

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sonify/internal/testutil"
)

func TestGenerateSymmetric(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 65)

		for i := range w {
			if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
				t.Fatalf("%v: not symmetric at %d", typ, i)
			}
		}

		if math.Abs(w[32]-1) > 1e-12 {
			t.Errorf("%v: center = %v, want 1", typ, w[32])
		}
	}
}

func TestGenerateEdges(t *testing.T) {
	tests := []struct {
		typ  Type
		edge float64
	}{
		{TypeRectangular, 1},
		{TypeHann, 0},
		{TypeHamming, 0.08},
		{TypeBlackman, 0},
	}

	for _, tt := range tests {
		w := Generate(tt.typ, 16)
		if math.Abs(w[0]-tt.edge) > 1e-12 || math.Abs(w[15]-tt.edge) > 1e-12 {
			t.Errorf("%v: edges %v/%v, want %v", tt.typ, w[0], w[15], tt.edge)
		}
	}
}

func TestGeneratePeriodic(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	want := []float64{0, 0.1464466, 0.5, 0.8535534, 1, 0.8535534, 0.5, 0.1464466}

	testutil.RequireSliceNearlyEqual(t, w, want, 1e-7)

	if got := CoherentGain(w); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("CoherentGain = %v, want 0.5", got)
	}
}

func TestGenerateDegenerate(t *testing.T) {
	if Generate(TypeHann, 0) != nil || Generate(Type(99), 8) != nil {
		t.Fatal("expected nil")
	}

	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("length-1 window = %v", w)
	}
}

func TestApply(t *testing.T) {
	buf := testutil.DC(2, 5)
	Apply(TypeHann, buf)

	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 1, 2, 1, 0}, 1e-12)
}

func TestParseType(t *testing.T) {
	for i := TypeRectangular; i < typeCount; i++ {
		got, err := ParseType(" " + i.String() + " ")
		if err != nil || got != i {
			t.Errorf("ParseType(%q) = %v, %v", i.String(), got, err)
		}
	}

	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error")
	}
}
