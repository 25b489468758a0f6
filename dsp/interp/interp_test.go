package interp

import "testing"

func TestLinear(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "lower edge", x: 0, want: 50},
		{name: "upper edge", x: 1000, want: 200},
		{name: "midpoint", x: 500, want: 125},
		{name: "below domain", x: -10, want: 50},
		{name: "above domain", x: 5000, want: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linear(tt.x, 0, 1000, 50, 200)
			if diff := got - tt.want; diff < -1e-12 || diff > 1e-12 {
				t.Fatalf("Linear(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestLinearReversedDomain(t *testing.T) {
	if got := Linear(2, 4, 0, 10, 0); got != 5 {
		t.Fatalf("got %v, want 5", got)
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	if got := Linear(0, 0, 0, 1, 2); got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
	if got := Linear(1, 0, 0, 1, 2); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if one := Linspace(3, 7, 1); len(one) != 1 || one[0] != 3 {
		t.Fatalf("Linspace(n=1) = %v, want [3]", one)
	}
	if Linspace(0, 1, 0) != nil {
		t.Fatal("Linspace(n=0) should be nil")
	}
}
