package envelope

import (
	"math"
	"testing"
)

func TestFadeShape(t *testing.T) {
	env, err := Fade(10, 3)
	if err != nil {
		t.Fatalf("Fade() error = %v", err)
	}
	want := []float64{0, 0.5, 1, 1, 1, 1, 1, 1, 0.5, 0}
	for i := range want {
		if math.Abs(env[i]-want[i]) > 1e-12 {
			t.Fatalf("env[%d] = %v, want %v", i, env[i], want[i])
		}
	}
}

func TestFadeRampCappedAtHalf(t *testing.T) {
	env, err := Fade(6, 100)
	if err != nil {
		t.Fatalf("Fade() error = %v", err)
	}
	if len(env) != 6 {
		t.Fatalf("len = %d, want 6", len(env))
	}
	// Two 3-sample ramps: 0, 0.5, 1 | 1, 0.5, 0
	want := []float64{0, 0.5, 1, 1, 0.5, 0}
	for i := range want {
		if math.Abs(env[i]-want[i]) > 1e-12 {
			t.Fatalf("env[%d] = %v, want %v", i, env[i], want[i])
		}
	}
}

func TestFadeEdgesZero(t *testing.T) {
	for _, n := range []int{1, 2, 3, 50} {
		env, err := Fade(n, 0)
		if err != nil {
			t.Fatalf("Fade(%d) error = %v", n, err)
		}
		if env[0] != 0 || env[n-1] != 0 {
			t.Fatalf("Fade(%d) edges = %v, %v; want 0", n, env[0], env[n-1])
		}
	}
}

func TestFadeRejectsEmpty(t *testing.T) {
	if _, err := Fade(0, 3); err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestExpDecay(t *testing.T) {
	env, err := ExpDecay(4)
	if err != nil {
		t.Fatalf("ExpDecay() error = %v", err)
	}
	for i, v := range env {
		want := math.Exp(-float64(i) / 4)
		if math.Abs(v-want) > 1e-15 {
			t.Fatalf("env[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestArch(t *testing.T) {
	env, err := Arch(5)
	if err != nil {
		t.Fatalf("Arch() error = %v", err)
	}
	want := []float64{0, 0.1875, 0.25, 0.1875, 0}
	for i := range want {
		if math.Abs(env[i]-want[i]) > 1e-15 {
			t.Fatalf("env[%d] = %v, want %v", i, env[i], want[i])
		}
	}
	if _, err := Arch(0); err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestApply(t *testing.T) {
	x := []float64{1, 2, 3}
	if err := Apply(x, []float64{0, 0.5, 1}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []float64{0, 1, 3}
	for i := range want {
		if x[i] != want[i] {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
	if err := Apply(x, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
