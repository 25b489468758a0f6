package dither

import (
	"errors"
	"math"
	"testing"
)

func TestNewQuantizerValidation(t *testing.T) {
	if _, err := NewQuantizer(WithBitDepth(0)); err == nil {
		t.Error("expected error for bit depth 0")
	}

	if _, err := NewQuantizer(WithDitherType(DitherType(99))); err == nil {
		t.Error("expected error for dither type 99")
	}
}

func TestNewQuantizerDefaults(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	if quant.BitDepth() != 16 {
		t.Errorf("BitDepth() = %d, want 16", quant.BitDepth())
	}

	if quant.DitherType() != DitherNone {
		t.Errorf("DitherType() = %v, want None", quant.DitherType())
	}

	if quant.DitherAmplitude() != 1.0 {
		t.Errorf("DitherAmplitude() = %v, want 1.0", quant.DitherAmplitude())
	}

	if !quant.Limit() {
		t.Error("Limit() should be true by default")
	}

	if quant.FullScale() != 32767 {
		t.Errorf("FullScale() = %d, want 32767", quant.FullScale())
	}
}

func TestQuantizerNilOption(t *testing.T) {
	if _, err := NewQuantizer(nil, WithBitDepth(8)); err != nil {
		t.Fatal(err)
	}
}

func TestQuantizerProcessInteger(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{0.5, 16384}, // 16383.5 rounds away from zero
		{-0.5, -16384},
		{1.5, 32767},
		{-2, -32767},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := quant.ProcessInteger(tt.in); got != tt.want {
			t.Errorf("ProcessInteger(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantizerLimitDisabled(t *testing.T) {
	quant, err := NewQuantizer(WithLimit(false))
	if err != nil {
		t.Fatal(err)
	}

	if got := quant.ProcessInteger(2); got != 65534 {
		t.Fatalf("ProcessInteger(2) = %d, want 65534", got)
	}
}

func TestQuantizerSilencePreservation(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	codes := quant.Quantize(make([]float64, 64))
	for i, c := range codes {
		if c != 0 {
			t.Fatalf("code[%d] = %d, want 0", i, c)
		}
	}
}

func TestQuantizerDeterministic(t *testing.T) {
	buf := make([]float64, 256)
	for i := range buf {
		buf[i] = 0.3 * math.Sin(float64(i)*0.1)
	}

	for _, dt := range []DitherType{DitherRectangular, DitherTriangular} {
		t.Run(dt.String(), func(t *testing.T) {
			q1, err := NewQuantizer(WithDitherType(dt), WithSeed(42))
			if err != nil {
				t.Fatal(err)
			}

			q2, err := NewQuantizer(WithDitherType(dt), WithSeed(42))
			if err != nil {
				t.Fatal(err)
			}

			a := q1.Quantize(buf)
			b := q2.Quantize(buf)

			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("sample %d differs: %d vs %d", i, a[i], b[i])
				}
			}
		})
	}
}

func TestQuantizerDitherStaysNear(t *testing.T) {
	quant, err := NewQuantizer(WithDitherType(DitherTriangular), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}

	for i := range 1000 {
		in := float64(i-500) / 1000
		exact := in * 32767

		got := float64(quant.ProcessInteger(in))
		if math.Abs(got-exact) > 1.5 {
			t.Fatalf("dithered code %v too far from %v", got, exact)
		}
	}
}

func TestQuantizerInt16(t *testing.T) {
	quant, err := NewQuantizer()
	if err != nil {
		t.Fatal(err)
	}

	got, err := quant.Int16([]float64{1, -1, 0})
	if err != nil {
		t.Fatal(err)
	}

	if got[0] != 32767 || got[1] != -32767 || got[2] != 0 {
		t.Fatalf("Int16 = %v", got)
	}

	wide, err := NewQuantizer(WithBitDepth(24))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := wide.Int16([]float64{0}); !errors.Is(err, ErrBitDepth) {
		t.Fatalf("err = %v, want ErrBitDepth", err)
	}
}

func TestQuantizerProcessInPlaceParity(t *testing.T) {
	quant, err := NewQuantizer(WithBitDepth(8))
	if err != nil {
		t.Fatal(err)
	}

	buf := []float64{0, 0.25, -0.5, 1}
	want := make([]float64, len(buf))

	for i, v := range buf {
		want[i] = float64(quant.ProcessInteger(v)) / 127
	}

	quant.ProcessInPlace(buf)

	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestQuantizerBitDepthRange(t *testing.T) {
	for bits := minBitDepth; bits <= maxBitDepth; bits++ {
		quant, err := NewQuantizer(WithBitDepth(bits))
		if err != nil {
			t.Fatalf("bits=%d: %v", bits, err)
		}

		want := int(math.Exp2(float64(bits-1))) - 1
		if got := quant.ProcessInteger(1); got != want {
			t.Errorf("bits=%d: full scale %d, want %d", bits, got, want)
		}
	}
}
