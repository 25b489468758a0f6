// Package window provides cosine-sum window functions for spectral
// analysis.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type selects a window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman

	typeCount
)

var typeNames = [typeCount]string{"rectangular", "hann", "hamming", "blackman"}

// Cosine-sum coefficients: w(x) = a0 - a1 cos(x) + a2 cos(2x) - ...
var coeffsByType = [typeCount][]float64{
	TypeRectangular: {1},
	TypeHann:        {0.5, 0.5},
	TypeHamming:     {0.54, 0.46},
	TypeBlackman:    {0.42, 0.5, 0.08},
}

// Valid reports whether t is a known window type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", t)
}

// ParseType resolves a case-insensitive window name.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for i, name := range typeNames {
		if strings.EqualFold(s, name) {
			return Type(i), nil
		}
	}

	return TypeRectangular, fmt.Errorf("window: unknown type %q", s)
}

type config struct {
	periodic bool
}

// Option configures window generation.
type Option func(*config)

// WithPeriodic generates the periodic (DFT-even) form instead of the
// symmetric one.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// and non-positive lengths return nil.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 || !t.Valid() {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	span := float64(length - 1)
	if cfg.periodic {
		span = float64(length)
	}

	coeffs := coeffsByType[t]

	for i := range out {
		x := 2 * math.Pi * float64(i) / span

		v, sign := 0.0, 1.0
		for k, a := range coeffs {
			v += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}

		out[i] = v
	}

	return out
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// CoherentGain returns the mean of the coefficients, the factor by which
// the window scales a bin-centered sinusoid.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}
