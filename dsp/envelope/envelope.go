package envelope

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sonify/dsp/interp"
)

var (
	errInvalidLength    = errors.New("envelope: length must be > 0")
	errMismatchedLength = errors.New("envelope: samples and envelope must have same length")
)

func validateLength(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", errInvalidLength, n)
	}
	return nil
}

// Fade returns a linear fade-in/fade-out curve of length n.
// Each ramp spans min(rampSamples, n/2) samples; the first and last sample
// are forced to 0.
func Fade(n, rampSamples int) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	ramp := min(max(rampSamples, 0), n/2)

	env := make([]float64, n)
	for i := range env {
		env[i] = 1
	}
	copy(env, interp.Linspace(0, 1, ramp))
	copy(env[n-ramp:], interp.Linspace(1, 0, ramp))

	env[0] = 0
	env[n-1] = 0
	return env, nil
}

// ExpDecay returns exp(-i/n) for i in [0, n), which is exp(-t/duration)
// sampled on the note's own time grid.
func ExpDecay(n int) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	env := make([]float64, n)
	for i := range env {
		env[i] = math.Exp(-float64(i) / float64(n))
	}
	return env, nil
}

// Arch returns x*(1-x) for x evenly spaced over [0, 1], a smooth swell
// that peaks at 0.25 mid-note and is 0 at both ends.
func Arch(n int) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	env := interp.Linspace(0, 1, n)
	for i, x := range env {
		env[i] = x * (1 - x)
	}
	return env, nil
}

// Apply multiplies samples by env element-wise, in place.
func Apply(samples, env []float64) error {
	if len(samples) != len(env) {
		return fmt.Errorf("%w: %d != %d", errMismatchedLength, len(samples), len(env))
	}
	if len(samples) == 0 {
		return nil
	}
	vecmath.MulBlockInPlace(samples, env)
	return nil
}
