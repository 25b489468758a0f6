package filter

import (
	"fmt"
	"math"
)

// DefaultQ gives a maximally flat (Butterworth) second-order response.
const DefaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ lowpass at freq Hz. A non-positive q selects
// DefaultQ.
func Lowpass(freq, q, sampleRate float64) (Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}

	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * normalizedQ(q))

	return normalize((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha), nil
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("filter: sample rate must be > 0: %f", sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return 0, fmt.Errorf("filter: frequency must be in (0, %f): %f", sampleRate/2, freq)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return DefaultQ
	}

	return q
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
