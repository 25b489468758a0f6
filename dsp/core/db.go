package core

import "math"

// LinearToDB converts a linear amplitude to dBFS (20*log10). Zero maps to
// -Inf and negative amplitudes to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(linear)
	}
}
