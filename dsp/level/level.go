// Package level measures the loudness of a rendered signal.
package level

import (
	"math"

	"github.com/cwbudde/algo-sonify/dsp/core"
)

// pcmFullScale is the largest 16-bit code the quantizer emits.
const pcmFullScale = 32767

// Level holds amplitude statistics of a signal.
type Level struct {
	Length        int
	DC            float64
	RMS           float64
	Peak          float64
	CrestFactor   float64 // peak / RMS, 0 for silence
	ZeroCrossings int
}

// Measure computes the level of x in one pass.
func Measure(x []float64) Level {
	if len(x) == 0 {
		return Level{}
	}

	var sum, c, sumSq, peak float64

	crossings := 0

	for i, v := range x {
		// Kahan-compensated mean
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += v * v
		peak = max(peak, math.Abs(v))

		if i > 0 && x[i-1]*v < 0 {
			crossings++
		}
	}

	n := float64(len(x))
	l := Level{
		Length:        len(x),
		DC:            sum / n,
		RMS:           math.Sqrt(sumSq / n),
		Peak:          peak,
		ZeroCrossings: crossings,
	}

	if l.RMS > 0 {
		l.CrestFactor = l.Peak / l.RMS
	}

	return l
}

// MeasurePCM measures 16-bit codes relative to full scale.
func MeasurePCM(pcm []int16) Level {
	x := make([]float64, len(pcm))
	for i, s := range pcm {
		x[i] = float64(s) / pcmFullScale
	}

	return Measure(x)
}

// RMSdB returns the RMS level in dB relative to full scale. Silence is -Inf.
func (l Level) RMSdB() float64 {
	return core.LinearToDB(l.RMS)
}

// PeakdB returns the peak level in dB relative to full scale.
func (l Level) PeakdB() float64 {
	return core.LinearToDB(l.Peak)
}

// CrestFactordB returns the crest factor in dB, or 0 for silence.
func (l Level) CrestFactordB() float64 {
	if l.CrestFactor == 0 {
		return 0
	}

	return core.LinearToDB(l.CrestFactor)
}
