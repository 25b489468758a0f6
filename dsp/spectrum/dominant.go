package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-sonify/dsp/window"
)

// MaxFFTSize bounds the analysis frame of [DominantFrequency]. Longer inputs
// are analyzed over their first MaxFFTSize samples.
const MaxFFTSize = 1 << 16

// ErrTooShort is returned when fewer than two samples are analyzed.
var ErrTooShort = errors.New("spectrum: need at least 2 samples")

// DominantFrequency estimates the frequency in Hz of the strongest non-DC
// spectral peak of x. The frame is Hann-windowed, zero-padded to a power of
// two and the peak is refined by parabolic interpolation over neighboring
// bin magnitudes. A silent input returns 0.
func DominantFrequency(x []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	if len(x) < 2 {
		return 0, ErrTooShort
	}

	frame := append([]float64(nil), x[:min(len(x), MaxFFTSize)]...)
	window.Apply(window.TypeHann, frame)

	fftSize := nextPow2(len(frame))

	inData := make([]complex128, fftSize)
	for i, v := range frame {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return 0, fmt.Errorf("spectrum: fft: %w", err)
	}

	mag := Magnitude(out[:fftSize/2+1])

	peak := 1
	for k := 2; k < len(mag); k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}

	if mag[peak] == 0 {
		return 0, nil
	}

	bin := float64(peak)
	if peak < len(mag)-1 {
		a, b, c := mag[peak-1], mag[peak], mag[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	return bin * sampleRate / float64(fftSize), nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
