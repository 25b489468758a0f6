package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonify/dsp/delay"
)

const maxEchoDelaySeconds = 2.0

// Tap is one echo reflection: a copy of the dry input delayed by Delay
// seconds and scaled by Gain.
type Tap struct {
	Delay float64 `yaml:"delay"`
	Gain  float64 `yaml:"gain"`
}

// DefaultTaps returns the short three-tap room used by the piano presets.
func DefaultTaps() []Tap {
	return []Tap{
		{Delay: 0.03, Gain: 0.3},
		{Delay: 0.05, Gain: 0.2},
		{Delay: 0.07, Gain: 0.1},
	}
}

// Echo is a feed-forward multi-tap echo. Each tap reads the dry signal, so
// taps never feed back into one another.
type Echo struct {
	sampleRate float64
	taps       []Tap
	delays     []int
	line       *delay.Line
}

// NewEcho creates an echo with the given taps. Tap delays are truncated to
// whole samples.
func NewEcho(sampleRate float64, taps ...Tap) (*Echo, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("echo sample rate must be > 0: %f", sampleRate)
	}

	e := &Echo{
		sampleRate: sampleRate,
		taps:       make([]Tap, len(taps)),
		delays:     make([]int, len(taps)),
	}
	copy(e.taps, taps)

	maxDelay := 0

	for i, tap := range taps {
		if tap.Delay <= 0 || tap.Delay > maxEchoDelaySeconds || math.IsNaN(tap.Delay) {
			return nil, fmt.Errorf("echo tap delay must be in (0, %f]: %f", maxEchoDelaySeconds, tap.Delay)
		}

		if math.IsNaN(tap.Gain) || math.IsInf(tap.Gain, 0) {
			return nil, fmt.Errorf("echo tap gain must be finite: %f", tap.Gain)
		}

		e.delays[i] = max(int(tap.Delay*sampleRate), 1)
		maxDelay = max(maxDelay, e.delays[i])
	}

	line, err := delay.ForMaxDelay(maxDelay)
	if err != nil {
		return nil, err
	}

	e.line = line

	return e, nil
}

// Reset clears the delay history.
func (e *Echo) Reset() {
	e.line.Reset()
}

// ProcessSample processes one sample.
func (e *Echo) ProcessSample(input float64) float64 {
	e.line.Write(input)

	out := input
	for i, d := range e.delays {
		out += e.taps[i].Gain * e.line.Behind(d)
	}

	return out
}

// ProcessInPlace applies the echo to buf in place. Reflections that would
// land past the end of buf are discarded.
func (e *Echo) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = e.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (e *Echo) SampleRate() float64 { return e.sampleRate }

// Taps returns a copy of the configured taps.
func (e *Echo) Taps() []Tap {
	out := make([]Tap, len(e.taps))
	copy(out, e.taps)

	return out
}

// DelaySamples returns the per-tap delays in samples.
func (e *Echo) DelaySamples() []int {
	out := make([]int, len(e.delays))
	copy(out, e.delays)

	return out
}
