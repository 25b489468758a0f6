package signal

import (
	"fmt"
	"math"
)

// Partial is an additional sine component at Ratio times the fundamental
// with relative amplitude Amp.
type Partial struct {
	Ratio float64
	Amp   float64
}

// Partials renders a unit sine at freqHz and sums each partial onto it.
func (g *Generator) Partials(freqHz float64, partials []Partial, samples int) ([]float64, error) {
	out, err := g.Sine(freqHz, 1, samples)
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		if p.Amp == 0 {
			continue
		}
		step := 2 * math.Pi * freqHz * p.Ratio / g.cfg.SampleRate
		for i := range out {
			out[i] += p.Amp * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// Modulate applies amplitude modulation 1 + depth*sin(2*pi*rateHz*t) to x
// in place.
func (g *Generator) Modulate(x []float64, rateHz, depth float64) error {
	if depth < 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return fmt.Errorf("modulation depth must be >= 0: %f", depth)
	}
	step := 2 * math.Pi * rateHz / g.cfg.SampleRate
	for i := range x {
		x[i] *= 1 + depth*math.Sin(step*float64(i))
	}
	return nil
}

// Vibrato renders a unit sine whose instantaneous frequency swings
// depthHz around freqHz at rateHz. The phase is integrated, so the swing
// stays within +/-depthHz for the whole note.
func (g *Generator) Vibrato(freqHz, rateHz, depthHz float64, samples int) ([]float64, error) {
	if err := g.validate("vibrato", samples); err != nil {
		return nil, err
	}
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return nil, fmt.Errorf("vibrato rate must be > 0: %f", rateHz)
	}
	if depthHz < 0 || math.IsNaN(depthHz) || math.IsInf(depthHz, 0) {
		return nil, fmt.Errorf("vibrato depth must be >= 0: %f", depthHz)
	}

	out := make([]float64, samples)
	sr := g.cfg.SampleRate
	swing := depthHz / rateHz
	for i := range out {
		t := float64(i) / sr
		phase := 2*math.Pi*freqHz*t + swing*(1-math.Cos(2*math.Pi*rateHz*t))
		out[i] = math.Sin(phase)
	}
	return out, nil
}
