package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-sonify/dsp/core"
)

// ErrNoSamples is returned when a request would produce an empty signal.
var ErrNoSamples = errors.New("signal: sample count must be > 0")

// Generator creates oscillator signals from a shared configuration.
// Noise output is drawn from a seeded source, so two generators built with
// the same seed produce the same sequence of noise blocks.
type Generator struct {
	cfg  core.ProcessorConfig
	seed uint64
	rng  *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = newRand(g.seed)
	return g
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the seed the noise source was last reset with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// SetSeed resets the noise source.
func (g *Generator) SetSeed(seed uint64) {
	g.seed = seed
	g.rng = newRand(seed)
}

// Samples returns the sample count for a duration: round(sampleRate * seconds).
func (g *Generator) Samples(seconds float64) int {
	return core.SamplesFor(seconds, g.cfg.SampleRate)
}

func (g *Generator) validate(what string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s: %w: %d", what, ErrNoSamples, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", what, g.cfg.SampleRate)
	}
	return nil
}

// Oscillator renders samples of the given waveform at freqHz on the
// half-open time grid t = i / sampleRate.
func (g *Generator) Oscillator(kind Waveform, freqHz float64, samples int) ([]float64, error) {
	switch kind {
	case WaveformSine:
		return g.Sine(freqHz, 1, samples)
	case WaveformSquare:
		return g.Square(freqHz, samples)
	case WaveformSawtooth:
		return g.Sawtooth(freqHz, samples)
	case WaveformTriangle:
		return g.Triangle(freqHz, samples)
	case WaveformNoise:
		return g.WhiteNoise(1, samples)
	default:
		return nil, fmt.Errorf("signal: invalid waveform %v", kind)
	}
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Square generates sign(sin(2*pi*f*t)); zero crossings stay at 0.
func (g *Generator) Square(freqHz float64, samples int) ([]float64, error) {
	out, err := g.Sine(freqHz, 1, samples)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		switch {
		case v > 0:
			out[i] = 1
		case v < 0:
			out[i] = -1
		default:
			out[i] = 0
		}
	}
	return out, nil
}

// Sawtooth generates 2*(f*t - floor(0.5 + f*t)).
func (g *Generator) Sawtooth(freqHz float64, samples int) ([]float64, error) {
	if err := g.validate("sawtooth", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := freqHz / g.cfg.SampleRate
	for i := range out {
		ft := step * float64(i)
		out[i] = 2 * (ft - math.Floor(0.5+ft))
	}
	return out, nil
}

// Triangle generates 2*|2*(f*t - floor(0.5 + f*t))| - 1.
func (g *Generator) Triangle(freqHz float64, samples int) ([]float64, error) {
	out, err := g.Sawtooth(freqHz, samples)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		out[i] = 2*math.Abs(v) - 1
	}
	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude] from the
// generator's seeded source.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise: %w: %d", ErrNoSamples, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = (g.rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Silence returns samples zeros.
func (g *Generator) Silence(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("silence: %w: %d", ErrNoSamples, samples)
	}
	return make([]float64, samples), nil
}

// Peak returns the largest absolute sample value, 0 for empty input.
func Peak(data []float64) float64 {
	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}
	return maxAbs
}

// Normalize scales data to target peak amplitude and returns a new slice.
// All-zero input is returned as zeros.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	out := make([]float64, len(data))
	maxAbs := Peak(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
