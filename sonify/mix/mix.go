// Package mix sums rendered voices, normalizes the result and quantizes it
// to 16-bit PCM.
package mix

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonify/dsp/buffer"
	"github.com/cwbudde/algo-sonify/dsp/dither"
	"github.com/cwbudde/algo-sonify/dsp/effects"
	"github.com/cwbudde/algo-sonify/dsp/signal"
)

// Track is one rendered voice and its gain.
type Track struct {
	Samples []float64
	Volume  float64
}

// Mixer combines tracks into one normalized signal.
type Mixer struct {
	sampleRate float64
	taps       []effects.Tap
	smear      effects.Smear
	ditherOpts []dither.Option
	pool       *buffer.Pool
	quant      *dither.Quantizer
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithEcho adds a post-mix multi-tap echo.
func WithEcho(taps ...effects.Tap) Option {
	return func(m *Mixer) {
		m.taps = append(m.taps, taps...)
	}
}

// WithSmear blends the post-echo sum with its moving average.
func WithSmear(s effects.Smear) Option {
	return func(m *Mixer) {
		m.smear = s
	}
}

// WithDither passes options to the 16-bit quantizer.
func WithDither(opts ...dither.Option) Option {
	return func(m *Mixer) {
		m.ditherOpts = append(m.ditherOpts, opts...)
	}
}

// WithPool shares a scratch buffer pool between mixers.
func WithPool(p *buffer.Pool) Option {
	return func(m *Mixer) {
		if p != nil {
			m.pool = p
		}
	}
}

// New returns a mixer for signals at sampleRate.
func New(sampleRate float64, opts ...Option) (*Mixer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("mix: sample rate must be > 0: %f", sampleRate)
	}

	m := &Mixer{sampleRate: sampleRate}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.pool == nil {
		m.pool = buffer.NewPool()
	}

	// Taps are checked here so a bad preset fails before rendering.
	if _, err := effects.NewEcho(sampleRate, m.taps...); err != nil {
		return nil, err
	}

	if err := m.smear.Validate(); err != nil {
		return nil, err
	}

	quant, err := dither.NewQuantizer(append([]dither.Option{dither.WithBitDepth(16)}, m.ditherOpts...)...)
	if err != nil {
		return nil, err
	}

	m.quant = quant

	return m, nil
}

// Sum returns the volume-weighted sum of tracks, as long as the longest
// track, with the echo and then the smear applied. It is not normalized.
func (m *Mixer) Sum(tracks []Track) ([]float64, error) {
	length := 0
	for i, tr := range tracks {
		if tr.Volume < 0 || math.IsNaN(tr.Volume) || math.IsInf(tr.Volume, 0) {
			return nil, fmt.Errorf("mix: track %d volume must be >= 0: %f", i, tr.Volume)
		}

		length = max(length, len(tr.Samples))
	}

	out := buffer.New(length)

	for _, tr := range tracks {
		if tr.Volume == 0 || len(tr.Samples) == 0 {
			continue
		}

		scratch := m.pool.Scaled(tr.Samples, tr.Volume)
		out.AccumulateScaled(scratch.Samples(), 1)
		m.pool.Put(scratch)
	}

	if len(m.taps) > 0 {
		echo, err := effects.NewEcho(m.sampleRate, m.taps...)
		if err != nil {
			return nil, err
		}

		echo.ProcessInPlace(out.Samples())
	}

	m.smear.ProcessInPlace(out.Samples())

	return out.Samples(), nil
}

// Normalize divides x by its peak. A silent signal is returned unchanged.
func Normalize(x []float64) []float64 {
	out := make([]float64, len(x))

	peak := signal.Peak(x)
	if peak == 0 {
		copy(out, x)
		return out
	}

	for i, v := range x {
		out[i] = v / peak
	}

	return out
}

// Mix sums, normalizes and quantizes tracks to 16-bit PCM in
// [-32767, 32767]. No tracks, or only empty ones, yield an empty result.
func (m *Mixer) Mix(tracks []Track) ([]int16, error) {
	sum, err := m.Sum(tracks)
	if err != nil {
		return nil, err
	}

	return m.quant.Int16(Normalize(sum))
}

// Quantizer exposes the configured PCM quantizer.
func (m *Mixer) Quantizer() *dither.Quantizer {
	return m.quant
}
