package voice

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-sonify/dsp/buffer"
	"github.com/cwbudde/algo-sonify/dsp/core"
	"github.com/cwbudde/algo-sonify/dsp/envelope"
	"github.com/cwbudde/algo-sonify/dsp/filter"
	"github.com/cwbudde/algo-sonify/dsp/signal"
	"github.com/cwbudde/algo-sonify/sonify/mapping"
)

const (
	// DefaultFadeSeconds is the fade-in/fade-out ramp of plain oscillator notes.
	DefaultFadeSeconds = 0.1
	// CrossfadeSeconds is the overlap between adjacent notes when
	// crossfading is enabled.
	CrossfadeSeconds = 0.02
)

// RenderConfig describes how one voice turns note events into samples.
type RenderConfig struct {
	SampleRate  float64
	Waveform    signal.Waveform
	Instrument  Instrument
	Crossfade   bool
	FadeSeconds float64
	// Lowpass is the cutoff in Hz of a filter run over the whole voice,
	// or 0 for none.
	Lowpass float64
}

// Validate checks the sample rate and enum values.
func (c RenderConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("voice: sample rate must be > 0: %f", c.SampleRate)
	}

	if !c.Waveform.Valid() {
		return fmt.Errorf("voice: invalid waveform %v", c.Waveform)
	}

	if !c.Instrument.Valid() {
		return fmt.Errorf("voice: invalid instrument %v", c.Instrument)
	}

	if c.FadeSeconds < 0 || math.IsNaN(c.FadeSeconds) {
		return fmt.Errorf("voice: fade must be >= 0: %f", c.FadeSeconds)
	}

	if c.Lowpass != 0 {
		if _, err := filter.Lowpass(c.Lowpass, filter.DefaultQ, c.SampleRate); err != nil {
			return fmt.Errorf("voice: lowpass: %w", err)
		}
	}

	return nil
}

// Renderer synthesizes one voice.
type Renderer struct {
	cfg RenderConfig
	gen *signal.Generator
}

// NewRenderer validates cfg and returns a Renderer. A zero FadeSeconds
// selects DefaultFadeSeconds. opts configure the oscillator source; the
// seed only affects the noise waveform.
func NewRenderer(cfg RenderConfig, opts ...signal.Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.FadeSeconds == 0 {
		cfg.FadeSeconds = DefaultFadeSeconds
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(cfg.SampleRate)},
		opts...,
	)

	return &Renderer{cfg: cfg, gen: gen}, nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() RenderConfig {
	return r.cfg
}

// Render synthesizes events in order into a new buffer. An empty event
// list yields an empty buffer.
func (r *Renderer) Render(ctx context.Context, events []mapping.NoteEvent) (*buffer.Buffer, error) {
	out := buffer.New(0)
	k := core.SamplesFor(CrossfadeSeconds, r.cfg.SampleRate)

	prevLen := 0

	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		note, err := r.Note(ev)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}

		if r.cfg.Crossfade && i > 0 && prevLen >= k && len(note) >= k {
			if err := out.AppendCrossfade(note, k); err != nil {
				return nil, err
			}
		} else {
			out.Append(note)
		}

		prevLen = len(note)
	}

	if r.cfg.Lowpass > 0 {
		c, err := filter.Lowpass(r.cfg.Lowpass, filter.DefaultQ, r.cfg.SampleRate)
		if err != nil {
			return nil, err
		}

		filter.NewSection(c).ProcessBlock(out.Samples())
	}

	return out, nil
}

// Note renders a single event. Silent events yield zeros of the event's
// length.
func (r *Renderer) Note(ev mapping.NoteEvent) ([]float64, error) {
	n := r.gen.Samples(ev.Duration)
	if n <= 0 {
		return nil, fmt.Errorf("%w: %g s is %d samples at %g Hz",
			mapping.ErrInvalidDuration, ev.Duration, n, r.cfg.SampleRate)
	}

	if ev.Silent || ev.Frequency == 0 {
		return r.gen.Silence(n)
	}

	if r.cfg.Instrument != InstrumentNone {
		return r.cfg.Instrument.note(r.gen, ev.Frequency, n)
	}

	wave, err := r.gen.Oscillator(r.cfg.Waveform, ev.Frequency, n)
	if err != nil {
		return nil, err
	}

	fade, err := envelope.Fade(n, core.SamplesFor(r.cfg.FadeSeconds, r.cfg.SampleRate))
	if err != nil {
		return nil, err
	}

	if err := envelope.Apply(wave, fade); err != nil {
		return nil, err
	}

	return wave, nil
}
