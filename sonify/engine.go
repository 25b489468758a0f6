package sonify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sonify/dsp/buffer"
	"github.com/cwbudde/algo-sonify/dsp/dither"
	"github.com/cwbudde/algo-sonify/dsp/level"
	"github.com/cwbudde/algo-sonify/dsp/signal"
	"github.com/cwbudde/algo-sonify/dsp/spectrum"
	"github.com/cwbudde/algo-sonify/sonify/mapping"
	"github.com/cwbudde/algo-sonify/sonify/mix"
	"github.com/cwbudde/algo-sonify/sonify/preset"
	"github.com/cwbudde/algo-sonify/sonify/token"
	"github.com/cwbudde/algo-sonify/sonify/voice"
)

// ErrNoRegistry is returned by New when no preset registry is given.
var ErrNoRegistry = errors.New("sonify: nil preset registry")

// Engine renders text with the presets of a registry. It holds no
// per-render state and is safe for concurrent use.
type Engine struct {
	reg         *preset.Registry
	logger      *slog.Logger
	seed        uint64
	concurrency int
	ditherOpts  []dither.Option
	analyze     bool
	pool        *buffer.Pool
}

// Result is a rendered waveform and its per-voice report.
type Result struct {
	Preset     string
	SampleRate float64
	PCM        []int16
	Voices     []VoiceReport

	// Level is measured on the quantized output.
	Level level.Level
}

// Duration returns the length of the waveform.
func (r *Result) Duration() time.Duration {
	if r.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(r.PCM)) / r.SampleRate * float64(time.Second))
}

// VoiceReport summarizes one rendered voice.
type VoiceReport struct {
	Name    string
	Chars   int
	Tokens  int
	Notes   int
	Silent  int
	Samples int

	// Dominant is the strongest frequency of the voice in Hz, or 0 when
	// analysis is off or the voice is silent.
	Dominant float64

	// Level is measured before volume scaling and normalization.
	Level level.Level
}

// New returns an engine over reg.
func New(reg *preset.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}

	e := &Engine{
		reg:    reg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		pool:   buffer.NewPool(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e, nil
}

// Registry returns the engine's preset registry.
func (e *Engine) Registry() *preset.Registry {
	return e.reg
}

// Render renders text with the named preset. An unknown name falls back to
// the default preset with a warning.
func (e *Engine) Render(ctx context.Context, text, presetName string) (*Result, error) {
	p, ok := e.reg.Resolve(presetName)
	if !ok {
		e.logger.Warn("unknown preset, using default", "preset", presetName, "default", p.Name)
	}

	if len(p.Voices) == 0 {
		return nil, fmt.Errorf("%w: %q", preset.ErrUnknownPreset, presetName)
	}

	return e.RenderPreset(ctx, text, p)
}

// RenderPreset renders text with p, which need not be registered.
func (e *Engine) RenderPreset(ctx context.Context, text string, p preset.Preset) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	preds := make([]voice.Predicate, len(p.Voices))
	for i, v := range p.Voices {
		preds[i] = v.Predicate
	}

	texts := voice.Split(text, preds)
	tracks := make([]mix.Track, len(p.Voices))
	reports := make([]VoiceReport, len(p.Voices))

	g, gctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}

	for i, v := range p.Voices {
		g.Go(func() error {
			samples, rep, err := e.renderVoice(gctx, texts[i], v, e.seed+uint64(i))
			if err != nil {
				return fmt.Errorf("voice %d (%s): %w", i, v.Name, err)
			}

			tracks[i] = mix.Track{Samples: samples, Volume: v.Volume}
			reports[i] = rep

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sr := p.SampleRate()

	mixer, err := mix.New(sr,
		mix.WithEcho(p.Echo...),
		mix.WithSmear(p.Smear),
		mix.WithDither(append([]dither.Option{dither.WithSeed(e.seed)}, e.ditherOpts...)...),
		mix.WithPool(e.pool),
	)
	if err != nil {
		return nil, err
	}

	pcm, err := mixer.Mix(tracks)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Preset:     p.Name,
		SampleRate: sr,
		PCM:        pcm,
		Voices:     reports,
		Level:      level.MeasurePCM(pcm),
	}

	for _, rep := range reports {
		e.logger.Debug("voice rendered",
			"preset", p.Name,
			"voice", rep.Name,
			"chars", rep.Chars,
			"tokens", rep.Tokens,
			"notes", rep.Notes,
			"silent", rep.Silent,
			"samples", rep.Samples,
			"dominant_hz", rep.Dominant,
			"rms_db", rep.Level.RMSdB(),
		)
	}

	e.logger.Debug("render complete",
		"preset", p.Name,
		"samples", len(pcm),
		"duration", res.Duration(),
		"rms_db", res.Level.RMSdB(),
	)

	return res, nil
}

func (e *Engine) renderVoice(ctx context.Context, text string, v preset.VoiceSpec, seed uint64) ([]float64, VoiceReport, error) {
	rep := VoiceReport{Name: v.Name, Chars: len([]rune(text))}

	tokens, err := token.Split(text, v.Tokens)
	if err != nil {
		return nil, rep, err
	}

	rep.Tokens = len(tokens)

	mapper, err := mapping.New(v.Mapping, mapping.WithSeed(seed))
	if err != nil {
		return nil, rep, err
	}

	events, err := mapper.Map(tokens)
	if err != nil {
		return nil, rep, err
	}

	rep.Notes = len(events)
	for _, ev := range events {
		if ev.Silent {
			rep.Silent++
		}
	}

	r, err := voice.NewRenderer(v.Render, signal.WithSeed(seed))
	if err != nil {
		return nil, rep, err
	}

	buf, err := r.Render(ctx, events)
	if err != nil {
		return nil, rep, err
	}

	samples := buf.Samples()
	rep.Samples = len(samples)
	rep.Level = level.Measure(samples)

	if e.analyze && len(samples) >= 2 {
		if rep.Dominant, err = spectrum.DominantFrequency(samples, v.Render.SampleRate); err != nil {
			return nil, rep, err
		}
	}

	return samples, rep, nil
}
