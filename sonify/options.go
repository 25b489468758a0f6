package sonify

import (
	"log/slog"

	"github.com/cwbudde/algo-sonify/dsp/dither"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Render reports are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeed seeds every random source of a render: noise oscillators,
// rhythm durations and dither. Voice i uses seed+i.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithConcurrency limits how many voices render at once. n <= 0 removes
// the limit.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithDither passes quantizer options to the mixer. The dither source is
// seeded from the engine seed unless opts set their own.
func WithDither(opts ...dither.Option) Option {
	return func(e *Engine) {
		e.ditherOpts = append(e.ditherOpts, opts...)
	}
}

// WithAnalysis enables the dominant-frequency estimate in voice reports.
func WithAnalysis(enabled bool) Option {
	return func(e *Engine) {
		e.analyze = enabled
	}
}
