package core

import "math"

// DefaultSampleRate is the sample rate used when none is configured.
const DefaultSampleRate = 44100

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the offline rendering defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// SamplesFor returns round(sampleRate * seconds).
// Non-finite inputs yield 0.
func SamplesFor(seconds, sampleRate float64) int {
	n := math.Round(seconds * sampleRate)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}
