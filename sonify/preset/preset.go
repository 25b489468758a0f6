// Package preset holds the named voice configurations the engine renders
// with, and the immutable registry they are looked up in.
package preset

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cwbudde/algo-sonify/dsp/effects"
	"github.com/cwbudde/algo-sonify/sonify/mapping"
	"github.com/cwbudde/algo-sonify/sonify/token"
	"github.com/cwbudde/algo-sonify/sonify/voice"
)

// DefaultName is the preset used when a requested name is unknown.
const DefaultName = "default"

var (
	// ErrUnknownPreset is returned by Lookup for a name not in the registry.
	ErrUnknownPreset = errors.New("preset: unknown preset")
	// ErrInvalidPreset wraps every preset validation failure.
	ErrInvalidPreset = errors.New("preset: invalid preset")
)

// VoiceSpec is one voice of a preset.
type VoiceSpec struct {
	Name      string
	Predicate voice.Predicate
	Tokens    token.Spec
	Mapping   mapping.Config
	Render    voice.RenderConfig
	Volume    float64
}

// Preset is a named bundle of voices and optional post-mix effects.
type Preset struct {
	Name        string
	Description string
	Voices      []VoiceSpec
	Echo        []effects.Tap
	Smear       effects.Smear
}

// SampleRate returns the shared sample rate of the voices.
func (p Preset) SampleRate() float64 {
	if len(p.Voices) == 0 {
		return 0
	}

	return p.Voices[0].Render.SampleRate
}

// Validate checks every voice and that all voices share one sample rate.
func (p Preset) Validate() error {
	if len(p.Voices) == 0 {
		return fmt.Errorf("%w: %q has no voices", ErrInvalidPreset, p.Name)
	}

	sr := p.SampleRate()

	for i, v := range p.Voices {
		if err := v.validate(sr); err != nil {
			return fmt.Errorf("%w: %q voice %d (%s): %w", ErrInvalidPreset, p.Name, i, v.Name, err)
		}
	}

	if _, err := effects.NewEcho(sr, p.Echo...); err != nil {
		return fmt.Errorf("%w: %q echo: %w", ErrInvalidPreset, p.Name, err)
	}

	if err := p.Smear.Validate(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPreset, p.Name, err)
	}

	return nil
}

func (v VoiceSpec) validate(sampleRate float64) error {
	if err := v.Tokens.Validate(); err != nil {
		return err
	}

	if err := v.Predicate.Validate(); err != nil {
		return err
	}

	if err := v.Mapping.Validate(); err != nil {
		return err
	}

	if !v.Mapping.FreqMethod.Tabled() && !(v.Mapping.MaxFreq > 0) {
		return fmt.Errorf("max frequency must be > 0 for method %v", v.Mapping.FreqMethod)
	}

	if err := v.Render.Validate(); err != nil {
		return err
	}

	if v.Render.SampleRate != sampleRate {
		return fmt.Errorf("sample rate %g differs from preset sample rate %g", v.Render.SampleRate, sampleRate)
	}

	if v.Volume < 0 {
		return fmt.Errorf("volume must be >= 0: %f", v.Volume)
	}

	return nil
}

func (p Preset) clone() Preset {
	out := p
	out.Echo = slices.Clone(p.Echo)
	out.Voices = make([]VoiceSpec, len(p.Voices))

	for i, v := range p.Voices {
		v.Predicate.Classes = slices.Clone(v.Predicate.Classes)
		v.Tokens.Pattern = slices.Clone(v.Tokens.Pattern)
		v.Mapping.Silence.Durations = maps.Clone(v.Mapping.Silence.Durations)
		out.Voices[i] = v
	}

	return out
}
