package preset

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sonify/dsp/core"
	"github.com/cwbudde/algo-sonify/dsp/effects"
	"github.com/cwbudde/algo-sonify/dsp/signal"
	"github.com/cwbudde/algo-sonify/sonify/mapping"
	"github.com/cwbudde/algo-sonify/sonify/token"
	"github.com/cwbudde/algo-sonify/sonify/voice"
)

const defaultTokenSize = 3

type presetFile struct {
	Presets map[string]presetEntry `yaml:"presets"`
}

type presetEntry struct {
	Description string        `yaml:"description"`
	Voices      []voiceEntry  `yaml:"voices"`
	Echo        []effects.Tap `yaml:"echo"`
	Smear       effects.Smear `yaml:"smear"`
}

type voiceEntry struct {
	Name           string       `yaml:"name"`
	Chars          string       `yaml:"chars"`
	Classes        []string     `yaml:"classes"`
	Except         string       `yaml:"except"`
	Size           int          `yaml:"size"`
	Pattern        []int        `yaml:"pattern"`
	MinFreq        float64      `yaml:"min_freq"`
	MaxFreq        float64      `yaml:"max_freq"`
	FreqMethod     string       `yaml:"freq_method"`
	BaseDuration   float64      `yaml:"base_duration"`
	DurationMethod string       `yaml:"duration_method"`
	Waveform       string       `yaml:"waveform"`
	Instrument     string       `yaml:"instrument"`
	Volume         *float64     `yaml:"volume"`
	SampleRate     float64      `yaml:"sample_rate"`
	Crossfade      bool         `yaml:"crossfade"`
	Fade           float64      `yaml:"fade"`
	Lowpass        float64      `yaml:"lowpass"`
	Silence        silenceEntry `yaml:"silence"`
}

type silenceEntry struct {
	Chars     string             `yaml:"chars"`
	Duration  float64            `yaml:"duration"`
	Durations map[string]float64 `yaml:"durations"`
}

// Parse decodes and validates a presets YAML document.
func Parse(data []byte) (map[string]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	out := make(map[string]Preset, len(file.Presets))

	for name, entry := range file.Presets {
		p, err := entry.toPreset(name)
		if err != nil {
			return nil, err
		}

		if err := p.Validate(); err != nil {
			return nil, err
		}

		out[name] = p
	}

	return out, nil
}

func (e presetEntry) toPreset(name string) (Preset, error) {
	p := Preset{
		Name:        name,
		Description: e.Description,
		Echo:        slices.Clone(e.Echo),
		Smear:       e.Smear,
		Voices:      make([]VoiceSpec, 0, len(e.Voices)),
	}

	for i, ve := range e.Voices {
		v, err := ve.toVoice()
		if err != nil {
			return Preset{}, fmt.Errorf("%w: %q voice %d: %w", ErrInvalidPreset, name, i, err)
		}

		p.Voices = append(p.Voices, v)
	}

	return p, nil
}

func (e voiceEntry) toVoice() (VoiceSpec, error) {
	v := VoiceSpec{
		Name: e.Name,
		Predicate: voice.Predicate{
			Chars:  e.Chars,
			Except: e.Except,
		},
		Tokens: token.Spec{Size: e.Size, Pattern: slices.Clone(e.Pattern)},
		Mapping: mapping.Config{
			MinFreq:      e.MinFreq,
			MaxFreq:      e.MaxFreq,
			BaseDuration: e.BaseDuration,
			Silence: mapping.Silence{
				Chars:    e.Silence.Chars,
				Duration: e.Silence.Duration,
			},
		},
		Render: voice.RenderConfig{
			SampleRate:  e.SampleRate,
			Crossfade:   e.Crossfade,
			FadeSeconds: e.Fade,
			Lowpass:     e.Lowpass,
		},
		Volume: 1,
	}

	if len(e.Silence.Durations) > 0 {
		v.Mapping.Silence.Durations = make(map[rune]float64, len(e.Silence.Durations))

		for key, d := range e.Silence.Durations {
			if utf8.RuneCountInString(key) != 1 {
				return VoiceSpec{}, fmt.Errorf("silence duration key %q must be one character", key)
			}

			r, _ := utf8.DecodeRuneInString(key)
			v.Mapping.Silence.Durations[r] = d
		}
	}

	if v.Tokens.Size == 0 && len(v.Tokens.Pattern) == 0 {
		v.Tokens.Size = defaultTokenSize
	}

	if v.Render.SampleRate == 0 {
		v.Render.SampleRate = core.DefaultSampleRate
	}

	if e.Volume != nil {
		v.Volume = *e.Volume
	}

	for _, name := range e.Classes {
		c, err := voice.ParseCharClass(name)
		if err != nil {
			return VoiceSpec{}, err
		}

		v.Predicate.Classes = append(v.Predicate.Classes, c)
	}

	var err error

	if v.Mapping.FreqMethod, err = parseOr(e.FreqMethod, mapping.FreqHash, mapping.ParseFreqMethod); err != nil {
		return VoiceSpec{}, err
	}

	if v.Mapping.DurationMethod, err = parseOr(e.DurationMethod, mapping.DurationFixed, mapping.ParseDurationMethod); err != nil {
		return VoiceSpec{}, err
	}

	if v.Render.Waveform, err = parseOr(e.Waveform, signal.WaveformSine, signal.ParseWaveform); err != nil {
		return VoiceSpec{}, err
	}

	if v.Render.Instrument, err = voice.ParseInstrument(e.Instrument); err != nil {
		return VoiceSpec{}, err
	}

	return v, nil
}

func parseOr[T any](s string, def T, parse func(string) (T, error)) (T, error) {
	if s == "" {
		return def, nil
	}

	return parse(s)
}
