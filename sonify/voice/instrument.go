package voice

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-sonify/dsp/envelope"
	"github.com/cwbudde/algo-sonify/dsp/signal"
)

// Instrument replaces the plain oscillator with an additive timbre and its
// own envelope.
type Instrument int

const (
	InstrumentNone Instrument = iota
	InstrumentPiano
	InstrumentStrings
	InstrumentOrgan
	InstrumentPluck
	InstrumentPianoResonance
	InstrumentDidgeridoo
	InstrumentSoftPiano
	InstrumentPulsePiano
	InstrumentLead
)

var instrumentNames = [...]string{
	InstrumentNone:           "none",
	InstrumentPiano:          "piano",
	InstrumentStrings:        "strings",
	InstrumentOrgan:          "organ",
	InstrumentPluck:          "pluck",
	InstrumentPianoResonance: "piano_resonance",
	InstrumentDidgeridoo:     "didgeridoo",
	InstrumentSoftPiano:      "soft_piano",
	InstrumentPulsePiano:     "pulse_piano",
	InstrumentLead:           "lead",
}

const (
	// didgeridoo lip vibration
	didgeridooModRate  = 5.0
	didgeridooModDepth = 0.1

	leadVibratoRate  = 5.0
	leadVibratoDepth = 3.0

	// output level of the bright pianos
	pianoGain = 0.7
)

var (
	harmonicPartials = []signal.Partial{
		{Ratio: 2, Amp: 0.5},
		{Ratio: 3, Amp: 0.25},
		{Ratio: 4, Amp: 0.125},
	}
	resonancePartials = []signal.Partial{
		{Ratio: 2, Amp: 0.1},
		{Ratio: 0.5, Amp: 0.1},
		{Ratio: 1.5, Amp: 0.05},
		{Ratio: 1.25, Amp: 0.05},
	}
	brightPartials = []signal.Partial{
		{Ratio: 2, Amp: 0.15},
		{Ratio: 0.5, Amp: 0.1},
		{Ratio: 1.5, Amp: 0.05},
		{Ratio: 1.25, Amp: 0.05},
	}
	didgeridooPartials = []signal.Partial{
		{Ratio: 2, Amp: 0.5},
		{Ratio: 3, Amp: 0.25},
	}
)

// Valid reports whether i is a known instrument.
func (i Instrument) Valid() bool {
	return i >= InstrumentNone && i <= InstrumentLead
}

func (i Instrument) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Instrument(%d)", int(i))
	}

	return instrumentNames[i]
}

// ParseInstrument resolves an instrument name (case-insensitive). The empty
// string is InstrumentNone.
func ParseInstrument(name string) (Instrument, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return InstrumentNone, nil
	}

	for i, n := range instrumentNames {
		if n == name {
			return Instrument(i), nil
		}
	}

	return 0, fmt.Errorf("voice: unknown instrument %q", name)
}

// Partials returns the instrument's additive partial table.
func (i Instrument) Partials() []signal.Partial {
	switch i {
	case InstrumentPiano, InstrumentStrings, InstrumentOrgan, InstrumentPluck:
		return harmonicPartials
	case InstrumentPianoResonance:
		return resonancePartials
	case InstrumentSoftPiano, InstrumentPulsePiano:
		return brightPartials
	case InstrumentDidgeridoo:
		return didgeridooPartials
	default:
		return nil
	}
}

func (i Instrument) envelopePreset() (envelope.Preset, bool) {
	switch i {
	case InstrumentPiano:
		return envelope.PresetPiano, true
	case InstrumentStrings:
		return envelope.PresetStrings, true
	case InstrumentOrgan:
		return envelope.PresetOrgan, true
	case InstrumentPluck:
		return envelope.PresetPluck, true
	case InstrumentPianoResonance:
		return envelope.PresetPianoResonance, true
	case InstrumentSoftPiano:
		return envelope.PresetSoftPiano, true
	case InstrumentPulsePiano:
		return envelope.PresetPulsePiano, true
	default:
		return 0, false
	}
}

// note renders one instrument note of n samples.
func (i Instrument) note(gen *signal.Generator, freq float64, n int) ([]float64, error) {
	switch i {
	case InstrumentDidgeridoo:
		return didgeridooNote(gen, freq, n)
	case InstrumentLead:
		return leadNote(gen, freq, n)
	}

	wave, err := gen.Partials(freq, i.Partials(), n)
	if err != nil {
		return nil, err
	}

	preset, ok := i.envelopePreset()
	if !ok {
		return nil, fmt.Errorf("voice: instrument %v has no envelope", i)
	}

	params, err := envelope.PresetParams(preset)
	if err != nil {
		return nil, err
	}

	env, err := params.Generate(n, gen.Config().SampleRate)
	if err != nil {
		return nil, err
	}

	if err := envelope.Apply(wave, env); err != nil {
		return nil, err
	}

	if i == InstrumentSoftPiano || i == InstrumentPulsePiano {
		for k := range wave {
			wave[k] *= pianoGain
		}
	}

	return wave, nil
}

func didgeridooNote(gen *signal.Generator, freq float64, n int) ([]float64, error) {
	wave, err := gen.Partials(freq, didgeridooPartials, n)
	if err != nil {
		return nil, err
	}

	if err := gen.Modulate(wave, didgeridooModRate, didgeridooModDepth); err != nil {
		return nil, err
	}

	if wave, err = signal.Normalize(wave, 1); err != nil {
		return nil, err
	}

	env, err := envelope.ExpDecay(n)
	if err != nil {
		return nil, err
	}

	if err := envelope.Apply(wave, env); err != nil {
		return nil, err
	}

	return wave, nil
}

func leadNote(gen *signal.Generator, freq float64, n int) ([]float64, error) {
	wave, err := gen.Vibrato(freq, leadVibratoRate, leadVibratoDepth, n)
	if err != nil {
		return nil, err
	}

	env, err := envelope.Arch(n)
	if err != nil {
		return nil, err
	}

	if err := envelope.Apply(wave, env); err != nil {
		return nil, err
	}

	return wave, nil
}
