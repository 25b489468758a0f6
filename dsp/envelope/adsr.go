package envelope

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-sonify/dsp/interp"
)

const (
	attackRate  = 5.0
	decayRate   = 3.0
	releaseRate = 5.0
)

// Curve selects the segment shape of an ADSR envelope.
type Curve int

const (
	// CurveExponential uses 1-exp(-5x) for attack, exp(-3x) for decay and
	// exp(-5x) for release.
	CurveExponential Curve = iota
	// CurveLinear uses straight ramps between the phase levels.
	CurveLinear
)

// Preset names an entry of the instrument envelope table.
type Preset int

const (
	PresetPiano Preset = iota
	PresetStrings
	PresetOrgan
	PresetPluck
	PresetPianoResonance
	// PresetSoftPiano ramps in over 20 ms and out over 100 ms.
	PresetSoftPiano
	// PresetPulsePiano spends 20% of the note rising and 30% falling.
	PresetPulsePiano
)

var presetNames = [...]string{
	PresetPiano:          "piano",
	PresetStrings:        "strings",
	PresetOrgan:          "organ",
	PresetPluck:          "pluck",
	PresetPianoResonance: "piano_resonance",
	PresetSoftPiano:      "soft_piano",
	PresetPulsePiano:     "pulse_piano",
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	return p >= PresetPiano && p <= PresetPulsePiano
}

func (p Preset) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// ParsePreset resolves an envelope preset name (case-insensitive).
func ParsePreset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("envelope: unknown preset %q", name)
}

// ADSRParams describes how a note's samples are split into phases.
//
// In relative mode Share is the fraction of the note given to attack,
// decay and release together, and Attack/Decay/Release split that share.
// Counts are truncated twice, first for the share and then for each phase.
// In absolute mode (Absolute set) Attack/Decay/Release are seconds.
type ADSRParams struct {
	Share        float64
	Attack       float64
	Decay        float64
	Release      float64
	SustainLevel float64
	Absolute     bool
	Curve        Curve
}

var presetTable = [...]ADSRParams{
	PresetPiano:   {Share: 0.2, Attack: 0.1, Decay: 0.3, Release: 0.6, SustainLevel: 0.7},
	PresetStrings: {Share: 0.3, Attack: 0.3, Decay: 0.2, Release: 0.5, SustainLevel: 0.8},
	PresetOrgan:   {Share: 0.3, Attack: 0.3, Decay: 0.2, Release: 0.5, SustainLevel: 0.8},
	PresetPluck:   {Share: 0.4, Attack: 0.1, Decay: 0.6, Release: 0.3, SustainLevel: 0},
	PresetPianoResonance: {
		Attack: 0.005, Decay: 0.05, Release: 0.1,
		SustainLevel: 0.7, Absolute: true, Curve: CurveLinear,
	},
	PresetSoftPiano: {
		Attack: 0.02, Release: 0.1,
		SustainLevel: 1, Absolute: true, Curve: CurveLinear,
	},
	PresetPulsePiano: {
		Share: 1, Attack: 0.2, Release: 0.3,
		SustainLevel: 1, Curve: CurveLinear,
	},
}

// PresetParams returns the table entry for p.
func PresetParams(p Preset) (ADSRParams, error) {
	if !p.Valid() {
		return ADSRParams{}, fmt.Errorf("envelope: invalid preset %v", p)
	}
	return presetTable[p], nil
}

// Phases holds the per-phase sample counts of one note.
type Phases struct {
	Attack  int
	Decay   int
	Sustain int
	Release int
}

// Total returns the sum of all phase counts.
func (p Phases) Total() int {
	return p.Attack + p.Decay + p.Sustain + p.Release
}

// Phases lays out n samples. When attack, decay and release together need
// more than n samples they are scaled down proportionally and sustain takes
// the truncation remainder, so the result always totals n with no negative
// phase.
func (p ADSRParams) Phases(n int, sampleRate float64) Phases {
	var a, d, r int
	if p.Absolute {
		a = int(sampleRate * p.Attack)
		d = int(sampleRate * p.Decay)
		r = int(sampleRate * p.Release)
	} else {
		share := int(float64(n) * p.Share)
		a = int(float64(share) * p.Attack)
		d = int(float64(share) * p.Decay)
		r = int(float64(share) * p.Release)
	}
	a, d, r = max(a, 0), max(d, 0), max(r, 0)

	if used := a + d + r; used > n {
		a = a * n / used
		d = d * n / used
		r = r * n / used
	}
	return Phases{Attack: a, Decay: d, Sustain: n - a - d - r, Release: r}
}

// Generate returns the envelope for an n-sample note.
func (p ADSRParams) Generate(n int, sampleRate float64) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	if p.SustainLevel < 0 || p.SustainLevel > 1 || math.IsNaN(p.SustainLevel) {
		return nil, fmt.Errorf("envelope: sustain level must be in [0,1]: %f", p.SustainLevel)
	}
	ph := p.Phases(n, sampleRate)
	s := p.SustainLevel

	env := make([]float64, 0, n)
	switch p.Curve {
	case CurveLinear:
		env = append(env, interp.Linspace(0, 1, ph.Attack)...)
		env = append(env, interp.Linspace(1, s, ph.Decay)...)
		env = appendConst(env, s, ph.Sustain)
		env = append(env, interp.Linspace(s, 0, ph.Release)...)
	default:
		for _, x := range interp.Linspace(0, 1, ph.Attack) {
			env = append(env, 1-math.Exp(-attackRate*x))
		}
		for _, x := range interp.Linspace(0, 1, ph.Decay) {
			env = append(env, math.Exp(-decayRate*x)*(1-s)+s)
		}
		env = appendConst(env, s, ph.Sustain)
		for _, x := range interp.Linspace(0, 1, ph.Release) {
			env = append(env, math.Exp(-releaseRate*x)*s)
		}
	}
	return env, nil
}

func appendConst(dst []float64, v float64, n int) []float64 {
	for range n {
		dst = append(dst, v)
	}
	return dst
}
