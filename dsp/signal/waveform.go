package signal

import (
	"fmt"
	"strings"
)

// Waveform identifies an oscillator shape.
type Waveform int

const (
	WaveformSine Waveform = iota
	WaveformSquare
	WaveformSawtooth
	WaveformTriangle
	WaveformNoise
)

var waveformNames = [...]string{
	WaveformSine:     "sine",
	WaveformSquare:   "square",
	WaveformSawtooth: "sawtooth",
	WaveformTriangle: "triangle",
	WaveformNoise:    "noise",
}

// Valid reports whether w is a known waveform.
func (w Waveform) Valid() bool {
	return w >= WaveformSine && w <= WaveformNoise
}

func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform resolves a waveform name (case-insensitive).
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("signal: unknown waveform %q", name)
}
