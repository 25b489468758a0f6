package mapping

import (
	"fmt"
	"strings"
)

// FreqMethod selects how a token's pitch is derived.
type FreqMethod int

const (
	// FreqHash maps a deterministic hash of the token, mod 1000.
	FreqHash FreqMethod = iota
	// FreqASCIISum maps the code point sum over [0, 255*len].
	FreqASCIISum
	// FreqVowelWeight is FreqASCIISum plus 50 per ASCII vowel.
	FreqVowelWeight
	// FreqRank maps the token's index among the sorted distinct tokens.
	FreqRank
	// FreqNote picks a 12-TET note by the token's sorted distinct index.
	FreqNote
	// FreqLead is FreqNote over the narrower LeadNotes table.
	FreqLead
)

var freqMethodNames = [...]string{
	FreqHash:        "hash",
	FreqASCIISum:    "ascii_sum",
	FreqVowelWeight: "vowel_weight",
	FreqRank:        "rank",
	FreqNote:        "note",
	FreqLead:        "lead",
}

// Valid reports whether m is a known method.
func (m FreqMethod) Valid() bool {
	return m >= FreqHash && m <= FreqLead
}

func (m FreqMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("FreqMethod(%d)", int(m))
	}

	return freqMethodNames[m]
}

// Tabled reports whether m reads its pitch from a fixed note table, in
// which case the frequency range is unused.
func (m FreqMethod) Tabled() bool {
	return m == FreqNote || m == FreqLead
}

// ParseFreqMethod resolves a frequency method name (case-insensitive).
func ParseFreqMethod(name string) (FreqMethod, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range freqMethodNames {
		if n == name {
			return FreqMethod(i), nil
		}
	}

	return 0, fmt.Errorf("mapping: unknown frequency method %q", name)
}

// DurationMethod selects how a token's length in seconds is derived.
type DurationMethod int

const (
	DurationFixed DurationMethod = iota
	DurationLength
	DurationComplexity
	DurationRhythm
	// DurationChoice draws uniformly from half, one, one and a half and two
	// times the base duration, once per distinct token.
	DurationChoice
)

var durationMethodNames = [...]string{
	DurationFixed:      "fixed",
	DurationLength:     "length",
	DurationComplexity: "complexity",
	DurationRhythm:     "rhythm",
	DurationChoice:     "choice",
}

// Valid reports whether m is a known method.
func (m DurationMethod) Valid() bool {
	return m >= DurationFixed && m <= DurationChoice
}

func (m DurationMethod) String() string {
	if !m.Valid() {
		return fmt.Sprintf("DurationMethod(%d)", int(m))
	}

	return durationMethodNames[m]
}

// ParseDurationMethod resolves a duration method name (case-insensitive).
func ParseDurationMethod(name string) (DurationMethod, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range durationMethodNames {
		if n == name {
			return DurationMethod(i), nil
		}
	}

	return 0, fmt.Errorf("mapping: unknown duration method %q", name)
}
