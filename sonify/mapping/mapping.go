// Package mapping turns tokens into note events: a frequency from the
// token's characters and a duration from its length or makeup.
package mapping

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cwbudde/algo-sonify/dsp/interp"
	"github.com/cwbudde/algo-sonify/sonify/token"
)

// ErrInvalidDuration is returned when a token maps to a non-positive or
// non-finite duration.
var ErrInvalidDuration = errors.New("mapping: note duration must be > 0")

const vowelBonus = 50

// Draw tables as multiples of the base duration, with their weights.
var (
	rhythmValues  = []float64{0.25, 0.5, 1, 2}
	rhythmWeights = []int{10, 30, 50, 10}
	choiceValues  = []float64{0.5, 1, 1.5, 2}
	choiceWeights = []int{1, 1, 1, 1}
)

// NoteEvent is one rendered note. Frequency 0 is silence.
type NoteEvent struct {
	Frequency float64
	Duration  float64
	Silent    bool
}

// Silence describes which tokens rest instead of sounding.
type Silence struct {
	// Chars is the silence character set.
	Chars string
	// Duration overrides the computed duration of silent tokens when > 0.
	Duration float64
	// Durations gives rest lengths per character. Its keys are silence
	// characters as well.
	Durations map[rune]float64
}

func (s Silence) has(r rune) bool {
	if _, ok := s.Durations[r]; ok {
		return true
	}

	return strings.ContainsRune(s.Chars, r)
}

// Contains reports whether every character of text is a silence character.
func (s Silence) Contains(text string) bool {
	if text == "" || (s.Chars == "" && len(s.Durations) == 0) {
		return false
	}

	for _, r := range text {
		if !s.has(r) {
			return false
		}
	}

	return true
}

// Rest returns the length of a silent token. When every character has an
// entry in Durations the entries are summed; otherwise Duration is used if
// set, and computed if not.
func (s Silence) Rest(text string, computed float64) float64 {
	if len(s.Durations) > 0 && text != "" {
		total := 0.0
		all := true

		for _, r := range text {
			d, ok := s.Durations[r]
			if !ok {
				all = false
				break
			}

			total += d
		}

		if all {
			return total
		}
	}

	if s.Duration > 0 {
		return s.Duration
	}

	return computed
}

func (s Silence) validate() error {
	if s.Duration < 0 || math.IsNaN(s.Duration) {
		return fmt.Errorf("%w: silence duration %f", ErrInvalidDuration, s.Duration)
	}

	for r, d := range s.Durations {
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: silence duration for %q: %f", ErrInvalidDuration, r, d)
		}
	}

	return nil
}

// Config parameterizes a Mapper.
type Config struct {
	MinFreq        float64
	MaxFreq        float64
	FreqMethod     FreqMethod
	BaseDuration   float64
	DurationMethod DurationMethod
	Silence        Silence
}

// Validate checks the ranges and enum values.
func (c Config) Validate() error {
	if !c.FreqMethod.Valid() {
		return fmt.Errorf("mapping: invalid frequency method %v", c.FreqMethod)
	}

	if !c.DurationMethod.Valid() {
		return fmt.Errorf("mapping: invalid duration method %v", c.DurationMethod)
	}

	if c.MinFreq < 0 || math.IsNaN(c.MinFreq) || math.IsInf(c.MinFreq, 0) {
		return fmt.Errorf("mapping: min frequency must be >= 0: %f", c.MinFreq)
	}

	if c.MaxFreq < c.MinFreq || math.IsNaN(c.MaxFreq) || math.IsInf(c.MaxFreq, 0) {
		return fmt.Errorf("mapping: max frequency must be >= min frequency: %f < %f", c.MaxFreq, c.MinFreq)
	}

	if !(c.BaseDuration > 0) || math.IsInf(c.BaseDuration, 0) {
		return fmt.Errorf("%w: base duration %f", ErrInvalidDuration, c.BaseDuration)
	}

	return c.Silence.validate()
}

// Mapper maps tokens to note events.
type Mapper struct {
	cfg Config
	rng *rand.Rand
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithRand sets the source for rhythm and choice draws.
func WithRand(rng *rand.Rand) Option {
	return func(m *Mapper) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithSeed seeds a PCG source for rhythm and choice draws.
func WithSeed(seed uint64) Option {
	return func(m *Mapper) {
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// New validates cfg and returns a Mapper. Without WithRand or WithSeed the
// draw source is seeded with 0.
func New(cfg Config, opts ...Option) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mapper{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(0, 0))
	}

	return m, nil
}

// Config returns the mapper configuration.
func (m *Mapper) Config() Config {
	return m.cfg
}

// Map returns one event per token, in order.
func (m *Mapper) Map(tokens []token.Token) ([]NoteEvent, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	ranks := rankTokens(tokens)

	var drawn map[string]float64

	switch m.cfg.DurationMethod {
	case DurationRhythm:
		drawn = m.draw(tokens, rhythmValues, rhythmWeights)
	case DurationChoice:
		drawn = m.draw(tokens, choiceValues, choiceWeights)
	}

	events := make([]NoteEvent, len(tokens))

	for i, tok := range tokens {
		ev := NoteEvent{Duration: m.duration(tok.Text, drawn)}
		if m.cfg.Silence.Contains(tok.Text) {
			ev.Silent = true
			ev.Duration = m.cfg.Silence.Rest(tok.Text, ev.Duration)
		} else {
			ev.Frequency = m.frequency(tok.Text, ranks[tok.Text], len(ranks))
		}

		if !(ev.Duration > 0) || math.IsInf(ev.Duration, 0) {
			return nil, fmt.Errorf("%w: token %d %q: %f", ErrInvalidDuration, i, tok.Text, ev.Duration)
		}

		events[i] = ev
	}

	return events, nil
}

func (m *Mapper) frequency(text string, rank, distinct int) float64 {
	lo, hi := m.cfg.MinFreq, m.cfg.MaxFreq

	switch m.cfg.FreqMethod {
	case FreqASCIISum:
		return interp.Linear(float64(codePointSum(text)), 0, charSpan(text), lo, hi)
	case FreqVowelWeight:
		v := codePointSum(text) + vowelBonus*vowels(text)
		return interp.Linear(float64(v), 0, charSpan(text), lo, hi)
	case FreqRank:
		return interp.Linear(float64(rank), 0, float64(distinct), lo, hi)
	case FreqNote:
		return Notes[rank%len(Notes)].Frequency
	case FreqLead:
		return LeadNotes[rank%len(LeadNotes)].Frequency
	default:
		return interp.Linear(float64(Hash(text)), 0, hashBuckets, lo, hi)
	}
}

func (m *Mapper) duration(text string, drawn map[string]float64) float64 {
	base := m.cfg.BaseDuration
	n := utf8.RuneCountInString(text)

	switch m.cfg.DurationMethod {
	case DurationLength:
		return base * float64(n) / 3
	case DurationComplexity:
		if n == 0 {
			return 0
		}

		return base * (0.5 + float64(token.Distinct(text))/float64(n))
	case DurationRhythm, DurationChoice:
		return base * drawn[text]
	default:
		return base
	}
}

// draw picks one weighted value per distinct token, in sorted order so a
// given seed always assigns the same values.
func (m *Mapper) draw(tokens []token.Token, values []float64, weights []int) map[string]float64 {
	total := 0
	for _, w := range weights {
		total += w
	}

	out := make(map[string]float64)

	for _, text := range sortedDistinct(tokens) {
		pick := m.rng.IntN(total)
		for i, w := range weights {
			if pick < w {
				out[text] = values[i]
				break
			}

			pick -= w
		}
	}

	return out
}

func sortedDistinct(tokens []token.Token) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if _, ok := seen[tok.Text]; ok {
			continue
		}

		seen[tok.Text] = struct{}{}
		out = append(out, tok.Text)
	}

	slices.Sort(out)

	return out
}

func rankTokens(tokens []token.Token) map[string]int {
	distinct := sortedDistinct(tokens)

	ranks := make(map[string]int, len(distinct))
	for i, text := range distinct {
		ranks[text] = i
	}

	return ranks
}

func codePointSum(text string) int {
	sum := 0
	for _, r := range text {
		sum += int(r)
	}

	return sum
}

func charSpan(text string) float64 {
	return 255 * float64(utf8.RuneCountInString(text))
}

func vowels(text string) int {
	n := 0

	for _, r := range strings.ToLower(text) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			n++
		}
	}

	return n
}
