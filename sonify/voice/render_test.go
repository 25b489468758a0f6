package voice

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-sonify/dsp/signal"
	"github.com/cwbudde/algo-sonify/dsp/spectrum"
	"github.com/cwbudde/algo-sonify/internal/testutil"
	"github.com/cwbudde/algo-sonify/sonify/mapping"
)

const sr = 44100.0

func mustRenderer(t *testing.T, cfg RenderConfig, opts ...signal.Option) *Renderer {
	t.Helper()

	if cfg.SampleRate == 0 {
		cfg.SampleRate = sr
	}

	r, err := NewRenderer(cfg, opts...)
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func TestRenderLength(t *testing.T) {
	r := mustRenderer(t, RenderConfig{})

	events := []mapping.NoteEvent{
		{Frequency: 100, Duration: 0.5},
		{Frequency: 200, Duration: 0.25},
		{Duration: 0.1, Silent: true},
	}

	buf, err := r.Render(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}

	if want := 22050 + 11025 + 4410; buf.Len() != want {
		t.Fatalf("Len = %d, want %d", buf.Len(), want)
	}

	testutil.RequireFinite(t, buf.Samples())
}

func TestRenderCrossfadeLength(t *testing.T) {
	r := mustRenderer(t, RenderConfig{Crossfade: true})

	events := []mapping.NoteEvent{
		{Frequency: 100, Duration: 0.5},
		{Frequency: 200, Duration: 0.5},
		{Frequency: 300, Duration: 0.01}, // shorter than the overlap
		{Frequency: 400, Duration: 0.5},
	}

	buf, err := r.Render(context.Background(), events)
	if err != nil {
		t.Fatal(err)
	}

	// Only the first boundary overlaps; the short note forces plain
	// concatenation on both of its sides.
	k := 882
	if want := 22050*3 + 441 - k; buf.Len() != want {
		t.Fatalf("Len = %d, want %d", buf.Len(), want)
	}
}

func TestRenderSilenceIsZero(t *testing.T) {
	r := mustRenderer(t, RenderConfig{})

	buf, err := r.Render(context.Background(), []mapping.NoteEvent{{Duration: 0.05, Silent: true}})
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range buf.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestRenderInvalidDuration(t *testing.T) {
	r := mustRenderer(t, RenderConfig{})

	_, err := r.Render(context.Background(), []mapping.NoteEvent{
		{Frequency: 100, Duration: 0.2},
		{Frequency: 100, Duration: 1e-6},
	})
	if !errors.Is(err, mapping.ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	r := mustRenderer(t, RenderConfig{})

	buf, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if buf.Len() != 0 {
		t.Fatalf("Len = %d, want 0", buf.Len())
	}
}

func TestRenderCancelled(t *testing.T) {
	r := mustRenderer(t, RenderConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, []mapping.NoteEvent{{Frequency: 100, Duration: 0.1}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNotePitch(t *testing.T) {
	candidates := []float64{110, 220, 261.63, 440}

	for _, wf := range []signal.Waveform{signal.WaveformSine, signal.WaveformSquare, signal.WaveformTriangle, signal.WaveformSawtooth} {
		for _, inst := range []Instrument{InstrumentNone, InstrumentPiano, InstrumentPianoResonance, InstrumentDidgeridoo, InstrumentSoftPiano, InstrumentPulsePiano, InstrumentLead} {
			r := mustRenderer(t, RenderConfig{Waveform: wf, Instrument: inst})

			note, err := r.Note(mapping.NoteEvent{Frequency: 220, Duration: 0.5})
			if err != nil {
				t.Fatal(err)
			}

			idx, err := spectrum.Strongest(note, candidates, sr)
			if err != nil {
				t.Fatal(err)
			}

			if candidates[idx] != 220 {
				t.Errorf("%v/%v: strongest %v Hz, want 220", wf, inst, candidates[idx])
			}
		}
	}
}

func TestNoteFadeEdges(t *testing.T) {
	r := mustRenderer(t, RenderConfig{})

	note, err := r.Note(mapping.NoteEvent{Frequency: 150, Duration: 0.3})
	if err != nil {
		t.Fatal(err)
	}

	if note[0] != 0 || note[len(note)-1] != 0 {
		t.Fatalf("edges not zero: %v %v", note[0], note[len(note)-1])
	}
}

func TestIdenticalEventsIdenticalNotes(t *testing.T) {
	r := mustRenderer(t, RenderConfig{Waveform: signal.WaveformTriangle})

	ev := mapping.NoteEvent{Frequency: 180, Duration: 0.2}

	a, err := r.Note(ev)
	if err != nil {
		t.Fatal(err)
	}

	b, err := r.Note(ev)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestNoiseSeeded(t *testing.T) {
	cfg := RenderConfig{Waveform: signal.WaveformNoise}
	ev := mapping.NoteEvent{Frequency: 100, Duration: 0.05}

	a, err := mustRenderer(t, cfg, signal.WithSeed(5)).Note(ev)
	if err != nil {
		t.Fatal(err)
	}

	b, err := mustRenderer(t, cfg, signal.WithSeed(5)).Note(ev)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestDidgeridooPeak(t *testing.T) {
	r := mustRenderer(t, RenderConfig{Instrument: InstrumentDidgeridoo})

	note, err := r.Note(mapping.NoteEvent{Frequency: 80, Duration: 0.3})
	if err != nil {
		t.Fatal(err)
	}

	if p := signal.Peak(note); p > 1+1e-12 || p < 0.5 {
		t.Fatalf("peak = %v, want within (0.5, 1]", p)
	}
}

func TestInstrumentEnvelopeShapesNote(t *testing.T) {
	r := mustRenderer(t, RenderConfig{Instrument: InstrumentPluck})

	note, err := r.Note(mapping.NoteEvent{Frequency: 200, Duration: 0.25})
	if err != nil {
		t.Fatal(err)
	}

	// Pluck sustains at 0, so the middle of the note is silent.
	mid := testutil.Segment(note, len(note)/2, 100)
	if p := signal.Peak(mid); p > 1e-12 {
		t.Fatalf("pluck sustain peak = %v, want 0", p)
	}

	if math.IsNaN(signal.Peak(note)) {
		t.Fatal("NaN in note")
	}
}

func TestBrightPianoEnvelopes(t *testing.T) {
	tests := []struct {
		inst    Instrument
		dur     float64
		rampIn  int
		rampOut int
	}{
		// 20 ms in, 100 ms out
		{InstrumentSoftPiano, 0.25, 882, 4410},
		// 20% in, 30% out
		{InstrumentPulsePiano, 0.5, 4410, 6615},
	}
	for _, tt := range tests {
		t.Run(tt.inst.String(), func(t *testing.T) {
			note, err := mustRenderer(t, RenderConfig{Instrument: tt.inst}).Note(mapping.NoteEvent{Frequency: 220, Duration: tt.dur})
			if err != nil {
				t.Fatal(err)
			}

			if note[0] != 0 || note[len(note)-1] != 0 {
				t.Fatalf("edges %v %v, want 0", note[0], note[len(note)-1])
			}

			head := signal.Peak(note[:tt.rampIn/4])
			body := signal.Peak(note[tt.rampIn : len(note)-tt.rampOut])

			if !(head < body/2) {
				t.Fatalf("attack peak %v not below half the sustain peak %v", head, body)
			}

			// unit sine plus 0.35 of partials, scaled by 0.7
			if body > 0.7*1.35+1e-9 || body < 0.5 {
				t.Fatalf("sustain peak %v outside [0.5, 0.945]", body)
			}
		})
	}
}

func TestLeadNoteSwells(t *testing.T) {
	note, err := mustRenderer(t, RenderConfig{Instrument: InstrumentLead}).Note(mapping.NoteEvent{Frequency: 330, Duration: 0.3})
	if err != nil {
		t.Fatal(err)
	}

	n := len(note)
	if note[0] != 0 || math.Abs(note[n-1]) > 1e-12 {
		t.Fatalf("edges %v %v, want 0", note[0], note[n-1])
	}

	mid := signal.Peak(testutil.Segment(note, n/2-200, 400))
	if mid < 0.24 || mid > 0.25+1e-12 {
		t.Fatalf("mid-note peak %v, want ~0.25", mid)
	}
}

func TestRenderConfigValidate(t *testing.T) {
	tests := []RenderConfig{
		{SampleRate: 0},
		{SampleRate: sr, Waveform: signal.Waveform(42)},
		{SampleRate: sr, Instrument: Instrument(42)},
		{SampleRate: sr, FadeSeconds: -1},
		{SampleRate: sr, Lowpass: -5},
		{SampleRate: sr, Lowpass: sr / 2},
	}
	for i, cfg := range tests {
		if _, err := NewRenderer(cfg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestParseInstrument(t *testing.T) {
	for i := InstrumentNone; i <= InstrumentLead; i++ {
		got, err := ParseInstrument(i.String())
		if err != nil || got != i {
			t.Errorf("ParseInstrument(%q) = %v, %v", i.String(), got, err)
		}
	}

	if got, _ := ParseInstrument(""); got != InstrumentNone {
		t.Errorf("empty instrument = %v", got)
	}

	if _, err := ParseInstrument("theremin"); err == nil {
		t.Error("expected error")
	}
}

func TestRenderLowpassTamesHarmonics(t *testing.T) {
	events := []mapping.NoteEvent{{Frequency: 441, Duration: 0.5}}

	harmonic := func(cfg RenderConfig) float64 {
		t.Helper()

		buf, err := mustRenderer(t, cfg).Render(context.Background(), events)
		if err != nil {
			t.Fatal(err)
		}

		power, err := spectrum.AnalyzeBlock(buf.Samples(), 3*441, sr)
		if err != nil {
			t.Fatal(err)
		}

		return power
	}

	dry := harmonic(RenderConfig{Waveform: signal.WaveformSquare})
	wet := harmonic(RenderConfig{Waveform: signal.WaveformSquare, Lowpass: 500})

	if !(wet < dry/3) {
		t.Fatalf("third harmonic %.3g after lowpass, %.3g before", wet, dry)
	}
}
