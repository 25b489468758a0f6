package mapping

import (
	"math"
	"testing"
)

func TestParseFreqMethod(t *testing.T) {
	for m := FreqHash; m <= FreqLead; m++ {
		got, err := ParseFreqMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseFreqMethod(%q) = %v, %v", m.String(), got, err)
		}
	}

	if got, err := ParseFreqMethod(" Vowel_Weight "); err != nil || got != FreqVowelWeight {
		t.Errorf("case-insensitive parse failed: %v, %v", got, err)
	}

	if _, err := ParseFreqMethod("md5"); err == nil {
		t.Error("expected error for unknown method")
	}

	if s := FreqMethod(9).String(); s != "FreqMethod(9)" {
		t.Errorf("String() = %q", s)
	}
}

func TestParseDurationMethod(t *testing.T) {
	for m := DurationFixed; m <= DurationChoice; m++ {
		got, err := ParseDurationMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseDurationMethod(%q) = %v, %v", m.String(), got, err)
		}
	}

	if _, err := ParseDurationMethod("swing"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestNotes(t *testing.T) {
	if len(Notes) != 36 {
		t.Fatalf("len(Notes) = %d, want 36", len(Notes))
	}

	if n := Notes[0]; n.Name != "C" || n.Octave != 3 || math.Abs(n.Frequency-130.8128) > 1e-3 {
		t.Errorf("first note = %+v", n)
	}

	// A4
	if n := Notes[21]; n.Name != "A" || n.Octave != 4 || math.Abs(n.Frequency-440) > 1e-9 {
		t.Errorf("A4 = %+v", n)
	}

	if n := Notes[35]; n.Name != "B" || n.Octave != 5 || math.Abs(n.Frequency-987.7666) > 1e-3 {
		t.Errorf("last note = %+v", n)
	}
}

func TestLeadNotes(t *testing.T) {
	if len(LeadNotes) != 15 {
		t.Fatalf("len(LeadNotes) = %d, want 15", len(LeadNotes))
	}

	want := []float64{261.63, 277.18, 293.66, 311.13, 329.63, 349.23, 369.99, 392.00,
		415.30, 440.00, 466.16, 493.88, 523.25, 587.33, 659.25}
	for i, n := range LeadNotes {
		if math.Abs(n.Frequency-want[i]) > 0.01 {
			t.Errorf("LeadNotes[%d] = %s%d %.3f, want %.2f", i, n.Name, n.Octave, n.Frequency, want[i])
		}
	}
}

func TestTabled(t *testing.T) {
	for m := FreqHash; m <= FreqLead; m++ {
		want := m == FreqNote || m == FreqLead
		if got := m.Tabled(); got != want {
			t.Errorf("%v.Tabled() = %v, want %v", m, got, want)
		}
	}
}
