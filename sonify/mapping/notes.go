package mapping

import "math"

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is one entry of the equal-tempered note table.
type Note struct {
	Name      string
	Octave    int
	Frequency float64
}

// Notes is the 12-TET table from C3 to B5 with A4 = 440 Hz.
var Notes = buildNotes(3, 5)

// LeadNotes is the chromatic octave from C4 followed by C5, D5 and E5.
var LeadNotes = append(buildNotes(4, 4), Notes[24], Notes[26], Notes[28])

func buildNotes(lo, hi int) []Note {
	out := make([]Note, 0, 12*(hi-lo+1))

	for octave := lo; octave <= hi; octave++ {
		for i, name := range noteNames {
			midi := 12*(octave+1) + i
			out = append(out, Note{
				Name:      name,
				Octave:    octave,
				Frequency: 440 * math.Pow(2, float64(midi-69)/12),
			})
		}
	}

	return out
}
