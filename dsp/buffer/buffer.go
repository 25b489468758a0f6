package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sonify/dsp/interp"
)

// Buffer wraps a float64 slice with reuse-friendly semantics.
// DSP functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Grow ensures capacity is at least n, preserving existing data.
// If the current capacity is already >= n this is a no-op.
func (b *Buffer) Grow(n int) {
	if n <= cap(b.samples) {
		return
	}
	grown := make([]float64, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Resize sets the length to n, reusing existing capacity when possible.
// New elements beyond the previous length are zeroed.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}
	// Zero any newly exposed elements that may have stale data from
	// previous use of the backing array.
	for i := oldLen; i < n; i++ {
		b.samples[i] = 0
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s}
}

// Append copies note onto the end of the buffer.
func (b *Buffer) Append(note []float64) {
	b.samples = append(b.samples, note...)
}

// AppendCrossfade appends note so that its first k samples overlap the last
// k samples already in the buffer. Over the overlap the buffer tail is
// weighted 1→0, the note head 0→1, and the two are summed. The overlap is
// computed into a fresh segment; note is never modified.
//
// k == 0 degrades to Append. k larger than either the buffer or the note
// is an error.
func (b *Buffer) AppendCrossfade(note []float64, k int) error {
	if k < 0 || k > len(b.samples) || k > len(note) {
		return fmt.Errorf("buffer: crossfade length %d out of range (buffer %d, note %d)",
			k, len(b.samples), len(note))
	}
	if k == 0 {
		b.Append(note)
		return nil
	}

	start := len(b.samples) - k
	tail := make([]float64, k)
	head := make([]float64, k)
	vecmath.MulBlock(tail, b.samples[start:], interp.Linspace(1, 0, k))
	vecmath.MulBlock(head, note[:k], interp.Linspace(0, 1, k))
	for i := range tail {
		tail[i] += head[i]
	}

	copy(b.samples[start:], tail)
	b.samples = append(b.samples, note[k:]...)
	return nil
}

// AccumulateScaled adds gain*src into the buffer starting at sample 0.
// Samples of src beyond the buffer length are dropped. It returns the number
// of samples accumulated.
func (b *Buffer) AccumulateScaled(src []float64, gain float64) int {
	n := min(len(src), len(b.samples))
	for i := range n {
		b.samples[i] += gain * src[i]
	}
	return n
}
