package delay

import "fmt"

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// ForMaxDelay returns a line able to read back maxDelay samples behind the
// most recent write.
func ForMaxDelay(maxDelay int) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay must be >= 0: %d", maxDelay)
	}

	return New(maxDelay + 1)
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++

	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Read(1) is the most recent write.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	readPos := ((d.writePos-delay)%size + size) % size

	return d.buffer[readPos]
}

// Behind returns the sample written n writes before the most recent one.
// Behind(0) is the most recent write.
func (d *Line) Behind(n int) float64 {
	return d.Read(n + 1)
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
