package buffer

import "sync"

// Pool recycles scratch Buffers between mixes so that per-voice scaling
// does not allocate a fresh slice for every render.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns a zeroed Buffer with the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Resize(length)
	b.Zero()
	return b
}

// Scaled returns a pooled Buffer holding gain*src.
func (p *Pool) Scaled(src []float64, gain float64) *Buffer {
	b := p.Get(len(src))
	for i, v := range src {
		b.samples[i] = gain * v
	}
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
