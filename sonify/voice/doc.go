// Package voice splits text among the voices of a preset and renders each
// voice's note events into a sample buffer.
//
// A voice plays either a plain oscillator shaped by a short fade, or an
// instrument: an additive partial table with its own envelope.
package voice
