// Package buffer provides the float64 sample buffer used while rendering
// voices and mixing them, plus a pool for short-lived scratch buffers.
//
// A voice buffer only grows: notes are appended, optionally overlapping the
// previous note with a linear crossfade. The mixer accumulates scaled
// voice buffers into an output buffer by index range.
package buffer
