package dither

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrBitDepth is returned when converting to a sample type narrower than
// the quantizer's bit depth.
var ErrBitDepth = errors.New("dither: bit depth exceeds target sample type")

// Quantizer maps float samples in [-1, +1] to symmetric signed integers
// in [-(2^(bits-1)-1), 2^(bits-1)-1], with optional dither noise.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	limit           bool
	rng             *rand.Rand

	// derived from bitDepth
	bitMul float64
	bitDiv float64
	limitV int
}

// NewQuantizer creates a new Quantizer. The default configuration is
// 16-bit, no dither, limiting enabled. Without [WithRNG] or [WithSeed] the
// dither source is seeded with 0, so output is reproducible.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	quant := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		limit:           cfg.limit,
		rng:             cfg.rng,
	}

	if quant.rng == nil {
		quant.rng = rand.New(rand.NewPCG(0, 0))
	}

	quant.updateDerived()

	return quant, nil
}

func (q *Quantizer) updateDerived() {
	q.bitMul = math.Exp2(float64(q.bitDepth-1)) - 1
	q.bitDiv = 1.0 / q.bitMul
	q.limitV = int(q.bitMul)
}

// ProcessInteger quantizes the input (expected in [-1, +1]) to an integer
// in the bit-depth range. Halves round away from zero.
func (q *Quantizer) ProcessInteger(input float64) int {
	if math.IsNaN(input) {
		return 0
	}

	result := q.quantize(q.bitMul * input)

	if q.limit {
		result = max(-q.limitV, min(q.limitV, result))
	}

	return result
}

// ProcessSample quantizes the input and returns the normalized float64
// the integer code represents.
func (q *Quantizer) ProcessSample(input float64) float64 {
	return float64(q.ProcessInteger(input)) * q.bitDiv
}

// ProcessInPlace quantizes each sample in buf in-place.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for idx, val := range buf {
		buf[idx] = q.ProcessSample(val)
	}
}

// Quantize returns the integer codes for buf.
func (q *Quantizer) Quantize(buf []float64) []int {
	out := make([]int, len(buf))
	for i, val := range buf {
		out[i] = q.ProcessInteger(val)
	}

	return out
}

// Int16 returns 16-bit PCM codes for buf. The quantizer must be at most
// 16 bits wide.
func (q *Quantizer) Int16(buf []float64) ([]int16, error) {
	if q.bitDepth > 16 {
		return nil, fmt.Errorf("%w: %d > 16", ErrBitDepth, q.bitDepth)
	}

	out := make([]int16, len(buf))
	for i, val := range buf {
		out[i] = int16(q.ProcessInteger(val))
	}

	return out, nil
}

func (q *Quantizer) quantize(input float64) int {
	switch q.ditherType {
	case DitherRectangular:
		noise := q.ditherAmplitude * (q.rng.Float64() - 0.5)
		return int(math.Round(input + noise))
	case DitherTriangular:
		noise := q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
		return int(math.Round(input + noise))
	default:
		return int(math.Round(input))
	}
}

// Getters.

// BitDepth returns the current target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the current dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the current dither noise amplitude.
func (q *Quantizer) DitherAmplitude() float64 { return q.ditherAmplitude }

// Limit returns whether output limiting is enabled.
func (q *Quantizer) Limit() bool { return q.limit }

// FullScale returns the largest integer code, 2^(bits-1)-1.
func (q *Quantizer) FullScale() int { return q.limitV }
