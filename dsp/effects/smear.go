package effects

import (
	"fmt"
	"math"
)

// Smear blends a signal with its moving average over Taps samples. The
// average is centered like a same-length convolution with a box kernel:
// sample i averages x[i-(Taps-1-c) : i+c+1] with c = (Taps-1)/2, and
// samples outside the signal count as zero.
type Smear struct {
	Taps int     `yaml:"taps"`
	Wet  float64 `yaml:"wet"`
}

// Enabled reports whether s does anything.
func (s Smear) Enabled() bool {
	return s.Taps > 0 && s.Wet != 0
}

// Validate checks the kernel length and blend.
func (s Smear) Validate() error {
	if s.Taps < 0 {
		return fmt.Errorf("smear taps must be >= 0: %d", s.Taps)
	}

	if s.Wet < 0 || s.Wet > 1 || math.IsNaN(s.Wet) {
		return fmt.Errorf("smear wet must be in [0, 1]: %f", s.Wet)
	}

	return nil
}

// ProcessInPlace replaces buf with (1-Wet)*buf + Wet*average(buf).
func (s Smear) ProcessInPlace(buf []float64) {
	if !s.Enabled() || len(buf) == 0 {
		return
	}

	n := len(buf)
	ahead := (s.Taps - 1) / 2
	behind := s.Taps - 1 - ahead

	prefix := make([]float64, n+1)
	for i, v := range buf {
		prefix[i+1] = prefix[i] + v
	}

	dry := 1 - s.Wet
	scale := s.Wet / float64(s.Taps)

	for i := range buf {
		lo := max(i-behind, 0)
		hi := min(i+ahead, n-1)
		buf[i] = dry*buf[i] + scale*(prefix[hi+1]-prefix[lo])
	}
}
