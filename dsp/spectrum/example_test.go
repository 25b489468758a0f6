package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-sonify/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleAnalyzeBlock() {
	sig := []float64{1, 1, 1, 1}
	p, _ := spectrum.AnalyzeBlock(sig, 0, 8)
	fmt.Printf("%.0f\n", p)
	// Output:
	// 16
}
