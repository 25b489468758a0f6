package filter_test

import (
	"fmt"

	"github.com/cwbudde/algo-sonify/dsp/filter"
)

func ExampleLowpass() {
	c, err := filter.Lowpass(1000, filter.DefaultQ, 48000)
	if err != nil {
		panic(err)
	}

	s := filter.NewSection(c)

	y := 0.0
	for range 2000 {
		y = s.ProcessSample(1)
	}

	fmt.Printf("settled DC output: %.3f\n", y)
	// Output:
	// settled DC output: 1.000
}
