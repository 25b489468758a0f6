package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-sonify/dsp/buffer"
)

func ExampleBuffer_AppendCrossfade() {
	b := buffer.New(0)
	b.Append([]float64{1, 1, 1})

	if err := b.AppendCrossfade([]float64{1, 1, 1}, 2); err != nil {
		panic(err)
	}

	fmt.Println(b.Samples())

	// Output:
	// [1 1 1 1]
}

func ExampleBuffer_AccumulateScaled() {
	out := buffer.New(4)
	out.AccumulateScaled([]float64{1, 1, 1, 1, 1}, 0.5)
	out.AccumulateScaled([]float64{2, 2}, 1)

	fmt.Println(out.Samples())

	// Output:
	// [2.5 2.5 0.5 0.5]
}
