package interp

// Linear maps x from the domain [x0, x1] onto [y0, y1].
// x is clamped to the domain first, so values outside it map to the
// nearest edge. A degenerate domain (x0 == x1) returns y0 for x <= x0
// and y1 otherwise.
func Linear(x, x0, x1, y0, y1 float64) float64 {
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// Linspace returns n evenly spaced values from start to stop, both included.
// n == 1 yields [start]; n <= 0 yields nil.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}
