// Package interp provides interpolation primitives used by the feature
// mapper and the envelope shaper.
//
//   - [Linear]:    piecewise-linear mapping of a value between two ranges,
//     clamped to the input domain
//   - [Linspace]:  evenly spaced ramp including both endpoints
package interp
