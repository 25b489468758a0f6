// Package envelope builds amplitude curves that are multiplied onto raw
// oscillator output.
//
// Three families are provided:
//
//   - [Fade]: linear fade-in and fade-out with silent edge samples
//   - [ADSRParams]: attack/decay/sustain/release with exponential or linear
//     segments; [PresetParams] holds the named instrument table
//   - [ExpDecay]: exp(-t/duration) over the whole note
//
// Every generator returns exactly n samples. Phase layouts that do not fit
// into n samples are compressed rather than rejected.
package envelope
