// Package spectrum provides the frequency-domain checks used to describe
// rendered audio: single-bin Goertzel tone detection and FFT-based dominant
// frequency estimation.
package spectrum
