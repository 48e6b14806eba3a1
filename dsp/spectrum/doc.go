// Package spectrum provides frequency-domain inspection of filters: SIMD
// magnitude/power helpers over complex spectrum bins, and an FFT-based
// [Analyzer] that measures a processor's magnitude response from its
// impulse response.
package spectrum
