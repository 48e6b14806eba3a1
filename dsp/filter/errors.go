package filter

import "errors"

var (
	// ErrSampleRate reports a sample rate that is not a positive number of Hz.
	ErrSampleRate = errors.New("filter: sample rate must be positive")

	// ErrCutoff reports a cutoff frequency that is not positive.
	ErrCutoff = errors.New("filter: cutoff frequency must be positive")

	// ErrQFactor reports a quality factor that is not positive.
	ErrQFactor = errors.New("filter: quality factor must be positive")

	// ErrBandwidth reports a bandwidth that is not positive.
	ErrBandwidth = errors.New("filter: bandwidth must be positive")

	// ErrAboveNyquist reports a cutoff frequency above sampleRate/2.
	ErrAboveNyquist = errors.New("filter: cutoff frequency exceeds the Nyquist limit")
)
