package biquad

import "errors"

var (
	// ErrZeroA0 reports a coefficient set whose a0 term is zero, which has
	// no defined transfer function.
	ErrZeroA0 = errors.New("biquad: a0 coefficient must be nonzero")

	// ErrEmptyBlock reports a block process call with no samples.
	ErrEmptyBlock = errors.New("biquad: block must contain at least one sample")
)
