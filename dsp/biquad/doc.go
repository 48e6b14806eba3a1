// Package biquad provides the biquad (second-order IIR) filter runtime.
//
// A [Filter] implements Direct Form I processing for a single second-order
// section defined by [Coefficients]. Both the coefficients and the sample
// stream are generic over the floating-point scalar type, so the same
// implementation serves float32 and float64 pipelines.
//
// This package provides the processing runtime only. Coefficient design
// (low-pass, shelving, peaking EQ, etc.) lives in dsp/filter.
package biquad
