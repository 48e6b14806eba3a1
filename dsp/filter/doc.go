// Package filter provides parameterized second-order audio filters on top
// of the dsp/biquad runtime: low-pass, high-pass, band-pass, notch,
// all-pass, low-shelf, high-shelf, and peaking EQ.
//
// Each [Filter] owns one biquad core and a design parameter set (cutoff,
// sample rate, Q or bandwidth, gain). Coefficients follow the RBJ Audio EQ
// Cookbook formulas and are recomputed, and the core's memory reset, on
// every parameter change.
package filter
