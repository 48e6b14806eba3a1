package filter

import (
	"math"

	"github.com/alex-parisi/biquad-filters/dsp/biquad"
)

// deriveCoefficients computes the RBJ Audio EQ Cookbook coefficients for
// the filter's kind from the current parameter set. The returned set is
// unnormalized; the biquad core divides through by a0 on acceptance.
//
// Intermediate math is done in float64 regardless of the sample type.
func (f *Filter[T]) deriveCoefficients() biquad.Coefficients[T] {
	w0 := 2 * math.Pi * f.cutoffHz / float64(f.sampleRate)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * f.q)

	var b0, b1, b2, a0, a1, a2 float64

	switch f.kind {
	case LowPass:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = b0
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha

	case HighPass:
		b0 = (1 + cw) / 2
		b1 = -(1 + cw)
		b2 = b0
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha

	case BandPass:
		b0 = alpha
		if f.constantSkirt {
			b0 = f.q * alpha
		}

		b1 = 0
		b2 = -b0
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha

	case Notch:
		b0 = 1
		b1 = -2 * cw
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha

	case AllPass:
		b0 = 1 - alpha
		b1 = -2 * cw
		b2 = 1 + alpha
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha

	case PeakingEQ:
		a := math.Pow(10, f.gainDB/40)
		b0 = 1 + alpha*a
		b1 = -2 * cw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cw
		a2 = 1 - alpha/a

	case LowShelf:
		a := math.Pow(10, f.gainDB/40)
		beta := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cw + beta)
		b1 = 2 * a * ((a - 1) - (a+1)*cw)
		b2 = a * ((a + 1) - (a-1)*cw - beta)
		a0 = (a + 1) + (a-1)*cw + beta
		a1 = -2 * ((a - 1) + (a+1)*cw)
		a2 = (a + 1) + (a-1)*cw - beta

	case HighShelf:
		a := math.Pow(10, f.gainDB/40)
		beta := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cw + beta)
		b1 = -2 * a * ((a - 1) + (a+1)*cw)
		b2 = a * ((a + 1) + (a-1)*cw - beta)
		a0 = (a + 1) - (a-1)*cw + beta
		a1 = 2 * ((a - 1) - (a+1)*cw)
		a2 = (a + 1) - (a-1)*cw - beta
	}

	return biquad.Coefficients[T]{
		B0: T(b0), B1: T(b1), B2: T(b2),
		A0: T(a0), A1: T(a1), A2: T(a2),
	}
}
