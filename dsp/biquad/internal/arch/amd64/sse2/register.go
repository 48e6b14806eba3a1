//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "sse2",
		SIMDLevel:    cpu.SIMDSSE2,
		Priority:     10,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 2x-unrolled scalar kernel selected for SSE2-capable CPUs.
// The feedforward taps of both unrolled samples are independent and pair
// into two-wide multiplies; the feedback chain stays sequential.
func processBlock(c registry.Coefficients, s registry.State, buf []float64) registry.State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2 := s.X1, s.X2
	y1, y2 := s.Y1, s.Y2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		xa := buf[i]
		xb := buf[i+1]

		// Feedforward partials have no serial dependency.
		fa := b0*xa + b1*x1 + b2*x2
		fb := b0*xb + b1*xa + b2*x1

		ya := fa - a1*y1 - a2*y2
		yb := fb - a1*ya - a2*y1

		x2, x1 = xa, xb
		y2, y1 = ya, yb

		buf[i] = ya
		buf[i+1] = yb
	}

	if i < n {
		x := buf[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	return registry.State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
