//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 4x-unrolled scalar kernel selected for AVX2-capable CPUs.
// TODO: replace with an explicit AVX2 asm kernel once the feedback recurrence
// is restructured into a four-step state-space update.
func processBlock(c registry.Coefficients, s registry.State, buf []float64) registry.State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2 := s.X1, s.X2
	y1, y2 := s.Y1, s.Y2

	i := 0
	n := len(buf)
	for ; i+3 < n; i += 4 {
		xa := buf[i]
		ya := b0*xa + b1*x1 + b2*x2 - a1*y1 - a2*y2

		xb := buf[i+1]
		yb := b0*xb + b1*xa + b2*x1 - a1*ya - a2*y1

		xc := buf[i+2]
		yc := b0*xc + b1*xb + b2*xa - a1*yb - a2*ya

		xd := buf[i+3]
		yd := b0*xd + b1*xc + b2*xb - a1*yc - a2*yb

		x2, x1 = xc, xd
		y2, y1 = yc, yd

		buf[i] = ya
		buf[i+1] = yb
		buf[i+2] = yc
		buf[i+3] = yd
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	return registry.State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
