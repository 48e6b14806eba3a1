//go:build amd64 && !purego

package sse2

import (
	"math"
	"testing"

	"github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/registry"
)

func almostEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func refProcess(c registry.Coefficients, s registry.State, buf []float64) registry.State {
	for i, x := range buf {
		y := c.B0*x + c.B1*s.X1 + c.B2*s.X2 - c.A1*s.Y1 - c.A2*s.Y2
		s.X2, s.X1 = s.X1, x
		s.Y2, s.Y1 = s.Y1, y
		buf[i] = y
	}
	return s
}

func TestProcessBlock_MatchesReference(t *testing.T) {
	c := registry.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	in := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}
	got := append([]float64(nil), in...)
	want := append([]float64(nil), in...)

	sGot := processBlock(c, registry.State{}, got)
	sWant := refProcess(c, registry.State{}, want)

	if sGot != sWant {
		t.Fatalf("state mismatch: got %+v, want %+v", sGot, sWant)
	}

	for i := range got {
		if !almostEq(got[i], want[i], 1e-12) {
			t.Fatalf("sample %d mismatch: got %.15f, want %.15f", i, got[i], want[i])
		}
	}
}
