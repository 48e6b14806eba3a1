package generic

import (
	"math"
	"testing"

	"github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/registry"
)

func almostEq(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// refProcess is the plain one-sample-at-a-time recurrence every kernel
// must reproduce.
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

	// Odd and even lengths exercise the unrolled loop and its tail.
	for _, n := range []int{1, 2, 3, 4, 7, 8, 9, 64, 65} {
		in := make([]float64, n)
		for i := range in {
			in[i] = math.Cos(0.41 * float64(i))
		}

		got := append([]float64(nil), in...)
		want := append([]float64(nil), in...)

		sGot := processBlock(c, registry.State{}, got)
		sWant := refProcess(c, registry.State{}, want)

		if sGot != sWant {
			t.Fatalf("n=%d: state mismatch: got %+v, want %+v", n, sGot, sWant)
		}

		for i := range got {
			if !almostEq(got[i], want[i], 1e-12) {
				t.Fatalf("n=%d sample %d: got %.15f, want %.15f", n, i, got[i], want[i])
			}
		}
	}
}

func TestProcessBlock_CarriesState(t *testing.T) {
	c := registry.Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

	whole := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	split := append([]float64(nil), whole...)

	sWhole := processBlock(c, registry.State{}, whole)

	s := processBlock(c, registry.State{}, split[:3])
	s = processBlock(c, s, split[3:])

	if s != sWhole {
		t.Fatalf("state mismatch: split %+v, whole %+v", s, sWhole)
	}

	for i := range whole {
		if !almostEq(split[i], whole[i], 1e-12) {
			t.Fatalf("sample %d: split %.15f, whole %.15f", i, split[i], whole[i])
		}
	}
}
