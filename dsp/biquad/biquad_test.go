package biquad

import (
	"errors"
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns identity coefficients (b0=a0=1, all else 0).
func passthrough() Coefficients[float64] {
	return Coefficients[float64]{B0: 1, A0: 1}
}

// lowpassLike returns a pre-normalized lowpass-like coefficient set used
// throughout these tests.
func lowpassLike() Coefficients[float64] {
	return Coefficients[float64]{B0: 0.25, B1: 0.5, B2: 0.25, A0: 1, A1: -0.2, A2: 0.04}
}

func TestNew(t *testing.T) {
	f, err := New(lowpassLike())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if f.Coefficients() != lowpassLike() {
		t.Fatalf("coefficients mismatch: got %v", f.Coefficients())
	}

	if st := f.State(); st != [4]float64{} {
		t.Fatalf("initial state not zero: %v", st)
	}

	if n := f.SampleCount(); n != 0 {
		t.Fatalf("initial sample count: %d", n)
	}
}

func TestNew_RejectsZeroA0(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients[float64]
	}{
		{"all zero", Coefficients[float64]{}},
		{"nonzero numerator", Coefficients[float64]{B0: 1, B1: 2, B2: 3}},
		{"nonzero feedback", Coefficients[float64]{B0: 1, A1: -0.5, A2: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.c); !errors.Is(err, ErrZeroA0) {
				t.Fatalf("expected ErrZeroA0, got %v", err)
			}
		})
	}
}

func TestNew_NormalizesByA0(t *testing.T) {
	// Same transfer function as lowpassLike, scaled by a0 = 2.
	f, err := New(Coefficients[float64]{B0: 0.5, B1: 1, B2: 0.5, A0: 2, A1: -0.4, A2: 0.08})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := f.Coefficients()
	want := lowpassLike()
	for _, pair := range [][2]float64{
		{got.B0, want.B0}, {got.B1, want.B1}, {got.B2, want.B2},
		{got.A0, 1}, {got.A1, want.A1}, {got.A2, want.A2},
	} {
		if !almostEqual(pair[0], pair[1], eps) {
			t.Fatalf("normalized coefficients mismatch: got %v, want %v", got, want)
		}
	}
}

func TestProcessSample_Identity(t *testing.T) {
	f, err := New(passthrough())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	input := []float64{1.0, 0.5, 0.25}
	for i, x := range input {
		if y := f.ProcessSample(x); !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_ZeroNumerator(t *testing.T) {
	f, err := New(Coefficients[float64]{A0: 1, A1: -0.3, A2: 0.1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i, x := range []float64{1, -2, 0.75, 100} {
		if y := f.ProcessSample(x); y != 0 {
			t.Errorf("sample %d: got %v, want 0", i, y)
		}
	}
}

func TestProcessSample_DirectFormI(t *testing.T) {
	// Hand-traced DF1 with b0=0.25, b1=0.5, b2=0.25, a1=-0.2, a2=0.04
	// on an impulse x = [1, 0, 0, 0]:
	//
	// n=0: y = 0.25*1                            = 0.25
	// n=1: y = 0.5*1 + 0.2*0.25                  = 0.55
	// n=2: y = 0.25*1 + 0.2*0.55 - 0.04*0.25     = 0.35
	// n=3: y = 0.2*0.35 - 0.04*0.55              = 0.048
	f, err := New(lowpassLike())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}

		y := f.ProcessSample(x)
		if !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}

	if st := f.State(); !almostEqual(st[2], 0.048, eps) || !almostEqual(st[3], 0.35, eps) {
		t.Fatalf("state after impulse: %v", st)
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	// Buffer lengths deliberately straddle the kernels' unroll widths.
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 17, 127, 256} {
		input := make([]float64, n)
		for i := range input {
			input[i] = math.Sin(0.37*float64(i)) - 0.2*float64(i%3)
		}

		f1, _ := New(lowpassLike())
		ref := make([]float64, n)
		for i, x := range input {
			ref[i] = f1.ProcessSample(x)
		}

		f2, _ := New(lowpassLike())
		block := append([]float64(nil), input...)
		if err := f2.ProcessBlock(block); err != nil {
			t.Fatalf("n=%d: ProcessBlock: %v", n, err)
		}

		for i := range block {
			if !almostEqual(block[i], ref[i], eps) {
				t.Fatalf("n=%d sample %d: block=%.15f, sample=%.15f", n, i, block[i], ref[i])
			}
		}

		if f1.State() != f2.State() {
			t.Fatalf("n=%d: state diverged: %v vs %v", n, f1.State(), f2.State())
		}
	}
}

func TestProcessBlock_EmptyFails(t *testing.T) {
	f, _ := New(lowpassLike())

	if err := f.ProcessBlock(nil); !errors.Is(err, ErrEmptyBlock) {
		t.Fatalf("nil buffer: expected ErrEmptyBlock, got %v", err)
	}

	if err := f.ProcessBlock([]float64{}); !errors.Is(err, ErrEmptyBlock) {
		t.Fatalf("empty buffer: expected ErrEmptyBlock, got %v", err)
	}

	if n := f.SampleCount(); n != 0 {
		t.Fatalf("failed block advanced counter: %d", n)
	}
}

func TestSetCoefficients_ResetsState(t *testing.T) {
	f, _ := New(lowpassLike())
	f.ProcessSample(1)
	f.ProcessSample(-0.5)

	if err := f.SetCoefficients(passthrough()); err != nil {
		t.Fatalf("SetCoefficients: %v", err)
	}

	if st := f.State(); st != [4]float64{} {
		t.Fatalf("state not cleared: %v", st)
	}

	if n := f.SampleCount(); n != 0 {
		t.Fatalf("counter not cleared: %d", n)
	}

	// Output must match a freshly created filter with the new coefficients.
	fresh, _ := New(passthrough())
	if got, want := f.ProcessSample(0.7), fresh.ProcessSample(0.7); !almostEqual(got, want, eps) {
		t.Fatalf("stale state leaked: got %v, want %v", got, want)
	}
}

func TestSetCoefficients_RejectsZeroA0(t *testing.T) {
	f, _ := New(lowpassLike())
	f.ProcessSample(1)

	before := f.Coefficients()
	if err := f.SetCoefficients(Coefficients[float64]{B0: 1}); !errors.Is(err, ErrZeroA0) {
		t.Fatalf("expected ErrZeroA0, got %v", err)
	}

	if f.Coefficients() != before {
		t.Fatalf("rejected set modified coefficients: %v", f.Coefficients())
	}

	if n := f.SampleCount(); n != 1 {
		t.Fatalf("rejected set touched counter: %d", n)
	}
}

func TestReset(t *testing.T) {
	f, _ := New(lowpassLike())
	f.ProcessSample(1)
	f.ProcessSample(1)

	f.Reset()

	if st := f.State(); st != [4]float64{} {
		t.Fatalf("state not cleared: %v", st)
	}

	if n := f.SampleCount(); n != 0 {
		t.Fatalf("counter not cleared: %d", n)
	}

	if f.Coefficients() != lowpassLike() {
		t.Fatalf("reset touched coefficients: %v", f.Coefficients())
	}
}

func TestStateRoundTrip(t *testing.T) {
	f, _ := New(lowpassLike())
	f.ProcessSample(1)
	f.ProcessSample(0.5)

	saved := f.State()
	next := f.ProcessSample(0.25)

	f.SetState(saved)
	if got := f.ProcessSample(0.25); !almostEqual(got, next, eps) {
		t.Fatalf("restored state diverged: got %v, want %v", got, next)
	}
}

func TestSampleCount(t *testing.T) {
	f, _ := New(lowpassLike())

	f.ProcessSample(1)
	f.ProcessSample(1)
	if n := f.SampleCount(); n != 2 {
		t.Fatalf("after two samples: %d", n)
	}

	buf := make([]float64, 11)
	if err := f.ProcessBlock(buf); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}

	if n := f.SampleCount(); n != 13 {
		t.Fatalf("after block: %d", n)
	}
}

func TestFloat32Instantiation(t *testing.T) {
	f, err := New(Coefficients[float32]{B0: 0.25, B1: 0.5, B2: 0.25, A0: 1, A1: -0.2, A2: 0.04})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []float32{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float32
		if i == 0 {
			x = 1
		}

		y := f.ProcessSample(x)
		if math.Abs(float64(y-w)) > 1e-6 {
			t.Errorf("sample %d: got %v, want %v", i, y, w)
		}
	}

	// Block path must fall back to the scalar loop and match.
	f32a, _ := New(Coefficients[float32]{B0: 0.25, B1: 0.5, B2: 0.25, A0: 1, A1: -0.2, A2: 0.04})
	f32b, _ := New(Coefficients[float32]{B0: 0.25, B1: 0.5, B2: 0.25, A0: 1, A1: -0.2, A2: 0.04})

	input := []float32{1, 0.5, -0.3, 0.7, 0, -1, 0.2}
	ref := make([]float32, len(input))
	for i, x := range input {
		ref[i] = f32a.ProcessSample(x)
	}

	block := append([]float32(nil), input...)
	if err := f32b.ProcessBlock(block); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}

	for i := range block {
		if block[i] != ref[i] {
			t.Fatalf("sample %d: block=%v, sample=%v", i, block[i], ref[i])
		}
	}
}
