package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"

	archregistry "github.com/alex-parisi/biquad-filters/dsp/biquad/internal/arch/registry"
)

// Scalar is the floating-point sample type a [Filter] operates on.
type Scalar interface {
	~float32 | ~float64
}

// Coefficients holds the transfer function coefficients of a single
// second-order section:
//
//	H(z) = (b0 + b1*z^-1 + b2*z^-2) / (a0 + a1*z^-1 + a2*z^-2)
//
// A0 must be nonzero. [New] and [Filter.SetCoefficients] normalize the set
// by dividing through by A0, so the stored denominator always has a0 = 1.
type Coefficients[T Scalar] struct {
	B0, B1, B2 T
	A0, A1, A2 T
}

// normalized returns the coefficient set divided through by A0.
// The caller must have rejected A0 == 0.
func (c Coefficients[T]) normalized() Coefficients[T] {
	return Coefficients[T]{
		B0: c.B0 / c.A0,
		B1: c.B1 / c.A0,
		B2: c.B2 / c.A0,
		A0: 1,
		A1: c.A1 / c.A0,
		A2: c.A2 / c.A0,
	}
}

// Filter is a single biquad with normalized coefficients and Direct Form I
// state, applying the difference equation
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
//
// A Filter is exclusively owned by its caller; concurrent use of one
// instance requires external synchronization.
type Filter[T Scalar] struct {
	coeffs Coefficients[T]

	x1, x2 T
	y1, y2 T

	// samples counts processed samples since the last reset. Diagnostic
	// only; never consulted by the recurrence.
	samples uint64
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// New returns a Filter with the given coefficients normalized and zero
// state. It fails with [ErrZeroA0] if c.A0 == 0.
func New[T Scalar](c Coefficients[T]) (*Filter[T], error) {
	if c.A0 == 0 {
		return nil, ErrZeroA0
	}

	return &Filter[T]{coeffs: c.normalized()}, nil
}

// Coefficients returns the current normalized coefficient set (A0 == 1).
func (f *Filter[T]) Coefficients() Coefficients[T] {
	return f.coeffs
}

// ProcessSample filters one input sample and returns the output.
func (f *Filter[T]) ProcessSample(x T) T {
	y := f.coeffs.B0*x + f.coeffs.B1*f.x1 + f.coeffs.B2*f.x2 -
		f.coeffs.A1*f.y1 - f.coeffs.A2*f.y2

	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	f.samples++

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc. It fails
// with [ErrEmptyBlock] if buf holds no samples; otherwise the result is
// identical to len(buf) sequential [Filter.ProcessSample] calls.
//
// For float64 blocks the work is delegated to the best kernel registered
// for the host CPU (generic, SSE2, AVX2, NEON). Kernel selection happens
// once per process; every kernel preserves the sequential recurrence.
func (f *Filter[T]) ProcessBlock(buf []T) error {
	if len(buf) == 0 {
		return ErrEmptyBlock
	}

	if b64, ok := any(buf).([]float64); ok {
		f.processBlockKernel(b64)
	} else {
		f.processBlockScalar(buf)
	}

	f.samples += uint64(len(buf))

	return nil
}

func (f *Filter[T]) processBlockKernel(buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: float64(f.coeffs.B0),
		B1: float64(f.coeffs.B1),
		B2: float64(f.coeffs.B2),
		A1: float64(f.coeffs.A1),
		A2: float64(f.coeffs.A2),
	}
	state := archregistry.State{
		X1: float64(f.x1),
		X2: float64(f.x2),
		Y1: float64(f.y1),
		Y2: float64(f.y2),
	}

	state = processBlockImpl(coeffs, state, buf)

	f.x1, f.x2 = T(state.X1), T(state.X2)
	f.y1, f.y2 = T(state.Y1), T(state.Y2)
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

func (f *Filter[T]) processBlockScalar(buf []T) {
	b0, b1, b2 := f.coeffs.B0, f.coeffs.B1, f.coeffs.B2
	a1, a2 := f.coeffs.A1, f.coeffs.A2
	x1, x2 := f.x1, f.x2
	y1, y2 := f.y1, f.y2

	for i, x := range buf {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	f.x1, f.x2 = x1, x2
	f.y1, f.y2 = y1, y2
}

// SetCoefficients normalizes and replaces the coefficient set and resets
// the filter state, so no memory of previous samples carries across a
// coefficient change. It fails with [ErrZeroA0] if c.A0 == 0, leaving the
// filter untouched.
func (f *Filter[T]) SetCoefficients(c Coefficients[T]) error {
	if c.A0 == 0 {
		return ErrZeroA0
	}

	f.coeffs = c.normalized()
	f.Reset()

	return nil
}

// Reset clears the delay line and the sample counter to zero.
// Coefficients are untouched.
func (f *Filter[T]) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
	f.samples = 0
}

// State returns the current delay-line state [x1, x2, y1, y2].
func (f *Filter[T]) State() [4]T {
	return [4]T{f.x1, f.x2, f.y1, f.y2}
}

// SetState restores a previously saved delay-line state.
func (f *Filter[T]) SetState(state [4]T) {
	f.x1, f.x2 = state[0], state[1]
	f.y1, f.y2 = state[2], state[3]
}

// SampleCount returns the number of samples processed since creation or
// the last reset or coefficient change.
func (f *Filter[T]) SampleCount() uint64 {
	return f.samples
}
