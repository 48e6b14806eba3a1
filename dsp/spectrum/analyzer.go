package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/alex-parisi/biquad-filters/dsp/biquad"
)

// BlockProcessor is any in-place sample processor, typically a
// [biquad.Filter] over float64 samples.
type BlockProcessor interface {
	ProcessBlock(buf []float64) error
}

// Analyzer measures magnitude responses by running an impulse through a
// processor and transforming the response with a cached FFT plan.
type Analyzer struct {
	fftSize int
	plan    *algofft.Plan[complex128]

	input  []complex128
	output []complex128
}

// NewAnalyzer creates an analyzer with the given FFT size, which must be a
// power of two and at least 2. Larger sizes resolve the response on a
// finer frequency grid.
func NewAnalyzer(fftSize int) (*Analyzer, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two >= 2: %d", fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: creating fft plan: %w", err)
	}

	return &Analyzer{
		fftSize: fftSize,
		plan:    plan,
		input:   make([]complex128, fftSize),
		output:  make([]complex128, fftSize),
	}, nil
}

// FFTSize returns the analyzer's transform length.
func (a *Analyzer) FFTSize() int {
	return a.fftSize
}

// MeasureResponse feeds a unit impulse through p and returns the
// single-sided magnitude response, fftSize/2+1 linear-scale bins from DC
// to Nyquist. The processor's state advances by fftSize samples.
func (a *Analyzer) MeasureResponse(p BlockProcessor) ([]float64, error) {
	ir := make([]float64, a.fftSize)
	ir[0] = 1

	if err := p.ProcessBlock(ir); err != nil {
		return nil, fmt.Errorf("spectrum: probing impulse response: %w", err)
	}

	return a.transformMagnitude(ir)
}

// Response returns the single-sided magnitude response of a coefficient
// set by probing a throwaway biquad built from it.
func (a *Analyzer) Response(c biquad.Coefficients[float64]) ([]float64, error) {
	f, err := biquad.New(c)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	return a.MeasureResponse(f)
}

func (a *Analyzer) transformMagnitude(ir []float64) ([]float64, error) {
	for i, v := range ir {
		a.input[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	half := a.fftSize/2 + 1
	re, im, buf := getScratch(half)
	for i := 0; i < half; i++ {
		re[i] = real(a.output[i])
		im[i] = imag(a.output[i])
	}

	mag := make([]float64, half)
	MagnitudeFromParts(mag, re, im)
	putScratch(buf)

	return mag, nil
}
